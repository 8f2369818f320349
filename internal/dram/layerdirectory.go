package dram

// Range is a half-open byte span [Offset, Offset+Length) within the image.
type Range struct {
	Offset int64
	Length int64
}

// End returns the exclusive end of the range.
func (r Range) End() int64 { return r.Offset + r.Length }

// LayerRegions names the three byte ranges a layer owns within the image:
// its input spines, its weights, and the output region it writes to.
type LayerRegions struct {
	Inputs  Range
	Weights Range
	Outputs Range
}

// LayerDirectory maps a layer id to the byte regions it owns, as recorded
// by Set. This package does not parse the metadata JSON itself.
type LayerDirectory struct {
	layers map[int]LayerRegions
}

// NewLayerDirectory returns an empty directory.
func NewLayerDirectory() *LayerDirectory {
	return &LayerDirectory{layers: make(map[int]LayerRegions)}
}

// Set records the regions owned by layerID.
func (d *LayerDirectory) Set(layerID int, regions LayerRegions) {
	d.layers[layerID] = regions
}

// Get returns the regions owned by layerID, if recorded.
func (d *LayerDirectory) Get(layerID int) (LayerRegions, bool) {
	r, ok := d.layers[layerID]
	return r, ok
}
