// Package runner drives a full network run: it runs each already-built
// layer's sites to quiescence and accumulates the per-layer statistics,
// and it builds spine and weight sources from a DRAM image. Parsing the
// config, reading the image file and writing the CSV are left to the
// caller (cmd/snnsim).
package runner

import (
	"github.com/hyperifyio/snnsim/internal/config"
	"github.com/hyperifyio/snnsim/internal/dram"
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/filterbuffer"
	"github.com/hyperifyio/snnsim/internal/model"
	"github.com/hyperifyio/snnsim/internal/settings"
	"github.com/hyperifyio/snnsim/internal/stats"
	"github.com/hyperifyio/snnsim/internal/weightlut"
	"github.com/hyperifyio/snnsim/pkg/log"
)

// BuildSpineSource returns a model.SpineSource that reads the segments of
// region from img using format, up to and including the first segment with
// EOL set, indexing each segment's entries by the (row, col) pair packed
// into its LogicalSpineID as row*width+col.
func BuildSpineSource(img *dram.Image, region dram.Range, format dram.Format, width int) (model.SpineSource, error) {
	raw, err := img.Read(region.Offset, region.Length)
	if err != nil {
		return nil, err
	}
	byKey := make(map[int][]entry.Entry)
	r := dram.NewStreamReader(format, raw)
	for !r.Done() {
		hdr, entries, err := r.ReadSegment()
		if err != nil {
			return nil, err
		}
		byKey[int(hdr.LogicalSpineID)] = entries
		if hdr.EOL != 0 {
			break
		}
	}
	return func(row, col int) []entry.Entry {
		return byKey[row*width+col]
	}, nil
}

// BuildWeightSource returns a model.WeightSource backed by one FilterBuffer
// tile per output-channel tile, each already loaded from the weight region
// of img via LoadWeightTile. A rowID not resident in tiles[tile] is a
// geometry miss reported as ok=false.
func BuildWeightSource(tiles []*filterbuffer.Buffer) model.WeightSource {
	return func(tile, rowID int) (filterbuffer.Row, bool) {
		if tile < 0 || tile >= len(tiles) || tiles[tile] == nil {
			return filterbuffer.Row{}, false
		}
		row, _, err := tiles[tile].Resolve(rowID)
		if err != nil {
			return filterbuffer.Row{}, false
		}
		return row, true
	}
}

// LoadWeightTile decodes count 128-byte weight rows starting at offset in
// region and installs them into fb as the resident tile starting at
// rowBase.
func LoadWeightTile(img *dram.Image, region dram.Range, rowBase, count int, fb *filterbuffer.Buffer) error {
	rows := make([]filterbuffer.Row, count)
	for i := 0; i < count; i++ {
		off := region.Offset + int64(i*filterbuffer.RowWide)
		raw, err := img.Read(off, filterbuffer.RowWide)
		if err != nil {
			return err
		}
		rows[i] = weightlut.DecodeRow(raw)
	}
	fb.LoadTile(rowBase, rows)
	return nil
}

// RunNetwork runs every layer described by net against the given layers'
// model drivers (the caller constructs each model.Layer since its spine/
// weight sources depend on the DRAM layout chosen by the config), and
// returns the accumulated statistics plus each layer's output spike
// stream in layer order.
func RunNetwork(net *config.Network, layers []*model.Layer, cfg settings.Settings) (*stats.Accumulator, [][]entry.Entry, error) {
	acc := &stats.Accumulator{}
	outputs := make([][]entry.Entry, len(layers))

	for i, layer := range layers {
		log.Printf(log.Info, "layer %d: running", net.Layers[i].L)
		layerStats, out, err := layer.Run(cfg.MaxTicksPerSite)
		if err != nil {
			return acc, outputs, err
		}
		acc.Add(layerStats)
		outputs[i] = out
		log.Printf(log.Info, "layer %d: %d sites, %d spikes", layerStats.LayerID, layerStats.Sites, layerStats.OutputSpikes)
	}
	return acc, outputs, nil
}
