// Package model implements the conv/FC layer drivers that own one
// core.Controller per output-channel tile, generate each site's batch of
// input spines, and report per-layer cycle statistics.
package model

import (
	"github.com/hyperifyio/snnsim/internal/batch"
	"github.com/hyperifyio/snnsim/internal/core"
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/fifo"
	"github.com/hyperifyio/snnsim/internal/filterbuffer"
	"github.com/hyperifyio/snnsim/internal/isb"
	"github.com/hyperifyio/snnsim/internal/pipeline"
	"github.com/hyperifyio/snnsim/internal/simerr"
	"github.com/hyperifyio/snnsim/internal/stats"
)

// SpineSource resolves the entries stored at a given input spine
// coordinate, typically backed by a dram.Image plus a dram.LayerDirectory
// lookup.
type SpineSource func(row, col int) []entry.Entry

// WeightSource resolves the full 128-wide weight row at rowID for the
// given output-channel tile, typically backed by one filterbuffer.Buffer
// per tile already loaded from DRAM. ok is false for a row that is not
// resident in that tile (a geometry miss, handled by skipping the tap).
type WeightSource func(tile, rowID int) (filterbuffer.Row, bool)

// Geometry carries the shared conv/FC layer shape parameters.
type Geometry struct {
	LayerID     int
	Name        string
	Window      batch.Window
	InChannels  int
	OutChannels int
	Threshold   int8

	// ResetVmem is the membrane-potential value every PE resets to after
	// firing. Zero matches the reference default.
	ResetVmem int8

	// DecodeCIn is the channel count ComputeRowID divides neuron_id by
	// when decoding a tap's (c_in, h_in, w_in) position. For a conv layer
	// this equals InChannels; an FCLayer flattens its whole input into a
	// single channel of width InChannels, so it decodes with DecodeCIn=1.
	DecodeCIn int
}

// Layer is the shared driver both ConvLayer and FCLayer specialize:
// per-site, per-output-tile it rebuilds the ISB batches from the spine
// source, resolves weight rows from the weight source via
// filterbuffer.ComputeRowID, and drains a core.Controller to quiescence,
// summing the result into the stats.LayerCycleStats that Run returns.
type Layer struct {
	geo     Geometry
	spines  SpineSource
	weights WeightSource
	ledger  *core.CostLedger
}

// NewLayer wires a Layer driver.
func NewLayer(geo Geometry, spines SpineSource, weights WeightSource, ledger *core.CostLedger) *Layer {
	return &Layer{geo: geo, spines: spines, weights: weights, ledger: ledger}
}

// batchLoaderFor buckets taps (one input spine per kernel tap, in
// row-major kernel order) into groups of isb.LaneCount physical lanes, one
// group per batch, and returns both the loader and the batch count needed.
// It reports simerr.ErrInvalidBatch if the kernel needs more taps than
// MaxBatches*isb.LaneCount physical lanes can stage.
func (l *Layer) batchLoaderFor(taps []batch.SpineID) (pipeline.BatchLoader, int, error) {
	batchesNeeded := (len(taps) + isb.LaneCount - 1) / isb.LaneCount
	if batchesNeeded > pipeline.MaxBatches {
		return nil, 0, simerr.ErrInvalidBatch
	}
	load := func(b int) [isb.LaneCount][]entry.Entry {
		var lanes [isb.LaneCount][]entry.Entry
		base := b * isb.LaneCount
		for lane := 0; lane < isb.LaneCount; lane++ {
			idx := base + lane
			if idx >= len(taps) {
				break
			}
			tap := taps[idx]
			if tap.OutOfBounds {
				continue
			}
			lanes[lane] = l.spines(tap.Row, tap.Col)
		}
		return lanes
	}
	return load, batchesNeeded, nil
}

// Run executes every output site and output-channel tile of the layer and
// returns its accumulated cycle statistics plus the concatenated output
// spike stream.
func (l *Layer) Run(maxTicksPerSite uint64) (stats.LayerCycleStats, []entry.Entry, error) {
	var out []entry.Entry
	layerStats := stats.LayerCycleStats{LayerID: l.geo.LayerID, LayerName: l.geo.Name}

	_, outW := l.geo.Window.OutDims()
	totalTiles := (l.geo.OutChannels + pipeline.LaneCount - 1) / pipeline.LaneCount
	if totalTiles == 0 {
		totalTiles = 1
	}

	for _, site := range l.geo.Window.Sites() {
		taps := l.geo.Window.SpinesFor(site)

		for tile := 0; tile < totalTiles; tile++ {
			buf := isb.New()
			load, batchesNeeded, err := l.batchLoaderFor(taps)
			if err != nil {
				return layerStats, nil, err
			}

			var fifos [pipeline.MaxBatches]*fifo.FIFO
			for i := range fifos {
				fifos[i] = fifo.New()
			}

			tileIdx := tile
			weights := pipeline.NewInputWeightProvider(func(e entry.Entry) (filterbuffer.Row, int, bool) {
				rowID := filterbuffer.ComputeRowID(
					e.NeuronID, l.geo.DecodeCIn, l.geo.Window.InputW,
					l.geo.Window.KernelH, l.geo.Window.KernelW,
					l.geo.Window.Stride, l.geo.Window.Stride,
					l.geo.Window.Padding, l.geo.Window.Padding,
					site.Row, site.Col,
				)
				if rowID < 0 {
					return filterbuffer.Row{}, -1, false
				}
				row, ok := l.weights(tileIdx, rowID)
				if !ok {
					return filterbuffer.Row{}, -1, false
				}
				return row, rowID, true
			})

			peesPerTile := pipeline.LaneCount / core.TileCount
			st := core.SiteTile{H: site.Row, W: site.Col, WOut: outW, COut: l.geo.OutChannels, Tile: tile}
			ctrl := core.NewController(buf, fifos, batchesNeeded, load, weights, l.geo.Threshold, l.geo.ResetVmem, peesPerTile, st)

			var tick uint64
			for ; tick < maxTicksPerSite && !ctrl.Quiescent(); tick++ {
				if _, err := ctrl.StepOnce(); err != nil {
					return layerStats, nil, &simerr.InvariantError{Tick: tick, Err: err}
				}
			}
			if tick >= maxTicksPerSite && !ctrl.Quiescent() {
				return layerStats, nil, simerr.ErrTickCapExceeded
			}

			siteOut := ctrl.Spine()
			out = append(out, siteOut...)
			layerStats.OutputSpikes += int64(len(siteOut))
			layerStats.TotalCycles += int64(tick)
		}
		layerStats.Sites++
	}

	if l.ledger != nil {
		layerStats.TotalCycles = l.ledger.TotalCycles()
	}
	return layerStats, out, nil
}
