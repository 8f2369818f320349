package core

import (
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/fifo"
	"github.com/hyperifyio/snnsim/internal/isb"
	"github.com/hyperifyio/snnsim/internal/pipeline"
)

// TileMap resolves which tile and PE-within-tile slot a PE index routes to
// in the TiledOutputBuffer, e.g. a straight peIdx/peesPerTile split for a
// densely packed output-channel layout.
type TileMap func(peIdx int) (tile, slot int)

// DefaultTileMap splits peIdx evenly across TileCount tiles.
func DefaultTileMap(peesPerTile int) TileMap {
	return func(peIdx int) (int, int) {
		return peIdx / peesPerTile, peIdx % peesPerTile
	}
}

// StageHits records per-tick activity with no cost-model knowledge, so
// invariant tests can run against it without pulling in CostLedger.
type StageHits struct {
	Refilled int
	Merged   bool
	Fired    bool
}

// SiteTile carries the output-addressing context a single Controller
// covers: one output site (h, w) of a layer whose output is wOut wide and
// cOut channels deep, restricted to PE-array tile index tile (a
// cOut/pipeline.LaneCount output-channel group, per the out_neuron_id
// formula, not a TiledOutputBuffer buffering tile).
type SiteTile struct {
	H, W, WOut, COut, Tile int
}

// Controller is the canonical per-site pipeline: S0_TOB drains the
// TiledOutputBuffer into the OutputSorter/OutputSpine, S1_PE integrates the
// globally-merged entry, S2_MFB refills the IntermediateFIFOs from the
// InputSpineBuffer. It never blocks on DRAM; callers account DRAM cost
// separately via CostLedger.
type Controller struct {
	minFinder *pipeline.MinFinderBatch
	merger    *pipeline.GlobalMerger
	weights   *pipeline.InputWeightProvider
	pes       *pipeline.PEArray
	tob       *TiledOutputBuffer
	sorter    *OutputSorter
	spine     *OutputSpine
	tileMap   TileMap
}

// NewController wires one site/PE-array-tile's pipeline. peesPerTile*TileCount
// must equal pipeline.LaneCount. st carries the output-addressing context
// used to seed each PE's out_neuron_id. Every PE starts at V_mem 0;
// resetVmem is the value a PE's V_mem is set to after it fires.
func NewController(
	buf *isb.Buffer,
	fifos [pipeline.MaxBatches]*fifo.FIFO,
	batchesNeeded int,
	load pipeline.BatchLoader,
	weights *pipeline.InputWeightProvider,
	peThreshold, resetVmem int8,
	peesPerTile int,
	st SiteTile,
) *Controller {
	minFinder := pipeline.NewMinFinderBatch(buf, fifos, batchesNeeded, load)
	minFinder.PreloadFirstBatch()
	pes := pipeline.NewPEArray(peThreshold)
	pes.SetOutNeuronIDs(st.H, st.W, st.WOut, st.COut, st.Tile)
	pes.SetResetVmem(resetVmem)
	return &Controller{
		minFinder: minFinder,
		merger:    pipeline.NewGlobalMerger(fifos, minFinder.TotallyDrained),
		weights:   weights,
		pes:       pes,
		tob:       NewTiledOutputBuffer(peesPerTile),
		sorter:    NewOutputSorter(),
		spine:     NewOutputSpine(),
		tileMap:   DefaultTileMap(peesPerTile),
	}
}

// StepOnce advances S0_TOB, S1_PE and S2_MFB exactly once, in that order,
// matching the reference Core tick ordering (drain before refill so a site
// that quiesces this tick is observed quiescent, not one tick late).
func (c *Controller) StepOnce() (StageHits, error) {
	var hits StageHits

	// S0_TOB: drain a true k-way merge across all TileCount tile buffers,
	// so two tiles ready the same tick still produce a monotone spine.
	if !c.tob.Empty() {
		c.spine.Append(c.sorter.MergeTiles(c.tob))
	}

	// S1_PE: merge and integrate one entry this tick. An entry whose weight
	// row misses (padding tap or non-resident row) is popped and skipped.
	if e, batch, ok := c.merger.Peek(); ok {
		row, _, wok := c.weights.Provide(e)
		if _, popped := c.merger.Pop(batch); popped {
			hits.Merged = true
			if wok {
				for peIdx := 0; peIdx < pipeline.LaneCount; peIdx++ {
					fired := c.pes.Process(peIdx, e, row[peIdx])
					if fired < 0 {
						continue
					}
					hits.Fired = true
					out := entry.Entry{TS: uint8(fired), NeuronID: c.pes.OutNeuronID(peIdx)}
					tile, slot := c.tileMap(peIdx)
					if err := c.tob.Offer(tile, slot, out); err != nil {
						return hits, err
					}
				}
			}
		}
	}

	// S2_MFB: refill the FIFOs for next tick.
	hits.Refilled = c.minFinder.Tick()

	return hits, nil
}

// Quiescent reports whether the site has fully drained: no unread spine
// entries, every FIFO empty, and the TiledOutputBuffer empty.
func (c *Controller) Quiescent() bool {
	return c.minFinder.Quiescent() && c.tob.Empty()
}

// Spine returns the accumulated, sorted output for this site.
func (c *Controller) Spine() []entry.Entry {
	return c.spine.Entries()
}
