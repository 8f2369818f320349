package pipeline

import (
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/fifo"
	"github.com/hyperifyio/snnsim/internal/isb"
)

// PEArrayLaneCount mirrors pipeline.LaneCount for readability at call sites.
const PEArrayLaneCount = LaneCount

// ClockCore is the general S0..S5 pipeline assembly: MinFinderBatch feeds
// up to MaxBatches IntermediateFIFOs, GlobalMerger/InputWeightProvider pick
// and resolve one entry per tick, PEArray integrates it, and
// SmallestTsPicker/OutputQueue drain the fired results in timestamp order
// under the st1_st2_valid handshake. It exists to exercise the
// handshake/ordering behavior spec'd for the SmallestTsPicker/OutputQueue
// pair; the production pipeline driven by the runner is core.Controller,
// which drains through TiledOutputBuffer instead.
type ClockCore struct {
	MinFinder *MinFinderBatch
	Merger    *GlobalMerger
	Weights   *InputWeightProvider
	PEs       *PEArray
	Picker    *SmallestTsPicker
	Out       *OutputQueue

	signals *Signals
}

// NewClockCore wires the six stages together over a fresh signals bus. h,
// w, wOut, cOut and tile are the output-addressing context PEArray needs
// to compute each PE's out_neuron_id = (h*wOut+w)*cOut + tile*LaneCount+i.
func NewClockCore(
	buf *isb.Buffer,
	fifos [MaxBatches]*fifo.FIFO,
	batchesNeeded int,
	load BatchLoader,
	weights *InputWeightProvider,
	peThreshold int8,
	h, w, wOut, cOut, tile int,
) *ClockCore {
	signals := NewSignals()
	minFinder := NewMinFinderBatch(buf, fifos, batchesNeeded, load)
	minFinder.PreloadFirstBatch()
	pes := NewPEArray(peThreshold)
	pes.SetOutNeuronIDs(h, w, wOut, cOut, tile)
	return &ClockCore{
		MinFinder: minFinder,
		Merger:    NewGlobalMerger(fifos, minFinder.TotallyDrained),
		Weights:   weights,
		PEs:       pes,
		Picker:    NewSmallestTsPicker(PEArrayLaneCount, signals),
		Out:       NewOutputQueue(),
		signals:   signals,
	}
}

// Tick advances every stage exactly once. Stage 1 (SmallestTsPicker)
// drains first, opening or closing st1_st2_valid for this tick before
// Stage 2 (PEArray) tries to write into the pool, matching the reference
// controller's tail-to-head drain before head-to-tail refill within one
// clock.
func (c *ClockCore) Tick() (didWork bool, err error) {
	// S1/S0: drain any pool left over from a prior tick's firings.
	if c.Picker.Len() > 0 {
		if perr := c.Picker.Drain(c.Out); perr != nil {
			return didWork, perr
		}
		didWork = true
	}

	// S4/S3: merge across batches and resolve the weight row for the winner.
	// The merge stalls while st1_st2_valid is closed, so no fired entry is
	// offered to a closed pool. A weight-row miss pops and skips the entry.
	if e, batch, ok := c.Merger.Peek(); ok && c.signals.St1St2Valid {
		row, _, wok := c.Weights.Provide(e)
		if _, popped := c.Merger.Pop(batch); popped {
			if wok {
				// S2: broadcast to every PE, each multiplying by its own
				// weight from the resolved row; each fired write is
				// subject to the st1_st2_valid gate.
				for peIdx := 0; peIdx < LaneCount; peIdx++ {
					fired := c.PEs.Process(peIdx, e, row[peIdx])
					if fired < 0 {
						continue
					}
					out := entry.Entry{TS: uint8(fired), NeuronID: c.PEs.OutNeuronID(peIdx)}
					if c.Picker.Offer(out) {
						didWork = true
					}
				}
			}
		}
	}

	// S5: refill the active batch's FIFO from the ISB.
	if c.MinFinder.Tick() > 0 {
		didWork = true
	}

	return didWork, nil
}

// Quiescent reports whether the core has no remaining work: every batch is
// totally drained and nothing is pending in the picker pool.
func (c *ClockCore) Quiescent() bool {
	return c.MinFinder.Quiescent() && c.Picker.Len() == 0
}
