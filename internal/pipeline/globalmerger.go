package pipeline

import (
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/fifo"
	"github.com/hyperifyio/snnsim/internal/filterbuffer"
)

// GlobalMerger is Stage 3: it picks the globally smallest (ts, neuron_id)
// entry across the batch FIFOs, batch-index ties broken by lower batch
// index, and pops it once the downstream PE stage is ready. It only picks
// once every batch that is not yet totally drained has a FIFO head
// available, guaranteeing the pick really is the global minimum rather
// than the minimum of whichever batches happen to be primed this tick.
type GlobalMerger struct {
	fifos          [MaxBatches]*fifo.FIFO
	totallyDrained func(batch int) bool
}

// NewGlobalMerger binds a GlobalMerger to the shared per-batch FIFO array
// and the totally_drained predicate MinFinderBatch exposes.
func NewGlobalMerger(fifos [MaxBatches]*fifo.FIFO, totallyDrained func(batch int) bool) *GlobalMerger {
	return &GlobalMerger{fifos: fifos, totallyDrained: totallyDrained}
}

// ready implements the Stage-3 readiness gate: every batch that is not
// totally drained must have a FIFO head ready, and at least one such
// batch must exist.
func (g *GlobalMerger) ready() bool {
	live := false
	for b, f := range g.fifos {
		if f == nil {
			continue
		}
		if g.totallyDrained != nil && g.totallyDrained(b) {
			continue
		}
		live = true
		if f.Empty() {
			return false
		}
	}
	return live
}

// Peek returns the smallest entry across all batch FIFOs and the batch it
// came from. ok is false if the readiness gate fails or every FIFO is
// empty.
func (g *GlobalMerger) Peek() (e entry.Entry, batch int, ok bool) {
	if !g.ready() {
		return entry.Entry{}, -1, false
	}
	bestBatch := -1
	var best entry.Entry
	for b, f := range g.fifos {
		if f == nil || f.Empty() {
			continue
		}
		cand, _ := f.Front()
		if bestBatch == -1 || cand.Less(best) {
			best = cand
			bestBatch = b
		}
	}
	if bestBatch == -1 {
		return entry.Entry{}, -1, false
	}
	return best, bestBatch, true
}

// Pop removes the entry GlobalMerger last Peek'd from its batch. Call
// this only after the downstream consumer asserts ready for the peeked
// entry.
func (g *GlobalMerger) Pop(batch int) (entry.Entry, bool) {
	if batch < 0 || batch >= len(g.fifos) || g.fifos[batch] == nil {
		return entry.Entry{}, false
	}
	return g.fifos[batch].Pop()
}

// InputWeightProvider resolves the full 128-wide weight row a merged
// entry broadcasts across the PE array. The resolver decodes the entry's
// own neuron_id against the layer's geometry and the FilterBuffer's
// residency (filterbuffer.ComputeRowID + Resolve); a geometry miss (row
// not resident, or a padding tap) is reported via ok=false, not an error.
type InputWeightProvider struct {
	resolve func(e entry.Entry) (row filterbuffer.Row, rowID int, ok bool)
}

// NewInputWeightProvider wraps a resolver function, typically backed by a
// filterbuffer.Buffer plus the layer's row-id arithmetic.
func NewInputWeightProvider(resolve func(entry.Entry) (filterbuffer.Row, int, bool)) *InputWeightProvider {
	return &InputWeightProvider{resolve: resolve}
}

// Provide resolves the weight row for e.
func (p *InputWeightProvider) Provide(e entry.Entry) (row filterbuffer.Row, rowID int, ok bool) {
	return p.resolve(e)
}
