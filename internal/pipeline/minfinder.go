package pipeline

import (
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/fifo"
	"github.com/hyperifyio/snnsim/internal/isb"
)

// MaxBatches is the number of IntermediateFIFOs a core can hold, one per
// input batch: "up to 4, one per batch".
const MaxBatches = 4

// BatchLoader supplies the sixteen physical lanes' worth of spine entries
// for batch b. A lane beyond the batch's actual tap count is left nil.
type BatchLoader func(b int) [isb.LaneCount][]entry.Entry

// MinFinderBatch is Stage 4: it drains InputSpineBuffer.PopSmallestTSEntry
// into the IntermediateFIFO belonging to the currently active batch, and
// advances batch_cursor to the next batch once the active one has been
// both fully loaded and fully drained.
type MinFinderBatch struct {
	isb   *isb.Buffer
	fifos [MaxBatches]*fifo.FIFO
	load  BatchLoader

	batchesNeeded  int
	batchCursor    int
	totallyDrained [MaxBatches]bool
	inputDrained   [MaxBatches]bool
}

// NewMinFinderBatch binds a MinFinderBatch to buf, one IntermediateFIFO
// per batch, the number of batches this site needs (capped at
// MaxBatches), and the loader that supplies each batch's lane contents.
func NewMinFinderBatch(buf *isb.Buffer, fifos [MaxBatches]*fifo.FIFO, batchesNeeded int, load BatchLoader) *MinFinderBatch {
	return &MinFinderBatch{isb: buf, fifos: fifos, load: load, batchesNeeded: batchesNeeded}
}

// PreloadFirstBatch loads batch 0's lanes into the ISB ahead of the first
// tick. DRAM is modeled as an in-memory slab, so this "blocks the core"
// only in the sense of running synchronously before ticking begins.
func (m *MinFinderBatch) PreloadFirstBatch() {
	if m.batchesNeeded == 0 || m.load == nil {
		return
	}
	m.isb.Load(m.load(0))
}

// Run loads the next batch into the ISB, but only once every lane of the
// current batch is empty and a next batch remains. It reports whether it
// advanced.
func (m *MinFinderBatch) Run() bool {
	if m.batchCursor+1 >= m.batchesNeeded {
		return false
	}
	if !m.isb.AllEmpty() {
		return false
	}
	m.batchCursor++
	if m.load != nil {
		m.isb.Load(m.load(m.batchCursor))
	}
	return true
}

// TotallyDrained reports whether batch b has been fully loaded, fully
// drained into its FIFO, and that FIFO observed empty — the readiness
// gate GlobalMerger consults to decide whether batch b still has an
// outstanding head to wait for. A batch index this site does not need
// counts as totally drained.
func (m *MinFinderBatch) TotallyDrained(b int) bool {
	if b < 0 || b >= MaxBatches || b >= m.batchesNeeded {
		return true
	}
	if !m.totallyDrained[b] && m.inputDrained[b] && (m.fifos[b] == nil || m.fifos[b].Empty()) {
		m.totallyDrained[b] = true
	}
	return m.totallyDrained[b]
}

// BatchCursor reports the batch currently being drained.
func (m *MinFinderBatch) BatchCursor() int {
	return m.batchCursor
}

// Tick moves at most one Entry from the ISB into the active batch's FIFO.
// It returns 1 if an entry moved, 0 if the stage stalled this tick
// (eligible_but_noop when the FIFO is full, or nothing left to pop).
func (m *MinFinderBatch) Tick() int {
	b := m.batchCursor
	if b >= m.batchesNeeded {
		return 0
	}
	f := m.fifos[b]
	if f == nil || f.Full() {
		return 0
	}
	e, ok := m.isb.PopSmallestTSEntry()
	if !ok {
		if m.isb.AllEmpty() {
			m.inputDrained[b] = true
			if f.Empty() {
				m.totallyDrained[b] = true
			}
			m.Run()
		}
		return 0
	}
	if err := f.Push(e); err != nil {
		return 0
	}
	return 1
}

// Quiescent reports whether every batch this site needs has been totally
// drained, i.e. MinFinderBatch has nothing left to contribute.
func (m *MinFinderBatch) Quiescent() bool {
	for b := 0; b < m.batchesNeeded; b++ {
		if !m.TotallyDrained(b) {
			return false
		}
	}
	return true
}
