package pipeline

import "github.com/hyperifyio/snnsim/internal/entry"

// SmallestTsPicker is Stage 1: it accumulates fired entries PEArray
// offers in a pool, always draining the smallest-timestamp candidate
// first so the OutputQueue receives a monotonically non-decreasing
// stream, and it owns the st1_st2_valid handshake bit shared with
// PEArray: while the pool is non-empty it closes the gate, reopening it
// only once the pool is fully drained.
type SmallestTsPicker struct {
	pool    []entry.Entry
	signals *Signals
}

// NewSmallestTsPicker returns an empty picker with capacity reserved for
// poolSize candidates, sharing signals' st1_st2_valid bit with PEArray.
func NewSmallestTsPicker(poolSize int, signals *Signals) *SmallestTsPicker {
	return &SmallestTsPicker{pool: make([]entry.Entry, 0, poolSize), signals: signals}
}

// Offer is the Stage-2 write into the pool. It succeeds and appends e
// only while st1_st2_valid reads true; PEArray must treat a false return
// as backpressure on that fired entry.
func (s *SmallestTsPicker) Offer(e entry.Entry) bool {
	if s.signals != nil && !s.signals.St1St2Valid {
		return false
	}
	s.pool = append(s.pool, e)
	return true
}

// Len reports how many candidates are currently pooled.
func (s *SmallestTsPicker) Len() int { return len(s.pool) }

// Pick removes and returns the smallest entry in the pool. ok is false if
// the pool is empty.
func (s *SmallestTsPicker) Pick() (e entry.Entry, ok bool) {
	if len(s.pool) == 0 {
		return entry.Entry{}, false
	}
	best := 0
	for i := 1; i < len(s.pool); i++ {
		if s.pool[i].Less(s.pool[best]) {
			best = i
		}
	}
	e = s.pool[best]
	s.pool = append(s.pool[:best], s.pool[best+1:]...)
	return e, true
}

// Drain runs the Stage-1 tick: it closes st1_st2_valid while the pool is
// non-empty, pops the pool's minimal entries into out in ascending
// (ts, neuron_id) order (stopping if out is at capacity), and reopens
// st1_st2_valid once the pool empties.
func (s *SmallestTsPicker) Drain(out *OutputQueue) error {
	if s.signals != nil && len(s.pool) > 0 {
		s.signals.St1St2Valid = false
	}
	for len(s.pool) > 0 {
		if out.TotalEntries() >= out.Capacity() {
			break
		}
		e, _ := s.Pick()
		if err := out.Push(e); err != nil {
			return err
		}
	}
	if len(s.pool) == 0 && s.signals != nil {
		s.signals.St1St2Valid = true
	}
	return nil
}
