// Package isb implements the InputSpineBuffer: the sixteen physical lanes
// that stage one batch's worth of input spine entries fetched from DRAM,
// and the cross-lane smallest-timestamp merge MinFinderBatch drains into
// the IntermediateFIFOs.
package isb

import "github.com/hyperifyio/snnsim/internal/entry"

// LaneCount is the number of physical spine lanes a batch can occupy.
const LaneCount = 16

// Lane holds one spine's entries, already DRAM-ts-sorted, plus a read cursor.
type Lane struct {
	entries []entry.Entry
	cursor  int
}

// Load replaces the lane's contents with entries and resets the cursor.
func (l *Lane) Load(entries []entry.Entry) {
	l.entries = entries
	l.cursor = 0
}

// Peek returns the next unread entry without consuming it.
func (l *Lane) Peek() (entry.Entry, bool) {
	if l.cursor >= len(l.entries) {
		return entry.Entry{}, false
	}
	return l.entries[l.cursor], true
}

// Advance consumes the next unread entry.
func (l *Lane) Advance() {
	if l.cursor < len(l.entries) {
		l.cursor++
	}
}

// Exhausted reports whether the lane has no unread entries left.
func (l *Lane) Exhausted() bool {
	return l.cursor >= len(l.entries)
}

// Buffer holds the full set of physical spine lanes for the batch
// currently being processed.
type Buffer struct {
	Lanes [LaneCount]Lane
}

// New returns an empty InputSpineBuffer.
func New() *Buffer {
	return &Buffer{}
}

// LoadLane installs entries into lane idx, replacing whatever was there.
func (b *Buffer) LoadLane(idx int, entries []entry.Entry) {
	b.Lanes[idx].Load(entries)
}

// Load replaces every lane at once with a full batch's worth of spine
// entries, used by MinFinderBatch's preload_first_batch/run to swap in
// the next batch once the current one has drained.
func (b *Buffer) Load(lanes [LaneCount][]entry.Entry) {
	for i := range b.Lanes {
		b.Lanes[i].Load(lanes[i])
	}
}

// AllExhausted reports whether every lane has been fully drained, i.e. the
// batch is quiescent and MinFinderBatch has nothing left to offer.
func (b *Buffer) AllExhausted() bool {
	for i := range b.Lanes {
		if !b.Lanes[i].Exhausted() {
			return false
		}
	}
	return true
}

// AllEmpty is the spec name for AllExhausted: every lane has nothing left
// to pop.
func (b *Buffer) AllEmpty() bool {
	return b.AllExhausted()
}

// PopSmallestTSEntry scans every lane's head and returns the one with the
// smallest ts, ties broken by the lowest lane index (neuron_id is not
// compared), advancing that lane's read cursor. ok is false iff every
// lane is empty.
func (b *Buffer) PopSmallestTSEntry() (e entry.Entry, ok bool) {
	bestLane := -1
	var best entry.Entry
	for i := range b.Lanes {
		cand, hasEntry := b.Lanes[i].Peek()
		if !hasEntry {
			continue
		}
		if bestLane == -1 || cand.TS < best.TS {
			best = cand
			bestLane = i
		}
	}
	if bestLane == -1 {
		return entry.Entry{}, false
	}
	b.Lanes[bestLane].Advance()
	return best, true
}
