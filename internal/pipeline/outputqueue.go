package pipeline

import (
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/simerr"
)

// OutputQueueCapacity bounds the number of entries the drain-path queue can
// hold before the SmallestTsPicker must stall.
const OutputQueueCapacity = 256

// OutputQueue is the tail-stage sink of the ClockCore assembly: a plain
// FIFO of finished output entries ready for the runner to collect.
type OutputQueue struct {
	entries []entry.Entry
}

// NewOutputQueue returns an empty OutputQueue.
func NewOutputQueue() *OutputQueue {
	return &OutputQueue{entries: make([]entry.Entry, 0, OutputQueueCapacity)}
}

// Push appends e. It returns simerr.ErrCapacityExceeded once the queue is
// at OutputQueueCapacity.
func (q *OutputQueue) Push(e entry.Entry) error {
	if len(q.entries) >= OutputQueueCapacity {
		return simerr.ErrCapacityExceeded
	}
	q.entries = append(q.entries, e)
	return nil
}

// Empty reports whether the queue holds no entries.
func (q *OutputQueue) Empty() bool { return len(q.entries) == 0 }

// TotalEntries reports how many entries are currently queued.
func (q *OutputQueue) TotalEntries() int { return len(q.entries) }

// Capacity reports the queue's fixed capacity.
func (q *OutputQueue) Capacity() int { return OutputQueueCapacity }

// Drain removes and returns every queued entry, oldest first.
func (q *OutputQueue) Drain() []entry.Entry {
	out := q.entries
	q.entries = make([]entry.Entry, 0, OutputQueueCapacity)
	return out
}
