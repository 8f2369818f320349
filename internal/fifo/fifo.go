// Package fifo implements the fixed-capacity IntermediateFIFO that buffers
// entries between a batch lane's InputSpineBuffer and the GlobalMerger.
package fifo

import (
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/simerr"
)

// Capacity is the number of entries each IntermediateFIFO can hold.
const Capacity = 128

// FIFO is a ring buffer of entry.Entry with a fixed capacity.
type FIFO struct {
	buf   [Capacity]entry.Entry
	head  int
	count int
}

// New returns an empty FIFO.
func New() *FIFO {
	return &FIFO{}
}

// Empty reports whether the FIFO holds no entries.
func (f *FIFO) Empty() bool { return f.count == 0 }

// Full reports whether the FIFO is at capacity.
func (f *FIFO) Full() bool { return f.count == Capacity }

// Len returns the number of entries currently queued.
func (f *FIFO) Len() int { return f.count }

// Push appends e to the tail. It returns simerr.ErrCapacityExceeded if the
// FIFO is already full.
func (f *FIFO) Push(e entry.Entry) error {
	if f.Full() {
		return simerr.ErrCapacityExceeded
	}
	tail := (f.head + f.count) % Capacity
	f.buf[tail] = e
	f.count++
	return nil
}

// Front returns the head entry without removing it. The second return
// value is false if the FIFO is empty.
func (f *FIFO) Front() (entry.Entry, bool) {
	if f.Empty() {
		return entry.Entry{}, false
	}
	return f.buf[f.head], true
}

// Pop removes and returns the head entry. The second return value is false
// if the FIFO is empty.
func (f *FIFO) Pop() (entry.Entry, bool) {
	e, ok := f.Front()
	if !ok {
		return entry.Entry{}, false
	}
	f.head = (f.head + 1) % Capacity
	f.count--
	return e, true
}
