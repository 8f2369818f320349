package core

import "github.com/hyperifyio/snnsim/internal/entry"

// OutputSpine accumulates the drained spike output of one Controller, i.e.
// one output site and one PE-array tile, in the order the sorter produced
// it.
type OutputSpine struct {
	entries []entry.Entry
}

// NewOutputSpine returns an empty OutputSpine.
func NewOutputSpine() *OutputSpine { return &OutputSpine{} }

// Append adds a batch of already-sorted entries from one site's drain.
func (o *OutputSpine) Append(entries []entry.Entry) {
	o.entries = append(o.entries, entries...)
}

// Entries returns the accumulated output in the order it was appended.
func (o *OutputSpine) Entries() []entry.Entry {
	return o.entries
}

// Len reports how many entries have accumulated.
func (o *OutputSpine) Len() int { return len(o.entries) }
