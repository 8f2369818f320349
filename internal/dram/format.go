package dram

// Format is the tagged variant distinguishing the two line layouts a
// segment's payload can use. It deliberately avoids a class hierarchy: the
// layouts differ only in how many bytes a line of entries occupies, so a
// closed sum type is the natural shape.
type Format interface {
	// LineBytes returns the on-wire byte length of n entries laid out
	// under this format.
	LineBytes(n int) int
	// Kind identifies the variant for logging/debugging.
	Kind() string
}

// FixedStride pads every line to MaxEntriesPerLine entries, trading space
// for a constant stride the stream reader can seek by.
type FixedStride struct {
	MaxEntriesPerLine int
}

func (f FixedStride) LineBytes(n int) int {
	return f.MaxEntriesPerLine * entryWireBytes
}

func (FixedStride) Kind() string { return "fixed_stride" }

// Packed lays out exactly n entries with no padding, matching the
// segment's declared Size field.
type Packed struct{}

func (Packed) LineBytes(n int) int {
	return n * entryWireBytes
}

func (Packed) Kind() string { return "packed" }

// entryWireBytes is the on-wire size of one entry.Entry: a uint8 timestamp
// followed by a uint32 neuron id.
const entryWireBytes = 5
