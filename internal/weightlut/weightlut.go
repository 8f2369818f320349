// Package weightlut implements the weight lookup table: decodes a packed
// weight byte from DRAM into the signed int8 the PE array integrates, and
// tracks which (layer, row) weight segments have already been resolved to
// DRAM byte ranges so repeat lookups avoid recomputing addresses.
package weightlut

import "github.com/hyperifyio/snnsim/internal/filterbuffer"

// Decode reinterprets a raw weight byte as the signed int8 the PE
// integrates. The storage format is already two's-complement, so this is a
// type conversion, not a scale/zero-point dequantization.
func Decode(raw byte) int8 {
	return int8(raw)
}

// DecodeRow reinterprets a raw 128-byte weight row as a filterbuffer.Row.
func DecodeRow(raw []byte) filterbuffer.Row {
	var row filterbuffer.Row
	n := len(raw)
	if n > filterbuffer.RowWide {
		n = filterbuffer.RowWide
	}
	for i := 0; i < n; i++ {
		row[i] = Decode(raw[i])
	}
	return row
}

// Coordinate identifies one weight row within a layer's kernel.
type Coordinate struct {
	Layer   int
	Ky, Kx  int
	InChan  int
	OcGroup int
}

// LUT caches the DRAM byte offset of each weight row keyed by its
// Coordinate, so a site that revisits the same row (common across output
// positions sharing a kernel tap) does not re-derive the address.
type LUT struct {
	offsets map[Coordinate]int64
}

// New returns an empty weight lookup table.
func New() *LUT {
	return &LUT{offsets: make(map[Coordinate]int64)}
}

// Put records the DRAM byte offset for a weight row coordinate.
func (l *LUT) Put(c Coordinate, offset int64) {
	l.offsets[c] = offset
}

// Get returns the cached byte offset for c, if any.
func (l *LUT) Get(c Coordinate) (int64, bool) {
	off, ok := l.offsets[c]
	return off, ok
}
