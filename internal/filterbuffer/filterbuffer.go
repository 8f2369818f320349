// Package filterbuffer implements the FilterBuffer: the on-chip SRAM that
// holds the currently resident weight rows for one output-tile group, plus
// the row-id resolution that maps a (kernel position, input channel)
// coordinate to a row, or reports that the row is not resident.
package filterbuffer

import "github.com/hyperifyio/snnsim/internal/simerr"

// Rows is the number of weight rows the buffer can hold, each 128 int8 wide
// (one value per output channel group lane).
const (
	Rows    = 4608
	RowWide = 128
)

// Row is one resident weight row: 128 int8 weights, one per PE lane.
type Row [RowWide]int8

// Buffer is the resident weight SRAM for the tile group currently loaded.
type Buffer struct {
	rows      [Rows]Row
	resident  [Rows]bool
	tileBase  int // row id of the first row belonging to the resident tile
	tileCount int // number of rows belonging to the resident tile
}

// New returns an empty FilterBuffer with no tile loaded.
func New() *Buffer {
	return &Buffer{}
}

// LoadTile installs base..base+count-1 as the resident rows, fetched from
// rows, and marks every other row not-resident.
func (b *Buffer) LoadTile(base int, rows []Row) {
	for i := range b.resident {
		b.resident[i] = false
	}
	b.tileBase = base
	b.tileCount = len(rows)
	for i, r := range rows {
		idx := base + i
		if idx < 0 || idx >= Rows {
			continue
		}
		b.rows[idx] = r
		b.resident[idx] = true
	}
}

// RowID computes the flat row index for a (ky, kx, inputChannel, ocGroup)
// weight coordinate within a kernel of width kw and inChannels input
// channels. It does not check residency. This is the DRAM-side addressing
// scheme (SEG_WEIGHT segments key a tile's rows by exactly this tuple);
// ComputeRowID is the compute-side counterpart, resolving a row from the
// neuron_id actually carried by a popped Entry.
func RowID(ky, kx, inputChannel, ocGroup, kw, inChannels int) int {
	return ocGroup*kw*kw*inChannels + ky*kw*inChannels + kx*inChannels + inputChannel
}

// ComputeRowID decodes a raw neuron_id into (c_in, h_in, w_in) using the
// layer's input geometry, checks the resulting tap position against the
// kernel window whose top-left input position is (hOutCur*sh-ph,
// wOutCur*sw-pw), and returns the flat row
// id for that tap. It returns -1 for a neuron_id whose tap falls outside
// the kernel window (a padding tap) or whose row id falls outside the
// FilterBuffer's storage bound; both are geometry misses the caller
// handles by silently skipping the entry, never by failing.
func ComputeRowID(neuronID uint32, cIn, wIn, kh, kw, sh, sw, ph, pw, hOutCur, wOutCur int) int {
	if cIn <= 0 || wIn <= 0 {
		return -1
	}
	n := int(neuronID)
	cin := n % cIn
	p := n / cIn
	hIn := p / wIn
	wCoord := p % wIn

	r := hIn - (hOutCur*sh - ph)
	c := wCoord - (wOutCur*sw - pw)
	if r < 0 || r >= kh || c < 0 || c >= kw {
		return -1
	}

	rowID := (cin*kh+r)*kw + c
	if rowID < 0 || rowID >= Rows {
		return -1
	}
	return rowID
}

// Resolve returns the weight row at rowID if it is resident in the
// currently loaded tile. If the row belongs to a different tile this is a
// geometry miss: Resolve returns (Row{}, -1, simerr.ErrRowOutOfTile), a
// non-fatal condition the caller handles by substituting row_id -1.
func (b *Buffer) Resolve(rowID int) (Row, int, error) {
	if rowID < 0 || rowID >= Rows || !b.resident[rowID] {
		return Row{}, -1, simerr.ErrRowOutOfTile
	}
	return b.rows[rowID], rowID, nil
}

// TileBounds reports the [base, base+count) row range currently resident.
func (b *Buffer) TileBounds() (base, count int) {
	return b.tileBase, b.tileCount
}
