package dram

import (
	"encoding/binary"

	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/simerr"
)

// StreamReader parses segments back out of a byte slab written by a
// StreamWriter using the same Format.
type StreamReader struct {
	format Format
	buf    []byte
	pos    int64
}

// NewStreamReader returns a reader positioned at the start of buf.
func NewStreamReader(format Format, buf []byte) *StreamReader {
	return &StreamReader{format: format, buf: buf}
}

// Done reports whether the reader has consumed the whole stream.
func (r *StreamReader) Done() bool {
	return r.pos >= int64(len(r.buf))
}

// ReadSegment parses the next header and its entry payload, advancing the
// reader past both.
func (r *StreamReader) ReadSegment() (SegmentHeader, []entry.Entry, error) {
	if r.pos+HeaderSize > int64(len(r.buf)) {
		return SegmentHeader{}, nil, simerr.ErrTruncatedStream
	}
	hdr, err := DecodeSegmentHeader(r.buf[r.pos : r.pos+HeaderSize])
	if err != nil {
		return SegmentHeader{}, nil, err
	}
	r.pos += HeaderSize

	n := int(hdr.Size)
	payloadLen := int64(r.format.LineBytes(n))
	if r.pos+payloadLen > int64(len(r.buf)) {
		return SegmentHeader{}, nil, simerr.ErrTruncatedStream
	}
	payload := r.buf[r.pos : r.pos+payloadLen]
	r.pos += payloadLen

	entries := make([]entry.Entry, n)
	for i := 0; i < n; i++ {
		base := i * entryWireBytes
		entries[i] = entry.Entry{
			TS:       payload[base],
			NeuronID: binary.LittleEndian.Uint32(payload[base+1 : base+5]),
		}
	}
	return hdr, entries, nil
}
