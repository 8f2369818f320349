package dram

import (
	"encoding/binary"

	"github.com/hyperifyio/snnsim/internal/entry"
)

// StreamWriter serializes segments (header + entry payload) into a byte
// slab, using the layout rules of the Format it was built with.
type StreamWriter struct {
	format Format
	buf    []byte
}

// NewStreamWriter returns a writer that lays out payloads per format.
func NewStreamWriter(format Format) *StreamWriter {
	return &StreamWriter{format: format}
}

// WriteSegment appends hdr followed by entries encoded per the writer's
// format, returning the byte offset the segment was written at.
func (w *StreamWriter) WriteSegment(hdr SegmentHeader, entries []entry.Entry) int64 {
	offset := int64(len(w.buf))
	head := hdr.Encode()
	w.buf = append(w.buf, head[:]...)

	payloadLen := w.format.LineBytes(len(entries))
	payload := make([]byte, payloadLen)
	for i, e := range entries {
		base := i * entryWireBytes
		if base+entryWireBytes > payloadLen {
			break
		}
		payload[base] = e.TS
		binary.LittleEndian.PutUint32(payload[base+1:base+5], e.NeuronID)
	}
	w.buf = append(w.buf, payload...)
	return offset
}

// Bytes returns the accumulated stream.
func (w *StreamWriter) Bytes() []byte {
	return w.buf
}
