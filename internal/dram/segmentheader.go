// Package dram models the DRAM image as an in-memory byte slab plus the
// segmented stream wire format used to serialize spine/weight segments to
// and from it.
package dram

import (
	"encoding/binary"

	"github.com/hyperifyio/snnsim/internal/simerr"
)

// HeaderSize is the fixed on-wire size of a SegmentHeader.
const HeaderSize = 16

// HeaderVersion is the only version this simulator understands.
const HeaderVersion = 1

// Segment kinds.
const (
	KindInputSpine = 0
	KindWeight     = 1
	KindOutput     = 2
)

// SegmentHeader precedes every segment in the segmented stream format.
type SegmentHeader struct {
	Version        uint8
	Kind           uint8
	LayerID        uint16
	LogicalSpineID uint16
	Size           uint16
	SegID          uint8
	SegCount       uint8
	EOL            uint8
	Aux0           uint8
	Aux1           uint16
	Reserved       uint16
}

// Encode writes h's 16-byte wire representation.
func (h SegmentHeader) Encode() [HeaderSize]byte {
	var buf [HeaderSize]byte
	buf[0] = h.Version
	buf[1] = h.Kind
	binary.LittleEndian.PutUint16(buf[2:4], h.LayerID)
	binary.LittleEndian.PutUint16(buf[4:6], h.LogicalSpineID)
	binary.LittleEndian.PutUint16(buf[6:8], h.Size)
	buf[8] = h.SegID
	buf[9] = h.SegCount
	buf[10] = h.EOL
	buf[11] = h.Aux0
	binary.LittleEndian.PutUint16(buf[12:14], h.Aux1)
	binary.LittleEndian.PutUint16(buf[14:16], h.Reserved)
	return buf
}

// DecodeSegmentHeader parses a 16-byte wire representation. It returns
// simerr.ErrBadSegmentMagic if the version field does not match
// HeaderVersion.
func DecodeSegmentHeader(buf []byte) (SegmentHeader, error) {
	if len(buf) < HeaderSize {
		return SegmentHeader{}, simerr.ErrTruncatedStream
	}
	h := SegmentHeader{
		Version:        buf[0],
		Kind:           buf[1],
		LayerID:        binary.LittleEndian.Uint16(buf[2:4]),
		LogicalSpineID: binary.LittleEndian.Uint16(buf[4:6]),
		Size:           binary.LittleEndian.Uint16(buf[6:8]),
		SegID:          buf[8],
		SegCount:       buf[9],
		EOL:            buf[10],
		Aux0:           buf[11],
		Aux1:           binary.LittleEndian.Uint16(buf[12:14]),
		Reserved:       binary.LittleEndian.Uint16(buf[14:16]),
	}
	if h.Version != HeaderVersion {
		return SegmentHeader{}, simerr.ErrBadSegmentMagic
	}
	return h, nil
}
