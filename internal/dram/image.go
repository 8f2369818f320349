package dram

import (
	"github.com/hyperifyio/snnsim/internal/simerr"
)

// Image is a flat, bounds-checked byte slab standing in for the
// accelerator's DRAM, plus the output region write pointer each layer
// advances as it produces spikes.
type Image struct {
	data      []byte
	outputPtr int64
}

// NewImage returns an Image backed by a copy of data.
func NewImage(data []byte) *Image {
	img := &Image{data: make([]byte, len(data))}
	copy(img.data, data)
	return img
}

// Len reports the image's total byte size.
func (img *Image) Len() int64 {
	return int64(len(img.data))
}

// Read copies length bytes starting at offset into a new slice. It returns
// a *simerr.DramError wrapping simerr.ErrOutOfRange if the range falls
// outside the image.
func (img *Image) Read(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > img.Len() {
		return nil, &simerr.DramError{Offset: offset, Length: length, Err: simerr.ErrOutOfRange}
	}
	out := make([]byte, length)
	copy(out, img.data[offset:offset+length])
	return out, nil
}

// Write copies src into the image at offset. It returns a *simerr.DramError
// wrapping simerr.ErrOutOfRange if the range falls outside the image.
func (img *Image) Write(offset int64, src []byte) error {
	length := int64(len(src))
	if offset < 0 || offset+length > img.Len() {
		return &simerr.DramError{Offset: offset, Length: length, Err: simerr.ErrOutOfRange}
	}
	copy(img.data[offset:offset+length], src)
	return nil
}

// AppendOutput writes src at the output region's current write pointer,
// relative to region.Offset, and advances the pointer. It returns a
// *simerr.DramError wrapping simerr.ErrOutOfRange if the write would
// overrun region.
func (img *Image) AppendOutput(region Range, src []byte) error {
	dst := region.Offset + img.outputPtr
	if img.outputPtr+int64(len(src)) > region.Length {
		return &simerr.DramError{Offset: dst, Length: int64(len(src)), Err: simerr.ErrOutOfRange}
	}
	if err := img.Write(dst, src); err != nil {
		return err
	}
	img.outputPtr += int64(len(src))
	return nil
}

// OutputBytesWritten reports how many bytes have been appended to the
// output region so far.
func (img *Image) OutputBytesWritten() int64 {
	return img.outputPtr
}
