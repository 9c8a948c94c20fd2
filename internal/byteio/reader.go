// Package byteio provides a bounds-checked cursor over a borrowed byte slice.
//
// Reads never index out of range: a read that would run past the end of the
// buffer returns ErrTruncated and leaves the cursor where it was.
package byteio

import (
	"encoding/binary"
	"errors"
)

// ErrTruncated is returned when a read needs more bytes than remain.
var ErrTruncated = errors.New("byteio: truncated")

// Reader is a sequential cursor over buf using a fixed byte order.
// Slices returned by ReadBytes alias buf.
type Reader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte, order binary.ByteOrder) *Reader {
	return &Reader{buf: buf, order: order}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrTruncated
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a 16-bit value.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

// ReadU32 reads a 32-bit value.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

// ReadU64 reads a 64-bit value.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(b), nil
}

// ReadBytes returns the next n bytes without copying.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.take(n)
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.take(n)
	return err
}
