package ogg

import (
	"errors"
	"fmt"
)

// Page-level errors. Validation stops at the first failing check.
var (
	// ErrTooShort indicates the buffer ends before the page does: fewer
	// than 27 header bytes, or less data than the segment table declares.
	ErrTooShort = errors.New("ogg: page too short")

	// ErrBadCapture indicates the page does not start with "OggS".
	ErrBadCapture = errors.New("ogg: bad capture pattern")

	// ErrBadVersion indicates a stream structure version other than 0.
	ErrBadVersion = errors.New("ogg: unsupported stream structure version")

	// ErrBadCRC indicates the page CRC checksum does not match the computed value.
	// This typically indicates data corruption.
	ErrBadCRC = errors.New("ogg: CRC mismatch")

	// ErrTooManySegments indicates the packets handed to a PageBuilder
	// need more than 255 lacing values.
	ErrTooManySegments = errors.New("ogg: too many segments for one page")

	// ErrFragmentLength indicates an open fragment whose length is not a
	// positive multiple of 255.
	ErrFragmentLength = errors.New("ogg: open fragment length not a multiple of 255")

	// ErrEditClosed is returned by Commit on an editor that was already committed.
	ErrEditClosed = errors.New("ogg: page edit already committed")
)

// PageError reports which page of a track failed validation.
type PageError struct {
	// Index is the zero-based position of the page in the track.
	Index int
	// Offset is the byte offset of the page start.
	Offset int
	// Err is the page-level error.
	Err error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
