package ogg

import "encoding/binary"

// PageEditor is a scoped handle for changing the header fields of one page.
//
// While an editor is open the stored checksum may be stale. Commit writes a
// checksum computed over the current bytes, exactly once, after which the
// editor is closed and the page validates again. Setters on a closed editor
// panic.
type PageEditor struct {
	page   []byte
	closed bool
}

// Begin opens an editor on the page. The caller must Commit it.
func (p MutPage) Begin() *PageEditor {
	return &PageEditor{page: p.b}
}

// Edit runs fn with an open editor and commits it when fn returns, whether
// it returns normally, with an error, or by panicking. It returns fn's error.
func (p MutPage) Edit(fn func(e *PageEditor) error) error {
	e := p.Begin()
	defer e.Commit()
	return fn(e)
}

func (e *PageEditor) mustOpen() {
	if e.closed {
		panic(ErrEditClosed)
	}
}

// SetGranulePos sets the granule position.
func (e *PageEditor) SetGranulePos(granule uint64) {
	e.mustOpen()
	binary.LittleEndian.PutUint64(e.page[granuleOffset:granuleOffset+8], granule)
}

// SetSerial sets the bitstream serial number.
func (e *PageEditor) SetSerial(serial uint32) {
	e.mustOpen()
	binary.LittleEndian.PutUint32(e.page[serialOffset:serialOffset+4], serial)
}

// SetSequence sets the page sequence number.
func (e *PageEditor) SetSequence(seq uint32) {
	e.mustOpen()
	binary.LittleEndian.PutUint32(e.page[sequenceOffset:sequenceOffset+4], seq)
}

// SetContinued sets or clears PageFlagContinuation.
func (e *PageEditor) SetContinued(v bool) {
	e.setFlag(PageFlagContinuation, v)
}

// SetBOS sets or clears PageFlagBOS.
func (e *PageEditor) SetBOS(v bool) {
	e.setFlag(PageFlagBOS, v)
}

// SetEOS sets or clears PageFlagEOS.
func (e *PageEditor) SetEOS(v bool) {
	e.setFlag(PageFlagEOS, v)
}

// SetFlags replaces the continuation, BOS and EOS flags with those in flags.
// Other bits of the flags byte are preserved.
func (e *PageEditor) SetFlags(flags byte) {
	e.SetContinued(flags&PageFlagContinuation != 0)
	e.SetBOS(flags&PageFlagBOS != 0)
	e.SetEOS(flags&PageFlagEOS != 0)
}

func (e *PageEditor) setFlag(flag byte, v bool) {
	e.mustOpen()
	if v {
		e.page[flagsOffset] |= flag
	} else {
		e.page[flagsOffset] &^= flag
	}
}

// Commit recomputes and stores the checksum and closes the editor.
// It returns ErrEditClosed if the editor was already committed.
func (e *PageEditor) Commit() error {
	if e.closed {
		return ErrEditClosed
	}
	e.closed = true
	writeChecksum(e.page)
	return nil
}
