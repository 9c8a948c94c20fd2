package ogg

import (
	"io"
)

// Writer lays packets out into the pages of one logical bitstream and writes
// them to an io.Writer. It numbers pages, sets the BOS flag on the first
// page and the EOS flag on the page written by Close.
type Writer struct {
	w          io.Writer
	serial     uint32 // Bitstream serial number
	pageSeq    uint32 // Page sequence counter
	granulePos uint64 // Granule position of the last completed packet
	closed     bool   // Stream closed?
	builder    PageBuilder
}

// NewWriter returns a Writer for the bitstream identified by serial.
func NewWriter(w io.Writer, serial uint32) *Writer {
	return &Writer{w: w, serial: serial}
}

// WritePage writes one page holding all packets, stamped with granule.
// Returns ErrTooManySegments if the packets do not fit in a single page.
func (ow *Writer) WritePage(granule uint64, packets ...[]byte) error {
	if ow.closed {
		return io.ErrClosedPipe
	}

	ow.builder.Reset()
	for _, pkt := range packets {
		ow.builder.AddPacket(pkt)
	}
	page, err := ow.builder.Build()
	if err != nil {
		return err
	}
	if len(packets) > 0 {
		ow.granulePos = granule
	}
	return ow.emit(page, granule, 0)
}

// WritePacket writes a packet on as many pages as it needs. Every page but
// the first carries PageFlagContinuation. Pages on which the packet does
// not end carry NoGranulePos; the final page carries granule.
func (ow *Writer) WritePacket(packet []byte, granule uint64) error {
	if ow.closed {
		return io.ErrClosedPipe
	}

	table := BuildSegmentTable(len(packet))
	var flags byte
	for len(table) > 0 {
		n := min(len(table), MaxSegments)
		bodyLen := 0
		for _, seg := range table[:n] {
			bodyLen += int(seg)
		}

		pageGranule := NoGranulePos
		if n == len(table) {
			pageGranule = granule
		}

		page := assemblePage(table[:n], packet[:bodyLen])
		if err := ow.emit(page, pageGranule, flags); err != nil {
			return err
		}
		table = table[n:]
		packet = packet[bodyLen:]
		flags = PageFlagContinuation
	}
	ow.granulePos = granule
	return nil
}

// Close writes an empty EOS page carrying the last granule position and
// marks the stream as closed. The writer should not be used after Close.
func (ow *Writer) Close() error {
	if ow.closed {
		return nil
	}
	page := EmptyPage()
	if err := ow.emit(page, ow.granulePos, PageFlagEOS); err != nil {
		return err
	}
	ow.closed = true
	return nil
}

// emit stamps the header fields in one edit and writes the page.
func (ow *Writer) emit(page MutPage, granule uint64, flags byte) error {
	page.Edit(func(e *PageEditor) error {
		e.SetSerial(ow.serial)
		e.SetSequence(ow.pageSeq)
		e.SetGranulePos(granule)
		e.SetFlags(flags)
		e.SetBOS(ow.pageSeq == 0)
		return nil
	})

	if _, err := ow.w.Write(page.Bytes()); err != nil {
		return err
	}
	ow.pageSeq++
	return nil
}

// Serial returns the bitstream serial number.
func (ow *Writer) Serial() uint32 {
	return ow.serial
}

// GranulePos returns the granule position of the last completed packet.
func (ow *Writer) GranulePos() uint64 {
	return ow.granulePos
}

// PageCount returns the number of pages written so far.
func (ow *Writer) PageCount() uint32 {
	return ow.pageSeq
}
