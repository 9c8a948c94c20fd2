package ogg

import (
	"encoding/binary"

	"github.com/thesyncim/oggtag/internal/byteio"
)

// Page header flag constants.
const (
	// PageFlagContinuation indicates this page contains data from a packet
	// that began on a previous page.
	PageFlagContinuation = 0x01

	// PageFlagBOS (Beginning of Stream) indicates this is the first page
	// of a logical bitstream.
	PageFlagBOS = 0x02

	// PageFlagEOS (End of Stream) indicates this is the last page of a
	// logical bitstream.
	PageFlagEOS = 0x04
)

// Page layout constants.
const (
	// pageHeaderSize is the fixed portion of the page header (before segment table).
	pageHeaderSize = 27

	// oggMagic is the capture pattern that identifies an Ogg page.
	oggMagic = "OggS"

	versionOffset      = 4
	flagsOffset        = 5
	granuleOffset      = 6
	serialOffset       = 14
	sequenceOffset     = 18
	checksumOffset     = 22
	segmentCountOffset = 26

	// MaxSegments is the largest segment table a page can carry.
	MaxSegments = 255

	// maxLacing is the lacing value that continues a packet.
	maxLacing = 255

	// NoGranulePos is the granule position of a page on which no packet ends.
	NoGranulePos = ^uint64(0)
)

// Page is a validated, read-only view over the bytes of one Ogg page.
//
// A Page aliases the buffer it was parsed from and is only obtained through
// ParsePage or from an iterator over a validated Track, so its bytes always
// form a complete page with a matching checksum. The zero Page is not valid.
type Page struct {
	b []byte
}

// ParsePage validates the page at the start of data and returns a view over
// exactly its bytes. data may extend past the page; use Len to advance.
//
// Checks run in order and stop at the first failure: ErrTooShort,
// ErrBadCapture, ErrBadVersion, ErrTooShort (segment table or body missing),
// ErrBadCRC.
func ParsePage(data []byte) (Page, error) {
	n, err := measurePage(data)
	if err != nil {
		return Page{}, err
	}
	b := data[:n:n]

	// Verify CRC.
	stored := binary.LittleEndian.Uint32(b[checksumOffset : checksumOffset+4])
	if pageCRC(b) != stored {
		return Page{}, ErrBadCRC
	}
	return Page{b: b}, nil
}

// measurePage checks the structural fields of the page at the start of data
// and returns its total length. The checksum is not verified.
func measurePage(data []byte) (int, error) {
	// Check minimum size for header.
	if len(data) < pageHeaderSize {
		return 0, ErrTooShort
	}

	// Verify magic signature.
	if string(data[0:4]) != oggMagic {
		return 0, ErrBadCapture
	}

	r := byteio.NewReader(data, binary.LittleEndian)
	if err := r.Skip(4); err != nil {
		return 0, ErrTooShort
	}
	version, err := r.ReadU8()
	if err != nil {
		return 0, ErrTooShort
	}
	if version != 0 {
		return 0, ErrBadVersion
	}

	// flags(1) + granule(8) + serial(4) + sequence(4) + checksum(4)
	if err := r.Skip(1 + 8 + 4 + 4 + 4); err != nil {
		return 0, ErrTooShort
	}

	numSegments, err := r.ReadU8()
	if err != nil {
		return 0, ErrTooShort
	}
	table, err := r.ReadBytes(int(numSegments))
	if err != nil {
		return 0, ErrTooShort
	}

	// Calculate payload size from segment table.
	bodyLen := 0
	for _, seg := range table {
		bodyLen += int(seg)
	}
	if err := r.Skip(bodyLen); err != nil {
		return 0, ErrTooShort
	}
	return r.Offset(), nil
}

// trustedPage wraps bytes already known to hold exactly one valid page.
// Callers are the builder, the editor and iterators over validated tracks.
func trustedPage(b []byte) Page {
	return Page{b: b}
}

// Len returns the page length in bytes: header, segment table and body.
func (p Page) Len() int {
	return len(p.b)
}

// Bytes returns the page bytes. The slice aliases the parsed buffer.
func (p Page) Bytes() []byte {
	return p.b
}

// Header returns the fixed header and segment table.
func (p Page) Header() []byte {
	return p.b[:pageHeaderSize+p.SegmentCount()]
}

// Body returns the page payload.
func (p Page) Body() []byte {
	return p.b[pageHeaderSize+p.SegmentCount():]
}

// Version returns the stream structure version. It is always 0.
func (p Page) Version() byte {
	return p.b[versionOffset]
}

// Flags returns the header type flags byte.
func (p Page) Flags() byte {
	return p.b[flagsOffset]
}

// Continued reports whether the page continues a packet from the previous page.
func (p Page) Continued() bool {
	return p.b[flagsOffset]&PageFlagContinuation != 0
}

// BOS reports whether this is the first page of a logical bitstream.
func (p Page) BOS() bool {
	return p.b[flagsOffset]&PageFlagBOS != 0
}

// EOS reports whether this is the last page of a logical bitstream.
func (p Page) EOS() bool {
	return p.b[flagsOffset]&PageFlagEOS != 0
}

// GranulePos returns the codec-defined position at the end of the page.
// For Vorbis this is the PCM sample count.
func (p Page) GranulePos() uint64 {
	return binary.LittleEndian.Uint64(p.b[granuleOffset : granuleOffset+8])
}

// Serial returns the bitstream serial number.
func (p Page) Serial() uint32 {
	return binary.LittleEndian.Uint32(p.b[serialOffset : serialOffset+4])
}

// Sequence returns the page sequence number within the bitstream.
func (p Page) Sequence() uint32 {
	return binary.LittleEndian.Uint32(p.b[sequenceOffset : sequenceOffset+4])
}

// Checksum returns the stored CRC field.
func (p Page) Checksum() uint32 {
	return binary.LittleEndian.Uint32(p.b[checksumOffset : checksumOffset+4])
}

// Verify recomputes the checksum and reports whether it matches the stored one.
func (p Page) Verify() bool {
	return pageCRC(p.b) == p.Checksum()
}

// SegmentCount returns the number of lacing values.
func (p Page) SegmentCount() int {
	return int(p.b[segmentCountOffset])
}

// Segments returns the segment table.
func (p Page) Segments() []byte {
	return p.b[pageHeaderSize : pageHeaderSize+p.SegmentCount()]
}

// EndsOpen reports whether the last lacing value is 255, meaning the final
// packet on this page continues on the next one.
func (p Page) EndsOpen() bool {
	n := p.SegmentCount()
	return n > 0 && p.b[pageHeaderSize+n-1] == maxLacing
}

// Packets returns an iterator over the packets laced into this page.
func (p Page) Packets() *PacketIter {
	return &PacketIter{
		page:  p.b,
		count: p.SegmentCount(),
		body:  pageHeaderSize + p.SegmentCount(),
	}
}

// Clone returns an owned, mutable copy of the page.
func (p Page) Clone() MutPage {
	b := make([]byte, len(p.b))
	copy(b, p.b)
	return MutPage{Page: trustedPage(b)}
}

// MutPage is an exclusive, mutable view over one valid page. Only header
// fields that do not change the page length can be modified, and only
// through a PageEditor, which rewrites the checksum when committed.
type MutPage struct {
	Page
}

// ParseMutPage validates the page at the start of data like ParsePage and
// returns a mutable view. The caller must not use other views of the same
// bytes while the MutPage is in use.
func ParseMutPage(data []byte) (MutPage, error) {
	p, err := ParsePage(data)
	if err != nil {
		return MutPage{}, err
	}
	return MutPage{Page: p}, nil
}

// EmptyPage returns a valid page with no segments and all header fields zero.
func EmptyPage() MutPage {
	b := make([]byte, pageHeaderSize)
	copy(b, oggMagic)
	writeChecksum(b)
	return MutPage{Page: trustedPage(b)}
}

// SetGranulePos sets the granule position and updates the checksum.
func (p MutPage) SetGranulePos(granule uint64) {
	e := p.Begin()
	e.SetGranulePos(granule)
	e.Commit()
}

// SetSerial sets the serial number and updates the checksum.
func (p MutPage) SetSerial(serial uint32) {
	e := p.Begin()
	e.SetSerial(serial)
	e.Commit()
}

// SetSequence sets the page sequence number and updates the checksum.
func (p MutPage) SetSequence(seq uint32) {
	e := p.Begin()
	e.SetSequence(seq)
	e.Commit()
}

// SetContinued sets or clears the continuation flag and updates the checksum.
func (p MutPage) SetContinued(v bool) {
	e := p.Begin()
	e.SetContinued(v)
	e.Commit()
}

// SetBOS sets or clears the beginning-of-stream flag and updates the checksum.
func (p MutPage) SetBOS(v bool) {
	e := p.Begin()
	e.SetBOS(v)
	e.Commit()
}

// SetEOS sets or clears the end-of-stream flag and updates the checksum.
func (p MutPage) SetEOS(v bool) {
	e := p.Begin()
	e.SetEOS(v)
	e.Commit()
}

// BuildSegmentTable creates a segment table for a packet of the given length.
// Packets larger than 255 bytes span multiple segments (each 255 bytes except
// the final segment which contains the remainder). A length that is an exact
// multiple of 255 ends with an explicit zero-length segment.
func BuildSegmentTable(packetLen int) []byte {
	return appendLacing(nil, packetLen)
}

func appendLacing(table []byte, packetLen int) []byte {
	for packetLen >= maxLacing {
		table = append(table, maxLacing)
		packetLen -= maxLacing
	}
	return append(table, byte(packetLen))
}

// lacingCount returns the number of segment entries a packet needs.
func lacingCount(packetLen int) int {
	return packetLen/maxLacing + 1
}
