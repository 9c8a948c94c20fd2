package ogg

// PageBuilder accumulates packets and emits a single page holding all of
// them. Header fields other than the segment table and checksum start at
// zero; set them afterwards through a PageEditor.
type PageBuilder struct {
	lengths []int
	payload []byte
	open    bool // last entry continues on the next page
}

// NewPageBuilder returns an empty builder.
func NewPageBuilder() *PageBuilder {
	return &PageBuilder{}
}

// AddPacket appends a packet. The bytes are copied.
// It panics if called after AddOpenFragment.
func (b *PageBuilder) AddPacket(packet []byte) {
	if b.open {
		panic("ogg: AddPacket after AddOpenFragment")
	}
	b.lengths = append(b.lengths, len(packet))
	b.payload = append(b.payload, packet...)
}

// AddOpenFragment appends the leading part of a packet that continues on
// the next page. It is laced with 255s only, so its length must be a
// positive multiple of 255. No packet can follow it on the page.
func (b *PageBuilder) AddOpenFragment(fragment []byte) error {
	if b.open {
		panic("ogg: AddOpenFragment called twice")
	}
	if len(fragment) == 0 || len(fragment)%maxLacing != 0 {
		return ErrFragmentLength
	}
	b.lengths = append(b.lengths, len(fragment))
	b.payload = append(b.payload, fragment...)
	b.open = true
	return nil
}

// SegmentCount returns the number of lacing values the packets need so far.
func (b *PageBuilder) SegmentCount() int {
	n := 0
	for _, length := range b.lengths {
		n += lacingCount(length)
	}
	if b.open {
		n-- // no terminating entry
	}
	return n
}

// Fits reports whether a packet of the given length can still be added
// without exceeding MaxSegments.
func (b *PageBuilder) Fits(packetLen int) bool {
	return b.SegmentCount()+lacingCount(packetLen) <= MaxSegments
}

// Reset discards all packets.
func (b *PageBuilder) Reset() {
	b.lengths = b.lengths[:0]
	b.payload = b.payload[:0]
	b.open = false
}

// Build lays the packets out in one page with a valid checksum. Each packet
// ends with a lacing value below 255, except an open fragment, which leaves
// the page ending on 255. Returns ErrTooManySegments if the packets need
// more than 255 lacing values.
func (b *PageBuilder) Build() (MutPage, error) {
	numSegments := b.SegmentCount()
	if numSegments > MaxSegments {
		return MutPage{}, ErrTooManySegments
	}

	table := make([]byte, 0, numSegments)
	for _, length := range b.lengths {
		table = appendLacing(table, length)
	}
	if b.open {
		table = table[:len(table)-1]
	}
	return assemblePage(table, b.payload), nil
}

// assemblePage writes a page from a segment table and a body whose length
// is the sum of the table. Header fields other than the segment count start
// at zero and the checksum is valid.
func assemblePage(table, body []byte) MutPage {
	headerSize := pageHeaderSize + len(table)
	data := make([]byte, headerSize+len(body))

	// Write header. Flags, granule, serial and sequence stay zero.
	copy(data[0:4], oggMagic)
	data[segmentCountOffset] = byte(len(table))

	// Write segment table.
	copy(data[pageHeaderSize:], table)

	// Write payload.
	copy(data[headerSize:], body)

	writeChecksum(data)
	return MutPage{Page: trustedPage(data)}
}
