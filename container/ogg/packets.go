package ogg

// PacketIter walks the segment table of one page and yields packet slices
// of its body, in page order. Reconstruction is page-local: a packet whose
// last lacing value on this page is 255 is yielded as it stands, without
// the continuation carried by the next page. Use Track.Packets to join
// packets across pages.
type PacketIter struct {
	page  []byte
	seg   int // next segment table index
	count int // segment table length
	body  int // page offset of the next packet
}

// Next returns the next packet. The slice aliases the page.
func (it *PacketIter) Next() ([]byte, bool) {
	pkt, _, ok := it.next()
	return pkt, ok
}

// next also reports whether the packet was terminated by a lacing value
// below 255 on this page.
func (it *PacketIter) next() (pkt []byte, complete bool, ok bool) {
	if it.seg >= it.count {
		return nil, false, false
	}

	length := 0
	for it.seg < it.count {
		lacing := int(it.page[pageHeaderSize+it.seg])
		length += lacing
		it.seg++
		if lacing < maxLacing {
			complete = true
			break
		}
	}

	start := it.body
	it.body += length
	return it.page[start:it.body:it.body], complete, true
}

// All returns the remaining packets as a slice.
func (it *PacketIter) All() [][]byte {
	var packets [][]byte
	for pkt, ok := it.Next(); ok; pkt, ok = it.Next() {
		packets = append(packets, pkt)
	}
	return packets
}

// TrackPacket is a logical packet recovered from a track.
type TrackPacket struct {
	// Data is the packet payload. It aliases the track buffer unless the
	// packet spanned pages, in which case it is a fresh copy.
	Data []byte

	// PageIndex is the index of the page on which the packet completes.
	PageIndex int

	// GranulePos is the granule position of that page.
	GranulePos uint64

	// Spanned reports whether the packet was joined from several pages.
	Spanned bool
}

// TrackPacketIter yields the logical packets of a track, joining a packet
// left open at the end of one page with the leading fragment of the next
// page when that page carries the continuation flag.
//
// A leading fragment on a continued page with nothing pending is dropped,
// as is a pending packet when the following page is not a continuation or
// the track ends.
type TrackPacketIter struct {
	pages     *PageIter
	page      Page
	pageIndex int
	packets   *PacketIter
	first     bool

	pending    []byte
	hasPending bool
}

// Next returns the next complete packet.
func (it *TrackPacketIter) Next() (TrackPacket, bool) {
	for {
		if it.packets == nil {
			page, ok := it.pages.Next()
			if !ok {
				it.pending, it.hasPending = nil, false
				return TrackPacket{}, false
			}
			if it.page.b != nil {
				it.pageIndex++
			}
			it.page = page
			it.packets = page.Packets()
			it.first = true
			if !page.Continued() {
				it.pending, it.hasPending = nil, false
			}
		}

		frag, complete, ok := it.packets.next()
		if !ok {
			it.packets = nil
			continue
		}
		first := it.first
		it.first = false

		if first && it.page.Continued() {
			if !it.hasPending {
				// Orphan continuation: nothing to attach it to.
				continue
			}
			it.pending = append(it.pending, frag...)
			if !complete {
				continue
			}
			pkt := it.pending
			it.pending, it.hasPending = nil, false
			return it.emit(pkt, true), true
		}

		// A fresh packet starts here; anything still pending was cut off.
		it.pending, it.hasPending = nil, false
		if !complete {
			it.pending = append(make([]byte, 0, len(frag)), frag...)
			it.hasPending = true
			continue
		}
		return it.emit(frag, false), true
	}
}

func (it *TrackPacketIter) emit(data []byte, spanned bool) TrackPacket {
	return TrackPacket{
		Data:       data,
		PageIndex:  it.pageIndex,
		GranulePos: it.page.GranulePos(),
		Spanned:    spanned,
	}
}
