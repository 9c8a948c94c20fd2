package vorbis

import "github.com/thesyncim/oggtag/container/ogg"

// FindIdentification returns the first packet, in page order, that parses
// as an identification header. Packets are reconstructed page by page, so
// a header split across pages is not found.
func FindIdentification(pages *ogg.PageIter) (Packet, error) {
	return find(pages, PacketIdentification)
}

// FindComments returns the first packet, in page order, that parses as a
// comment header. Packets are reconstructed page by page, so a header
// split across pages is not found.
func FindComments(pages *ogg.PageIter) (Packet, error) {
	return find(pages, PacketComment)
}

func find(pages *ogg.PageIter, want PacketType) (Packet, error) {
	for page, ok := pages.Next(); ok; page, ok = pages.Next() {
		packets := page.Packets()
		for data, ok := packets.Next(); ok; data, ok = packets.Next() {
			p, err := Parse(data)
			if err != nil {
				continue
			}
			if p.Type() == want {
				return p, nil
			}
		}
	}
	return Packet{}, ErrNotFound
}
