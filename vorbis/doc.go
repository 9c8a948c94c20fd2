// Package vorbis reads and writes the header packets of a Vorbis I stream
// without decoding audio.
//
// Parse checks a packet in place and returns a Packet view. The
// identification header carries the stream format; the comment header
// carries the vendor string and the user tags:
//
//	hdr, _ := vorbis.FindIdentification(track.Pages())
//	id, _ := hdr.Identification()
//	fmt.Println(id.SampleRate, id.Channels)
//
// BuildCommentPacket encodes a new comment header, which can then be laid
// out into a page with ogg.PageBuilder.
//
// # References
//
//   - Vorbis I specification, section 4.2: Header decode and decode setup
//   - Vorbis I specification, section 5: comment field and header specification
package vorbis
