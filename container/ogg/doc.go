// Package ogg implements validated, zero-copy views over Ogg pages and
// tracks as specified in RFC 3533 (The Ogg Encapsulation Format).
//
// Pages and tracks are never decoded into owned structs. ParsePage and
// ParseTrack check a byte slice once and return a view that aliases it; the
// accessors then read header fields straight from the bytes. Because a
// view can only be obtained from a successful check (or from the builder),
// holding a Page means holding bytes that form a valid page.
//
// The Ogg format uses pages as atomic units of data, where each page contains:
//   - A 27-byte header with magic signature "OggS"
//   - A segment table describing packet boundaries
//   - Payload data containing one or more packets
//   - CRC-32 checksum for data integrity verification
//
// # Page Structure
//
// An Ogg page has the following structure:
//
//	Bytes 0-3:   "OggS" capture pattern (magic signature)
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (continuation, BOS, EOS)
//	Bytes 6-13:  Granule position (codec-defined, little-endian)
//	Bytes 14-17: Bitstream serial number
//	Bytes 18-21: Page sequence number
//	Bytes 22-25: CRC checksum
//	Byte 26:     Number of segments
//	Bytes 27+:   Segment table (one byte per segment)
//	Remaining:   Page payload data
//
// # Segment Table
//
// Packets are split into segments of up to 255 bytes each. A segment value
// of 255 indicates the packet continues in the next segment. A value less
// than 255 marks the end of a packet, so a packet whose length is a
// multiple of 255 ends with an explicit 0.
//
// Example: A 600-byte packet uses segments [255, 255, 90] (255+255+90=600)
//
// A page whose last segment is 255 leaves its final packet open. Page.Packets
// yields that fragment as it stands; Track.Packets joins it with the start
// of the next page when that page carries PageFlagContinuation.
//
// # CRC Calculation
//
// Ogg uses CRC-32 with polynomial 0x04C11DB7 (NOT the IEEE polynomial used
// by hash/crc32). The CRC is computed over the entire page with the CRC
// field read as zero.
//
// # Editing
//
// MutPage allows the length-preserving header fields to change. Every
// change goes through a PageEditor, whose Commit rewrites the checksum:
//
//	page.Edit(func(e *ogg.PageEditor) error {
//		e.SetSerial(serial)
//		e.SetSequence(seq)
//		return nil
//	})
//
// PageBuilder creates new pages from packets, and Writer lays a packet
// stream out into numbered pages.
//
// # References
//
//   - RFC 3533: The Ogg Encapsulation Format Version 0
//   - Vorbis I specification, section A: Embedding Vorbis into an Ogg stream
package ogg
