// Package oggtag reads and rewrites the metadata of Ogg Vorbis files held
// in memory, without decoding or re-encoding audio.
//
// Probe validates a whole file and reports its stream format, duration and
// tags. Retag replaces the comment header and returns a new file in which
// every other page is byte-for-byte unchanged:
//
//	info, err := oggtag.Probe(data)
//	if err != nil {
//		return err
//	}
//	out, err := oggtag.Retag(data, vorbis.Comments{
//		Vendor: info.Vendor,
//		Tags:   append(info.Tags, oggtag.Tag{Key: "GENRE", Value: "Ambient"}),
//	})
//
// The lower layers are in container/ogg (pages, tracks, builder, checksum
// editing) and vorbis (header packets).
//
// # Duration
//
// The duration in milliseconds is floor(1000 * granule / sample rate),
// where granule is the largest granule position carried by any page.
package oggtag
