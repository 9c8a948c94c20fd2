package oggtag

import (
	"math"
	"math/bits"

	"github.com/OneOfOne/xxhash"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thesyncim/oggtag/container/ogg"
	"github.com/thesyncim/oggtag/internal/logging"
	"github.com/thesyncim/oggtag/vorbis"
)

// Tag is one user comment.
type Tag = vorbis.Tag

// Info describes a probed Ogg Vorbis file.
type Info struct {
	SampleRate     uint32 `json:"sample_rate"`
	Channels       uint8  `json:"channels"`
	NominalBitrate uint32 `json:"nominal_bitrate"`
	DurationMillis uint32 `json:"duration_ms"`
	Vendor         string `json:"vendor"`
	Tags           []Tag  `json:"tags"`

	// Serial is the serial number of the first page.
	Serial uint32 `json:"serial"`

	// PageCount is the number of pages in the file.
	PageCount int `json:"pages"`

	// Fingerprint is an xxhash64 digest of the audio packets in stream
	// order. Header packets are excluded, so retagging keeps it unchanged.
	Fingerprint uint64 `json:"fingerprint"`
}

// ProbeOptions configures ProbeWithOptions.
type ProbeOptions struct {
	// Logger receives debug traces. Nil discards them.
	Logger logrus.FieldLogger
}

// Probe validates buf as an Ogg track and extracts the Vorbis stream
// format, duration and tags. Any page failing validation fails the probe.
func Probe(buf []byte) (*Info, error) {
	return ProbeWithOptions(buf, ProbeOptions{})
}

// ProbeWithOptions is Probe with options.
func ProbeWithOptions(buf []byte, opts ProbeOptions) (*Info, error) {
	log := loggerOrDiscard(opts.Logger)

	track, err := ogg.ParseTrack(buf)
	if err != nil {
		return nil, errors.Wrap(err, "probe: validate track")
	}

	var (
		id          vorbis.IdentificationHeader
		comments    vorbis.Comments
		haveID      bool
		haveComment bool
		audio       int
	)
	digest := xxhash.New64()

	packets := track.Packets()
	for pkt, ok := packets.Next(); ok; pkt, ok = packets.Next() {
		if len(pkt.Data) == 0 {
			continue
		}
		if !isHeader(pkt.Data) {
			if haveID {
				digest.Write(pkt.Data)
				audio++
			}
			continue
		}

		p, err := vorbis.Parse(pkt.Data)
		if err != nil {
			log.WithFields(logrus.Fields{
				"page":  pkt.PageIndex,
				"error": err,
			}).Debug("skipping malformed header packet")
			continue
		}
		if h, ok := p.Identification(); ok && !haveID {
			id, haveID = h, true
		}
		if c, ok := p.Comments(); ok && !haveComment {
			comments, haveComment = c, true
		}
	}

	if !haveID {
		return nil, errors.WithStack(ErrNoIdentification)
	}
	if !haveComment {
		return nil, errors.WithStack(ErrNoComments)
	}

	first, _ := track.Pages().Next()
	info := &Info{
		SampleRate:     id.SampleRate,
		Channels:       id.Channels,
		NominalBitrate: id.BitrateNominal,
		DurationMillis: Duration(track.MaxGranulePos(), id.SampleRate),
		Vendor:         comments.Vendor,
		Tags:           comments.Tags,
		Serial:         first.Serial(),
		PageCount:      track.PageCount(),
		Fingerprint:    digest.Sum64(),
	}

	log.WithFields(logrus.Fields{
		"pages":         info.PageCount,
		"audio_packets": audio,
		"sample_rate":   info.SampleRate,
		"duration_ms":   info.DurationMillis,
		"tags":          len(info.Tags),
	}).Debug("probed track")
	return info, nil
}

// isHeader reports whether a packet is a Vorbis header. Header packets
// have bit 0 of the first byte set; audio packets have it clear.
func isHeader(pkt []byte) bool {
	return pkt[0]&1 == 1
}

// Duration converts a granule position to milliseconds:
// floor(1000 * granule / sampleRate), saturating at math.MaxUint32.
// A zero sample rate yields 0.
func Duration(granule uint64, sampleRate uint32) uint32 {
	if sampleRate == 0 {
		return 0
	}
	hi, lo := bits.Mul64(granule, 1000)
	if hi >= uint64(sampleRate) {
		return math.MaxUint32
	}
	ms, _ := bits.Div64(hi, lo, uint64(sampleRate))
	if ms > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ms)
}

func loggerOrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	return logging.Discard()
}
