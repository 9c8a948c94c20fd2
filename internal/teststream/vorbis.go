// Package teststream synthesizes Vorbis-shaped Ogg streams for tests.
//
// The streams carry real identification and comment headers and opaque
// setup and audio packets, laid out the way libvorbis lays out a file:
// the identification header alone on the BOS page, the comment and setup
// headers on the next page, then audio pages with increasing granule
// positions and an empty EOS page.
package teststream

import (
	"bytes"
	"encoding/binary"
	"math/rand"

	"github.com/thesyncim/oggtag/container/ogg"
	"github.com/thesyncim/oggtag/vorbis"
)

// Default stream parameters.
const (
	DefaultSerial         = 0x0BADF00D
	DefaultSampleRate     = 44100
	DefaultChannels       = 2
	DefaultNominalBitrate = 112000
	DefaultVendor         = "Xiph.Org libVorbis I 20020713"
	DefaultAudioPages     = 8
	DefaultPacketsPerPage = 4
	DefaultPacketSamples  = 1024
)

// DefaultTags is the tag list of the default stream.
var DefaultTags = []vorbis.Tag{
	{Key: "TITLE", Value: "Hydrate - Kenny Beltrey"},
	{Key: "ARTIST", Value: "Kenny Beltrey"},
	{Key: "ALBUM", Value: "Favorite Things"},
	{Key: "DATE", Value: "2002"},
	{Key: "COMMENT", Value: "http://www.kahvi.org"},
	{Key: "TRACKNUMBER", Value: "2"},
}

// Stream describes a synthetic stream. Zero fields take the defaults
// above, except Tags, which is used as given when non-nil.
type Stream struct {
	Serial         uint32
	SampleRate     uint32
	Channels       uint8
	NominalBitrate uint32
	Vendor         string
	Tags           []vorbis.Tag

	AudioPages     int
	PacketsPerPage int
	PacketSamples  uint64

	// SplitHeaders writes the comment header with ogg.Writer.WritePacket
	// on pages of its own, so a large comment header spans pages.
	SplitHeaders bool

	// Seed selects the audio payload bytes.
	Seed int64
}

// Default returns the default stream description.
func Default() Stream {
	return Stream{}.withDefaults()
}

func (s Stream) withDefaults() Stream {
	if s.Serial == 0 {
		s.Serial = DefaultSerial
	}
	if s.SampleRate == 0 {
		s.SampleRate = DefaultSampleRate
	}
	if s.Channels == 0 {
		s.Channels = DefaultChannels
	}
	if s.NominalBitrate == 0 {
		s.NominalBitrate = DefaultNominalBitrate
	}
	if s.Vendor == "" {
		s.Vendor = DefaultVendor
	}
	if s.Tags == nil {
		s.Tags = append([]vorbis.Tag(nil), DefaultTags...)
	}
	if s.AudioPages == 0 {
		s.AudioPages = DefaultAudioPages
	}
	if s.PacketsPerPage == 0 {
		s.PacketsPerPage = DefaultPacketsPerPage
	}
	if s.PacketSamples == 0 {
		s.PacketSamples = DefaultPacketSamples
	}
	return s
}

// FinalGranule returns the granule position of the last audio page.
func (s Stream) FinalGranule() uint64 {
	s = s.withDefaults()
	return uint64(s.AudioPages*s.PacketsPerPage) * s.PacketSamples
}

// DurationMillis returns floor(1000 * FinalGranule / SampleRate).
func (s Stream) DurationMillis() uint32 {
	s = s.withDefaults()
	return uint32(s.FinalGranule() * 1000 / uint64(s.SampleRate))
}

// Bytes lays the stream out into Ogg pages.
func (s Stream) Bytes() []byte {
	s = s.withDefaults()
	var buf bytes.Buffer
	w := ogg.NewWriter(&buf, s.Serial)

	must(w.WritePage(0, IdentificationPacket(s.Channels, s.SampleRate, s.NominalBitrate)))
	comment := vorbis.BuildCommentPacket(vorbis.Comments{Vendor: s.Vendor, Tags: s.Tags})
	if s.SplitHeaders {
		must(w.WritePacket(comment, 0))
		must(w.WritePage(0, SetupPacket()))
	} else {
		must(w.WritePage(0, comment, SetupPacket()))
	}

	for _, page := range s.AudioPackets() {
		must(w.WritePage(page.Granule, page.Packets...))
	}
	must(w.Close())
	return buf.Bytes()
}

// AudioPage is the content of one synthetic audio page.
type AudioPage struct {
	Granule uint64
	Packets [][]byte
}

// AudioPackets returns the audio pages Bytes writes, in order.
func (s Stream) AudioPackets() []AudioPage {
	s = s.withDefaults()
	rng := rand.New(rand.NewSource(s.Seed))
	pages := make([]AudioPage, s.AudioPages)
	var granule uint64
	for i := range pages {
		for j := 0; j < s.PacketsPerPage; j++ {
			pkt := make([]byte, 40+rng.Intn(200))
			rng.Read(pkt)
			pkt[0] &^= 1 // audio packets have bit 0 clear
			pages[i].Packets = append(pages[i].Packets, pkt)
			granule += s.PacketSamples
		}
		pages[i].Granule = granule
	}
	return pages
}

// IdentificationPacket returns a valid identification header with block
// size exponents 8 and 11.
func IdentificationPacket(channels uint8, sampleRate, nominalBitrate uint32) []byte {
	b := make([]byte, 30)
	b[0] = byte(vorbis.PacketIdentification)
	copy(b[1:7], "vorbis")
	b[11] = channels
	binary.LittleEndian.PutUint32(b[12:16], sampleRate)
	binary.LittleEndian.PutUint32(b[20:24], nominalBitrate)
	b[28] = 0xb8
	b[29] = 0x01
	return b
}

// SetupPacket returns an opaque setup header.
func SetupPacket() []byte {
	b := []byte("\x05vorbis")
	for i := 0; i < 64; i++ {
		b = append(b, byte(i*7))
	}
	return b
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
