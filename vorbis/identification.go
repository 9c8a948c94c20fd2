package vorbis

import "encoding/binary"

// identificationSize is the fixed length of an identification header.
const identificationSize = 30

// IdentificationHeader is the first header of a Vorbis stream.
type IdentificationHeader struct {
	// Version is the Vorbis version. Vorbis I streams use 0; it is not checked.
	Version uint32

	// Channels is the audio channel count (> 0).
	Channels uint8

	// SampleRate is the audio sample rate in Hz (> 0).
	SampleRate uint32

	// Bitrate hints in bits per second. Zero means unset.
	BitrateMaximum uint32
	BitrateNominal uint32
	BitrateMinimum uint32

	// Blocksize0 and Blocksize1 are the base-2 exponents of the short and
	// long block sizes. Blocksize0 <= Blocksize1.
	Blocksize0 uint8
	Blocksize1 uint8
}

// BlockSizes returns the short and long block sizes in samples.
func (h IdentificationHeader) BlockSizes() (short, long int) {
	return 1 << h.Blocksize0, 1 << h.Blocksize1
}

// parseIdentification reads the fixed layout:
//
//	Byte 0:      Packet type (1)
//	Bytes 1-6:   "vorbis"
//	Bytes 7-10:  Version
//	Byte 11:     Channels
//	Bytes 12-15: Sample rate
//	Bytes 16-19: Bitrate maximum
//	Bytes 20-23: Bitrate nominal
//	Bytes 24-27: Bitrate minimum
//	Byte 28:     Blocksize exponents (low nibble 0, high nibble 1)
//	Byte 29:     Framing flag (bit 0)
func parseIdentification(buf []byte) (IdentificationHeader, error) {
	if len(buf) < identificationSize {
		return IdentificationHeader{}, ErrBadIdentificationHeaderLength
	}

	h := IdentificationHeader{
		Version:        binary.LittleEndian.Uint32(buf[7:11]),
		Channels:       buf[11],
		SampleRate:     binary.LittleEndian.Uint32(buf[12:16]),
		BitrateMaximum: binary.LittleEndian.Uint32(buf[16:20]),
		BitrateNominal: binary.LittleEndian.Uint32(buf[20:24]),
		BitrateMinimum: binary.LittleEndian.Uint32(buf[24:28]),
		Blocksize0:     buf[28] & 0x0F,
		Blocksize1:     buf[28] >> 4,
	}
	if h.Channels == 0 || h.SampleRate == 0 {
		return IdentificationHeader{}, ErrBadIdentificationHeader
	}
	if h.Blocksize0 > h.Blocksize1 || buf[29]&1 != 1 {
		return IdentificationHeader{}, ErrBadIdentificationHeader
	}
	return h, nil
}
