package vorbis

import "fmt"

// PacketType is the first byte of a Vorbis packet.
type PacketType uint8

// Packet types. Header packets have odd type bytes.
const (
	PacketAudio          PacketType = 0
	PacketIdentification PacketType = 1
	PacketComment        PacketType = 3
	PacketSetup          PacketType = 5
)

// headerMagic follows the type byte of every header packet.
const headerMagic = "vorbis"

func (t PacketType) String() string {
	switch t {
	case PacketAudio:
		return "audio"
	case PacketIdentification:
		return "identification"
	case PacketComment:
		return "comment"
	case PacketSetup:
		return "setup"
	default:
		return fmt.Sprintf("PacketType(%d)", uint8(t))
	}
}

func (t PacketType) known() bool {
	switch t {
	case PacketAudio, PacketIdentification, PacketComment, PacketSetup:
		return true
	}
	return false
}

// Packet is a checked, read-only view over one Vorbis packet. It aliases
// the buffer given to Parse.
//
// Identification and comment headers are fully parsed by Parse, so a
// Packet of those types always yields its header. Audio and setup packets
// are opaque.
type Packet struct {
	b []byte
}

// Parse classifies buf by its first byte and, for identification and
// comment packets, checks the signature and the full header layout.
func Parse(buf []byte) (Packet, error) {
	if len(buf) < 1 {
		return Packet{}, ErrBadCapture
	}
	t := PacketType(buf[0])
	if !t.known() {
		return Packet{}, ErrBadCapture
	}

	switch t {
	case PacketIdentification:
		if !hasMagic(buf) {
			return Packet{}, ErrBadCapture
		}
		if _, err := parseIdentification(buf); err != nil {
			return Packet{}, err
		}
	case PacketComment:
		if !hasMagic(buf) {
			return Packet{}, ErrBadCapture
		}
		if _, err := parseComments(buf); err != nil {
			return Packet{}, err
		}
	}
	return Packet{b: buf}, nil
}

func hasMagic(buf []byte) bool {
	return len(buf) >= 8 && string(buf[1:7]) == headerMagic
}

// Type returns the packet type.
func (p Packet) Type() PacketType {
	return PacketType(p.b[0])
}

// Bytes returns the packet bytes.
func (p Packet) Bytes() []byte {
	return p.b
}

// Identification returns the identification header if p is one.
func (p Packet) Identification() (IdentificationHeader, bool) {
	if p.Type() != PacketIdentification {
		return IdentificationHeader{}, false
	}
	h, err := parseIdentification(p.b)
	if err != nil {
		panic("vorbis: checked identification header no longer parses: " + err.Error())
	}
	return h, true
}

// Comments returns the comment header if p is one.
func (p Packet) Comments() (Comments, bool) {
	if p.Type() != PacketComment {
		return Comments{}, false
	}
	c, err := parseComments(p.b)
	if err != nil {
		panic("vorbis: checked comment header no longer parses: " + err.Error())
	}
	return c, true
}
