package vorbis

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"github.com/thesyncim/oggtag/internal/byteio"
)

// commentMagic starts every comment header.
const commentMagic = "\x03vorbis"

// Tag is one user comment, split at the first '='.
type Tag struct {
	Key   string
	Value string
}

// String returns the tag in KEY=value form.
func (t Tag) String() string {
	return t.Key + "=" + t.Value
}

// Comments is the content of a comment header. Tag order and duplicate
// keys are preserved.
type Comments struct {
	// Vendor identifies the encoder (e.g., "Xiph.Org libVorbis I 20020713").
	Vendor string

	// Tags are the user comments in stream order.
	Tags []Tag
}

// Get returns the value of the first tag whose key matches key, ignoring
// ASCII case.
func (c Comments) Get(key string) (string, bool) {
	for _, t := range c.Tags {
		if strings.EqualFold(t.Key, key) {
			return t.Value, true
		}
	}
	return "", false
}

// Values returns every value whose key matches key, ignoring ASCII case,
// in stream order.
func (c Comments) Values(key string) []string {
	var values []string
	for _, t := range c.Tags {
		if strings.EqualFold(t.Key, key) {
			values = append(values, t.Value)
		}
	}
	return values
}

// Map returns the first value of each key, keyed by the upper-cased key.
func (c Comments) Map() map[string]string {
	m := make(map[string]string, len(c.Tags))
	for _, t := range c.Tags {
		k := strings.ToUpper(t.Key)
		if _, ok := m[k]; !ok {
			m[k] = t.Value
		}
	}
	return m
}

// parseComments reads a comment header:
//
//	Bytes 0-6:   "\x03vorbis"
//	Next 4:      Vendor string length
//	Next N:      Vendor string (UTF-8)
//	Next 4:      User comment count
//	For each comment:
//	  4 bytes:   Comment length
//	  N bytes:   Comment string ("KEY=value", UTF-8)
//	Last byte:   Framing flag (bit 0)
func parseComments(buf []byte) (Comments, error) {
	r := byteio.NewReader(buf, binary.LittleEndian)
	magic, err := r.ReadBytes(len(commentMagic))
	if err != nil || string(magic) != commentMagic {
		panic("vorbis: parseComments called on a non-comment packet")
	}

	vendor, err := readString(r)
	if err != nil {
		return Comments{}, err
	}

	count, err := r.ReadU32()
	if err != nil {
		return Comments{}, invalid(reasonTruncated)
	}

	c := Comments{Vendor: vendor}
	for i := uint32(0); i < count; i++ {
		s, err := readString(r)
		if err != nil {
			return Comments{}, err
		}
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			return Comments{}, invalid(reasonNoEquals)
		}
		c.Tags = append(c.Tags, Tag{Key: key, Value: value})
	}

	framing, err := r.ReadU8()
	if err != nil {
		return Comments{}, invalid(reasonTruncated)
	}
	if framing&1 != 1 {
		return Comments{}, invalid(reasonFraming)
	}
	return c, nil
}

// readString reads a u32 length followed by that many UTF-8 bytes.
func readString(r *byteio.Reader) (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", invalid(reasonTruncated)
	}
	if uint64(n) > uint64(r.Remaining()) {
		return "", invalid(reasonTruncated)
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", invalid(reasonTruncated)
	}
	if !utf8.Valid(b) {
		return "", invalid(reasonBadUTF8)
	}
	return string(b), nil
}

// Validate checks that c encodes to a comment header that parses back
// to c: the vendor, keys and values must be valid UTF-8 and keys must not
// contain '='. The error matches ErrInvalid.
func (c Comments) Validate() error {
	if !utf8.ValidString(c.Vendor) {
		return invalid(reasonVendorUTF8)
	}
	for _, t := range c.Tags {
		if !utf8.ValidString(t.Key) || !utf8.ValidString(t.Value) {
			return invalid(reasonTagUTF8)
		}
		if strings.Contains(t.Key, "=") {
			return invalid(reasonKeyEquals)
		}
	}
	return nil
}

// BuildCommentPacket encodes c as a comment header packet. It does not
// check c; call Validate first when c comes from user input.
func BuildCommentPacket(c Comments) []byte {
	size := len(commentMagic) + 4 + len(c.Vendor) + 4 + 1
	for _, t := range c.Tags {
		size += 4 + len(t.Key) + 1 + len(t.Value)
	}

	data := make([]byte, 0, size)
	data = append(data, commentMagic...)

	// Write vendor string.
	data = binary.LittleEndian.AppendUint32(data, uint32(len(c.Vendor)))
	data = append(data, c.Vendor...)

	// Write comment count.
	data = binary.LittleEndian.AppendUint32(data, uint32(len(c.Tags)))

	// Write comments.
	for _, t := range c.Tags {
		data = binary.LittleEndian.AppendUint32(data, uint32(len(t.Key)+1+len(t.Value)))
		data = append(data, t.Key...)
		data = append(data, '=')
		data = append(data, t.Value...)
	}

	// Framing flag.
	return append(data, 0x01)
}
