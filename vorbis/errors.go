package vorbis

import "errors"

// Packet check errors.
var (
	// ErrBadCapture indicates the packet is empty, has an unknown type byte,
	// or is a header packet without the "vorbis" signature.
	ErrBadCapture = errors.New("vorbis: bad capture pattern")

	// ErrBadIdentificationHeader indicates an identification header with
	// zero channels, zero sample rate, blocksize_0 > blocksize_1, or an
	// unset framing flag.
	ErrBadIdentificationHeader = errors.New("vorbis: bad identification header")

	// ErrBadIdentificationHeaderLength indicates an identification header
	// shorter than 30 bytes.
	ErrBadIdentificationHeaderLength = errors.New("vorbis: identification header too short")

	// ErrInvalid matches every *InvalidError.
	ErrInvalid = errors.New("vorbis: invalid packet")

	// ErrNotFound is returned by the search helpers when no page holds a
	// packet of the requested kind.
	ErrNotFound = errors.New("vorbis: header packet not found")
)

// Comment header failure reasons.
const (
	reasonBadUTF8   = "invalid utf8 in comment header"
	reasonTruncated = "truncated comment header"
	reasonNoEquals  = "invalid comment"
	reasonFraming   = "framing bit unset"

	reasonVendorUTF8 = "invalid utf8 in vendor"
	reasonTagUTF8    = "invalid utf8 in comment"
	reasonKeyEquals  = "comment key contains '='"
)

// InvalidError describes why a comment header was rejected.
// errors.Is(err, ErrInvalid) reports true for any InvalidError.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string {
	return "vorbis: " + e.Reason
}

// Is makes InvalidError match ErrInvalid.
func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(reason string) error {
	return &InvalidError{Reason: reason}
}
