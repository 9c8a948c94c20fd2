package oggtag

import "github.com/pkg/errors"

// Errors returned by Probe and Retag. Errors from the container and codec
// layers are wrapped with context and stay matchable with errors.Is.
var (
	// ErrNoIdentification indicates the track holds no Vorbis
	// identification header.
	ErrNoIdentification = errors.New("oggtag: no identification header")

	// ErrNoComments indicates the track holds no Vorbis comment header.
	ErrNoComments = errors.New("oggtag: no comment header")

	// ErrCommentSpansPages indicates the comment header does not start and
	// end on the same page, so it cannot be replaced by rebuilding one page.
	ErrCommentSpansPages = errors.New("oggtag: comment header spans pages")
)
