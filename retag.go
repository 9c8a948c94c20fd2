package oggtag

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thesyncim/oggtag/container/ogg"
	"github.com/thesyncim/oggtag/vorbis"
)

// RetagOptions configures RetagWithOptions.
type RetagOptions struct {
	// Logger receives debug traces. Nil discards them.
	Logger logrus.FieldLogger
}

// EncodeTags returns a comment header packet holding vendor and tags.
func EncodeTags(vendor string, tags []Tag) []byte {
	return vorbis.BuildCommentPacket(vorbis.Comments{Vendor: vendor, Tags: tags})
}

// Retag returns a copy of buf in which the Vorbis comment header is
// replaced by one encoding comments.
//
// The page holding the comment header is rebuilt from its packets with the
// new header substituted, and its flags, granule position, serial and
// sequence number are copied over. All other pages are unchanged. The
// header must start and end on one page, and the rebuilt page must fit in
// 255 segments (ogg.ErrTooManySegments otherwise). Comments failing
// vorbis.Comments.Validate are rejected before buf is read.
func Retag(buf []byte, comments vorbis.Comments) ([]byte, error) {
	return RetagWithOptions(buf, comments, RetagOptions{})
}

// RetagWithOptions is Retag with options.
func RetagWithOptions(buf []byte, comments vorbis.Comments, opts RetagOptions) ([]byte, error) {
	log := loggerOrDiscard(opts.Logger)

	if err := comments.Validate(); err != nil {
		return nil, errors.Wrap(err, "retag: tags")
	}

	track, err := ogg.ParseTrack(buf)
	if err != nil {
		return nil, errors.Wrap(err, "retag: validate track")
	}

	pageIndex, err := findCommentPage(track)
	if err != nil {
		return nil, err
	}

	// Locate the page and its byte range.
	pages := track.Pages()
	var (
		page  ogg.Page
		start int
	)
	for i := 0; i <= pageIndex; i++ {
		start = pages.Offset()
		page, _ = pages.Next()
	}

	rebuilt, err := rebuildCommentPage(page, EncodeTags(comments.Vendor, comments.Tags))
	if err != nil {
		return nil, errors.Wrapf(err, "retag: rebuild page %d", pageIndex)
	}

	end := start + page.Len()
	out := make([]byte, 0, len(buf)-page.Len()+rebuilt.Len())
	out = append(out, buf[:start]...)
	out = append(out, rebuilt.Bytes()...)
	out = append(out, buf[end:]...)

	log.WithFields(logrus.Fields{
		"page":     pageIndex,
		"offset":   start,
		"old_len":  page.Len(),
		"new_len":  rebuilt.Len(),
		"segments": rebuilt.SegmentCount(),
		"tags":     len(comments.Tags),
	}).Debug("rebuilt comment page")
	return out, nil
}

// findCommentPage returns the index of the page on which the first comment
// header starts and ends.
func findCommentPage(track ogg.Track) (int, error) {
	packets := track.Packets()
	for pkt, ok := packets.Next(); ok; pkt, ok = packets.Next() {
		if len(pkt.Data) == 0 || !isHeader(pkt.Data) {
			continue
		}
		p, err := vorbis.Parse(pkt.Data)
		if err != nil || p.Type() != vorbis.PacketComment {
			continue
		}
		if pkt.Spanned {
			return 0, errors.WithStack(ErrCommentSpansPages)
		}
		return pkt.PageIndex, nil
	}
	return 0, errors.WithStack(ErrNoComments)
}

// rebuildCommentPage lays the packets of page out again with the first
// complete comment header replaced by comment.
func rebuildCommentPage(page ogg.Page, comment []byte) (ogg.MutPage, error) {
	packets := page.Packets().All()
	last := len(packets) - 1
	replaced := false

	b := ogg.NewPageBuilder()
	for i, data := range packets {
		switch {
		case i == last && page.EndsOpen():
			if err := b.AddOpenFragment(data); err != nil {
				return ogg.MutPage{}, err
			}
		case !replaced && !(i == 0 && page.Continued()) && isComment(data):
			b.AddPacket(comment)
			replaced = true
		default:
			b.AddPacket(data)
		}
	}

	rebuilt, err := b.Build()
	if err != nil {
		return ogg.MutPage{}, err
	}
	rebuilt.Edit(func(e *ogg.PageEditor) error {
		e.SetFlags(page.Flags())
		e.SetGranulePos(page.GranulePos())
		e.SetSerial(page.Serial())
		e.SetSequence(page.Sequence())
		return nil
	})
	return rebuilt, nil
}

func isComment(data []byte) bool {
	p, err := vorbis.Parse(data)
	return err == nil && p.Type() == vorbis.PacketComment
}
