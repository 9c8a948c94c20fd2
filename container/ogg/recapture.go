package ogg

// Recapture is a 4-byte rolling window that recognizes the "OggS" capture
// pattern. Feed it bytes one at a time to find where the next page may
// start after corrupt data.
type Recapture struct {
	window [4]byte
}

// PushByte shifts b into the window, dropping the oldest byte.
func (r *Recapture) PushByte(b byte) {
	r.window[0], r.window[1], r.window[2], r.window[3] = r.window[1], r.window[2], r.window[3], b
}

// Captured reports whether the last four bytes pushed are "OggS".
func (r *Recapture) Captured() bool {
	return string(r.window[:]) == oggMagic
}

// Resync returns the first offset at or after from where a complete, valid
// page starts. Capture patterns that do not begin a valid page (stray
// "OggS" bytes inside a payload, truncated or corrupt pages) are skipped.
func Resync(data []byte, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	var rc Recapture
	for i := from; i < len(data); i++ {
		rc.PushByte(data[i])
		if !rc.Captured() {
			continue
		}
		start := i - 3
		if _, err := ParsePage(data[start:]); err == nil {
			return start, true
		}
	}
	return 0, false
}

// ParseTrackLenient recovers the valid pages of a damaged buffer. Starting
// at offset 0 it keeps each page that validates and, on failure, resumes at
// the next offset Resync finds. The recovered pages are copied into a new
// buffer, so the returned track is owned by the caller. skipped counts the
// bytes that were dropped.
//
// ParseTrack remains the strict default; this is for callers that prefer
// partial results over none.
func ParseTrackLenient(data []byte) (track Track, skipped int) {
	out := make([]byte, 0, len(data))
	offset := 0
	for offset < len(data) {
		page, err := ParsePage(data[offset:])
		if err == nil {
			out = append(out, page.Bytes()...)
			offset += page.Len()
			continue
		}

		next, ok := Resync(data, offset+1)
		if !ok {
			skipped += len(data) - offset
			break
		}
		skipped += next - offset
		offset = next
	}
	return Track{b: out}, skipped
}
