package ogg

// Track is a validated view over a buffer holding back-to-back pages.
// Every byte belongs to exactly one valid page; there is no trailing data.
type Track struct {
	b []byte
}

// ParseTrack validates data page by page from offset 0 until the buffer is
// exhausted. The first failing page aborts validation and is reported as a
// *PageError wrapping the page-level error. An empty buffer is a valid,
// empty track.
func ParseTrack(data []byte) (Track, error) {
	if err := validateTrack(data); err != nil {
		return Track{}, err
	}
	return Track{b: data}, nil
}

func validateTrack(data []byte) error {
	offset := 0
	for index := 0; offset < len(data); index++ {
		page, err := ParsePage(data[offset:])
		if err != nil {
			return &PageError{Index: index, Offset: offset, Err: err}
		}
		offset += page.Len()
	}
	return nil
}

// Bytes returns the track bytes.
func (t Track) Bytes() []byte {
	return t.b
}

// Len returns the track length in bytes.
func (t Track) Len() int {
	return len(t.b)
}

// Pages returns a forward iterator over the pages of the track.
func (t Track) Pages() *PageIter {
	return &PageIter{data: t.b}
}

// Packets returns an iterator over the logical packets of the track,
// joining packets that span pages.
func (t Track) Packets() *TrackPacketIter {
	return &TrackPacketIter{pages: t.Pages()}
}

// PageCount returns the number of pages in the track.
func (t Track) PageCount() int {
	n := 0
	for it := t.Pages(); ; n++ {
		if _, ok := it.Next(); !ok {
			return n
		}
	}
}

// MaxGranulePos returns the largest granule position carried by any page,
// ignoring pages marked NoGranulePos. It returns 0 for a track with no
// positioned pages.
func (t Track) MaxGranulePos() uint64 {
	var maxPos uint64
	it := t.Pages()
	for page, ok := it.Next(); ok; page, ok = it.Next() {
		g := page.GranulePos()
		if g != NoGranulePos && g > maxPos {
			maxPos = g
		}
	}
	return maxPos
}

// PageIter yields the pages of a validated track in order.
type PageIter struct {
	data   []byte
	offset int
}

// Next returns the next page.
func (it *PageIter) Next() (Page, bool) {
	if it.offset >= len(it.data) {
		return Page{}, false
	}
	n, err := measurePage(it.data[it.offset:])
	if err != nil {
		panic("ogg: validated track no longer parses: " + err.Error())
	}
	page := trustedPage(it.data[it.offset : it.offset+n : it.offset+n])
	it.offset += n
	return page, true
}

// Offset returns the byte offset of the next page.
func (it *PageIter) Offset() int {
	return it.offset
}

// MutTrack is a mutable view over a validated track. Pages obtained from
// its iterator may be edited in place; page lengths never change, so page
// boundaries stay where validation found them.
type MutTrack struct {
	b []byte
}

// ParseMutTrack validates data like ParseTrack and returns a mutable view.
func ParseMutTrack(data []byte) (MutTrack, error) {
	if err := validateTrack(data); err != nil {
		return MutTrack{}, err
	}
	return MutTrack{b: data}, nil
}

// Track returns a read-only view of the same bytes.
func (t MutTrack) Track() Track {
	return Track{b: t.b}
}

// Bytes returns the track bytes.
func (t MutTrack) Bytes() []byte {
	return t.b
}

// Pages returns a forward iterator over mutable pages.
func (t MutTrack) Pages() *MutPageIter {
	return &MutPageIter{it: PageIter{data: t.b}}
}

// MutPageIter yields mutable, non-overlapping pages of a track in order.
type MutPageIter struct {
	it PageIter
}

// Next returns the next page.
func (m *MutPageIter) Next() (MutPage, bool) {
	page, ok := m.it.Next()
	if !ok {
		return MutPage{}, false
	}
	return MutPage{Page: page}, true
}
