package ogg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"
)

// buildPage builds a page from packets and stamps the given header fields.
func buildPage(t *testing.T, granule uint64, serial, seq uint32, flags byte, packets ...[]byte) MutPage {
	t.Helper()
	b := NewPageBuilder()
	for _, pkt := range packets {
		b.AddPacket(pkt)
	}
	page, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	page.Edit(func(e *PageEditor) error {
		e.SetGranulePos(granule)
		e.SetSerial(serial)
		e.SetSequence(seq)
		e.SetFlags(flags)
		return nil
	})
	return page
}

func filled(n int, v byte) []byte {
	return bytes.Repeat([]byte{v}, n)
}

// TestOggCRC verifies the Ogg CRC-32 implementation properties.
// The implementation uses polynomial 0x04C11DB7 (not IEEE).
func TestOggCRC(t *testing.T) {
	// Verify empty data returns 0.
	t.Run("empty", func(t *testing.T) {
		got := oggCRC([]byte{})
		if got != 0 {
			t.Errorf("oggCRC([]) = 0x%08x, want 0", got)
		}
	})

	// Verify update produces same result as full computation.
	t.Run("update consistency", func(t *testing.T) {
		data := []byte("hello world")
		full := oggCRC(data)
		partial := oggCRCUpdate(oggCRC(data[:5]), data[5:])
		if full != partial {
			t.Errorf("oggCRCUpdate inconsistent: full=0x%08x, partial=0x%08x", full, partial)
		}
	})

	// Verify CRC changes when data changes (detect corruption).
	t.Run("corruption detection", func(t *testing.T) {
		data := []byte("OggS test data for CRC")
		original := oggCRC(data)

		corrupted := make([]byte, len(data))
		copy(corrupted, data)
		corrupted[10] ^= 0x01 // Flip one bit

		if original == oggCRC(corrupted) {
			t.Errorf("CRC did not detect corruption")
		}
	})

	// Verify polynomial is NOT IEEE (would give different results).
	t.Run("non-IEEE polynomial", func(t *testing.T) {
		got := oggCRC([]byte("OggS"))
		expected := uint32(0x5fb0a94f)
		if got != expected {
			t.Errorf("oggCRC(OggS) = 0x%08x, want 0x%08x", got, expected)
		}
	})

	// The empty page checksum is a well-known constant.
	t.Run("empty page", func(t *testing.T) {
		page := EmptyPage()
		if got := page.Checksum(); got != 0x9EA1A511 {
			t.Errorf("EmptyPage checksum = 0x%08x, want 0x9ea1a511", got)
		}
		if _, err := ParsePage(page.Bytes()); err != nil {
			t.Errorf("EmptyPage does not validate: %v", err)
		}
	})

	// Hashing with the checksum field zeroed must not depend on its content.
	t.Run("checksum field ignored", func(t *testing.T) {
		page := buildPage(t, 7, 1, 2, 0, []byte("abc")).Bytes()
		want := ChecksumOf(page)
		binary.LittleEndian.PutUint32(page[checksumOffset:], 0xFFFFFFFF)
		if got := ChecksumOf(page); got != want {
			t.Errorf("ChecksumOf changed with checksum field: 0x%08x != 0x%08x", got, want)
		}

		zeroed := append([]byte(nil), page...)
		copy(zeroed[checksumOffset:checksumOffset+4], []byte{0, 0, 0, 0})
		if got := oggCRC(zeroed); got != want {
			t.Errorf("ChecksumOf = 0x%08x, oggCRC(zeroed) = 0x%08x", want, got)
		}
	})
}

// TestBuildSegmentTable tests segment table creation for various packet sizes.
func TestBuildSegmentTable(t *testing.T) {
	tests := []struct {
		name      string
		packetLen int
		expected  []byte
	}{
		{name: "zero length", packetLen: 0, expected: []byte{0}},
		{name: "1 byte", packetLen: 1, expected: []byte{1}},
		{name: "254 bytes", packetLen: 254, expected: []byte{254}},
		{name: "255 bytes exact", packetLen: 255, expected: []byte{255, 0}},
		{name: "256 bytes", packetLen: 256, expected: []byte{255, 1}},
		{name: "510 bytes (2x255)", packetLen: 510, expected: []byte{255, 255, 0}},
		{name: "600 bytes", packetLen: 600, expected: []byte{255, 255, 90}},
		{name: "1000 bytes", packetLen: 1000, expected: []byte{255, 255, 255, 235}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildSegmentTable(tc.packetLen)
			if !bytes.Equal(got, tc.expected) {
				t.Errorf("BuildSegmentTable(%d) = %v, want %v", tc.packetLen, got, tc.expected)
			}
			if len(got) != lacingCount(tc.packetLen) {
				t.Errorf("lacingCount(%d) = %d, table has %d", tc.packetLen, lacingCount(tc.packetLen), len(got))
			}
		})
	}
}

// TestParsePage tests header accessors on a parsed page.
func TestParsePage(t *testing.T) {
	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i)
	}
	built := buildPage(t, 12345, 0xDEADBEEF, 42, PageFlagBOS, payload)

	// Trailing bytes belong to the next page and must not be included.
	buf := append(append([]byte(nil), built.Bytes()...), "trailing"...)
	page, err := ParsePage(buf)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}

	if page.Len() != 27+1+100 {
		t.Errorf("Len = %d, want %d", page.Len(), 27+1+100)
	}
	if page.Version() != 0 {
		t.Errorf("Version = %d, want 0", page.Version())
	}
	if !page.BOS() || page.EOS() || page.Continued() {
		t.Errorf("Flags = 0x%02x, want BOS only", page.Flags())
	}
	if page.GranulePos() != 12345 {
		t.Errorf("GranulePos = %d, want 12345", page.GranulePos())
	}
	if page.Serial() != 0xDEADBEEF {
		t.Errorf("Serial = 0x%08x, want 0xDEADBEEF", page.Serial())
	}
	if page.Sequence() != 42 {
		t.Errorf("Sequence = %d, want 42", page.Sequence())
	}
	if page.SegmentCount() != 1 || page.Segments()[0] != 100 {
		t.Errorf("Segments = %v, want [100]", page.Segments())
	}
	if len(page.Header()) != 28 {
		t.Errorf("Header len = %d, want 28", len(page.Header()))
	}
	if !bytes.Equal(page.Body(), payload) {
		t.Error("Body does not match payload")
	}
	if !page.Verify() {
		t.Error("Verify = false on a parsed page")
	}

	// The view aliases the input.
	buf[28] ^= 0xFF
	if page.Body()[0] != buf[28] {
		t.Error("Page copied its input")
	}
}

// TestParsePage_Errors verifies each check and their order.
func TestParsePage_Errors(t *testing.T) {
	valid := buildPage(t, 0, 1, 0, 0, []byte("0123456789")).Bytes()

	mutate := func(fn func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return fn(b)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTooShort},
		{"short header", []byte("OggS"), ErrTooShort},
		{"short header wrong magic", []byte("Ogx"), ErrTooShort},
		{"no magic", make([]byte, 100), ErrBadCapture},
		{"corrupt capture", mutate(func(b []byte) []byte { b[3] = 's'; return b }), ErrBadCapture},
		{"bad version", mutate(func(b []byte) []byte { b[4] = 1; return b }), ErrBadVersion},
		{"missing segment table", mutate(func(b []byte) []byte { return b[:27] }), ErrTooShort},
		{"missing body", mutate(func(b []byte) []byte { return b[:len(b)-1] }), ErrTooShort},
		{"bad crc", mutate(func(b []byte) []byte { b[22] ^= 0xFF; return b }), ErrBadCRC},
		{"corrupt body", mutate(func(b []byte) []byte { b[len(b)-1] ^= 0x01; return b }), ErrBadCRC},
		{"corrupt granule", mutate(func(b []byte) []byte { b[granuleOffset] ^= 0x01; return b }), ErrBadCRC},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := ParsePage(tc.data)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ParsePage err = %v, want %v", err, tc.want)
			}
			if page.Len() != 0 {
				t.Errorf("failed parse returned a non-empty view")
			}
		})
	}
}

// TestParsePage_VerifyProperty checks that every page that validates
// carries the checksum recomputed over its bytes.
func TestParsePage_VerifyProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		var packets [][]byte
		for n := rng.Intn(4); n >= 0; n-- {
			pkt := make([]byte, rng.Intn(700))
			rng.Read(pkt)
			packets = append(packets, pkt)
		}
		data := buildPage(t, rng.Uint64(), rng.Uint32(), rng.Uint32(), byte(rng.Intn(8)), packets...).Bytes()

		// Random single-byte corruption either fails or still verifies.
		if rng.Intn(2) == 0 {
			data[rng.Intn(len(data))] ^= byte(1 + rng.Intn(255))
		}

		page, err := ParsePage(data)
		if err != nil {
			continue
		}
		if ChecksumOf(page.Bytes()) != page.Checksum() {
			t.Fatalf("iteration %d: validated page with inconsistent checksum", i)
		}
	}
}

// TestPagePackets tests extracting packets from a page.
func TestPagePackets(t *testing.T) {
	tests := []struct {
		name    string
		packets [][]byte
	}{
		{"single", [][]byte{filled(10, 1)}},
		{"three", [][]byte{filled(10, 1), filled(20, 2), filled(30, 3)}},
		{"large", [][]byte{filled(600, 4)}},
		{"exact multiple", [][]byte{filled(510, 5), filled(3, 6)}},
		{"empty packets", [][]byte{{}, filled(1, 7), {}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page := buildPage(t, 0, 0, 0, 0, tc.packets...)
			got := page.Packets().All()
			if len(got) != len(tc.packets) {
				t.Fatalf("got %d packets, want %d", len(got), len(tc.packets))
			}
			for i := range got {
				if !bytes.Equal(got[i], tc.packets[i]) {
					t.Errorf("packet %d mismatch: len %d, want %d", i, len(got[i]), len(tc.packets[i]))
				}
			}
		})
	}
}

// TestPagePackets_OpenEnd checks that a trailing 255 run is yielded as a
// page-local fragment.
func TestPagePackets_OpenEnd(t *testing.T) {
	body := filled(255*2+10, 9)
	page := assemblePage([]byte{10, 255, 255}, body)

	if !page.EndsOpen() {
		t.Error("EndsOpen = false, want true")
	}
	it := page.Packets()
	first, ok := it.Next()
	if !ok || len(first) != 10 {
		t.Fatalf("first packet len = %d, want 10", len(first))
	}
	frag, complete, ok := it.next()
	if !ok || complete || len(frag) != 510 {
		t.Fatalf("fragment len = %d complete = %v, want 510 false", len(frag), complete)
	}
	if _, ok := it.Next(); ok {
		t.Error("iterator yielded past the segment table")
	}
}

// TestPagePackets_NoSegments checks that an empty page has no packets.
func TestPagePackets_NoSegments(t *testing.T) {
	page := EmptyPage()
	if _, ok := page.Packets().Next(); ok {
		t.Error("empty page yielded a packet")
	}
	if page.EndsOpen() {
		t.Error("empty page EndsOpen = true")
	}
}

// TestPageFlags tests BOS, EOS, and continuation flag accessors.
func TestPageFlags(t *testing.T) {
	tests := []struct {
		flags               byte
		continued, bos, eos bool
	}{
		{0, false, false, false},
		{PageFlagContinuation, true, false, false},
		{PageFlagBOS, false, true, false},
		{PageFlagEOS, false, false, true},
		{PageFlagBOS | PageFlagEOS, false, true, true},
	}

	for _, tc := range tests {
		page := buildPage(t, 0, 0, 0, tc.flags)
		if page.Continued() != tc.continued || page.BOS() != tc.bos || page.EOS() != tc.eos {
			t.Errorf("flags 0x%02x: continued=%v bos=%v eos=%v", tc.flags, page.Continued(), page.BOS(), page.EOS())
		}
	}
}

// TestPageClone checks that a clone is independent of the original.
func TestPageClone(t *testing.T) {
	page := buildPage(t, 5, 6, 7, 0, []byte("payload"))
	clone := page.Clone()
	clone.SetSerial(99)

	if page.Serial() != 6 {
		t.Errorf("original serial changed to %d", page.Serial())
	}
	if clone.Serial() != 99 {
		t.Errorf("clone serial = %d, want 99", clone.Serial())
	}
	if _, err := ParsePage(clone.Bytes()); err != nil {
		t.Errorf("clone does not validate: %v", err)
	}
}
