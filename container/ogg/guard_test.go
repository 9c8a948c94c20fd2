package ogg

import (
	"errors"
	"testing"
)

func TestPageEditor_Commit(t *testing.T) {
	page := buildPage(t, 0, 0, 0, 0, []byte("body"))

	e := page.Begin()
	e.SetGranulePos(48000)
	e.SetSerial(0xCAFEBABE)
	e.SetSequence(3)
	e.SetEOS(true)
	if page.Verify() {
		t.Error("page verifies before Commit")
	}
	if err := e.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	parsed, err := ParsePage(page.Bytes())
	if err != nil {
		t.Fatalf("edited page does not validate: %v", err)
	}
	if parsed.GranulePos() != 48000 || parsed.Serial() != 0xCAFEBABE || parsed.Sequence() != 3 || !parsed.EOS() {
		t.Errorf("fields not applied: granule=%d serial=%x seq=%d eos=%v",
			parsed.GranulePos(), parsed.Serial(), parsed.Sequence(), parsed.EOS())
	}

	if err := e.Commit(); !errors.Is(err, ErrEditClosed) {
		t.Errorf("second Commit err = %v, want ErrEditClosed", err)
	}
}

func TestPageEditor_ClosedSetterPanics(t *testing.T) {
	page := EmptyPage()
	e := page.Begin()
	e.Commit()

	defer func() {
		r := recover()
		if r != ErrEditClosed {
			t.Errorf("recover() = %v, want ErrEditClosed", r)
		}
	}()
	e.SetSerial(1)
}

func TestPageEditor_SetFlags(t *testing.T) {
	page := EmptyPage()
	page.Edit(func(e *PageEditor) error {
		e.SetFlags(PageFlagBOS | PageFlagEOS)
		return nil
	})
	if page.Flags() != PageFlagBOS|PageFlagEOS {
		t.Errorf("Flags = 0x%02x", page.Flags())
	}

	page.Edit(func(e *PageEditor) error {
		e.SetFlags(PageFlagContinuation)
		return nil
	})
	if page.Flags() != PageFlagContinuation {
		t.Errorf("Flags = 0x%02x, want continuation only", page.Flags())
	}
	if !page.Verify() {
		t.Error("page does not verify")
	}
}

func TestEdit_CommitsOnError(t *testing.T) {
	page := EmptyPage()
	errStop := errors.New("stop")

	err := page.Edit(func(e *PageEditor) error {
		e.SetSequence(9)
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Errorf("Edit err = %v, want errStop", err)
	}
	if !page.Verify() || page.Sequence() != 9 {
		t.Errorf("verify=%v sequence=%d after failed edit", page.Verify(), page.Sequence())
	}
}

func TestEdit_CommitsOnPanic(t *testing.T) {
	page := EmptyPage()

	func() {
		defer func() { recover() }()
		page.Edit(func(e *PageEditor) error {
			e.SetGranulePos(77)
			panic("boom")
		})
	}()

	if !page.Verify() {
		t.Error("page does not verify after a panicking edit")
	}
	if page.GranulePos() != 77 {
		t.Errorf("GranulePos = %d, want 77", page.GranulePos())
	}
}

func TestMutPage_Setters(t *testing.T) {
	page := buildPage(t, 1, 2, 3, 0, []byte("x"))
	page.SetGranulePos(10)
	page.SetSerial(20)
	page.SetSequence(30)
	page.SetContinued(true)
	page.SetBOS(true)
	page.SetEOS(true)

	parsed, err := ParsePage(page.Bytes())
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if parsed.GranulePos() != 10 || parsed.Serial() != 20 || parsed.Sequence() != 30 {
		t.Errorf("granule=%d serial=%d seq=%d", parsed.GranulePos(), parsed.Serial(), parsed.Sequence())
	}
	if parsed.Flags() != PageFlagContinuation|PageFlagBOS|PageFlagEOS {
		t.Errorf("Flags = 0x%02x", parsed.Flags())
	}

	page.SetBOS(false)
	if page.BOS() || !page.Verify() {
		t.Errorf("BOS=%v verify=%v after clearing", page.BOS(), page.Verify())
	}
}

func TestParseMutPage(t *testing.T) {
	data := append([]byte(nil), buildPage(t, 0, 5, 0, 0, []byte("abc")).Bytes()...)
	page, err := ParseMutPage(data)
	if err != nil {
		t.Fatalf("ParseMutPage failed: %v", err)
	}
	page.SetSerial(6)

	// The edit lands in the caller's buffer.
	reparsed, err := ParsePage(data)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if reparsed.Serial() != 6 {
		t.Errorf("Serial = %d, want 6", reparsed.Serial())
	}

	data[0] = 'X'
	if _, err := ParseMutPage(data); !errors.Is(err, ErrBadCapture) {
		t.Errorf("err = %v, want ErrBadCapture", err)
	}
}
