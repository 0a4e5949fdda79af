//go:build !rp2040 && !rp2350

package platform

import (
	"testing"

	"repeat-go/services/hal/internal/halcore"
)

func TestHostPinFactoryStablePins(t *testing.T) {
	f := DefaultPinFactory().(*HostPinFactory)
	a, ok := f.ByNumber(4)
	if !ok {
		t.Fatal("expected pin 4")
	}
	b, _ := f.ByNumber(4)
	if a != b {
		t.Fatal("expected the same pin instance per number")
	}
	if _, ok := f.ByNumber(hostMaxPin + 1); ok {
		t.Fatal("expected out-of-range pin to be rejected")
	}
	if _, ok := f.Get(5); ok {
		t.Fatal("Get must not create pins")
	}
}

func TestFakePinPullUpIdlesHigh(t *testing.T) {
	f := DefaultPinFactory().(*HostPinFactory)
	p, _ := f.ByNumber(18)
	_ = p.ConfigureInput(halcore.PullUp)
	if !p.Get() {
		t.Fatal("pulled-up input should idle high")
	}
	fp, _ := f.Get(18)
	if fp.IsOutput() || fp.Pull() != halcore.PullUp {
		t.Fatalf("unexpected config: out=%v pull=%d", fp.IsOutput(), fp.Pull())
	}
	p.Set(false)
	if p.Get() {
		t.Fatal("expected driven low")
	}
	p.Toggle()
	if !p.Get() {
		t.Fatal("expected toggled high")
	}
}

func TestHostSpeakerTracksNote(t *testing.T) {
	s, err := DefaultSpeakerFactory().Open(-1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	hs := s.(*HostSpeaker)
	if _, on := hs.Note(); on {
		t.Fatal("new speaker should be silent")
	}
	s.SetNote(64)
	s.SetNote(69)
	if n, on := hs.Note(); !on || n != 69 {
		t.Fatalf("Note = %d,%v", n, on)
	}
	if hs.Starts() != 2 {
		t.Fatalf("Starts = %d", hs.Starts())
	}
	s.Stop()
	if _, on := hs.Note(); on {
		t.Fatal("expected silence after Stop")
	}
}
