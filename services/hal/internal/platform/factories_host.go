// services/hal/internal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"io"
	"os"
	"sync"

	"repeat-go/services/hal/internal/halcore"
)

// Host builds have no GPIO or audio. The factories below hand out in-memory
// pins and a silent speaker so the game runs unchanged in tests and in the
// terminal simulator, which drives the fake pins directly.

const hostMaxPin = 63

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin for host-side tests.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	// A pulled-up input idles high until something drives it.
	p.level = pull == halcore.PullUp
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.mu.Unlock()
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports the last configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Pull reports the last configured pull.
func (p *FakePin) Pull() halcore.Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if n < 0 || n > hostMaxPin {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// Get exposes the underlying *FakePin for tests and the simulator.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	return p, ok
}

// DefaultPinFactory provides a host GPIO factory.
func DefaultPinFactory() halcore.PinFactory {
	return &HostPinFactory{pins: make(map[int]*FakePin)}
}

// ----------------------------- Speaker (host) --------------------------------

// HostSpeaker remembers the sounding note instead of producing audio.
type HostSpeaker struct {
	mu      sync.Mutex
	note    uint8
	playing bool
	starts  int
}

func (s *HostSpeaker) SetNote(note uint8) {
	s.mu.Lock()
	s.note, s.playing = note, true
	s.starts++
	s.mu.Unlock()
}

func (s *HostSpeaker) Stop() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

// Note returns the sounding note, if any.
func (s *HostSpeaker) Note() (uint8, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.note, s.playing
}

// Starts counts SetNote calls.
func (s *HostSpeaker) Starts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts
}

type hostSpeakerFactory struct{}

func (hostSpeakerFactory) Open(int) (halcore.Speaker, error) { return &HostSpeaker{}, nil }

// DefaultSpeakerFactory opens silent host speakers.
func DefaultSpeakerFactory() halcore.SpeakerFactory { return hostSpeakerFactory{} }

// ----------------------------- Console (host) --------------------------------

type hostConsole struct{}

func (hostConsole) Open(uint32) io.Writer { return os.Stdout }

// DefaultConsole writes to standard output.
func DefaultConsole() halcore.ConsoleFactory { return hostConsole{} }
