// services/hal/internal/halcore/types.go
package halcore

import "io"

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- Audio ----

// Speaker drives a single square-wave output. Notes are MIDI numbers
// (69 == A4 == 440 Hz). SetNote on a sounding speaker retunes it in place.
type Speaker interface {
	SetNote(note uint8)
	Stop()
}

// SpeakerFactory opens the speaker wired to pin; pin < 0 selects the
// platform default.
type SpeakerFactory interface {
	Open(pin int) (Speaker, error)
}

// ---- Console ----

// ConsoleFactory opens the operator console at the given baud rate.
// Platforms without a serial port ignore baud.
type ConsoleFactory interface {
	Open(baud uint32) io.Writer
}
