// services/hal/panel.go
package hal

import (
	"io"

	"repeat-go/services/hal/internal/halcore"
	"repeat-go/services/hal/internal/platform"
	"repeat-go/types"
)

// Panel is the four-slot button/LED/tone surface the game drives.
// Implementations resolve active-low wiring; callers see logical levels.
type Panel interface {
	SetLED(p types.Position, on bool)
	Pressed(p types.Position) bool
	PlayTone(p types.Position)
	// StopTone silences p's tone; a tone started by another slot keeps playing.
	StopTone(p types.Position)
}

// FaultToner is implemented by panels that can sound the failure tone.
type FaultToner interface {
	PlayFault()
	StopFault()
}

type (
	GPIOPin    = halcore.GPIOPin
	PinFactory = halcore.PinFactory
	Speaker    = halcore.Speaker
	Pull       = halcore.Pull
)

const (
	PullNone = halcore.PullNone
	PullUp   = halcore.PullUp
	PullDown = halcore.PullDown
)

// DefaultPins returns the platform GPIO factory. On host builds this is an
// in-memory factory whose pins can be driven through GPIOPin.Set.
func DefaultPins() PinFactory { return platform.DefaultPinFactory() }

// OpenSpeaker opens the platform speaker on pin (pin < 0 => board default).
func OpenSpeaker(pin int) (Speaker, error) { return platform.DefaultSpeakerFactory().Open(pin) }

// Console opens the operator console (UART0 on RP2, stdout on host).
func Console(baud uint32) io.Writer { return platform.DefaultConsole().Open(baud) }

// Blank turns every LED off and silences every tone.
func Blank(p Panel) {
	for _, pos := range types.Positions {
		p.SetLED(pos, false)
		p.StopTone(pos)
	}
	if f, ok := p.(FaultToner); ok {
		f.StopFault()
	}
}
