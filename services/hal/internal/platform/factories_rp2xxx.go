// services/hal/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/tone"

	"repeat-go/errcode"
	"repeat-go/services/hal/internal/halcore"
)

// -----------------------------------------------------------------------------
// Defaults used on Raspberry Pi Pico / Pico 2 (RP2 family)
// -----------------------------------------------------------------------------

const (
	defaultSpeakerPin = 16
	defaultBaud       = 115200
)

// DefaultPinFactory returns a GPIO factory that maps logical numbers directly
// to machine.Pin(n). This matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() halcore.PinFactory { return rp2PinFactory{} }

// DefaultSpeakerFactory drives a piezo/speaker from a PWM slice.
func DefaultSpeakerFactory() halcore.SpeakerFactory { return rp2SpeakerFactory{} }

// DefaultConsole exposes UART0 on its default pins.
func DefaultConsole() halcore.ConsoleFactory { return rp2Console{} }

// ---- GPIO implementation ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }

func (r *rp2Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

func (r *rp2Pin) Number() int { return r.n }

// ---- Speaker implementation ----

type rp2SpeakerFactory struct{}

func (rp2SpeakerFactory) Open(pin int) (halcore.Speaker, error) {
	if pin < 0 {
		pin = defaultSpeakerPin
	}
	if pin > 28 {
		return nil, errcode.New(errcode.UnknownPin, "speaker", "gpio out of range")
	}
	p := machine.Pin(pin)
	s, err := tone.New(pwmFor(pin), p)
	if err != nil {
		return nil, errcode.Wrap(errcode.Unsupported, "speaker", err)
	}
	return rp2Speaker{s: s}, nil
}

// pwmFor returns the slice that owns pin: GPIO 2n and 2n+1 share slice n%8.
func pwmFor(pin int) tone.PWM {
	switch (pin >> 1) & 7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type rp2Speaker struct{ s tone.Speaker }

// tone.Speaker.SetNote stops the output before retuning, so a new note
// always restarts cleanly.
func (r rp2Speaker) SetNote(note uint8) { r.s.SetNote(tone.Note(note)) }
func (r rp2Speaker) Stop()              { r.s.Stop() }

// ---- Console implementation ----

type rp2Console struct{}

func (rp2Console) Open(baud uint32) io.Writer {
	if baud == 0 {
		baud = defaultBaud
	}
	u := uartx.UART0
	// Defaults inside uartx apply to anything left zero.
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return u
}
