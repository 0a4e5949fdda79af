// services/hal/gpio_panel.go
package hal

import (
	"strconv"

	"repeat-go/errcode"
	"repeat-go/types"
)

// Default tones, close to the classic console: G#4, D#4, G#3, B3 for
// green, red, blue, yellow, and a low E1 buzz for a fault.
var DefaultNotes = [types.NumPositions]uint8{68, 63, 56, 59}

const DefaultFaultNote uint8 = 28

const (
	noTone    = -1
	faultTone = int(types.NumPositions)
)

// GPIOPanel implements Panel and FaultToner over GPIO pins and one speaker.
type GPIOPanel struct {
	buttons   [types.NumPositions]GPIOPin
	leds      [types.NumPositions]GPIOPin
	activeLow bool

	spk      Speaker
	notes    [types.NumPositions]uint8
	fault    uint8
	sounding int
}

// NewPanel claims the configured pins on the platform factories.
func NewPanel(cfg types.PanelConfig) (*GPIOPanel, error) {
	spk, err := OpenSpeaker(cfg.Speaker)
	if err != nil {
		return nil, err
	}
	return NewPanelWith(cfg, DefaultPins(), spk)
}

// NewPanelWith builds a panel from explicit factories.
func NewPanelWith(cfg types.PanelConfig, pins PinFactory, spk Speaker) (*GPIOPanel, error) {
	if pins == nil || spk == nil {
		return nil, errcode.New(errcode.InvalidParams, "panel", "missing pin factory or speaker")
	}
	claimed := map[int]string{}
	claim := func(n int, role string) (GPIOPin, error) {
		if prev, taken := claimed[n]; taken {
			return nil, errcode.New(errcode.PinInUse, "panel", "gpio "+strconv.Itoa(n)+" used by "+prev+" and "+role)
		}
		p, ok := pins.ByNumber(n)
		if !ok {
			return nil, errcode.New(errcode.UnknownPin, "panel", "gpio "+strconv.Itoa(n)+" for "+role)
		}
		claimed[n] = role
		return p, nil
	}
	if cfg.Speaker >= 0 {
		claimed[cfg.Speaker] = "speaker"
	}

	g := &GPIOPanel{
		activeLow: cfg.ActiveLow,
		spk:       spk,
		notes:     DefaultNotes,
		fault:     DefaultFaultNote,
		sounding:  noTone,
	}
	pull := PullDown
	if cfg.ActiveLow {
		pull = PullUp
	}
	for _, pos := range types.Positions {
		b, err := claim(cfg.Buttons[pos], pos.String()+" button")
		if err != nil {
			return nil, err
		}
		l, err := claim(cfg.LEDs[pos], pos.String()+" led")
		if err != nil {
			return nil, err
		}
		if err := b.ConfigureInput(pull); err != nil {
			return nil, errcode.Wrap(errcode.Error, "panel", err)
		}
		if err := l.ConfigureOutput(false); err != nil {
			return nil, errcode.Wrap(errcode.Error, "panel", err)
		}
		g.buttons[pos], g.leds[pos] = b, l
		if n := cfg.Notes[pos]; n != 0 {
			g.notes[pos] = n
		}
	}
	if cfg.FaultNote != 0 {
		g.fault = cfg.FaultNote
	}
	return g, nil
}

func (g *GPIOPanel) SetLED(p types.Position, on bool) {
	if !p.Valid() {
		return
	}
	g.leds[p].Set(on)
}

func (g *GPIOPanel) Pressed(p types.Position) bool {
	if !p.Valid() {
		return false
	}
	lvl := g.buttons[p].Get()
	if g.activeLow {
		return !lvl
	}
	return lvl
}

func (g *GPIOPanel) PlayTone(p types.Position) {
	if !p.Valid() {
		return
	}
	g.spk.SetNote(g.notes[p])
	g.sounding = int(p)
}

func (g *GPIOPanel) StopTone(p types.Position) {
	if g.sounding != int(p) {
		return
	}
	g.spk.Stop()
	g.sounding = noTone
}

func (g *GPIOPanel) PlayFault() {
	g.spk.SetNote(g.fault)
	g.sounding = faultTone
}

func (g *GPIOPanel) StopFault() {
	if g.sounding != faultTone {
		return
	}
	g.spk.Stop()
	g.sounding = noTone
}

// Close leaves the panel dark and silent.
func (g *GPIOPanel) Close() error {
	Blank(g)
	return nil
}
