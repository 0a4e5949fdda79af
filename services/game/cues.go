package game

import (
	"time"

	"repeat-go/services/hal"
	"repeat-go/types"
	"repeat-go/x/timex"
)

// CueConfig times the round-won and game-over signals.
type CueConfig struct {
	Flashes  int
	On       time.Duration
	Off      time.Duration
	FailHold time.Duration
}

func setAll(p hal.Panel, on bool) {
	for _, pos := range types.Positions {
		p.SetLED(pos, on)
	}
}

// winCue flashes every LED together.
func (d *Director) winCue() {
	c := d.cfg.Cue
	for i := 0; i < c.Flashes; i++ {
		setAll(d.panel, true)
		d.delay.Delay(c.On)
		setAll(d.panel, false)
		d.delay.Delay(c.Off)
	}
}

// failCue holds every LED with the fault tone.
func (d *Director) failCue() {
	c := d.cfg.Cue
	f, _ := d.panel.(hal.FaultToner)
	setAll(d.panel, true)
	if f != nil {
		f.PlayFault()
	}
	d.delay.Delay(c.FailHold)
	hal.Blank(d.panel)
	d.delay.Delay(c.Off)
}

// Sweep plays every position once in clockwise order.
func Sweep(p hal.Panel, delay timex.Delayer, t Timing) {
	NewPlayer(p, delay).Present(Sequence(types.Positions[:]), t)
}
