package game

import (
	"time"

	"repeat-go/services/hal"
	"repeat-go/x/timex"
)

// Timing is the per-element pacing of a presentation.
type Timing struct {
	On  time.Duration // LED and tone active
	Gap time.Duration // dark pause before the next element
}

// Duration is the total blocking time of presenting n elements.
func (t Timing) Duration(n int) time.Duration { return time.Duration(n) * (t.On + t.Gap) }

// Player presents sequences as a light and sound show.
type Player struct {
	panel hal.Panel
	delay timex.Delayer
}

func NewPlayer(panel hal.Panel, delay timex.Delayer) *Player {
	return &Player{panel: panel, delay: delay}
}

// Present blocks until every element has been shown. The on-duration
// gates both the LED and the tone.
func (p *Player) Present(seq Sequence, t Timing) {
	for _, pos := range seq {
		p.panel.SetLED(pos, true)
		p.panel.PlayTone(pos)
		p.delay.Delay(t.On)
		p.panel.SetLED(pos, false)
		p.panel.StopTone(pos)
		p.delay.Delay(t.Gap)
	}
}
