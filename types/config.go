package types

import (
	"strconv"

	"repeat-go/errcode"
)

// Configuration documents supplied on topics "config/<key>".
// Durations are milliseconds; zero selects the service default.

// GameConfig is the document on "config/game".
type GameConfig struct {
	Panel PanelConfig `json:"panel"`

	OnMs          uint32 `json:"on_ms,omitempty"`
	GapMs         uint32 `json:"gap_ms,omitempty"`
	StepTimeoutMs uint32 `json:"step_timeout_ms,omitempty"`
	SettleMs      uint32 `json:"settle_ms,omitempty"`
	PollMs        uint32 `json:"poll_ms,omitempty"`
	FeedbackMs    uint32 `json:"feedback_ms,omitempty"`

	CueFlashes uint8  `json:"cue_flashes,omitempty"`
	CueOnMs    uint32 `json:"cue_on_ms,omitempty"`
	CueOffMs   uint32 `json:"cue_off_ms,omitempty"`
	FailHoldMs uint32 `json:"fail_hold_ms,omitempty"`

	Delay string     `json:"delay,omitempty"` // "sleep" (default) or "spin"
	Seed  int64      `json:"seed,omitempty"`  // 0 => seeded from the clock
	Pace  []PaceTier `json:"pace,omitempty"`  // empty => constant speed
}

// PaceTier switches playback timing once the round number reaches FromRound.
type PaceTier struct {
	FromRound int    `json:"from_round"`
	OnMs      uint32 `json:"on_ms"`
	GapMs     uint32 `json:"gap_ms"`
}

// PanelConfig wires the four positions to pins, indexed by Position.
type PanelConfig struct {
	Buttons   [NumPositions]int   `json:"buttons"`
	LEDs      [NumPositions]int   `json:"leds"`
	ActiveLow bool                `json:"active_low"` // buttons pull up, pressed == low
	Speaker   int                 `json:"speaker"`    // PWM pin; -1 => platform default
	Notes     [NumPositions]uint8 `json:"notes"`      // MIDI note per position
	FaultNote uint8               `json:"fault_note"`
}

// ConsoleConfig is the document on "config/console".
type ConsoleConfig struct {
	IntervalS uint32 `json:"interval_s,omitempty"` // heartbeat period; 0 => default
	Baud      uint32 `json:"baud,omitempty"`
}

// Validate checks pin wiring and pace tiers. Range limits on durations are
// applied by the consumer.
func (c GameConfig) Validate() error {
	if err := c.Panel.Validate(); err != nil {
		return err
	}
	for _, t := range c.Pace {
		if t.FromRound < 1 {
			return errcode.New(errcode.InvalidParams, "config", "pace tier from_round must be >= 1")
		}
	}
	return nil
}

// Validate checks that every pin is non-negative and used once.
func (c PanelConfig) Validate() error {
	seen := make(map[int]bool, 2*NumPositions+1)
	claim := func(pin int) error {
		if pin < 0 {
			return errcode.New(errcode.UnknownPin, "config", "negative pin "+strconv.Itoa(pin))
		}
		if seen[pin] {
			return errcode.New(errcode.PinInUse, "config", "pin "+strconv.Itoa(pin)+" assigned twice")
		}
		seen[pin] = true
		return nil
	}
	for i := 0; i < NumPositions; i++ {
		if err := claim(c.Buttons[i]); err != nil {
			return err
		}
		if err := claim(c.LEDs[i]); err != nil {
			return err
		}
	}
	if c.Speaker >= 0 {
		return claim(c.Speaker)
	}
	return nil
}
