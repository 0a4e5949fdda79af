package game

import (
	"time"

	"repeat-go/types"
	"repeat-go/x/mathx"
	"repeat-go/x/timex"
)

// Defaults, in milliseconds unless noted.
const (
	DefaultOnMs          = 420
	DefaultGapMs         = 180
	DefaultStepTimeoutMs = 3000
	DefaultSettleMs      = 20
	DefaultPollMs        = 5
	DefaultFeedbackMs    = 150
	DefaultCueFlashes    = 2
	DefaultCueOnMs       = 120
	DefaultCueOffMs      = 200
	DefaultFailHoldMs    = 800
)

// Config is the runtime form of types.GameConfig.
type Config struct {
	Base  Timing
	Tiers []Tier
	Match MatchConfig
	Cue   CueConfig
	Delay string
	Seed  int64
}

// DefaultConfig is what an empty document resolves to.
func DefaultConfig() Config {
	c, _ := FromDoc(types.GameConfig{})
	return c
}

// FromDoc validates doc and resolves defaults and limits. Zero fields take
// the default; others are clamped to a playable range.
func FromDoc(doc types.GameConfig) (Config, error) {
	if err := doc.Validate(); err != nil {
		return Config{}, err
	}
	if _, err := timex.ForStrategy(doc.Delay); err != nil {
		return Config{}, err
	}

	ms := func(v, d, lo, hi uint32) time.Duration { return timex.Ms(mathx.OrDefault(v, d, lo, hi)) }

	c := Config{
		Base: Timing{
			On:  ms(doc.OnMs, DefaultOnMs, 50, 5000),
			Gap: ms(doc.GapMs, DefaultGapMs, 10, 5000),
		},
		Match: MatchConfig{
			StepTimeout: ms(doc.StepTimeoutMs, DefaultStepTimeoutMs, 500, 60000),
			Settle:      ms(doc.SettleMs, DefaultSettleMs, 1, 200),
			Poll:        ms(doc.PollMs, DefaultPollMs, 1, 50),
			Feedback:    ms(doc.FeedbackMs, DefaultFeedbackMs, 10, 2000),
		},
		Cue: CueConfig{
			Flashes:  int(mathx.OrDefault(doc.CueFlashes, DefaultCueFlashes, 1, 10)),
			On:       ms(doc.CueOnMs, DefaultCueOnMs, 10, 2000),
			Off:      ms(doc.CueOffMs, DefaultCueOffMs, 10, 2000),
			FailHold: ms(doc.FailHoldMs, DefaultFailHoldMs, 50, 5000),
		},
		Delay: doc.Delay,
		Seed:  doc.Seed,
	}
	// A poll slower than the settle window would skip debounce samples.
	c.Match.Poll = mathx.Min(c.Match.Poll, c.Match.Settle)

	for _, t := range doc.Pace {
		c.Tiers = append(c.Tiers, Tier{
			FromRound: t.FromRound,
			Timing: Timing{
				On:  ms(t.OnMs, DefaultOnMs, 50, 5000),
				Gap: ms(t.GapMs, DefaultGapMs, 10, 5000),
			},
		})
	}
	return c, nil
}
