package game

import (
	"time"

	"github.com/rs/zerolog"

	"repeat-go/services/hal"
	"repeat-go/types"
	"repeat-go/x/mathx"
	"repeat-go/x/timex"
)

// MatchConfig tunes input capture. All waits go through the Delayer and
// elapsed time is the sum of the waits requested, never a wall clock.
type MatchConfig struct {
	StepTimeout time.Duration // per input, restarted after each accepted press
	Settle      time.Duration // level must hold this long to count
	Poll        time.Duration // scan period
	Feedback    time.Duration // minimum LED+tone echo of a press
}

// Matcher captures button presses and compares them against a sequence.
type Matcher struct {
	panel hal.Panel
	delay timex.Delayer
	cfg   MatchConfig
	log   zerolog.Logger
	stop  func() bool // set while WaitAny runs
}

func NewMatcher(panel hal.Panel, delay timex.Delayer, cfg MatchConfig, log zerolog.Logger) *Matcher {
	if cfg.Poll <= 0 {
		cfg.Poll = time.Millisecond
	}
	return &Matcher{panel: panel, delay: delay, cfg: cfg, log: log}
}

// CaptureAndMatch reads one press per element of seq. It returns on the
// first divergence or timeout without scanning further input.
func (m *Matcher) CaptureAndMatch(seq Sequence) Outcome {
	for i, want := range seq {
		got, ok := m.awaitPress()
		if !ok {
			m.log.Debug().Int("index", i).Str("expected", want.String()).Msg("step timed out")
			return Outcome{Kind: Timeout, Index: i, Expected: want}
		}
		released := m.echo(got)
		m.log.Debug().Int("index", i).Str("pressed", got.String()).Bool("released", released).Msg("press")
		if got != want {
			return Outcome{Kind: Mismatch, Index: i, Expected: want, Actual: got}
		}
		if !released {
			return Outcome{Kind: Timeout, Index: i, Expected: want}
		}
	}
	return Outcome{Kind: Success}
}

// WaitAny blocks until a single button settles pressed and is released
// again, or until stop reports true. It gives no echo and has no timeout.
func (m *Matcher) WaitAny(stop func() bool) (types.Position, bool) {
	m.stop = stop
	defer func() { m.stop = nil }()
	p, ok := m.awaitPress()
	if ok {
		m.awaitRelease(p)
	}
	return p, ok
}

func (m *Matcher) expired(waited time.Duration) bool {
	if m.stop != nil {
		return m.stop()
	}
	return waited >= m.cfg.StepTimeout
}

// awaitPress returns the first button seen going released to pressed on
// its own and holding for the settle period.
func (m *Matcher) awaitPress() (types.Position, bool) {
	prev := m.scan()
	var waited time.Duration
	for !m.expired(waited) {
		m.delay.Delay(m.cfg.Poll)
		waited += m.cfg.Poll
		cur := m.scan()
		cand, n := rising(prev, cur)
		prev = cur
		if n == 0 {
			continue
		}
		if n > 1 || held(cur, cand) {
			// Ambiguous or overlapping; wait for a single clean press.
			continue
		}
		ok, spent := m.settle(cand, true)
		waited += spent
		if ok {
			return cand, true
		}
		prev[cand] = false
	}
	return 0, false
}

// echo lights p and plays its tone for at least Feedback and for as long as
// the button stays down. It reports whether a settled release was seen.
func (m *Matcher) echo(p types.Position) bool {
	m.panel.SetLED(p, true)
	m.panel.PlayTone(p)
	m.delay.Delay(m.cfg.Feedback)
	ok := m.awaitRelease(p)
	m.panel.SetLED(p, false)
	m.panel.StopTone(p)
	return ok
}

func (m *Matcher) awaitRelease(p types.Position) bool {
	var waited time.Duration
	for !m.expired(waited) {
		if !m.panel.Pressed(p) {
			ok, spent := m.settle(p, false)
			waited += spent
			if ok {
				return true
			}
			continue
		}
		m.delay.Delay(m.cfg.Poll)
		waited += m.cfg.Poll
	}
	return false
}

// settle samples p every Poll until Settle has elapsed at the wanted level.
func (m *Matcher) settle(p types.Position, pressed bool) (bool, time.Duration) {
	n := mathx.Max(mathx.CeilDiv(m.cfg.Settle, m.cfg.Poll), 1)
	var spent time.Duration
	for k := time.Duration(0); k < n; k++ {
		m.delay.Delay(m.cfg.Poll)
		spent += m.cfg.Poll
		if m.panel.Pressed(p) != pressed {
			return false, spent
		}
	}
	return true, spent
}

func (m *Matcher) scan() (s [types.NumPositions]bool) {
	for _, p := range types.Positions {
		s[p] = m.panel.Pressed(p)
	}
	return s
}

// rising returns the lowest newly pressed position and how many rose.
func rising(prev, cur [types.NumPositions]bool) (types.Position, int) {
	var first types.Position
	n := 0
	for _, p := range types.Positions {
		if cur[p] && !prev[p] {
			if n == 0 {
				first = p
			}
			n++
		}
	}
	return first, n
}

// held reports whether any position other than p is down.
func held(s [types.NumPositions]bool, p types.Position) bool {
	for _, q := range types.Positions {
		if q != p && s[q] {
			return true
		}
	}
	return false
}
