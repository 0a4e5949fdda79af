package game

import (
	"context"

	"github.com/rs/zerolog"

	"repeat-go/errcode"
	"repeat-go/services/hal"
	"repeat-go/x/timex"
)

type State uint8

const (
	Idle State = iota
	Presenting
	AwaitingInput
	RoundWon
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Presenting:
		return "presenting"
	case AwaitingInput:
		return "awaiting_input"
	case RoundWon:
		return "round_won"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session is one game from first round to failure.
type Session struct {
	Sequence Sequence
	Over     bool
	Outcome  Outcome // result of the last capture
}

// Round is the current sequence length.
func (s *Session) Round() int { return len(s.Sequence) }

// Observer is notified synchronously from the playing goroutine.
type Observer interface {
	StateChanged(s State, sess *Session)
	RoundEnded(sess *Session, o Outcome)
}

type Option func(*Director)

func WithObserver(o Observer) Option { return func(d *Director) { d.obs = o } }

func WithLogger(l zerolog.Logger) Option { return func(d *Director) { d.log = l } }

// Director runs the round loop: extend, present, capture, then cue.
type Director struct {
	panel   hal.Panel
	delay   timex.Delayer
	gen     *Generator
	player  *Player
	matcher *Matcher
	cfg     Config
	obs     Observer
	log     zerolog.Logger

	state State
	sess  *Session
}

func NewDirector(panel hal.Panel, delay timex.Delayer, src Source, cfg Config, opts ...Option) *Director {
	d := &Director{
		panel: panel,
		delay: delay,
		gen:   NewGenerator(src),
		cfg:   cfg,
		log:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(d)
	}
	d.player = NewPlayer(panel, delay)
	d.matcher = NewMatcher(panel, delay, cfg.Match, d.log)
	return d
}

func (d *Director) State() State { return d.state }

// Session returns the current or last finished session, nil before the first game.
func (d *Director) Session() *Session { return d.sess }

// Matcher exposes the input side for callers waiting on a start press.
func (d *Director) Matcher() *Matcher { return d.matcher }

// UseSource replaces the position source for the next game.
func (d *Director) UseSource(src Source) error {
	if d.state != Idle {
		return errcode.New(errcode.Busy, "director", "source change outside idle")
	}
	d.gen = NewGenerator(src)
	return nil
}

// Play runs a game to completion. It returns with the director in GameOver
// after a mismatch or timeout. ctx is checked between rounds; on
// cancellation the session is dropped and the director returns to Idle.
func (d *Director) Play(ctx context.Context) (*Session, error) {
	if d.state != Idle {
		return nil, errcode.New(errcode.Busy, "director", "play from "+d.state.String())
	}
	sess := &Session{}
	d.sess = sess
	sess.Sequence = d.gen.Extend(sess.Sequence)

	for {
		d.enter(Presenting)
		d.player.Present(sess.Sequence, Pace(sess.Round(), d.cfg.Base, d.cfg.Tiers))

		d.enter(AwaitingInput)
		out := d.matcher.CaptureAndMatch(sess.Sequence)
		sess.Outcome = out
		d.log.Info().Int("round", sess.Round()).Str("outcome", out.String()).Msg("round ended")
		if d.obs != nil {
			d.obs.RoundEnded(sess, out)
		}

		if out.Kind != Success {
			sess.Over = true
			d.enter(GameOver)
			d.failCue()
			return sess, nil
		}

		d.enter(RoundWon)
		d.winCue()
		if err := ctx.Err(); err != nil {
			hal.Blank(d.panel)
			d.enter(Idle)
			return sess, err
		}
		sess.Sequence = d.gen.Extend(sess.Sequence)
	}
}

// Reset returns a finished game to Idle. It is a no-op when already idle.
func (d *Director) Reset() error {
	switch d.state {
	case Idle:
		return nil
	case GameOver:
		hal.Blank(d.panel)
		d.enter(Idle)
		return nil
	default:
		return errcode.New(errcode.Busy, "director", "reset from "+d.state.String())
	}
}

func (d *Director) enter(s State) {
	d.state = s
	round := 0
	if d.sess != nil {
		round = d.sess.Round()
	}
	d.log.Debug().Str("state", s.String()).Int("round", round).Msg("state")
	if d.obs != nil {
		d.obs.StateChanged(s, d.sess)
	}
}
