package game

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"repeat-go/bus"
	"repeat-go/errcode"
	"repeat-go/services/config"
	"repeat-go/services/hal"
	"repeat-go/types"
	"repeat-go/x/timex"
)

var (
	TopicState   = bus.T("game", "state")
	TopicOutcome = bus.T("game", "outcome")
	TopicStart   = bus.T("game", "control", "start")

	topicConfigGame = bus.T("config", "game")
)

// PanelFactory builds the panel from the configured wiring.
type PanelFactory func(types.PanelConfig) (hal.Panel, error)

func gpioPanel(cfg types.PanelConfig) (hal.Panel, error) { return hal.NewPanel(cfg) }

type ServiceOption func(*Service)

func WithPanelFactory(f PanelFactory) ServiceOption { return func(s *Service) { s.newPanel = f } }

// WithDelayer overrides the configured delay strategy.
func WithDelayer(d timex.Delayer) ServiceOption { return func(s *Service) { s.delay = d } }

func WithServiceLogger(l zerolog.Logger) ServiceOption { return func(s *Service) { s.log = l } }

// Service hosts a Director on the bus. It waits for config/game, then
// alternates between waiting for a start signal and playing a game.
// A start signal is a message on game/control/start or any button press.
type Service struct {
	Name     string
	newPanel PanelFactory
	delay    timex.Delayer
	log      zerolog.Logger
}

func NewService(opts ...ServiceOption) *Service {
	s := &Service{Name: "game", newPanel: gpioPanel, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start runs the service in its own goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.Run(ctx, conn); err != nil && ctx.Err() == nil {
			s.log.Error().Err(err).Msg("game service stopped")
		}
	}()
}

// Run blocks until ctx is cancelled or setup fails.
func (s *Service) Run(ctx context.Context, conn *bus.Connection) error {
	doc, err := s.awaitConfig(ctx, conn)
	if err != nil {
		return err
	}
	cfg, err := FromDoc(doc)
	if err != nil {
		return err
	}
	delay := s.delay
	if delay == nil {
		if delay, err = timex.ForStrategy(cfg.Delay); err != nil {
			return err
		}
	}
	panel, err := s.newPanel(doc.Panel)
	if err != nil {
		return err
	}
	if c, ok := panel.(io.Closer); ok {
		defer c.Close()
	}

	startSub := conn.Subscribe(TopicStart)
	defer conn.Unsubscribe(startSub)

	configured := NewSource(cfg.Seed)
	pub := &publisher{conn: conn, starts: startSub}
	d := NewDirector(panel, delay, configured, cfg, WithObserver(pub), WithLogger(s.log))

	hal.Blank(panel)
	Sweep(panel, delay, cfg.Base)
	pub.StateChanged(Idle, nil)
	s.log.Info().Str("delay", cfg.Delay).Int64("seed", cfg.Seed).Msg("game ready")

	for {
		seed, ok := s.awaitStart(ctx, d, startSub)
		if !ok {
			return ctx.Err()
		}
		if err := d.Reset(); err != nil {
			return err
		}
		// A start seed covers this game only; later games resume the configured stream.
		src := configured
		if seed != 0 {
			src = NewSource(seed)
		}
		if err := d.UseSource(src); err != nil {
			return err
		}
		sess, err := d.Play(ctx)
		if err != nil {
			return err
		}
		s.log.Info().Int("round", sess.Round()).Str("outcome", sess.Outcome.String()).Msg("game over")
	}
}

func (s *Service) awaitConfig(ctx context.Context, conn *bus.Connection) (types.GameConfig, error) {
	var doc types.GameConfig
	sub := conn.Subscribe(topicConfigGame)
	defer conn.Unsubscribe(sub)
	select {
	case <-ctx.Done():
		return doc, ctx.Err()
	case m, ok := <-sub.Channel():
		if !ok {
			return doc, errcode.New(errcode.NotConfigured, s.Name, "config subscription closed")
		}
		err := config.Decode(m.Payload, &doc)
		return doc, err
	}
}

// awaitStart polls the buttons through the director's matcher so a press
// is debounced the same way as game input. The returned seed is non-zero
// only when a start message carried one.
func (s *Service) awaitStart(ctx context.Context, d *Director, sub *bus.Subscription) (int64, bool) {
	var (
		seed   int64
		signal bool
	)
	stop := func() bool {
		if ctx.Err() != nil {
			return true
		}
		select {
		case m := <-sub.Channel():
			var st types.StartGame
			if m.Payload != nil {
				if err := config.Decode(m.Payload, &st); err != nil {
					s.log.Warn().Err(err).Msg("bad start payload")
				}
			}
			seed, signal = st.Seed, true
			return true
		default:
			return false
		}
	}
	if pos, ok := d.Matcher().WaitAny(stop); ok {
		s.log.Debug().Str("button", pos.String()).Msg("start by press")
		return 0, true
	}
	return seed, signal
}

// publisher reports director progress on the bus. Entering GameOver drops
// start signals queued during play so only a later one restarts.
type publisher struct {
	conn   *bus.Connection
	starts *bus.Subscription
}

func (p *publisher) StateChanged(st State, sess *Session) {
	if st == GameOver && p.starts != nil {
		drain(p.starts)
	}
	round := 0
	if sess != nil {
		round = sess.Round()
	}
	p.conn.Publish(p.conn.NewMessage(TopicState, types.GameState{
		State: st.String(),
		Round: round,
		TSms:  timex.NowMs(),
	}, true))
}

func (p *publisher) RoundEnded(sess *Session, o Outcome) {
	ev := types.OutcomeEvent{
		Kind:  o.Kind.String(),
		Round: sess.Round(),
		TSms:  timex.NowMs(),
	}
	if o.Kind != Success {
		ev.Index = o.Index
		ev.Expected = o.Expected.String()
	}
	if o.Kind == Mismatch {
		ev.Actual = o.Actual.String()
	}
	p.conn.Publish(p.conn.NewMessage(TopicOutcome, ev, false))
}

func drain(sub *bus.Subscription) {
	for {
		select {
		case _, ok := <-sub.Channel():
			if !ok {
				return
			}
		default:
			return
		}
	}
}
