package console

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"repeat-go/bus"
	"repeat-go/services/config"
	"repeat-go/types"
	"repeat-go/x/mathx"
)

var (
	topicConfigConsole = bus.T("config", "console")
	topicGame          = bus.T("game", "#")
)

const defaultInterval = 10 * time.Second

// Opener returns the console sink for a baud rate; 0 selects the default.
type Opener func(baud uint32) io.Writer

// Service mirrors game events to the operator console as JSON lines and
// emits a periodic heartbeat with the current state and best round.
type Service struct {
	Name string
	open Opener
	baud uint32
	log  zerolog.Logger

	state string
	round int
	best  int
}

func NewService(open Opener) *Service {
	s := &Service{Name: "console", open: open, state: "unknown"}
	s.log = newLogger(open(0))
	return s
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("svc", "console").Logger()
}

// Logger is the console logger; other services may share it.
func (s *Service) Logger() zerolog.Logger { return s.log }

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigConsole)
	defer conn.Unsubscribe(cfgSub)
	gameSub := conn.Subscribe(topicGame)
	defer conn.Unsubscribe(gameSub)

	tick := time.NewTicker(defaultInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("console stopping")
			return
		case <-tick.C:
			s.log.Info().Str("state", s.state).Int("round", s.round).Int("best", s.best).Msg("heartbeat")
		case msg := <-cfgSub.Channel():
			var c types.ConsoleConfig
			if err := config.Decode(msg.Payload, &c); err != nil {
				s.log.Warn().Err(err).Msg("bad console config")
				continue
			}
			s.applyConfig(c, tick)
		case msg := <-gameSub.Channel():
			s.onGame(msg)
		}
	}
}

func (s *Service) applyConfig(c types.ConsoleConfig, tick *time.Ticker) {
	if c.Baud != 0 && c.Baud != s.baud {
		s.baud = c.Baud
		s.log = newLogger(s.open(c.Baud))
	}
	if c.IntervalS != 0 {
		iv := time.Duration(mathx.Clamp(c.IntervalS, 1, 3600)) * time.Second
		tick.Reset(iv)
		s.log.Info().Dur("interval", iv).Msg("heartbeat interval set")
	}
}

func (s *Service) onGame(msg *bus.Message) {
	switch ev := msg.Payload.(type) {
	case types.GameState:
		s.state, s.round = ev.State, ev.Round
		s.log.Info().Str("state", ev.State).Int("round", ev.Round).Msg("state")
	case types.OutcomeEvent:
		if ev.Kind == "success" {
			s.best = mathx.Max(s.best, ev.Round)
			s.log.Info().Int("round", ev.Round).Msg("round cleared")
			return
		}
		e := s.log.Warn().Str("kind", ev.Kind).Int("round", ev.Round).Int("index", ev.Index).Str("expected", ev.Expected)
		if ev.Actual != "" {
			e = e.Str("actual", ev.Actual)
		}
		e.Msg("game lost")
	}
}

// Start the console service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
