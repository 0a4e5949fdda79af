package game

import (
	"time"

	"repeat-go/types"
	"repeat-go/x/timex"
)

const ms = time.Millisecond

type press struct {
	pos      types.Position
	from, to time.Duration
}

func hold(pos types.Position, from, to time.Duration) press { return press{pos, from, to} }

type ledEvent struct {
	at  time.Duration
	pos types.Position
	on  bool
}

// scriptPanel answers Pressed from scripted intervals on a virtual clock.
type scriptPanel struct {
	clk     *timex.Virtual
	presses []press

	leds     [types.NumPositions]bool
	ledLog   []ledEvent
	tones    []types.Position
	stops    int
	faults   int
	faultOn  bool
	reads    int
	lastRead time.Duration
	onRead   func(p *scriptPanel) // runs on the reading goroutine
}

func newScriptPanel(clk *timex.Virtual, presses ...press) *scriptPanel {
	return &scriptPanel{clk: clk, presses: presses}
}

func (p *scriptPanel) SetLED(pos types.Position, on bool) {
	p.leds[pos] = on
	p.ledLog = append(p.ledLog, ledEvent{p.clk.Now(), pos, on})
}

func (p *scriptPanel) Pressed(pos types.Position) bool {
	now := p.clk.Now()
	p.reads++
	p.lastRead = now
	if p.onRead != nil {
		p.onRead(p)
	}
	for _, pr := range p.presses {
		if pr.pos == pos && now >= pr.from && now < pr.to {
			return true
		}
	}
	return false
}

func (p *scriptPanel) PlayTone(pos types.Position) { p.tones = append(p.tones, pos) }
func (p *scriptPanel) StopTone(types.Position)     { p.stops++ }
func (p *scriptPanel) PlayFault()                  { p.faults++; p.faultOn = true }
func (p *scriptPanel) StopFault()                  { p.faultOn = false }

func (p *scriptPanel) anyLit() bool {
	for _, on := range p.leds {
		if on {
			return true
		}
	}
	return false
}

// fixedSource replays ps in order, then repeats the last one.
type fixedSource struct {
	ps []types.Position
	i  int
}

func (s *fixedSource) NextPosition() types.Position {
	p := s.ps[len(s.ps)-1]
	if s.i < len(s.ps) {
		p = s.ps[s.i]
	}
	s.i++
	return p
}

func source(ps ...types.Position) *fixedSource { return &fixedSource{ps: ps} }

func testMatch() MatchConfig {
	return MatchConfig{StepTimeout: 1000 * ms, Settle: 20 * ms, Poll: 5 * ms, Feedback: 50 * ms}
}

func testConfig() Config {
	return Config{
		Base:  Timing{On: 100 * ms, Gap: 50 * ms},
		Match: testMatch(),
		Cue:   CueConfig{Flashes: 2, On: 10 * ms, Off: 10 * ms, FailHold: 100 * ms},
	}
}
