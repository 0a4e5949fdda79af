package main

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"repeat-go/bus"
	"repeat-go/services/game"
	"repeat-go/services/hal"
	"repeat-go/types"
)

const refresh = 30 * time.Millisecond

var keyPos = map[string]types.Position{
	"1": types.Green, "q": types.Green,
	"2": types.Red, "w": types.Red,
	"3": types.Blue, "s": types.Blue,
	"4": types.Yellow, "a": types.Yellow,
}

var (
	litColor = [types.NumPositions]lipgloss.Color{"#22c55e", "#ef4444", "#3b82f6", "#eab308"}
	dimColor = [types.NumPositions]lipgloss.Color{"#14532d", "#7f1d1d", "#1e3a8a", "#713f12"}

	padStyle    = lipgloss.NewStyle().Width(14).Height(5).Align(lipgloss.Center, lipgloss.Center).Margin(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fff"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	lostStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
)

type pad struct {
	led, button hal.GPIOPin
}

// model renders the panel by reading the same fake pins the game drives.
type model struct {
	pads      [types.NumPositions]pad
	activeLow bool
	hold      time.Duration
	conn      *bus.Connection
	events    *bus.Subscription

	state types.GameState
	last  *types.OutcomeEvent
	best  int
}

type tickMsg time.Time

type busMsg struct{ m *bus.Message }

func newModel(pins hal.PinFactory, cfg types.PanelConfig, hold time.Duration, conn *bus.Connection) model {
	m := model{activeLow: cfg.ActiveLow, hold: hold, conn: conn, state: types.GameState{State: "booting"}}
	for _, p := range types.Positions {
		m.pads[p].led, _ = pins.ByNumber(cfg.LEDs[p])
		m.pads[p].button, _ = pins.ByNumber(cfg.Buttons[p])
	}
	m.events = conn.Subscribe(bus.T("game", "#"))
	return m
}

func tick() tea.Cmd {
	return tea.Tick(refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func listen(sub *bus.Subscription) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-sub.Channel()
		if !ok {
			return nil
		}
		return busMsg{msg}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), listen(m.events))
}

// press drives the button pin to its pressed level for the hold time.
func (m model) press(p types.Position) {
	b := m.pads[p].button
	if b == nil {
		return
	}
	b.Set(!m.activeLow)
	time.AfterFunc(m.hold, func() { b.Set(m.activeLow) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "ctrl+c", "esc":
			m.conn.Unsubscribe(m.events)
			return m, tea.Quit
		case "enter", " ":
			m.conn.Publish(m.conn.NewMessage(game.TopicStart, nil, false))
		default:
			if p, ok := keyPos[k]; ok {
				m.press(p)
			}
		}
	case tickMsg:
		return m, tick()
	case busMsg:
		switch ev := msg.m.Payload.(type) {
		case types.GameState:
			m.state = ev
			if ev.State == "presenting" && ev.Round == 1 {
				m.last = nil
			}
		case types.OutcomeEvent:
			if ev.Kind == "success" && ev.Round > m.best {
				m.best = ev.Round
			}
			if ev.Kind != "success" {
				m.last = &ev
			}
		}
		return m, listen(m.events)
	}
	return m, nil
}

func (m model) lit(p types.Position) bool {
	led := m.pads[p].led
	return led != nil && led.Get()
}

func (m model) renderPad(p types.Position) string {
	c := dimColor[p]
	if m.lit(p) {
		c = litColor[p]
	}
	return padStyle.Background(c).Foreground(lipgloss.Color("#000")).Render(strings.ToUpper(p.String()))
}

func (m model) View() string {
	grid := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderPad(types.Green), m.renderPad(types.Red)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderPad(types.Yellow), m.renderPad(types.Blue)),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("repeat"))
	b.WriteString("\n\n")
	b.WriteString(grid)
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render("state " + m.state.State + "  round " + strconv.Itoa(m.state.Round) + "  best " + strconv.Itoa(m.best)))
	b.WriteString("\n")
	if m.last != nil {
		line := m.last.Kind + " at step " + strconv.Itoa(m.last.Index+1) + ": wanted " + m.last.Expected
		if m.last.Actual != "" {
			line += ", got " + m.last.Actual
		}
		b.WriteString(lostStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render("q w / a s or 1-4: pads   enter: start   esc: quit"))
	b.WriteString("\n")
	return b.String()
}
