package types

// ------------------------
// Positions
// ------------------------

// Position identifies one of the four button/LED/tone slots.
// Values run clockwise around the panel.
type Position uint8

const (
	Green Position = iota
	Red
	Blue
	Yellow
)

const NumPositions = 4

// Positions lists every slot in clockwise order.
var Positions = [NumPositions]Position{Green, Red, Blue, Yellow}

func (p Position) Valid() bool { return p < NumPositions }

func (p Position) String() string {
	switch p {
	case Green:
		return "green"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	default:
		return "invalid"
	}
}

// ------------------------
// Game state (retained on game/state)
// ------------------------

type GameState struct {
	State string `json:"state"` // "idle","presenting","awaiting_input","round_won","game_over"
	Round int    `json:"round"` // current sequence length
	TSms  int64  `json:"ts_ms"`
}

// ------------------------
// Round outcome (event on game/outcome)
// ------------------------

type OutcomeEvent struct {
	Kind     string `json:"kind"` // "success","mismatch","timeout"
	Round    int    `json:"round"`
	Index    int    `json:"index,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	TSms     int64  `json:"ts_ms"`
}

// ------------------------
// Controls
// ------------------------

// StartGame is the payload of game/control/start. Seed, when non-zero,
// replaces the configured seed for the next game only.
type StartGame struct {
	Seed int64 `json:"seed,omitempty"`
}
