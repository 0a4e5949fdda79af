package game

import (
	"strconv"

	"repeat-go/types"
)

type OutcomeKind uint8

const (
	Success OutcomeKind = iota
	Mismatch
	Timeout
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Mismatch:
		return "mismatch"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Outcome is the result of one reproduction attempt.
// Index, Expected and Actual are meaningful for Mismatch; Timeout fills
// Index and Expected with the step that went unanswered.
type Outcome struct {
	Kind     OutcomeKind
	Index    int
	Expected types.Position
	Actual   types.Position
}

func (o Outcome) String() string {
	switch o.Kind {
	case Mismatch:
		return "mismatch at " + strconv.Itoa(o.Index) + ": expected " + o.Expected.String() + ", got " + o.Actual.String()
	case Timeout:
		return "timeout at " + strconv.Itoa(o.Index)
	default:
		return o.Kind.String()
	}
}
