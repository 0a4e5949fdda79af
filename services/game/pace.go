package game

// Tier overrides playback timing from round FromRound onwards.
type Tier struct {
	FromRound int
	Timing
}

// Pace picks the timing for round. The tier with the highest FromRound not
// above round wins; with no matching tier the base timing applies.
func Pace(round int, base Timing, tiers []Tier) Timing {
	out, from := base, 0
	for _, t := range tiers {
		if t.FromRound <= round && t.FromRound >= from {
			out, from = t.Timing, t.FromRound
		}
	}
	return out
}
