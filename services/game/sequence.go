package game

import (
	"math/rand"
	"time"

	"repeat-go/types"
)

// Sequence is the ordered list of positions the player must reproduce.
// It only ever grows; Extend returns a new slice so earlier views stay valid.
type Sequence []types.Position

// Source draws positions uniformly from the four slots.
type Source interface {
	NextPosition() types.Position
}

type randSource struct {
	r *rand.Rand
}

// NewSource returns a Source seeded with seed. Seed 0 seeds from the clock.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

func (s *randSource) NextPosition() types.Position {
	return types.Position(s.r.Intn(types.NumPositions))
}

// Generator grows sequences one draw at a time.
type Generator struct {
	src Source
}

func NewGenerator(src Source) *Generator { return &Generator{src: src} }

// Extend appends one fresh draw to seq. Consecutive repeats are allowed.
func (g *Generator) Extend(seq Sequence) Sequence {
	out := make(Sequence, len(seq)+1)
	copy(out, seq)
	out[len(seq)] = g.src.NextPosition()
	return out
}
