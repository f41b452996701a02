package random

import (
	"math/rand/v2"
)

// Random is the source the move selector draws tie-breaks from.
type Random interface {
	// Intn returns a value in [0, n). n <= 0 yields 0.
	Intn(n int) int
}

type mathRandom struct {
	rnd *rand.Rand
}

// New returns a source seeded from the runtime.
func New() Random {
	return &mathRandom{}
}

// NewSeeded returns a reproducible source, used for replayable terminal games.
func NewSeeded(seed uint64) Random {
	return &mathRandom{rnd: rand.New(rand.NewPCG(seed, seed))} //nolint: gosec // game tie-breaks
}

func (that *mathRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	if that.rnd == nil {
		return rand.IntN(n) //nolint: gosec // game tie-breaks
	}

	return that.rnd.IntN(n)
}
