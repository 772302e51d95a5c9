package service

import "math/rand"

// Random is the randomness source used by the question sampler. Production
// wiring binds the process-wide math/rand source; tests inject a seeded
// *rand.Rand to make sampling reproducible.
type Random interface {
	Perm(n int) []int
	Shuffle(n int, swap func(i, j int))
}

type mathRandom struct{}

// NewMathRandom returns the default Random backed by the shared math/rand
// top-level functions. Safe for concurrent use; generations never share state.
func NewMathRandom() Random {
	return mathRandom{}
}

func (mathRandom) Perm(n int) []int {
	return rand.Perm(n)
}

func (mathRandom) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}
