package domain

import (
	"math/rand/v2"
)

// Rand is the randomness the computer opponents draw from.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRand is safe for concurrent use.
var DefaultRand Rand = globalRand{}

// Pick returns a uniformly random element of values.
func Pick[T any](rnd Rand, values []T) T {
	return values[rnd.IntN(len(values))]
}
