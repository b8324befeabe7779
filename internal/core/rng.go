package core

import (
	"math/rand"
	"time"
)

// NewRand returns a generator seeded with seed. A zero seed means "pick one
// from the clock", matching the --seed flag convention.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Uniform returns a float64 in [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Chance returns true with probability p.
func Chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}
