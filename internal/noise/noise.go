// Package noise implements the 1D value noise and fractal Brownian motion
// used for terrain height-fields and hill silhouettes. Every function is
// pure: the same seed and input always yield the same bits.
package noise

import "math"

// DefaultOctaves is the octave count used when callers have no preference.
const DefaultOctaves = 8

// HashNoise returns a pseudo-random value in [0, 1) derived from x and seed.
func HashNoise(seed, x float64) float64 {
	v := math.Sin(x*12.9898+seed*78.233) * 43758.5453
	return v - math.Floor(v)
}

// ValueNoise interpolates linearly between the hash values at the integer
// lattice points around x.
func ValueNoise(seed, x float64) float64 {
	x0 := math.Floor(x)
	t := x - x0
	a := HashNoise(seed, x0)
	b := HashNoise(seed, x0+1)
	return a + (b-a)*t
}

// FBM sums octaves 1..octaves of value noise at doubling frequency and
// amplitude persistence^i.
func FBM(seed, x, persistence float64, octaves int) float64 {
	var sum float64
	freq := 1.0
	amp := 1.0
	for i := 1; i <= octaves; i++ {
		freq *= 2
		amp *= persistence
		sum += ValueNoise(seed, x*freq) * amp
	}
	return sum
}

// MaxFBM returns the supremum of FBM for the given persistence and octave
// count, useful for normalizing samples into [0, 1).
func MaxFBM(persistence float64, octaves int) float64 {
	var sum float64
	amp := 1.0
	for i := 1; i <= octaves; i++ {
		amp *= persistence
		sum += amp
	}
	return sum
}
