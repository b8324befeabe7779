package noise

import (
	"math"
	"testing"
)

func TestFBMDeterministic(t *testing.T) {
	first := FBM(0.42, 0.3, 0.75, 8)
	for i := 0; i < 100; i++ {
		if got := FBM(0.42, 0.3, 0.75, 8); math.Float64bits(got) != math.Float64bits(first) {
			t.Fatalf("FBM() = %v on call %d, expected %v", got, i, first)
		}
	}
}

func TestHashNoiseRange(t *testing.T) {
	for i := -500; i < 500; i++ {
		v := HashNoise(0.7, float64(i)*0.37)
		if v < 0 || v >= 1 {
			t.Fatalf("HashNoise() = %v out of [0,1)", v)
		}
	}
}

func TestValueNoiseLattice(t *testing.T) {
	seed := 0.13
	tests := []float64{-3, 0, 1, 17}
	for _, x := range tests {
		if ValueNoise(seed, x) != HashNoise(seed, x) {
			t.Errorf("ValueNoise(%v) should equal HashNoise at lattice points", x)
		}
	}

	a, b := HashNoise(seed, 2), HashNoise(seed, 3)
	mid := ValueNoise(seed, 2.5)
	if math.Abs(mid-(a+b)/2) > 1e-12 {
		t.Errorf("ValueNoise(2.5) = %v, expected midpoint %v", mid, (a+b)/2)
	}
}

func TestFBMBounds(t *testing.T) {
	tests := []struct {
		name        string
		persistence float64
		octaves     int
	}{
		{"default", 0.75, DefaultOctaves},
		{"rough", 0.9, 4},
		{"smooth", 0.3, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			max := MaxFBM(tc.persistence, tc.octaves)
			for i := 0; i < 200; i++ {
				v := FBM(0.5, float64(i)*0.05, tc.persistence, tc.octaves)
				if v < 0 || v >= max {
					t.Fatalf("FBM() = %v outside [0,%v)", v, max)
				}
			}
		})
	}
}

func TestFBMZeroOctaves(t *testing.T) {
	if FBM(0.1, 1, 0.5, 0) != 0 {
		t.Error("FBM with zero octaves must be 0")
	}
}

func TestSeedChangesOutput(t *testing.T) {
	if FBM(0.1, 0.3, 0.75, 8) == FBM(0.2, 0.3, 0.75, 8) {
		t.Error("different seeds produced identical samples")
	}
}
