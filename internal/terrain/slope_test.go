package terrain

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/tileset"
)

var dirt = core.RGB{R: 110, G: 70, B: 30}

func flat(int, int) core.RGB { return dirt }

func TestErodeGroundCorners(t *testing.T) {
	tests := []struct {
		name     string
		heights  []int
		expected []Slope
	}{
		{
			name:     "regression table",
			heights:  []int{5, 5, 3, 3, 6, 6},
			expected: []Slope{SlopeNone, SlopeNone, SlopeLeft, SlopeRight, SlopeNone, SlopeNone},
		},
		{
			name:     "single bump is not double sloped",
			heights:  []int{5, 3, 5},
			expected: []Slope{SlopeNone, SlopeLeft, SlopeNone},
		},
		{
			name:     "plateau then drop",
			heights:  []int{6, 4, 4, 7},
			expected: []Slope{SlopeNone, SlopeLeft, SlopeRight, SlopeNone},
		},
		{
			name:     "staircase down",
			heights:  []int{3, 4, 5},
			expected: []Slope{SlopeRight, SlopeRight, SlopeNone},
		},
		{
			name:     "flat",
			heights:  []int{4, 4, 4},
			expected: []Slope{SlopeNone, SlopeNone, SlopeNone},
		},
		{
			name:     "empty",
			heights:  nil,
			expected: []Slope{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ErodeGroundCorners(tc.heights)
			if len(got) != len(tc.expected) {
				t.Fatalf("len = %d, expected %d", len(got), len(tc.expected))
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("column %d = %v, expected %v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestMakeGroundTileRight(t *testing.T) {
	tc := tileset.New(8)
	id := MakeGroundTile(tc, rand.New(rand.NewSource(1)), flat, SlopeRight)

	erased := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if !tc.IsSet(id, x, y) {
				erased++
			}
		}
	}
	if erased != 8 {
		t.Errorf("right slope erased %d pixels, expected 8", erased)
	}
	for _, p := range [][2]int{{7, 0}, {4, 0}, {5, 1}, {7, 2}} {
		if tc.IsSet(id, p[0], p[1]) {
			t.Errorf("pixel %v should be eroded", p)
		}
	}
	if !tc.IsSet(id, 6, 2) || !tc.IsSet(id, 3, 0) {
		t.Error("erosion went past the staircase")
	}
}

func TestMakeGroundTileLeft(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		tc := tileset.New(8)
		id := MakeGroundTile(tc, rand.New(rand.NewSource(seed)), flat, SlopeLeft)
		if tc.IsSet(id, 0, 0) {
			t.Fatalf("seed %d: corner pixel must always be eroded", seed)
		}
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if x+y > 3 && !tc.IsSet(id, x, y) {
					t.Fatalf("seed %d: pixel (%d,%d) eroded beyond distance 3", seed, x, y)
				}
			}
		}
		if !tc.IsSet(id, 7, 0) {
			t.Fatalf("seed %d: left slope touched the right corner", seed)
		}
	}
}

func TestMakeGroundTileLeftTiers(t *testing.T) {
	const tiles = 600
	rng := rand.New(rand.NewSource(11))
	tc := tileset.New(8)
	var erased, total [4]int
	for i := 0; i < tiles; i++ {
		id := MakeGroundTile(tc, rng, flat, SlopeLeft)
		for d := range erased {
			for x := 0; x <= d; x++ {
				total[d]++
				if !tc.IsSet(id, x, d-x) {
					erased[d]++
				}
			}
		}
	}

	for d, want := range leftErosion {
		got := float64(erased[d]) / float64(total[d])
		if got < want-0.08 || got > want+0.08 {
			t.Errorf("ring %d erased at rate %.2f, expected about %.2f", d, got, want)
		}
	}
	if leftErosion[1] != leftErosion[2] {
		t.Errorf("rings 1 and 2 = %v, %v, expected the same tier", leftErosion[1], leftErosion[2])
	}
}

func TestMakeGroundTileBoth(t *testing.T) {
	tc := tileset.New(8)
	id := MakeGroundTile(tc, rand.New(rand.NewSource(2)), flat, SlopeBoth)
	if tc.IsSet(id, 0, 0) || tc.IsSet(id, 7, 0) {
		t.Error("both corners should be eroded")
	}
}

func TestSlopeBuilderReuse(t *testing.T) {
	tc := tileset.New(8)
	base := tc.AddTile()
	tc.FillTile(base, dirt)
	b := NewSlopeBuilder(tc, rand.New(rand.NewSource(3)), flat, base)

	if b.Tile(SlopeNone) != base {
		t.Error("SlopeNone should map to the base tile")
	}
	left := b.Tile(SlopeLeft)
	if b.Tile(SlopeLeft) != left {
		t.Error("slope tile not reused")
	}
	right := b.Tile(SlopeRight)
	if right == left || tc.Len() != 3 {
		t.Errorf("expected 3 tiles, got %d", tc.Len())
	}
}

func TestApplySlopes(t *testing.T) {
	heights := []int{5, 5, 3, 3, 6, 6}
	g := NewGrid(len(heights), 10)
	g.FillColumns(heights, ColumnSpec{GroundDepth: 2, Surface: 0, Subsoil: 1})

	tc := tileset.New(8)
	base := tc.AddTile()
	tc.FillTile(base, dirt)
	b := NewSlopeBuilder(tc, rand.New(rand.NewSource(1)), flat, base)

	changed := g.ApplySlopes(heights, ErodeGroundCorners(heights), b)
	if changed != 2 {
		t.Fatalf("ApplySlopes() = %d, expected 2", changed)
	}
	if got := g.At(2, 3); got.Slope != SlopeLeft || got.Type != b.Tile(SlopeLeft) {
		t.Errorf("column 2 surface = %+v", got)
	}
	if got := g.At(3, 3); got.Slope != SlopeRight {
		t.Errorf("column 3 surface = %+v", got)
	}
	if got := g.At(2, 4); got.Slope != SlopeNone || got.Type != 1 {
		t.Errorf("subsoil changed: %+v", got)
	}
}

func TestShaderVaries(t *testing.T) {
	fill := Shader(42, dirt, 0.2)
	seen := map[core.RGB]bool{}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := fill(x, y)
			seen[c] = true
			if float64(c.R) > float64(dirt.R)*1.2+1 || float64(c.R) < float64(dirt.R)*0.8-1 {
				t.Fatalf("shade %v outside strength", c)
			}
		}
	}
	if len(seen) < 2 {
		t.Error("shader produced a flat color")
	}
}
