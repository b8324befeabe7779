package terrain

import (
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/tileset"
)

// Slope is the corner erosion applied to a surface tile.
type Slope uint8

const (
	SlopeNone Slope = iota
	SlopeLeft
	SlopeRight
	SlopeBoth
)

// String returns a human-readable name for the slope.
func (s Slope) String() string {
	switch s {
	case SlopeNone:
		return "none"
	case SlopeLeft:
		return "left"
	case SlopeRight:
		return "right"
	case SlopeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Erosion odds by Manhattan distance from the top-left corner. The three
// tiers are the corner pixel (always), the next band (2/3) and the outer
// ring (1/4); the middle tier is two rings wide so the cut reaches d=3.
var leftErosion = [...]float64{1, 2.0 / 3, 2.0 / 3, 0.25}

// rightErosion lists the fixed pixels cut from the top-right corner as
// offsets from the right edge: {row, columns from the right}.
var rightErosion = [...][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 1}, {1, 2}, {1, 3},
	{2, 1},
}

// MakeGroundTile allocates a tile, paints it with fill and erodes the
// corners for slope. The left corner is eroded at random, the right one
// always loses the same eight pixels.
func MakeGroundTile(tc *tileset.Constructor, rng *rand.Rand, fill func(x, y int) core.RGB, slope Slope) int {
	id := tc.AddTile()
	tc.FillTileFunc(id, fill)

	if slope == SlopeLeft || slope == SlopeBoth {
		for d, p := range leftErosion {
			for x := 0; x <= d; x++ {
				if core.Chance(rng, p) {
					tc.Erase(id, x, d-x)
				}
			}
		}
	}
	if slope == SlopeRight || slope == SlopeBoth {
		dim := tc.Dim()
		for _, off := range rightErosion {
			tc.Erase(id, dim-off[1], off[0])
		}
	}
	return id
}

// ErodeGroundCorners decides which surface tiles get a slope. Rows grow
// downward, so a smaller row is higher ground. Where the ground rises the
// rising column gets SlopeLeft; where it falls the column before the drop
// gets SlopeRight, unless that column was just given SlopeLeft.
func ErodeGroundCorners(heights []int) []Slope {
	marks := make([]Slope, len(heights))
	leftState := false
	for i := 1; i < len(heights); i++ {
		switch {
		case heights[i] < heights[i-1]:
			marks[i] = SlopeLeft
			leftState = true
		case heights[i] > heights[i-1]:
			if !leftState {
				marks[i-1] = SlopeRight
			}
			leftState = false
		default:
			leftState = false
		}
	}
	return marks
}

// SlopeBuilder creates slope variants of the ground tile on demand and
// reuses them.
type SlopeBuilder struct {
	tc    *tileset.Constructor
	rng   *rand.Rand
	fill  func(x, y int) core.RGB
	base  int
	cache map[Slope]int
}

// NewSlopeBuilder creates a builder whose SlopeNone tile is base.
func NewSlopeBuilder(tc *tileset.Constructor, rng *rand.Rand, fill func(x, y int) core.RGB, base int) *SlopeBuilder {
	return &SlopeBuilder{
		tc:    tc,
		rng:   rng,
		fill:  fill,
		base:  base,
		cache: map[Slope]int{SlopeNone: base},
	}
}

// Tile returns the tile id for a slope kind, creating it the first time.
func (b *SlopeBuilder) Tile(s Slope) int {
	if id, ok := b.cache[s]; ok {
		return id
	}
	id := MakeGroundTile(b.tc, b.rng, b.fill, s)
	b.cache[s] = id
	return id
}

// ApplySlopes replaces the surface tile of every marked column. Columns
// whose surface row is not solid are left alone.
func (g *Grid) ApplySlopes(heights []int, marks []Slope, b *SlopeBuilder) int {
	changed := 0
	for col, s := range marks {
		if s == SlopeNone || col >= len(heights) {
			continue
		}
		t := g.At(col, heights[col])
		if t == nil || !t.Solid {
			continue
		}
		t.Type = b.Tile(s)
		t.Slope = s
		changed++
	}
	return changed
}

// Shader returns a fill function that varies base with 2D Perlin noise, so
// ground tiles read as soil rather than flat color. strength is the largest
// relative brightness change.
func Shader(seed int64, base core.RGB, strength float64) func(x, y int) core.RGB {
	p := perlin.NewPerlin(2, 2, 3, seed)
	return func(x, y int) core.RGB {
		n := p.Noise2D(float64(x)*0.25, float64(y)*0.25)
		return base.Shade(1 + core.ClampF(n, -1, 1)*strength)
	}
}
