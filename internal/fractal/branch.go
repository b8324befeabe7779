package fractal

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/texture"
)

const (
	// MinSplitVolume is the volume a branch must exceed to fork.
	MinSplitVolume = 0.1
	// DefaultMaxSegments bounds a single Branch call.
	DefaultMaxSegments = 65536
	// TrunkVolume is the starting volume used by GrowTrunk.
	TrunkVolume = 4.0
)

// Fork angle range in degrees.
const (
	minFork = 1.0
	maxFork = 25.0
)

// BranchSpec configures one branching tree.
type BranchSpec struct {
	X, Y   float64
	Angle  float64 // degrees, 0 = up, clockwise positive
	Volume float64
	Frame  int
	Color  core.RGB

	// Sway shifts the tip of the first segment horizontally, carrying the
	// whole crown with it while the base stays put.
	Sway int

	// MaxSegments caps the number of drawn segments; 0 means
	// DefaultMaxSegments.
	MaxSegments int

	// OnSplit, if set, observes every fork.
	OnSplit func(parent, left, right float64)
}

// BranchStats describes one Branch call.
type BranchStats struct {
	Segments  int
	Splits    int
	MaxDepth  int
	Truncated bool
}

type branchTask struct {
	x, y   float64
	angle  float64
	volume float64
	depth  int
}

// Branch draws a tree whose segments are ceil(volume)*4 pixels long and
// ceil(volume) thick. A segment with volume above MinSplitVolume forks into
// two children whose volumes sum to its own, split at a uniform random
// fraction, each turned 1-25 degrees away from the parent. The left child
// is always drawn before the right one.
func Branch(c *texture.Canvas, rng *rand.Rand, spec BranchSpec) BranchStats {
	limit := spec.MaxSegments
	if limit <= 0 {
		limit = DefaultMaxSegments
	}

	var stats BranchStats
	stack := []branchTask{{x: spec.X, y: spec.Y, angle: spec.Angle, volume: spec.Volume}}
	for len(stack) > 0 {
		if stats.Segments >= limit {
			stats.Truncated = true
			break
		}
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		length := math.Ceil(t.volume) * 4
		ex, ey := advance(t.x, t.y, t.angle, length)
		if t.depth == 0 {
			ex += float64(spec.Sway)
		}
		c.SetLine(round(t.x), round(t.y), round(ex), round(ey), int(math.Ceil(t.volume)), spec.Color, spec.Frame)
		stats.Segments++
		stats.MaxDepth = core.Max(stats.MaxDepth, t.depth)

		if t.volume <= MinSplitVolume {
			continue
		}
		vl := rng.Float64() * t.volume
		vr := t.volume - vl
		left := branchTask{x: ex, y: ey, angle: t.angle - core.Uniform(rng, minFork, maxFork), volume: vl, depth: t.depth + 1}
		right := branchTask{x: ex, y: ey, angle: t.angle + core.Uniform(rng, minFork, maxFork), volume: vr, depth: t.depth + 1}
		if spec.OnSplit != nil {
			spec.OnSplit(t.volume, vl, vr)
		}
		stats.Splits++
		stack = append(stack, right, left)
	}
	return stats
}

// AnimatedBranch draws the same tree into frames 0..frames-1. Every frame
// replays one seed drawn from rng, so only the sway differs: the first half
// of the frames lean one pixel left, the second half one pixel right.
// The returned stats are those of the last frame.
func AnimatedBranch(c *texture.Canvas, rng *rand.Rand, spec BranchSpec, frames int) BranchStats {
	if frames < 1 {
		frames = 1
	}
	seed := rng.Int63()

	var stats BranchStats
	for f := 0; f < frames; f++ {
		s := spec
		s.Frame = f
		s.Sway = swayFor(f, frames)
		stats = Branch(c, rand.New(rand.NewSource(seed)), s)
	}
	return stats
}

func swayFor(frame, frames int) int {
	if frames == 1 {
		return 0
	}
	if frame < frames/2 {
		return -1
	}
	return 1
}

// GrowTrunk draws an upright animated tree of TrunkVolume rooted at (x, y).
func GrowTrunk(c *texture.Canvas, rng *rand.Rand, x, y float64, frames int, col core.RGB) BranchStats {
	return AnimatedBranch(c, rng, BranchSpec{
		X:      x,
		Y:      y,
		Angle:  0,
		Volume: TrunkVolume,
		Color:  col,
	}, frames)
}
