package fractal

import (
	"errors"
	"image"
	"math"
	"math/rand"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/texture"
)

// ErrNoAnchor is returned when leaves are scattered over an empty canvas.
var ErrNoAnchor = errors.New("fractal: no pixels to anchor leaves to")

const (
	// DefaultAttemptsPerLeaf sets MaxAttempts when a LeafSpec leaves it 0.
	DefaultAttemptsPerLeaf = 400

	strayChance  = 0.04
	strayRadius  = 0.6
	flecks       = 4
	fleckSpread  = 2
	radiusMargin = 4.0
)

// LeafSpec configures ScatterLeaves.
type LeafSpec struct {
	Count    int
	Color    core.RGB
	Alt      core.RGB
	TwoColor bool // pick Color or Alt per leaf
	Frames   int  // frames the flecks shimmer across

	// MaxAttempts caps sampling; 0 means Count*DefaultAttemptsPerLeaf.
	MaxAttempts int
}

// Leaf is one accepted cluster centre.
type Leaf struct {
	At     image.Point
	Stray  bool    // accepted off the silhouette
	Radius float64 // sampled distance from the centroid, 1 at the ellipse edge
}

// LeafStats describes one ScatterLeaves call.
type LeafStats struct {
	Placed   int
	Attempts int
	Capped   bool
	Leaves   []Leaf // in placement order
}

// ScatterLeaves places Count leaf clusters. Candidate points are drawn from
// an ellipse around the centroid of what is already on the canvas; a point
// is accepted when it lands on a set pixel, or rarely when it is close to
// the centre. Accepted leaves become set pixels themselves, so clusters
// accrete around the silhouette.
//
// A cluster is a plus shape present in every frame and four nearby flecks,
// each shown in a random subset of frames.
//
// When MaxAttempts samples pass without placing every leaf, the call stops
// and reports Capped.
func ScatterLeaves(c *texture.Canvas, rng *rand.Rand, spec LeafSpec) (LeafStats, error) {
	var stats LeafStats
	if spec.Count <= 0 {
		return stats, nil
	}
	cx, cy, ok := c.Centroid()
	if !ok {
		return stats, ErrNoAnchor
	}

	b := c.Bounds()
	rx := math.Max(float64(b.W)/2+radiusMargin, 2*radiusMargin)
	ry := math.Max(float64(b.H)/2+radiusMargin, 2*radiusMargin)
	limit := spec.MaxAttempts
	if limit <= 0 {
		limit = spec.Count * DefaultAttemptsPerLeaf
	}
	frames := core.Max(1, spec.Frames)

	for stats.Placed < spec.Count {
		if stats.Attempts >= limit {
			stats.Capped = true
			break
		}
		stats.Attempts++

		theta := rng.Float64() * 2 * math.Pi
		r := math.Sqrt(rng.Float64())
		x := round(cx + math.Cos(theta)*r*rx)
		y := round(cy + math.Sin(theta)*r*ry)

		onSilhouette := c.IsSet(x, y)
		if !onSilhouette && !(r < strayRadius && core.Chance(rng, strayChance)) {
			continue
		}

		col := spec.Color
		if spec.TwoColor && rng.Intn(2) == 1 {
			col = spec.Alt
		}
		placeLeaf(c, rng, x, y, col, frames)
		stats.Leaves = append(stats.Leaves, Leaf{At: image.Pt(x, y), Stray: !onSilhouette, Radius: r})
		stats.Placed++
	}
	return stats, nil
}

func placeLeaf(c *texture.Canvas, rng *rand.Rand, x, y int, col core.RGB, frames int) {
	c.Set(x, y, col, texture.AllFrames)
	c.Set(x-1, y, col, texture.AllFrames)
	c.Set(x+1, y, col, texture.AllFrames)
	c.Set(x, y-1, col, texture.AllFrames)
	c.Set(x, y+1, col, texture.AllFrames)

	for i := 0; i < flecks; i++ {
		fx := x + rng.Intn(2*fleckSpread+1) - fleckSpread
		fy := y + rng.Intn(2*fleckSpread+1) - fleckSpread
		for f := 0; f < frames; f++ {
			if rng.Intn(2) == 0 {
				c.Set(fx, fy, col, f)
			}
		}
	}
}
