// Package level runs the procedural generation pass for one level: the
// height-field and ground tiles, slope erosion, then the decorative hills
// and trees behind the playfield.
package level

import (
	"image"

	"github.com/vovakirdan/scrollgen/internal/gfx"
	"github.com/vovakirdan/scrollgen/internal/terrain"
	"github.com/vovakirdan/scrollgen/internal/tileset"
)

// ElementKind is the closed set of decorative elements.
type ElementKind uint8

const (
	ElementHillFar ElementKind = iota
	ElementHillNear
	ElementBackTree
	ElementTree
)

// String returns a human-readable name for the kind.
func (k ElementKind) String() string {
	switch k {
	case ElementHillFar:
		return "hill-far"
	case ElementHillNear:
		return "hill-near"
	case ElementBackTree:
		return "back-tree"
	case ElementTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Parallax returns how fast the element scrolls relative to the camera.
func (k ElementKind) Parallax() float64 {
	switch k {
	case ElementHillFar:
		return 0.25
	case ElementHillNear:
		return 0.5
	case ElementBackTree:
		return 0.8
	default:
		return 1
	}
}

// Element is a sprite placed in level pixel coordinates (top-left).
type Element struct {
	Kind   ElementKind
	X, Y   int
	Root   image.Point // where the drawn sprite touches the ground, sprite-relative
	Flip   bool        // draw mirrored horizontally
	Sprite *gfx.Sprite
}

// Stats summarizes a generation pass.
type Stats struct {
	SlopedTiles int
	Trees       int
	BackTrees   int
	Skipped     int // decorations dropped for being empty
	LeafCapped  int // trees whose leaf budget ran out
}

// Level is a generated level, read-only once returned.
type Level struct {
	Grid     *terrain.Grid
	Tileset  *tileset.Tileset
	Heights  []int
	Seed     float64
	TileDim  int
	Elements []Element // back to front
	Stats    Stats
}

// WidthPx returns the level width in pixels.
func (l *Level) WidthPx() int {
	return l.Grid.Cols * l.TileDim
}

// HeightPx returns the level height in pixels.
func (l *Level) HeightPx() int {
	return l.Grid.Rows * l.TileDim
}

// ElementsOf returns the elements of one kind, in draw order.
func (l *Level) ElementsOf(kind ElementKind) []Element {
	var out []Element
	for _, e := range l.Elements {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
