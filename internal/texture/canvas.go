// Package texture provides the sparse multi-frame pixel canvas that every
// procedural generator draws into, and its finalization into a sprite sheet.
//
// A canvas grows in every direction as pixels are recorded. Frames are
// created lazily by index; pixels recorded with AllFrames live in a separate
// layer that is replicated into every frame when the sheet is generated, so
// the frame count at generation time governs replication.
package texture

import (
	"errors"
	"math"

	"github.com/vovakirdan/scrollgen/internal/core"
)

// AllFrames is the frame index that replicates a pixel into every frame.
const AllFrames = -1

// ErrAlreadyClamped is returned by Clamp when the canvas was already shifted.
var ErrAlreadyClamped = errors.New("texture: canvas already clamped")

// Pixel is one recorded pixel.
type Pixel struct {
	X, Y  int
	Frame int
	Color core.RGB
}

type point struct {
	x, y int
}

type layer map[point]core.RGB

// Canvas is a sparse, multi-frame pixel buffer. The zero value is not ready
// for use; call NewCanvas.
type Canvas struct {
	frames []layer
	all    layer

	minX, minY int
	maxW, maxH int

	border  int
	clamped bool
}

// NewCanvas creates an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{
		all:  make(layer),
		minX: math.MaxInt,
		minY: math.MaxInt,
	}
}

// Set records a pixel. Negative coordinates are ignored; generators routinely
// compute them near the edge of a recursion and rely on the drop.
func (c *Canvas) Set(x, y int, col core.RGB, frame int) {
	if x < 0 || y < 0 {
		return
	}
	c.layerFor(frame)[point{x, y}] = col
	c.grow(x, y)
}

func (c *Canvas) layerFor(frame int) layer {
	if frame < 0 {
		return c.all
	}
	for len(c.frames) <= frame {
		c.frames = append(c.frames, make(layer))
	}
	return c.frames[frame]
}

func (c *Canvas) grow(x, y int) {
	c.minX = core.Min(c.minX, x)
	c.minY = core.Min(c.minY, y)
	c.maxW = core.Max(c.maxW, x+1)
	c.maxH = core.Max(c.maxH, y+1)
}

// SetRect fills a w×h rectangle whose top-left corner is (x, y).
func (c *Canvas) SetRect(x, y, w, h int, col core.RGB, frame int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.Set(xx, yy, col, frame)
		}
	}
}

// Erase removes a pixel from one explicit frame. A negative frame means
// frame 0. Pixels recorded with AllFrames are never erased. Bounds are not
// shrunk.
func (c *Canvas) Erase(x, y, frame int) {
	if frame < 0 {
		frame = 0
	}
	if frame >= len(c.frames) {
		return
	}
	delete(c.frames[frame], point{x, y})
}

// IsSet reports whether any frame, or the AllFrames layer, has a pixel at
// (x, y).
func (c *Canvas) IsSet(x, y int) bool {
	p := point{x, y}
	if _, ok := c.all[p]; ok {
		return true
	}
	for _, f := range c.frames {
		if _, ok := f[p]; ok {
			return true
		}
	}
	return false
}

// Width returns the width of the tightest bounding box of all pixels.
func (c *Canvas) Width() int {
	if c.empty() {
		return 0
	}
	return c.maxW - c.minX
}

// Height returns the height of the tightest bounding box of all pixels.
func (c *Canvas) Height() int {
	if c.empty() {
		return 0
	}
	return c.maxH - c.minY
}

// Bounds returns the tight bounding box in canvas coordinates.
func (c *Canvas) Bounds() core.Rect {
	if c.empty() {
		return core.Rect{}
	}
	return core.NewRect(c.minX, c.minY, c.Width(), c.Height())
}

// Frames returns the number of explicit frames, at least 1.
func (c *Canvas) Frames() int {
	return core.Max(1, len(c.frames))
}

// Len returns the number of recorded pixels across all layers.
func (c *Canvas) Len() int {
	n := len(c.all)
	for _, f := range c.frames {
		n += len(f)
	}
	return n
}

func (c *Canvas) empty() bool {
	return c.Len() == 0
}

// Pixels returns a snapshot of every recorded pixel. Order is unspecified.
func (c *Canvas) Pixels() []Pixel {
	out := make([]Pixel, 0, c.Len())
	for p, col := range c.all {
		out = append(out, Pixel{X: p.x, Y: p.y, Frame: AllFrames, Color: col})
	}
	for i, f := range c.frames {
		for p, col := range f {
			out = append(out, Pixel{X: p.x, Y: p.y, Frame: i, Color: col})
		}
	}
	return out
}

// Centroid returns the mean position of all distinct set coordinates.
// ok is false for an empty canvas.
func (c *Canvas) Centroid() (x, y float64, ok bool) {
	seen := make(map[point]struct{}, c.Len())
	for p := range c.all {
		seen[p] = struct{}{}
	}
	for _, f := range c.frames {
		for p := range f {
			seen[p] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 0, 0, false
	}
	var sx, sy int
	for p := range seen {
		sx += p.x
		sy += p.y
	}
	n := float64(len(seen))
	return float64(sx) / n, float64(sy) / n, true
}

// Clamp shifts every pixel so the bounding box starts at (buffer, buffer)
// and reserves the same border on the right and bottom of each frame. It can
// only be applied once.
func (c *Canvas) Clamp(buffer int) error {
	if c.clamped {
		return ErrAlreadyClamped
	}
	c.clamped = true
	c.border = buffer
	if c.empty() {
		return nil
	}

	dx := c.minX - buffer
	dy := c.minY - buffer
	c.all = shift(c.all, dx, dy)
	for i, f := range c.frames {
		c.frames[i] = shift(f, dx, dy)
	}
	c.minX -= dx
	c.minY -= dy
	c.maxW -= dx
	c.maxH -= dy
	return nil
}

func shift(l layer, dx, dy int) layer {
	out := make(layer, len(l))
	for p, col := range l {
		out[point{p.x - dx, p.y - dy}] = col
	}
	return out
}
