// Package core provides fundamental types and utilities shared by the
// generators and the preview front-ends. It has no external dependencies so
// generation logic stays pure and testable.
package core

// Rect represents an axis-aligned rectangle in tile or cell units.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Shift returns the rectangle moved by (dx, dy) and kept inside bounds.
// A rectangle larger than bounds is pinned to the bounds' top-left corner.
func (r Rect) Shift(dx, dy int, bounds Rect) Rect {
	r.X = Clamp(r.X+dx, bounds.X, Max(bounds.X, bounds.Right()-r.W))
	r.Y = Clamp(r.Y+dy, bounds.Y, Max(bounds.Y, bounds.Bottom()-r.H))
	return r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
