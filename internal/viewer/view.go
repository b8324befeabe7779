// Package viewer holds the scrolling state shared by the level front-ends
// and, behind the ebiten build tag, the graphical window itself.
package viewer

import (
	"github.com/vovakirdan/scrollgen/internal/core"
)

// Camera is a viewport over a level, in level pixels.
type Camera struct {
	X, Y   int
	ViewW  int
	ViewH  int
	LevelW int
	LevelH int
	Step   int // pixels moved per scroll action
}

// NewCamera creates a camera at the bottom-left of the level, where the
// ground is.
func NewCamera(levelW, levelH, viewW, viewH, step int) *Camera {
	if step < 1 {
		step = 1
	}
	c := &Camera{ViewW: viewW, ViewH: viewH, LevelW: levelW, LevelH: levelH, Step: step}
	c.Y = levelH - viewH
	c.move(0, 0)
	return c
}

// Scroll moves the camera for a scroll action and reports whether it moved.
func (c *Camera) Scroll(a core.Action) bool {
	dx, dy := a.ScrollDelta()
	if dx == 0 && dy == 0 {
		return false
	}
	x, y := c.X, c.Y
	c.move(dx*c.Step, dy*c.Step)
	return c.X != x || c.Y != y
}

// Resize changes the viewport and keeps the camera inside the level.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewW, c.ViewH = viewW, viewH
	c.move(0, 0)
}

// Rect returns the visible window in level pixels.
func (c *Camera) Rect() core.Rect {
	return core.NewRect(c.X, c.Y, c.ViewW, c.ViewH)
}

// Offset returns where the level origin lands on screen for a layer that
// scrolls at the given fraction of camera speed.
func (c *Camera) Offset(parallax float64) (x, y float64) {
	return -float64(c.X) * parallax, -float64(c.Y)
}

func (c *Camera) move(dx, dy int) {
	r := c.Rect().Shift(dx, dy, core.NewRect(0, 0, c.LevelW, c.LevelH))
	c.X, c.Y = r.X, r.Y
}

// Animator steps sprite animation frames at a fraction of the update rate.
type Animator struct {
	Frame   int
	Playing bool
	every   int
	count   int
}

// NewAnimator advances one frame every `every` ticks while playing.
func NewAnimator(every int) *Animator {
	if every < 1 {
		every = 1
	}
	return &Animator{Playing: true, every: every}
}

// Tick counts one update and reports whether the frame changed.
func (a *Animator) Tick() bool {
	if !a.Playing {
		return false
	}
	a.count++
	if a.count < a.every {
		return false
	}
	a.count = 0
	a.Frame++
	return true
}

// Next steps one frame regardless of playback.
func (a *Animator) Next() {
	a.Frame++
	a.count = 0
}

// View combines a camera and an animator and routes actions to them.
type View struct {
	Camera *Camera
	Anim   *Animator
}

// Result is what the caller must do after Handle.
type Result int

const (
	ResultNone Result = iota
	ResultRedraw
	ResultRegenerate
	ResultQuit
)

// Handle applies one action.
func (v *View) Handle(a core.Action) Result {
	switch a {
	case core.ActionQuit:
		return ResultQuit
	case core.ActionRegenerate:
		return ResultRegenerate
	case core.ActionTogglePlay:
		v.Anim.Playing = !v.Anim.Playing
		return ResultNone
	case core.ActionNextFrame:
		v.Anim.Next()
		return ResultRedraw
	}
	if v.Camera.Scroll(a) {
		return ResultRedraw
	}
	return ResultNone
}
