package viewer

import (
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scrollgen/internal/gfx"
	"github.com/vovakirdan/scrollgen/internal/level"
)

// GenerateFunc builds a level with the given seed, uploading through b.
type GenerateFunc func(b gfx.Backend, seed int64) (*level.Level, error)

// Options configures Run.
type Options struct {
	Title    string
	Seed     int64
	Scale    int // window pixels per level pixel
	ViewW    int // viewport in level pixels, 0 = whole level up to 480
	ViewH    int
	FrameTPS int // animation frames per second
	Sky      color.Color
	Generate GenerateFunc
	Logger   *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "scrollgen"
	}
	if o.Scale < 1 {
		o.Scale = 2
	}
	if o.FrameTPS < 1 {
		o.FrameTPS = 4
	}
	if o.Sky == nil {
		o.Sky = color.RGBA{R: 0x9c, G: 0xc9, B: 0xe8, A: 0xff}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// viewport picks the viewport for a level: the requested size, or the whole
// level capped at 480×270.
func viewport(o Options, lvl *level.Level) (int, int) {
	w, h := o.ViewW, o.ViewH
	if w <= 0 {
		w = min(lvl.WidthPx(), 480)
	}
	if h <= 0 {
		h = min(lvl.HeightPx(), 270)
	}
	return w, h
}
