// Package export writes generated levels to disk: PNG sprite sheets, a
// flattened preview of the whole level and a YAML manifest describing the
// tile grid and where every sprite goes.
package export

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/scrollgen/internal/level"
)

// Compose flattens a level into one image as the camera at the origin
// would see it: sky, decorations back to front, then the tiles. frame
// selects the animation frame of every sprite.
func Compose(lvl *level.Level, frame int, sky color.Color) *image.RGBA {
	return ComposeView(lvl, frame, sky, image.Rect(0, 0, lvl.WidthPx(), lvl.HeightPx()))
}

// ComposeView renders the window view, in level pixels, into an image of
// the same size. Decorations scroll horizontally by their parallax factor.
func ComposeView(lvl *level.Level, frame int, sky color.Color, view image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, view.Dx(), view.Dy()))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(sky), image.Point{}, xdraw.Src)

	for _, e := range lvl.Elements {
		s := e.Sprite
		x := e.X - int(math.Round(float64(view.Min.X)*e.Kind.Parallax()))
		y := e.Y - view.Min.Y
		r := image.Rect(x, y, x+s.FrameWidth, y+s.FrameHeight)
		if !r.Overlaps(dst.Bounds()) {
			continue
		}
		s.Draw(dst, r.Min, frame, e.Flip)
	}

	ts := lvl.Tileset
	dim := lvl.TileDim
	c0, c1 := view.Min.X/dim, (view.Max.X+dim-1)/dim
	r0, r1 := view.Min.Y/dim, (view.Max.Y+dim-1)/dim
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			t := lvl.Grid.At(col, row)
			if t == nil || t.Type < 0 {
				continue
			}
			x, y := col*dim-view.Min.X, row*dim-view.Min.Y
			r := image.Rect(x, y, x+dim, y+dim)
			xdraw.Draw(dst, r, ts.Source, ts.SourceRect(t.Type).Min, xdraw.Over)
		}
	}
	return dst
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling,
// keeping pixel art crisp. A factor below 2 returns img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
