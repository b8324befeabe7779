// Package tileset assembles fixed-size square tiles into one shared canvas
// and finalizes them into a single uploaded image.
package tileset

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/gfx"
	"github.com/vovakirdan/scrollgen/internal/texture"
)

// RowWidth is the number of tile slots per row of the backing canvas.
const RowWidth = 16

// tileFrame is the canvas frame tiles are drawn into. Tiles are static, and
// an explicit frame keeps Erase working.
const tileFrame = 0

// Constructor allocates tile slots in a shared canvas. Tile ids are handed
// out sequentially from 0 and never freed. All drawing methods take
// tile-local coordinates; anything outside [0, dim) is dropped.
type Constructor struct {
	dim    int
	canvas *texture.Canvas
	count  int
}

// New creates a constructor for dim×dim tiles.
func New(dim int) *Constructor {
	return &Constructor{dim: dim, canvas: texture.NewCanvas()}
}

// Dim returns the tile edge length in pixels.
func (tc *Constructor) Dim() int {
	return tc.dim
}

// Len returns the number of allocated tiles.
func (tc *Constructor) Len() int {
	return tc.count
}

// AddTile reserves the next slot without drawing anything.
func (tc *Constructor) AddTile() int {
	id := tc.count
	tc.count++
	return id
}

// AddTilePixels reserves a slot and draws the given tile-local pixels into it.
func (tc *Constructor) AddTilePixels(pixels []texture.Pixel) int {
	id := tc.AddTile()
	for _, p := range pixels {
		tc.Set(id, p.X, p.Y, p.Color)
	}
	return id
}

// Offset returns the canvas position of the tile's top-left pixel.
func (tc *Constructor) Offset(id int) (x, y int) {
	return (id % RowWidth) * tc.dim, (id / RowWidth) * tc.dim
}

func (tc *Constructor) inTile(x, y int) bool {
	return x >= 0 && x < tc.dim && y >= 0 && y < tc.dim
}

func (tc *Constructor) valid(id int) bool {
	return id >= 0 && id < tc.count
}

// Set draws one pixel.
func (tc *Constructor) Set(id, x, y int, col core.RGB) {
	if !tc.valid(id) || !tc.inTile(x, y) {
		return
	}
	ox, oy := tc.Offset(id)
	tc.canvas.Set(ox+x, oy+y, col, tileFrame)
}

// FillTile paints every pixel of the tile.
func (tc *Constructor) FillTile(id int, col core.RGB) {
	tc.DrawRect(id, 0, 0, tc.dim, tc.dim, col)
}

// FillTileFunc paints every pixel of the tile with a per-pixel color.
func (tc *Constructor) FillTileFunc(id int, fill func(x, y int) core.RGB) {
	for y := 0; y < tc.dim; y++ {
		for x := 0; x < tc.dim; x++ {
			tc.Set(id, x, y, fill(x, y))
		}
	}
}

// DrawRect fills a w×h rectangle.
func (tc *Constructor) DrawRect(id, x, y, w, h int, col core.RGB) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			tc.Set(id, xx, yy, col)
		}
	}
}

// DrawLine rasterizes a one pixel line clipped to the tile.
func (tc *Constructor) DrawLine(id, x1, y1, x2, y2 int, col core.RGB) {
	// Shift into positive space so the canvas keeps points left of or
	// above the tile, then clip while copying.
	const pad = 1 << 16
	scratch := texture.NewCanvas()
	scratch.SetLine(x1+pad, y1+pad, x2+pad, y2+pad, 1, col, tileFrame)
	for _, p := range scratch.Pixels() {
		tc.Set(id, p.X-pad, p.Y-pad, col)
	}
}

// Erase removes one pixel.
func (tc *Constructor) Erase(id, x, y int) {
	if !tc.valid(id) || !tc.inTile(x, y) {
		return
	}
	ox, oy := tc.Offset(id)
	tc.canvas.Erase(ox+x, oy+y, tileFrame)
}

// IsSet reports whether a pixel of the tile is drawn.
func (tc *Constructor) IsSet(id, x, y int) bool {
	if !tc.valid(id) || !tc.inTile(x, y) {
		return false
	}
	ox, oy := tc.Offset(id)
	return tc.canvas.IsSet(ox+x, oy+y)
}

// Tileset is a finalized, uploaded tileset.
type Tileset struct {
	Name    string
	Image   gfx.Image
	Source  *image.RGBA
	TileDim int
	Count   int
	Columns int
}

// SourceRect returns the region of tile id inside the image.
func (ts *Tileset) SourceRect(id int) image.Rectangle {
	x := (id % ts.Columns) * ts.TileDim
	y := (id / ts.Columns) * ts.TileDim
	return image.Rect(x, y, x+ts.TileDim, y+ts.TileDim)
}

// Generate finalizes the tiles into one image covering every allocated
// slot and uploads it. A constructor with no drawn pixels yields a
// *texture.EmptyCanvasError; an upload failure a *gfx.ResourceBackendError.
func (tc *Constructor) Generate(b gfx.Backend, name string) (*Tileset, error) {
	sheet, err := tc.canvas.Generate()
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", name, err)
	}

	cols := core.Min(tc.count, RowWidth)
	rows := (tc.count + RowWidth - 1) / RowWidth
	img := image.NewRGBA(image.Rect(0, 0, cols*tc.dim, rows*tc.dim))
	draw.Draw(img, img.Bounds(), sheet.Image, image.Point{}, draw.Src)

	uploaded, err := b.Upload(name, img)
	if err != nil {
		return nil, &gfx.ResourceBackendError{Name: name, Err: err}
	}
	return &Tileset{
		Name:    name,
		Image:   uploaded,
		Source:  img,
		TileDim: tc.dim,
		Count:   tc.count,
		Columns: RowWidth,
	}, nil
}
