package level

import (
	"errors"
	"fmt"
	"image"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/fractal"
	"github.com/vovakirdan/scrollgen/internal/gfx"
	"github.com/vovakirdan/scrollgen/internal/noise"
	"github.com/vovakirdan/scrollgen/internal/terrain"
	"github.com/vovakirdan/scrollgen/internal/texture"
	"github.com/vovakirdan/scrollgen/internal/tileset"
)

const (
	// Trees are grown around this canvas point so recursion never reaches
	// negative coordinates; Clamp trims the margin afterwards.
	canvasOrigin = 512

	spriteBorder  = 1
	shadeStrength = 0.12
	plantDist     = 1.0
)

// Generate builds a level in one pass. Parameters are validated before any
// work. Decorations that come out empty are skipped with a warning; a
// backend failure or an empty ground tileset aborts the whole level.
func Generate(p Params, backend gfx.Backend, rng *rand.Rand, logger *log.Logger) (*Level, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cols, rows := p.Cols(), p.Rows()
	seed := rng.Float64()
	heights := terrain.HeightField(seed, cols, rows, p.Terrain)
	grid := terrain.NewGrid(cols, rows)

	tc := tileset.New(p.TileDim)
	groundFill := terrain.Shader(rng.Int63(), p.Ground, shadeStrength)
	surface := tc.AddTile()
	tc.FillTileFunc(surface, groundFill)
	subsoil := tc.AddTile()
	tc.FillTileFunc(subsoil, terrain.Shader(rng.Int63(), p.Subsoil, shadeStrength))
	water := terrain.TileEmpty
	if p.WaterRow > 0 {
		water = tc.AddTile()
		tc.FillTile(water, p.Water)
	}

	grid.FillColumns(heights, terrain.ColumnSpec{
		GroundDepth: p.GroundDepth,
		WallHeight:  p.WallHeight,
		WaterRow:    p.WaterRow,
		Surface:     surface,
		Subsoil:     subsoil,
		Water:       water,
	})

	marks := terrain.ErodeGroundCorners(heights)
	// Wall tops stay square.
	marks[0], marks[cols-1] = terrain.SlopeNone, terrain.SlopeNone
	builder := terrain.NewSlopeBuilder(tc, rng, groundFill, surface)
	sloped := grid.ApplySlopes(heights, marks, builder)

	ts, err := tc.Generate(backend, "ground")
	if err != nil {
		return nil, fmt.Errorf("level: ground tileset: %w", err)
	}
	logger.Debug("ground ready", "cols", cols, "rows", rows, "tiles", ts.Count, "sloped", sloped)

	lvl := &Level{
		Grid:    grid,
		Tileset: ts,
		Heights: heights,
		Seed:    seed,
		TileDim: p.TileDim,
		Stats:   Stats{SlopedTiles: sloped},
	}
	d := &decorator{p: p, backend: backend, rng: rng, logger: logger, lvl: lvl}
	if err := d.hills(); err != nil {
		return nil, err
	}
	if err := d.trees(); err != nil {
		return nil, err
	}
	return lvl, nil
}

type decorator struct {
	p       Params
	backend gfx.Backend
	rng     *rand.Rand
	logger  *log.Logger
	lvl     *Level
}

func (d *decorator) hills() error {
	kinds := [2]ElementKind{ElementHillFar, ElementHillNear}
	for i, h := range d.p.Hills {
		c := hillCanvas(d.rng.Float64(), d.p.WidthPx, d.p.HeightPx, h)
		sprite, err := d.finish(c, kinds[i].String(), false)
		if err != nil {
			return err
		}
		if sprite == nil {
			continue
		}
		d.lvl.Elements = append(d.lvl.Elements, Element{Kind: kinds[i], Sprite: sprite})
	}
	return nil
}

// hillCanvas draws a silhouette as one vertical line per pixel column, from
// the fBm ridge down to the bottom of the map.
func hillCanvas(seed float64, w, h int, hp HillParams) *texture.Canvas {
	c := texture.NewCanvas()
	norm := noise.MaxFBM(hp.Persistence, noise.DefaultOctaves)
	for x := 0; x < w; x++ {
		v := noise.FBM(seed, float64(x)*hp.Frequency, hp.Persistence, noise.DefaultOctaves) / norm
		ridge := h - 1 - int(hp.Offset+v*hp.Amplitude)
		c.SetLine(x, core.Max(ridge, 0), x, h-1, 1, hp.Color, texture.AllFrames)
	}
	return c
}

func (d *decorator) trees() error {
	t := d.p.Trees
	back := d.treeColumns(t.BackgroundCount, t.Spacing)
	for i, col := range back {
		c := texture.NewCanvas()
		fractal.Render(fractal.FractalPlant(t.Iterations), c, d.rng,
			fractal.Turtle{X: canvasOrigin, Y: canvasOrigin, Dist: plantDist}, t.BackTrunk, texture.AllFrames)
		d.leaves(c, i, fractal.LeafSpec{Count: t.Leaves, Color: t.BackLeaf, Frames: t.Frames})
		ok, err := d.place(c, ElementBackTree, fmt.Sprintf("back-tree-%d", i), col)
		if err != nil {
			return err
		}
		if ok {
			d.lvl.Stats.BackTrees++
		}
	}

	front := d.treeColumns(t.Count, t.Spacing)
	for i, col := range front {
		c := texture.NewCanvas()
		fractal.GrowTrunk(c, d.rng, canvasOrigin, canvasOrigin, t.Frames, t.Trunk)
		d.leaves(c, i, fractal.LeafSpec{Count: t.Leaves, Color: t.Leaf, Alt: t.LeafAlt, TwoColor: true, Frames: t.Frames})
		ok, err := d.place(c, ElementTree, fmt.Sprintf("tree-%d", i), col)
		if err != nil {
			return err
		}
		if ok {
			d.lvl.Stats.Trees++
		}
	}
	return nil
}

// treeColumns spreads up to n trees across the interior columns, at least
// spacing columns apart plus some jitter.
func (d *decorator) treeColumns(n, spacing int) []int {
	cols := d.lvl.Grid.Cols
	var out []int
	col := 1 + d.rng.Intn(spacing)
	for len(out) < n && col < cols-1 {
		out = append(out, col)
		col += spacing + d.rng.Intn(spacing/2+1)
	}
	return out
}

func (d *decorator) leaves(c *texture.Canvas, tree int, spec fractal.LeafSpec) {
	stats, err := fractal.ScatterLeaves(c, d.rng, spec)
	if err != nil {
		d.logger.Warn("leaves skipped", "tree", tree, "err", err)
		return
	}
	if stats.Capped {
		d.lvl.Stats.LeafCapped++
		d.logger.Warn("leaf budget exhausted", "tree", tree, "placed", stats.Placed, "wanted", spec.Count, "attempts", stats.Attempts)
	}
}

// place clamps a tree canvas, uploads it and anchors its root on the
// surface of col. It reports false when the tree was skipped.
func (d *decorator) place(c *texture.Canvas, kind ElementKind, name string, col int) (bool, error) {
	b := c.Bounds()
	sprite, err := d.finish(c, name, true)
	if err != nil || sprite == nil {
		return false, err
	}
	rootX := canvasOrigin - b.X + spriteBorder
	rootY := canvasOrigin - b.Y + spriteBorder
	flip := d.rng.Intn(2) == 1
	if flip {
		rootX = sprite.FrameWidth - 1 - rootX
	}

	dim := d.lvl.TileDim
	surfaceY := d.lvl.Heights[col] * dim
	d.lvl.Elements = append(d.lvl.Elements, Element{
		Kind:   kind,
		X:      col*dim + dim/2 - rootX,
		Y:      surfaceY - 1 - rootY,
		Root:   image.Point{X: rootX, Y: rootY},
		Flip:   flip,
		Sprite: sprite,
	})
	return true, nil
}

// finish turns a canvas into an uploaded sprite. An empty canvas is logged
// and yields a nil sprite; any other failure is returned.
func (d *decorator) finish(c *texture.Canvas, name string, clamp bool) (*gfx.Sprite, error) {
	if clamp {
		if err := c.Clamp(spriteBorder); err != nil {
			return nil, fmt.Errorf("level: %s: %w", name, err)
		}
	}
	sheet, err := c.Generate()
	var empty *texture.EmptyCanvasError
	if errors.As(err, &empty) {
		d.lvl.Stats.Skipped++
		d.logger.Warn("decoration skipped", "name", name, "err", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", name, err)
	}
	sprite, err := gfx.UploadSheet(d.backend, name, sheet)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", name, err)
	}
	return sprite, nil
}
