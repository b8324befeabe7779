// Package terrain holds the tile grid of a level, the column height-field
// it is built from, and the slope erosion pass that shapes the surface.
package terrain

import (
	"math"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/noise"
)

// TileEmpty is the tile type of air.
const TileEmpty = -1

// MinRow is the highest row a column surface may reach. The rows above it
// stay clear for the sky and the hills drawn behind the map.
const MinRow = 4

// Tile is one cell of the level grid.
type Tile struct {
	Type   int
	Solid  bool
	Liquid bool
	Slope  Slope // visual slope of a surface tile, for collision shaping
}

// Grid is a row-major tile grid.
type Grid struct {
	Cols, Rows int
	Tiles      []Tile
}

// NewGrid creates a grid of empty tiles.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{Cols: cols, Rows: rows, Tiles: make([]Tile, cols*rows)}
	for i := range g.Tiles {
		g.Tiles[i].Type = TileEmpty
	}
	return g
}

// At returns the tile at (col, row), or nil when out of bounds.
func (g *Grid) At(col, row int) *Tile {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return nil
	}
	return &g.Tiles[row*g.Cols+col]
}

// IsSolid reports whether (col, row) is solid. Out of bounds is not.
func (g *Grid) IsSolid(col, row int) bool {
	t := g.At(col, row)
	return t != nil && t.Solid
}

// SurfaceRow returns the first solid row of a column, or -1.
func (g *Grid) SurfaceRow(col int) int {
	for row := 0; row < g.Rows; row++ {
		if g.IsSolid(col, row) {
			return row
		}
	}
	return -1
}

// SolidRuns counts the vertical runs of contiguous solid tiles in a column.
func (g *Grid) SolidRuns(col int) int {
	runs := 0
	prev := false
	for row := 0; row < g.Rows; row++ {
		s := g.IsSolid(col, row)
		if s && !prev {
			runs++
		}
		prev = s
	}
	return runs
}

// SolidCount returns the number of solid tiles in a column.
func (g *Grid) SolidCount(col int) int {
	n := 0
	for row := 0; row < g.Rows; row++ {
		if g.IsSolid(col, row) {
			n++
		}
	}
	return n
}

// HeightParams shapes the height-field.
type HeightParams struct {
	Persistence float64
	Frequency   float64 // noise units per column
	Amplitude   float64 // rows of variation
	Octaves     int
}

// HeightField samples one surface row per column from fBm with a single
// seed, so neighbouring columns stay continuous. Rows are clamped to
// [MinRow, rows-3].
func HeightField(seed float64, cols, rows int, p HeightParams) []int {
	octaves := p.Octaves
	if octaves <= 0 {
		octaves = noise.DefaultOctaves
	}
	norm := noise.MaxFBM(p.Persistence, octaves)
	if norm == 0 {
		norm = 1
	}
	lo, hi := MinRow, rows-3
	base := float64(lo+hi) / 2

	heights := make([]int, cols)
	for col := range heights {
		v := noise.FBM(seed, float64(col)*p.Frequency, p.Persistence, octaves)/norm - 0.5
		row := int(math.Round(base + v*2*p.Amplitude))
		heights[col] = core.Clamp(row, lo, hi)
	}
	return heights
}

// ColumnSpec describes how columns are filled from a height-field.
type ColumnSpec struct {
	GroundDepth int // solid rows from the surface down, 1-3
	WallHeight  int // extra rows above the surface at the map edges
	WaterRow    int // rows at or below it over a lower surface fill with water; 0 disables

	Surface int // tile type of the top row
	Subsoil int // tile type below it
	Water   int
}

// FillColumns marks each column solid from its surface for GroundDepth
// rows. The leftmost and rightmost columns become walls: WallHeight rows
// above the surface and solid to the bottom of the map.
func (g *Grid) FillColumns(heights []int, spec ColumnSpec) {
	for col := 0; col < g.Cols && col < len(heights); col++ {
		h := heights[col]
		top, bottom := h, h+spec.GroundDepth
		if col == 0 || col == g.Cols-1 {
			top = core.Max(0, h-spec.WallHeight)
			bottom = g.Rows
		}
		for row := top; row < bottom; row++ {
			t := g.At(col, row)
			if t == nil {
				continue
			}
			t.Solid = true
			t.Type = spec.Subsoil
			if row == top {
				t.Type = spec.Surface
			}
		}
		if spec.WaterRow > 0 {
			for row := spec.WaterRow; row < top; row++ {
				if t := g.At(col, row); t != nil {
					t.Liquid = true
					t.Type = spec.Water
				}
			}
		}
	}
}
