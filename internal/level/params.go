package level

import (
	"fmt"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/terrain"
)

// Limits enforced by Validate.
const (
	MinTileDim       = 4
	MinCols          = 3
	MaxFrames        = 16
	MaxLSystemDepth  = 6
	minRowsForGround = terrain.MinRow + 3
)

// HillParams shapes one parallax hill silhouette. Offset and Amplitude are
// in pixels measured up from the bottom of the map.
type HillParams struct {
	Persistence float64
	Frequency   float64
	Amplitude   float64
	Offset      float64
	Color       core.RGB
}

// TreeParams controls vegetation.
type TreeParams struct {
	Count           int // foreground trees
	BackgroundCount int // L-system plants
	Leaves          int // leaf clusters per tree
	Frames          int // animation frames per tree sheet
	Spacing         int // minimum columns between trees
	Iterations      int // L-system rewrite depth

	Trunk     core.RGB
	Leaf      core.RGB
	LeafAlt   core.RGB
	BackTrunk core.RGB
	BackLeaf  core.RGB
}

// Params is everything Generate needs besides randomness and a backend.
type Params struct {
	TileDim  int
	WidthPx  int
	HeightPx int

	Terrain     terrain.HeightParams
	GroundDepth int
	WallHeight  int
	WaterRow    int // 0 disables water

	Hills [2]HillParams
	Trees TreeParams

	Ground  core.RGB
	Subsoil core.RGB
	Water   core.RGB
}

// Cols returns the number of tile columns.
func (p Params) Cols() int {
	if p.TileDim <= 0 {
		return 0
	}
	return p.WidthPx / p.TileDim
}

// Rows returns the number of tile rows.
func (p Params) Rows() int {
	if p.TileDim <= 0 {
		return 0
	}
	return p.HeightPx / p.TileDim
}

// ConfigurationRangeError reports a parameter that cannot produce a level.
type ConfigurationRangeError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationRangeError) Error() string {
	return fmt.Sprintf("level: %s = %v: %s", e.Field, e.Value, e.Reason)
}

func rangeErr(field string, value any, reason string) error {
	return &ConfigurationRangeError{Field: field, Value: value, Reason: reason}
}

// Validate checks p before any generation work starts.
func (p Params) Validate() error {
	switch {
	case p.TileDim < MinTileDim:
		return rangeErr("tile_dim", p.TileDim, fmt.Sprintf("must be at least %d", MinTileDim))
	case p.WidthPx <= 0:
		return rangeErr("width_px", p.WidthPx, "must be positive")
	case p.HeightPx <= 0:
		return rangeErr("height_px", p.HeightPx, "must be positive")
	case p.Cols() < MinCols:
		return rangeErr("width_px", p.WidthPx, fmt.Sprintf("fewer than %d tile columns", MinCols))
	case p.Rows() < minRowsForGround:
		return rangeErr("height_px", p.HeightPx, fmt.Sprintf("fewer than %d tile rows", minRowsForGround))
	case p.GroundDepth < 1 || p.GroundDepth > 3:
		return rangeErr("ground_depth", p.GroundDepth, "must be between 1 and 3")
	case p.WallHeight < 0:
		return rangeErr("wall_height", p.WallHeight, "must not be negative")
	case p.WaterRow < 0 || p.WaterRow >= p.Rows():
		return rangeErr("water_row", p.WaterRow, "must be 0 or a row inside the map")
	}

	if err := validateNoise("terrain", p.Terrain.Persistence, p.Terrain.Frequency, p.Terrain.Amplitude); err != nil {
		return err
	}
	for i, h := range p.Hills {
		if err := validateNoise(fmt.Sprintf("hills[%d]", i), h.Persistence, h.Frequency, h.Amplitude); err != nil {
			return err
		}
		if h.Offset < 0 {
			return rangeErr(fmt.Sprintf("hills[%d].offset", i), h.Offset, "must not be negative")
		}
	}

	t := p.Trees
	switch {
	case t.Count < 0:
		return rangeErr("trees.count", t.Count, "must not be negative")
	case t.BackgroundCount < 0:
		return rangeErr("trees.background_count", t.BackgroundCount, "must not be negative")
	case t.Leaves < 0:
		return rangeErr("trees.leaves", t.Leaves, "must not be negative")
	case t.Frames < 1 || t.Frames > MaxFrames:
		return rangeErr("trees.frames", t.Frames, fmt.Sprintf("must be between 1 and %d", MaxFrames))
	case t.Spacing < 1:
		return rangeErr("trees.spacing", t.Spacing, "must be at least 1")
	case t.Iterations < 0 || t.Iterations > MaxLSystemDepth:
		return rangeErr("trees.lsystem_iterations", t.Iterations, fmt.Sprintf("must be between 0 and %d", MaxLSystemDepth))
	case t.BackgroundCount > 0 && t.Iterations < 1:
		// The bare axiom draws nothing.
		return rangeErr("trees.lsystem_iterations", t.Iterations, "must be at least 1 when background trees are placed")
	}
	return nil
}

func validateNoise(prefix string, persistence, frequency, amplitude float64) error {
	switch {
	case persistence <= 0 || persistence > 1:
		return rangeErr(prefix+".persistence", persistence, "must be in (0, 1]")
	case frequency <= 0:
		return rangeErr(prefix+".frequency", frequency, "must be positive")
	case amplitude < 0:
		return rangeErr(prefix+".amplitude", amplitude, "must not be negative")
	}
	return nil
}

// DefaultParams returns a 64×32 tile meadow.
func DefaultParams() Params {
	return Params{
		TileDim:  16,
		WidthPx:  64 * 16,
		HeightPx: 32 * 16,
		Terrain: terrain.HeightParams{
			Persistence: 0.75,
			Frequency:   0.08,
			Amplitude:   6,
			Octaves:     8,
		},
		GroundDepth: 3,
		WallHeight:  4,
		Hills: [2]HillParams{
			{Persistence: 0.6, Frequency: 0.004, Amplitude: 160, Offset: 120, Color: core.MustHex("#8da3b8")},
			{Persistence: 0.7, Frequency: 0.008, Amplitude: 120, Offset: 60, Color: core.MustHex("#5f7f62")},
		},
		Trees: TreeParams{
			Count:           6,
			BackgroundCount: 4,
			Leaves:          30,
			Frames:          4,
			Spacing:         8,
			Iterations:      4,
			Trunk:           core.MustHex("#5a3d24"),
			Leaf:            core.MustHex("#3f8f2f"),
			LeafAlt:         core.MustHex("#5fae3a"),
			BackTrunk:       core.MustHex("#4b4038"),
			BackLeaf:        core.MustHex("#4d7a48"),
		},
		Ground:  core.MustHex("#5a8f29"),
		Subsoil: core.MustHex("#6b4a2b"),
		Water:   core.MustHex("#3a6ea5"),
	}
}
