// Package config provides YAML-based generation settings, the embedded
// defaults and named presets for scrollgen.
package config

import (
	"fmt"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/level"
	"github.com/vovakirdan/scrollgen/internal/terrain"
)

// GenConfig contains everything needed to generate a level.
type GenConfig struct {
	Map     MapConfig     `yaml:"map"`
	Terrain TerrainConfig `yaml:"terrain"`
	Hills   []HillConfig  `yaml:"hills"`
	Trees   TreeConfig    `yaml:"trees"`
	Palette PaletteConfig `yaml:"palette"`
}

// MapConfig defines the map size.
type MapConfig struct {
	TileDim  int `yaml:"tile_dim"`
	WidthPx  int `yaml:"width_px"`
	HeightPx int `yaml:"height_px"`
}

// TerrainConfig defines the height-field and column fill.
type TerrainConfig struct {
	Persistence float64 `yaml:"persistence"`
	Frequency   float64 `yaml:"frequency"`
	Amplitude   float64 `yaml:"amplitude"` // rows
	Octaves     int     `yaml:"octaves"`
	GroundDepth int     `yaml:"ground_depth"`
	WallHeight  int     `yaml:"wall_height"`
	WaterRow    int     `yaml:"water_row"` // 0 = no water
}

// HillConfig defines one parallax hill layer, far layer first.
type HillConfig struct {
	Persistence float64 `yaml:"persistence"`
	Frequency   float64 `yaml:"frequency"`
	Amplitude   float64 `yaml:"amplitude"` // pixels
	Offset      float64 `yaml:"offset"`    // pixels above the map bottom
	Color       string  `yaml:"color"`
}

// TreeConfig defines vegetation.
type TreeConfig struct {
	Count             int `yaml:"count"`
	BackgroundCount   int `yaml:"background_count"`
	Leaves            int `yaml:"leaves"`
	Frames            int `yaml:"frames"`
	Spacing           int `yaml:"spacing"` // columns
	LSystemIterations int `yaml:"lsystem_iterations"`
}

// PaletteConfig holds "#rrggbb" colors.
type PaletteConfig struct {
	Ground    string `yaml:"ground"`
	Subsoil   string `yaml:"subsoil"`
	Water     string `yaml:"water"`
	Trunk     string `yaml:"trunk"`
	Leaf      string `yaml:"leaf"`
	LeafAlt   string `yaml:"leaf_alt"`
	BackTrunk string `yaml:"back_trunk"`
	BackLeaf  string `yaml:"back_leaf"`
}

// Params converts the config into generator parameters. Range checks are
// left to level.Params.Validate; only malformed colors and a wrong hill
// layer count fail here.
func (c GenConfig) Params() (level.Params, error) {
	if len(c.Hills) != 2 {
		return level.Params{}, fmt.Errorf("config: expected 2 hill layers, got %d", len(c.Hills))
	}

	var perr error
	color := func(field, hex string) core.RGB {
		rgb, err := core.ParseHex(hex)
		if err != nil && perr == nil {
			perr = fmt.Errorf("config: %s: %w", field, err)
		}
		return rgb
	}

	p := level.Params{
		TileDim:  c.Map.TileDim,
		WidthPx:  c.Map.WidthPx,
		HeightPx: c.Map.HeightPx,
		Terrain: terrain.HeightParams{
			Persistence: c.Terrain.Persistence,
			Frequency:   c.Terrain.Frequency,
			Amplitude:   c.Terrain.Amplitude,
			Octaves:     c.Terrain.Octaves,
		},
		GroundDepth: c.Terrain.GroundDepth,
		WallHeight:  c.Terrain.WallHeight,
		WaterRow:    c.Terrain.WaterRow,
		Trees: level.TreeParams{
			Count:           c.Trees.Count,
			BackgroundCount: c.Trees.BackgroundCount,
			Leaves:          c.Trees.Leaves,
			Frames:          c.Trees.Frames,
			Spacing:         c.Trees.Spacing,
			Iterations:      c.Trees.LSystemIterations,
			Trunk:           color("palette.trunk", c.Palette.Trunk),
			Leaf:            color("palette.leaf", c.Palette.Leaf),
			LeafAlt:         color("palette.leaf_alt", c.Palette.LeafAlt),
			BackTrunk:       color("palette.back_trunk", c.Palette.BackTrunk),
			BackLeaf:        color("palette.back_leaf", c.Palette.BackLeaf),
		},
		Ground:  color("palette.ground", c.Palette.Ground),
		Subsoil: color("palette.subsoil", c.Palette.Subsoil),
		Water:   color("palette.water", c.Palette.Water),
	}
	for i, h := range c.Hills {
		p.Hills[i] = level.HillParams{
			Persistence: h.Persistence,
			Frequency:   h.Frequency,
			Amplitude:   h.Amplitude,
			Offset:      h.Offset,
			Color:       color(fmt.Sprintf("hills[%d].color", i), h.Color),
		}
	}
	if perr != nil {
		return level.Params{}, perr
	}
	return p, nil
}

// FromParams is the inverse of Params.
func FromParams(p level.Params) GenConfig {
	c := GenConfig{
		Map: MapConfig{TileDim: p.TileDim, WidthPx: p.WidthPx, HeightPx: p.HeightPx},
		Terrain: TerrainConfig{
			Persistence: p.Terrain.Persistence,
			Frequency:   p.Terrain.Frequency,
			Amplitude:   p.Terrain.Amplitude,
			Octaves:     p.Terrain.Octaves,
			GroundDepth: p.GroundDepth,
			WallHeight:  p.WallHeight,
			WaterRow:    p.WaterRow,
		},
		Trees: TreeConfig{
			Count:             p.Trees.Count,
			BackgroundCount:   p.Trees.BackgroundCount,
			Leaves:            p.Trees.Leaves,
			Frames:            p.Trees.Frames,
			Spacing:           p.Trees.Spacing,
			LSystemIterations: p.Trees.Iterations,
		},
		Palette: PaletteConfig{
			Ground:    p.Ground.Hex(),
			Subsoil:   p.Subsoil.Hex(),
			Water:     p.Water.Hex(),
			Trunk:     p.Trees.Trunk.Hex(),
			Leaf:      p.Trees.Leaf.Hex(),
			LeafAlt:   p.Trees.LeafAlt.Hex(),
			BackTrunk: p.Trees.BackTrunk.Hex(),
			BackLeaf:  p.Trees.BackLeaf.Hex(),
		},
	}
	for _, h := range p.Hills {
		c.Hills = append(c.Hills, HillConfig{
			Persistence: h.Persistence,
			Frequency:   h.Frequency,
			Amplitude:   h.Amplitude,
			Offset:      h.Offset,
			Color:       h.Color.Hex(),
		})
	}
	return c
}
