package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/scrollgen/internal/gfx"
	"github.com/vovakirdan/scrollgen/internal/level"
	"github.com/vovakirdan/scrollgen/internal/terrain"
)

// ManifestFile is the manifest name inside an export directory.
const ManifestFile = "level.yaml"

// Meta is run information stored alongside the level.
type Meta struct {
	Seed   int64
	Preset string
}

// Options controls Level.
type Options struct {
	Scale int         // integer upscale of every PNG, <2 = none
	Sky   color.Color // background of preview.png
}

// Manifest describes an exported level.
type Manifest struct {
	Seed     int64        `yaml:"seed"`
	Preset   string       `yaml:"preset"`
	NoiseKey float64      `yaml:"noise_seed"`
	Scale    int          `yaml:"scale"`
	TileDim  int          `yaml:"tile_dim"`
	Cols     int          `yaml:"cols"`
	Rows     int          `yaml:"rows"`
	Tileset  SheetRef     `yaml:"tileset"`
	Heights  []int        `yaml:"heights,flow"`
	Map      []string     `yaml:"map"`
	Types    []string     `yaml:"types"` // space-separated tile types per row, -1 = air
	Elements []ElementRef `yaml:"elements"`
}

// SheetRef points at a written PNG and its frame layout.
type SheetRef struct {
	File        string `yaml:"file"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
	Frames      int    `yaml:"frames"`
}

// ElementRef places one sprite.
type ElementRef struct {
	Kind     string   `yaml:"kind"`
	X        int      `yaml:"x"`
	Y        int      `yaml:"y"`
	RootX    int      `yaml:"root_x"`
	RootY    int      `yaml:"root_y"`
	Parallax float64  `yaml:"parallax"`
	Flip     bool     `yaml:"flip,omitempty"`
	Sheet    SheetRef `yaml:"sheet"`
}

// Level writes the tileset, every sprite sheet, a flattened preview and the
// manifest into dir.
func Level(dir string, lvl *level.Level, meta Meta, opts Options) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: cannot create %s: %w", dir, err)
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}

	m := &Manifest{
		Seed:     meta.Seed,
		Preset:   meta.Preset,
		NoiseKey: lvl.Seed,
		Scale:    scale,
		TileDim:  lvl.TileDim,
		Cols:     lvl.Grid.Cols,
		Rows:     lvl.Grid.Rows,
		Heights:  lvl.Heights,
		Map:      MapRows(lvl.Grid),
		Types:    typeRows(lvl.Grid),
		Tileset: SheetRef{
			File:        "tileset.png",
			FrameWidth:  lvl.TileDim * scale,
			FrameHeight: lvl.TileDim * scale,
			Frames:      lvl.Tileset.Count,
		},
	}
	if err := WritePNG(filepath.Join(dir, m.Tileset.File), lvl.Tileset.Source, scale); err != nil {
		return nil, err
	}

	for _, e := range lvl.Elements {
		ref, err := writeSprite(dir, e.Sprite, scale)
		if err != nil {
			return nil, err
		}
		m.Elements = append(m.Elements, ElementRef{
			Kind:     e.Kind.String(),
			X:        e.X * scale,
			Y:        e.Y * scale,
			RootX:    e.Root.X * scale,
			RootY:    e.Root.Y * scale,
			Parallax: e.Kind.Parallax(),
			Flip:     e.Flip,
			Sheet:    ref,
		})
	}

	sky := opts.Sky
	if sky == nil {
		sky = color.RGBA{R: 0x9c, G: 0xc9, B: 0xe8, A: 0xff}
	}
	if err := WritePNG(filepath.Join(dir, "preview.png"), Compose(lvl, 0, sky), scale); err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("export: cannot encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("export: cannot write manifest: %w", err)
	}
	return m, nil
}

func writeSprite(dir string, s *gfx.Sprite, scale int) (SheetRef, error) {
	ref := SheetRef{
		File:        s.Name + ".png",
		FrameWidth:  s.FrameWidth * scale,
		FrameHeight: s.FrameHeight * scale,
		Frames:      s.Frames,
	}
	return ref, WritePNG(filepath.Join(dir, ref.File), s.Source, scale)
}

// WritePNG encodes img, scaled by factor, to path.
func WritePNG(path string, img image.Image, factor int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: cannot create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, Scale(img, factor)); err != nil {
		return fmt.Errorf("export: cannot encode %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by Level.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("export: cannot read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("export: cannot parse manifest: %w", err)
	}
	return &m, nil
}

// Tile glyphs used by MapRows.
const (
	GlyphAir   = '.'
	GlyphWater = '~'
	GlyphSolid = '#'
	GlyphLeft  = '/'
	GlyphRight = '\\'
	GlyphBoth  = '^'
)

// MapRows renders the grid as one string per row.
func MapRows(g *terrain.Grid) []string {
	out := make([]string, g.Rows)
	var sb strings.Builder
	for row := 0; row < g.Rows; row++ {
		sb.Reset()
		for col := 0; col < g.Cols; col++ {
			sb.WriteRune(Glyph(*g.At(col, row)))
		}
		out[row] = sb.String()
	}
	return out
}

// Glyph returns the map character for a tile.
func Glyph(t terrain.Tile) rune {
	switch {
	case t.Liquid:
		return GlyphWater
	case !t.Solid:
		return GlyphAir
	}
	switch t.Slope {
	case terrain.SlopeLeft:
		return GlyphLeft
	case terrain.SlopeRight:
		return GlyphRight
	case terrain.SlopeBoth:
		return GlyphBoth
	default:
		return GlyphSolid
	}
}

func typeRows(g *terrain.Grid) []string {
	out := make([]string, g.Rows)
	fields := make([]string, g.Cols)
	for row := range out {
		for col := range fields {
			fields[col] = strconv.Itoa(g.At(col, row).Type)
		}
		out[row] = strings.Join(fields, " ")
	}
	return out
}
