package level

import (
	"errors"
	"image"
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scrollgen/internal/gfx"
	"github.com/vovakirdan/scrollgen/internal/terrain"
	"github.com/vovakirdan/scrollgen/internal/texture"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// smallParams keeps a 64×32 tile map but with small tiles and few trees so
// the test stays fast.
func smallParams() Params {
	p := DefaultParams()
	p.TileDim = 8
	p.WidthPx = 64 * 8
	p.HeightPx = 32 * 8
	p.Hills[0].Amplitude, p.Hills[0].Offset = 60, 40
	p.Hills[1].Amplitude, p.Hills[1].Offset = 40, 20
	p.Trees.Count = 3
	p.Trees.BackgroundCount = 2
	p.Trees.Leaves = 10
	p.Trees.Iterations = 3
	return p
}

func TestGenerateEndToEnd(t *testing.T) {
	p := smallParams()
	backend := gfx.NewMemoryBackend()
	lvl, err := Generate(p, backend, rand.New(rand.NewSource(1234)), quietLogger())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	g := lvl.Grid
	if g.Cols != 64 || g.Rows != 32 {
		t.Fatalf("grid = %dx%d, expected 64x32", g.Cols, g.Rows)
	}
	for col := 0; col < g.Cols; col++ {
		if runs := g.SolidRuns(col); runs != 1 {
			t.Errorf("column %d has %d solid runs, expected 1", col, runs)
		}
		if h := lvl.Heights[col]; h < terrain.MinRow || h > g.Rows-3 {
			t.Errorf("column %d height %d outside [%d,%d]", col, h, terrain.MinRow, g.Rows-3)
		}
	}
	for _, col := range []int{0, g.Cols - 1} {
		if n := g.SolidCount(col); n < 3 {
			t.Errorf("wall column %d has %d solid tiles, expected at least 3", col, n)
		}
	}

	if _, ok := backend.Get("ground"); !ok {
		t.Error("ground tileset not uploaded")
	}
	if lvl.Tileset.Count < 2 {
		t.Errorf("tileset has %d tiles", lvl.Tileset.Count)
	}
	if len(lvl.ElementsOf(ElementHillFar)) != 1 || len(lvl.ElementsOf(ElementHillNear)) != 1 {
		t.Error("expected one silhouette per hill layer")
	}
	if lvl.Stats.Trees != 3 || lvl.Stats.BackTrees != 2 {
		t.Errorf("stats = %+v", lvl.Stats)
	}
	for _, e := range lvl.ElementsOf(ElementTree) {
		if e.Sprite.Frames != p.Trees.Frames {
			t.Errorf("tree sprite has %d frames, expected %d", e.Sprite.Frames, p.Trees.Frames)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := smallParams()
	a, err := Generate(p, gfx.NewMemoryBackend(), rand.New(rand.NewSource(99)), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(p, gfx.NewMemoryBackend(), rand.New(rand.NewSource(99)), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Heights {
		if a.Heights[i] != b.Heights[i] {
			t.Fatalf("column %d: %d vs %d", i, a.Heights[i], b.Heights[i])
		}
	}
	if len(a.Elements) != len(b.Elements) {
		t.Fatalf("element count %d vs %d", len(a.Elements), len(b.Elements))
	}
	for i := range a.Elements {
		if a.Elements[i].X != b.Elements[i].X || a.Elements[i].Y != b.Elements[i].Y {
			t.Errorf("element %d placed differently", i)
		}
	}
}

func TestGenerateTreesAnchoredOnSurface(t *testing.T) {
	p := smallParams()
	lvl, err := Generate(p, gfx.NewMemoryBackend(), rand.New(rand.NewSource(5)), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	trees := append(lvl.ElementsOf(ElementBackTree), lvl.ElementsOf(ElementTree)...)
	if len(trees) == 0 {
		t.Fatal("no trees generated")
	}
	for _, e := range trees {
		rx, ry := e.X+e.Root.X, e.Y+e.Root.Y
		col := rx / p.TileDim
		if col <= 0 || col >= lvl.Grid.Cols-1 {
			t.Errorf("%s rooted in wall or outside map at x=%d", e.Kind, rx)
			continue
		}
		if ry != lvl.Heights[col]*p.TileDim-1 {
			t.Errorf("%s root y = %d, expected just above surface %d", e.Kind, ry, lvl.Heights[col]*p.TileDim)
		}
		sx := e.Root.X
		if e.Flip {
			sx = e.Sprite.FrameWidth - 1 - sx
		}
		if e.Sprite.Source.RGBAAt(sx, e.Root.Y).A == 0 {
			t.Errorf("%s root pixel is transparent", e.Kind)
		}
	}
}

func TestGenerateWater(t *testing.T) {
	p := smallParams()
	p.WaterRow = 20
	p.Terrain.Amplitude = 12
	lvl, err := Generate(p, gfx.NewMemoryBackend(), rand.New(rand.NewSource(7)), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	for col, h := range lvl.Heights {
		for row := p.WaterRow; row < h; row++ {
			if col == 0 || col == lvl.Grid.Cols-1 {
				continue
			}
			if !lvl.Grid.At(col, row).Liquid {
				t.Errorf("(%d,%d) should be water", col, row)
			}
		}
	}
}

func TestGenerateZeroIterationsWithoutBackTrees(t *testing.T) {
	p := smallParams()
	p.Trees.BackgroundCount = 0
	p.Trees.Iterations = 0
	lvl, err := Generate(p, gfx.NewMemoryBackend(), rand.New(rand.NewSource(3)), quietLogger())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(lvl.ElementsOf(ElementBackTree)) != 0 || lvl.Stats.Skipped != 0 {
		t.Errorf("back trees = %d, skipped = %d, expected none", len(lvl.ElementsOf(ElementBackTree)), lvl.Stats.Skipped)
	}
}

func TestGenerateRejectsBadParams(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Params)
		field string
	}{
		{"zero width", func(p *Params) { p.WidthPx = 0 }, "width_px"},
		{"negative tile", func(p *Params) { p.TileDim = -8 }, "tile_dim"},
		{"too few rows", func(p *Params) { p.HeightPx = p.TileDim * 5 }, "height_px"},
		{"ground depth", func(p *Params) { p.GroundDepth = 4 }, "ground_depth"},
		{"persistence", func(p *Params) { p.Terrain.Persistence = 0 }, "terrain.persistence"},
		{"hill frequency", func(p *Params) { p.Hills[1].Frequency = -1 }, "hills[1].frequency"},
		{"frames", func(p *Params) { p.Trees.Frames = 0 }, "trees.frames"},
		{"iterations", func(p *Params) { p.Trees.Iterations = 12 }, "trees.lsystem_iterations"},
		{"no plant growth", func(p *Params) { p.Trees.Iterations = 0 }, "trees.lsystem_iterations"},
		{"water row", func(p *Params) { p.WaterRow = 1000 }, "water_row"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := smallParams()
			tc.mod(&p)
			backend := gfx.NewMemoryBackend()
			_, err := Generate(p, backend, rand.New(rand.NewSource(1)), quietLogger())
			var cre *ConfigurationRangeError
			if !errors.As(err, &cre) {
				t.Fatalf("Generate() error = %v, expected *ConfigurationRangeError", err)
			}
			if cre.Field != tc.field {
				t.Errorf("Field = %q, expected %q", cre.Field, tc.field)
			}
			if len(backend.Names()) != 0 {
				t.Error("work started before validation")
			}
		})
	}
}

type failingBackend struct {
	failOn string
	inner  *gfx.MemoryBackend
}

func (f failingBackend) Upload(name string, img *image.RGBA) (gfx.Image, error) {
	if name == f.failOn {
		return nil, errors.New("texture allocation failed")
	}
	return f.inner.Upload(name, img)
}

func TestGenerateBackendFailureIsFatal(t *testing.T) {
	for _, name := range []string{"ground", "hill-near", "tree-0"} {
		t.Run(name, func(t *testing.T) {
			b := failingBackend{failOn: name, inner: gfx.NewMemoryBackend()}
			lvl, err := Generate(smallParams(), b, rand.New(rand.NewSource(1)), quietLogger())
			if lvl != nil {
				t.Error("no partial level may be returned")
			}
			var rbe *gfx.ResourceBackendError
			if !errors.As(err, &rbe) || rbe.Name != name {
				t.Errorf("error = %v, expected ResourceBackendError for %s", err, name)
			}
		})
	}
}

func TestElementKinds(t *testing.T) {
	tests := []struct {
		kind     ElementKind
		name     string
		parallax float64
	}{
		{ElementHillFar, "hill-far", 0.25},
		{ElementHillNear, "hill-near", 0.5},
		{ElementBackTree, "back-tree", 0.8},
		{ElementTree, "tree", 1},
	}
	for _, tc := range tests {
		if tc.kind.String() != tc.name || tc.kind.Parallax() != tc.parallax {
			t.Errorf("%d: (%s, %v), expected (%s, %v)", tc.kind, tc.kind, tc.kind.Parallax(), tc.name, tc.parallax)
		}
	}
}

func TestFinishSkipsEmptyCanvas(t *testing.T) {
	d := &decorator{p: smallParams(), backend: gfx.NewMemoryBackend(), rng: rand.New(rand.NewSource(1)), logger: quietLogger(), lvl: &Level{}}
	sprite, err := d.finish(texture.NewCanvas(), "nothing", true)
	if sprite != nil || err != nil {
		t.Errorf("finish(empty) = (%v, %v), expected a silent skip", sprite, err)
	}
	if d.lvl.Stats.Skipped != 1 {
		t.Errorf("Skipped = %d", d.lvl.Stats.Skipped)
	}
}
