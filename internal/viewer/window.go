//go:build ebiten

package viewer

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/gfx"
	"github.com/vovakirdan/scrollgen/internal/level"
)

// Backend uploads pixel buffers as GPU images.
type Backend struct{}

// Upload implements gfx.Backend.
func (Backend) Upload(name string, img *image.RGBA) (gfx.Image, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("viewer: empty image for %q", name)
	}
	return ebiten.NewImageFromImage(img), nil
}

// Game adapts a generated level to the ebiten.Game interface.
type Game struct {
	opts  Options
	seed  int64
	lvl   *level.Level
	view  *View
	frame time.Time
}

// New generates the first level and returns a ready Game.
func New(opts Options) (*Game, error) {
	opts = opts.withDefaults()
	if opts.Generate == nil {
		return nil, errors.New("viewer: no generator")
	}
	g := &Game{opts: opts, seed: opts.Seed}
	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) load() error {
	lvl, err := g.opts.Generate(Backend{}, g.seed)
	if err != nil {
		return err
	}
	w, h := viewport(g.opts, lvl)
	g.lvl = lvl
	g.view = &View{
		Camera: NewCamera(lvl.WidthPx(), lvl.HeightPx(), w, h, 4),
		Anim:   NewAnimator(ebiten.TPS() / g.opts.FrameTPS),
	}
	g.opts.Logger.Info("level loaded", "seed", g.seed, "cols", lvl.Grid.Cols, "rows", lvl.Grid.Rows, "elements", len(lvl.Elements))
	return nil
}

var heldKeys = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyLeft}, core.ActionLeft},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyRight}, core.ActionRight},
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyUp}, core.ActionUp},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyDown}, core.ActionDown},
}

var pressedKeys = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyN, ebiten.KeyTab}, core.ActionNextFrame},
	{[]ebiten.Key{ebiten.KeySpace}, core.ActionTogglePlay},
	{[]ebiten.Key{ebiten.KeyR}, core.ActionRegenerate},
	{[]ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}, core.ActionQuit},
}

func actions() []core.Action {
	var out []core.Action
	for _, b := range heldKeys {
		for _, k := range b.keys {
			if ebiten.IsKeyPressed(k) {
				out = append(out, b.action)
				break
			}
		}
	}
	for _, b := range pressedKeys {
		for _, k := range b.keys {
			if inpututil.IsKeyJustPressed(k) {
				out = append(out, b.action)
				break
			}
		}
	}
	return out
}

// Update handles input and advances the animation.
func (g *Game) Update() error {
	for _, a := range actions() {
		switch g.view.Handle(a) {
		case ResultQuit:
			return ebiten.Termination
		case ResultRegenerate:
			g.seed = time.Now().UnixNano()
			if err := g.load(); err != nil {
				g.opts.Logger.Error("regenerate failed", "seed", g.seed, "err", err)
			}
		}
	}
	g.view.Anim.Tick()
	return nil
}

// Draw renders decorations back to front, then the tiles.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Sky)
	cam := g.view.Camera
	frame := g.view.Anim.Frame

	for _, e := range g.lvl.Elements {
		img, ok := e.Sprite.Image.(*ebiten.Image)
		if !ok {
			continue
		}
		ox, oy := cam.Offset(e.Kind.Parallax())
		DrawSprite(screen, img, e.Sprite, float64(e.X)+ox, float64(e.Y)+oy, frame, e.Flip)
	}

	ts := g.lvl.Tileset
	sheet, ok := ts.Image.(*ebiten.Image)
	if !ok {
		return
	}
	dim := g.lvl.TileDim
	ox, oy := cam.Offset(1)
	c0, c1 := cam.X/dim, (cam.X+cam.ViewW)/dim+1
	r0, r1 := cam.Y/dim, (cam.Y+cam.ViewH)/dim+1
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			t := g.lvl.Grid.At(col, row)
			if t == nil || t.Type < 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(col*dim)+ox, float64(row*dim)+oy)
			screen.DrawImage(sheet.SubImage(ts.SourceRect(t.Type)).(*ebiten.Image), op)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("seed %d  frame %d", g.seed, frame))
}

// DrawSprite draws frame of s, uploaded as img, with its top-left corner at
// (x, y), mirrored horizontally when flip is set.
func DrawSprite(dst, img *ebiten.Image, s *gfx.Sprite, x, y float64, frame int, flip bool) {
	op := &ebiten.DrawImageOptions{}
	if flip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(s.FrameWidth), 0)
	}
	op.GeoM.Translate(x, y)
	dst.DrawImage(img.SubImage(s.FrameRect(frame)).(*ebiten.Image), op)
}

// Layout keeps the logical screen at the viewport size.
func (g *Game) Layout(int, int) (int, int) {
	return g.view.Camera.ViewW, g.view.Camera.ViewH
}

// Run opens a window and blocks until it is closed.
func Run(opts Options) error {
	g, err := New(opts)
	if err != nil {
		return err
	}
	o := g.opts
	ebiten.SetWindowSize(g.view.Camera.ViewW*o.Scale, g.view.Camera.ViewH*o.Scale)
	ebiten.SetWindowTitle(o.Title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Available reports whether this binary can open a window.
const Available = true
