package texture_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/texture"
)

func TestGenerateEmptyCanvas(t *testing.T) {
	c := texture.NewCanvas()
	sheet, err := c.Generate()
	if sheet != nil {
		t.Error("Generate() on empty canvas returned a sheet")
	}
	var empty *texture.EmptyCanvasError
	if !errors.As(err, &empty) {
		t.Errorf("Generate() error = %v, expected *EmptyCanvasError", err)
	}
}

func TestGenerateAllFramesReplication(t *testing.T) {
	c := texture.NewCanvas()
	all := core.RGB{R: 10, G: 20, B: 30}
	c.Set(1, 1, all, texture.AllFrames)
	// Explicit frames are created after the AllFrames pixel.
	c.Set(0, 0, core.RGB{R: 1}, 0)
	c.Set(0, 0, core.RGB{R: 2}, 1)
	c.Set(2, 2, core.RGB{R: 3}, 2)

	sheet, err := c.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if sheet.Frames != 3 {
		t.Fatalf("Frames = %d, expected 3", sheet.Frames)
	}
	if sheet.Image.Bounds().Dx() != sheet.FrameWidth*3 {
		t.Errorf("image width %d, expected %d", sheet.Image.Bounds().Dx(), sheet.FrameWidth*3)
	}
	for i := 0; i < sheet.Frames; i++ {
		r := sheet.FrameRect(i)
		got := sheet.Image.RGBAAt(r.Min.X+1, r.Min.Y+1)
		if got != all.RGBA() {
			t.Errorf("frame %d pixel = %v, expected %v", i, got, all.RGBA())
		}
	}
	if got := sheet.Image.RGBAAt(sheet.FrameRect(1).Min.X, 0).R; got != 2 {
		t.Errorf("frame 1 explicit pixel R = %d, expected 2", got)
	}
	if got := sheet.Image.RGBAAt(sheet.FrameRect(0).Min.X+2, 2).A; got != 0 {
		t.Errorf("frame 0 should be transparent where only frame 2 drew, alpha %d", got)
	}
}

func TestGenerateExplicitOverAllFrames(t *testing.T) {
	c := texture.NewCanvas()
	c.Set(0, 0, core.RGB{R: 1}, texture.AllFrames)
	c.Set(0, 0, core.RGB{G: 1}, 0)
	sheet, err := c.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if got := sheet.Image.RGBAAt(0, 0); got.G != 1 || got.A != 255 {
		t.Errorf("pixel = %v, expected explicit frame color opaque", got)
	}
}

func TestGenerateOnlyAllFrames(t *testing.T) {
	c := texture.NewCanvas()
	c.Set(3, 1, core.RGB{B: 9}, texture.AllFrames)
	sheet, err := c.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if sheet.Frames != 1 || sheet.FrameWidth != 4 || sheet.FrameHeight != 2 {
		t.Errorf("sheet = %d frames %dx%d, expected 1 frame 4x2", sheet.Frames, sheet.FrameWidth, sheet.FrameHeight)
	}
}
