package texture

import (
	"errors"
	"testing"

	"github.com/vovakirdan/scrollgen/internal/core"
)

var (
	red   = core.RGB{R: 255}
	green = core.RGB{G: 255}
)

func TestCanvasBoundsInvariant(t *testing.T) {
	c := NewCanvas()
	c.Set(3, 4, red, 0)
	c.SetLine(10, 2, 5, 9, 1, red, 1)
	c.SetRect(6, 6, 3, 2, red, AllFrames)

	minX, minY, maxX, maxY := 1<<30, 1<<30, -1, -1
	for _, p := range c.Pixels() {
		minX = core.Min(minX, p.X)
		minY = core.Min(minY, p.Y)
		maxX = core.Max(maxX, p.X)
		maxY = core.Max(maxY, p.Y)
	}
	if c.Width() != maxX+1-minX {
		t.Errorf("Width() = %d, expected %d", c.Width(), maxX+1-minX)
	}
	if c.Height() != maxY+1-minY {
		t.Errorf("Height() = %d, expected %d", c.Height(), maxY+1-minY)
	}
}

func TestCanvasNegativeCoordinatesIgnored(t *testing.T) {
	c := NewCanvas()
	c.Set(-1, 5, red, 0)
	c.Set(5, -1, red, 0)
	if c.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", c.Len())
	}
	if c.Width() != 0 || c.Height() != 0 {
		t.Errorf("empty canvas size = %dx%d", c.Width(), c.Height())
	}
}

func TestCanvasLastWriteWins(t *testing.T) {
	c := NewCanvas()
	c.Set(1, 1, red, 0)
	c.Set(1, 1, green, 0)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", c.Len())
	}
	if got := c.Pixels()[0].Color; got != green {
		t.Errorf("color = %v, expected %v", got, green)
	}
}

func TestCanvasEraseAndIsSet(t *testing.T) {
	c := NewCanvas()
	c.Set(2, 2, red, 0)
	c.Set(3, 3, red, AllFrames)
	c.Set(4, 4, red, 1)

	tests := []struct {
		name     string
		x, y     int
		frame    int
		expected bool
	}{
		{"negative frame erases frame 0", 2, 2, -1, false},
		{"all-frames pixel survives erase", 3, 3, 0, true},
		{"other frame untouched", 4, 4, 0, true},
		{"missing frame is a no-op", 4, 4, 7, true},
		{"explicit frame erased", 4, 4, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c.Erase(tc.x, tc.y, tc.frame)
			if got := c.IsSet(tc.x, tc.y); got != tc.expected {
				t.Errorf("IsSet(%d,%d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestCanvasClampTranslates(t *testing.T) {
	c := NewCanvas()
	c.Set(10, 20, red, 0)
	c.Set(15, 22, green, 0)
	c.Set(12, 21, red, AllFrames)

	before := pixelSet(c)
	if err := c.Clamp(0); err != nil {
		t.Fatalf("Clamp(0) error: %v", err)
	}
	after := pixelSet(c)

	if len(after) != len(before) {
		t.Fatalf("Clamp changed pixel count: %d -> %d", len(before), len(after))
	}
	for p := range before {
		shifted := Pixel{X: p.X - 10, Y: p.Y - 20, Frame: p.Frame, Color: p.Color}
		if !after[shifted] {
			t.Errorf("pixel %+v not translated to %+v", p, shifted)
		}
	}
	if c.Width() != 6 || c.Height() != 3 {
		t.Errorf("size after clamp = %dx%d, expected 6x3", c.Width(), c.Height())
	}
}

func TestCanvasClampBuffer(t *testing.T) {
	c := NewCanvas()
	c.Set(10, 10, red, 0)
	if err := c.Clamp(2); err != nil {
		t.Fatal(err)
	}
	if !c.IsSet(2, 2) {
		t.Error("pixel should sit at the buffer offset")
	}
	sheet, err := c.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if sheet.FrameWidth != 5 || sheet.FrameHeight != 5 {
		t.Errorf("frame = %dx%d, expected 5x5 (border on both sides)", sheet.FrameWidth, sheet.FrameHeight)
	}
}

func TestCanvasDoubleClamp(t *testing.T) {
	c := NewCanvas()
	c.Set(4, 4, red, 0)
	if err := c.Clamp(1); err != nil {
		t.Fatal(err)
	}
	if err := c.Clamp(1); !errors.Is(err, ErrAlreadyClamped) {
		t.Errorf("second Clamp() = %v, expected ErrAlreadyClamped", err)
	}
	if !c.IsSet(1, 1) {
		t.Error("failed second clamp must not move pixels")
	}
}

func TestCanvasCentroid(t *testing.T) {
	c := NewCanvas()
	if _, _, ok := c.Centroid(); ok {
		t.Error("empty canvas has no centroid")
	}
	c.Set(0, 0, red, 0)
	c.Set(4, 2, red, 1)
	c.Set(4, 2, red, AllFrames)
	x, y, ok := c.Centroid()
	if !ok || x != 2 || y != 1 {
		t.Errorf("Centroid() = (%v,%v,%v), expected (2,1,true)", x, y, ok)
	}
}

func pixelSet(c *Canvas) map[Pixel]bool {
	out := make(map[Pixel]bool)
	for _, p := range c.Pixels() {
		out[p] = true
	}
	return out
}
