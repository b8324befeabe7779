package texture

import (
	"fmt"
	"image"
)

// EmptyCanvasError is returned when a canvas with no pixels is finalized.
// Callers drawing decoration may skip the feature; a ground tileset cannot.
type EmptyCanvasError struct {
	What string
}

func (e *EmptyCanvasError) Error() string {
	if e.What == "" {
		return "texture: empty canvas"
	}
	return fmt.Sprintf("texture: empty canvas: %s", e.What)
}

// Sheet is a finalized canvas: frames laid out left to right in one image.
type Sheet struct {
	Image       *image.RGBA
	FrameWidth  int
	FrameHeight int
	Frames      int
}

// FrameRect returns the region of frame i inside the sheet image.
func (s *Sheet) FrameRect(i int) image.Rectangle {
	x := i * s.FrameWidth
	return image.Rect(x, 0, x+s.FrameWidth, s.FrameHeight)
}

// Generate finalizes the canvas into a sheet. Each frame is as wide and tall
// as the furthest pixel plus the clamp border. AllFrames pixels are drawn
// into every frame first, explicit frame pixels on top, all fully opaque.
func (c *Canvas) Generate() (*Sheet, error) {
	if c.empty() {
		return nil, &EmptyCanvasError{}
	}

	fw := c.maxW + c.border
	fh := c.maxH + c.border
	frames := c.Frames()

	img := image.NewRGBA(image.Rect(0, 0, fw*frames, fh))
	for i := 0; i < frames; i++ {
		ox := i * fw
		for p, col := range c.all {
			img.SetRGBA(ox+p.x, p.y, col.RGBA())
		}
		if i < len(c.frames) {
			for p, col := range c.frames[i] {
				img.SetRGBA(ox+p.x, p.y, col.RGBA())
			}
		}
	}

	return &Sheet{
		Image:       img,
		FrameWidth:  fw,
		FrameHeight: fh,
		Frames:      frames,
	}, nil
}
