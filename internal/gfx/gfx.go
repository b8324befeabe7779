// Package gfx defines the boundary between the generators and whatever
// turns a finished pixel buffer into a drawable image: a GPU texture in the
// Ebiten viewer, or plain memory for export, previews and tests.
package gfx

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/vovakirdan/scrollgen/internal/texture"
)

// Image is an uploaded, drawable image.
type Image interface {
	Bounds() image.Rectangle
}

// Backend uploads finished pixel buffers. Upload may block.
type Backend interface {
	Upload(name string, img *image.RGBA) (Image, error)
}

// ResourceBackendError reports a backend that refused an upload. A level
// cannot load without its images, so callers treat it as fatal.
type ResourceBackendError struct {
	Name string
	Err  error
}

func (e *ResourceBackendError) Error() string {
	return fmt.Sprintf("gfx: cannot upload %q: %v", e.Name, e.Err)
}

func (e *ResourceBackendError) Unwrap() error {
	return e.Err
}

// Sprite is an uploaded sheet with its animation layout.
type Sprite struct {
	Name        string
	Image       Image
	Source      *image.RGBA // pixels as generated
	FrameWidth  int
	FrameHeight int
	Frames      int
}

// FrameRect returns the source rectangle of frame i, wrapping around the
// frame count so playback can pass a running counter.
func (s *Sprite) FrameRect(i int) image.Rectangle {
	if s.Frames > 0 {
		i %= s.Frames
		if i < 0 {
			i += s.Frames
		}
	}
	x := i * s.FrameWidth
	return image.Rect(x, 0, x+s.FrameWidth, s.FrameHeight)
}

// Draw renders frame i of the sprite's source pixels with its top-left
// corner at at, mirrored horizontally when flip is set. It is the software
// counterpart of the viewer's GPU draw.
func (s *Sprite) Draw(dst draw.Image, at image.Point, i int, flip bool) {
	sr := s.FrameRect(i)
	if !flip {
		r := image.Rectangle{Min: at, Max: at.Add(sr.Size())}
		draw.Draw(dst, r, s.Source, sr.Min, draw.Over)
		return
	}
	// x' = at.X + sr.Max.X - x maps the frame's right edge to at.X.
	m := f64.Aff3{
		-1, 0, float64(at.X + sr.Max.X),
		0, 1, float64(at.Y - sr.Min.Y),
	}
	draw.NearestNeighbor.Transform(dst, m, s.Source, sr, draw.Over, nil)
}

// UploadSheet uploads a finalized sheet and wraps it as a sprite.
func UploadSheet(b Backend, name string, sheet *texture.Sheet) (*Sprite, error) {
	img, err := b.Upload(name, sheet.Image)
	if err != nil {
		return nil, &ResourceBackendError{Name: name, Err: err}
	}
	return &Sprite{
		Name:        name,
		Image:       img,
		Source:      sheet.Image,
		FrameWidth:  sheet.FrameWidth,
		FrameHeight: sheet.FrameHeight,
		Frames:      sheet.Frames,
	}, nil
}

// MemoryBackend keeps uploads in memory, keyed by name. It is safe for
// concurrent use; the SSH preview shares one across sessions.
type MemoryBackend struct {
	mu     sync.Mutex
	images map[string]*image.RGBA
	order  []string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{images: make(map[string]*image.RGBA)}
}

// Upload stores img under name, replacing any earlier upload.
func (m *MemoryBackend) Upload(name string, img *image.RGBA) (Image, error) {
	if img == nil {
		return nil, fmt.Errorf("gfx: nil image for %q", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.images[name]; !ok {
		m.order = append(m.order, name)
	}
	m.images[name] = img
	return img, nil
}

// Get returns the image uploaded under name.
func (m *MemoryBackend) Get(name string) (*image.RGBA, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[name]
	return img, ok
}

// Names returns upload names in first-upload order.
func (m *MemoryBackend) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}
