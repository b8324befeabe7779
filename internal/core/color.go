package core

import (
	"fmt"
	"image/color"
	"strings"
)

// RGB is an opaque 24-bit palette color. Generators only ever write fully
// opaque pixels, so alpha is added when converting to image colors.
type RGB struct {
	R, G, B uint8
}

// RGBA returns the color as an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Shade scales every channel by f, saturating at 0 and 255.
func (c RGB) Shade(f float64) RGB {
	return RGB{
		R: scaleChannel(c.R, f),
		G: scaleChannel(c.G, f),
		B: scaleChannel(c.B, f),
	}
}

func scaleChannel(v uint8, f float64) uint8 {
	return uint8(ClampF(float64(v)*f, 0, 255))
}

// ParseHex parses "#rrggbb" or "rrggbb" (case-insensitive).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("color %q: expected 6 hex digits", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(strings.ToLower(s), "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// MustHex is ParseHex for package-level palette literals.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
