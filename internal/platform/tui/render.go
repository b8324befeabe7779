package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/scrollgen/internal/core"
)

// HalfBlock is drawn in every rasterized cell: its foreground is the upper
// pixel and its background the lower one.
const HalfBlock = '▀'

type cellStyle struct {
	fg, bg       core.RGB
	hasFg, hasBg bool
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{fg: c.Color, bg: c.Bg, hasFg: c.HasColor, hasBg: c.HasBg}
}

func (cs cellStyle) style() lipgloss.Style {
	st := lipgloss.NewStyle()
	if cs.hasFg {
		st = st.Foreground(lipgloss.Color(cs.fg.Hex()))
	}
	if cs.hasBg {
		st = st.Background(lipgloss.Color(cs.bg.Hex()))
	}
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellStyle]lipgloss.Style)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if !start.hasFg && !start.hasBg {
				sb.WriteString(run.String())
				continue
			}
			st, ok := styles[start]
			if !ok {
				st = start.style()
				styles[start] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}

// Rasterize shrinks img to fit the screen, two pixels per cell, and fills
// the screen with half blocks.
func Rasterize(s *core.Screen, img image.Image) {
	w, h := s.Width(), s.Height()*2
	if w <= 0 || h <= 0 {
		return
	}
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < w; x++ {
			top := small.RGBAAt(x, 2*y)
			bot := small.RGBAAt(x, 2*y+1)
			s.SetBlock(x, y, HalfBlock,
				core.RGB{R: top.R, G: top.G, B: top.B},
				core.RGB{R: bot.R, G: bot.G, B: bot.B})
		}
	}
}
