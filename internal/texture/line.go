package texture

import "github.com/vovakirdan/scrollgen/internal/core"

// SetLine rasterizes a line with Bresenham's algorithm. Endpoints are
// normalized first, so swapping them yields the same pixels.
//
// A thickness above 1 stamps that many extra pixels below each plotted point
// along the minor axis of the (possibly transposed) line. This is not a true
// perpendicular stroke; branch silhouettes depend on its look.
func (c *Canvas) SetLine(x1, y1, x2, y2, thickness int, col core.RGB, frame int) {
	steep := core.Abs(y2-y1) > core.Abs(x2-x1)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}

	dx := x2 - x1
	dy := core.Abs(y2 - y1)
	ystep := 1
	if y1 > y2 {
		ystep = -1
	}

	plot := func(x, y int) {
		if steep {
			c.Set(y, x, col, frame)
		} else {
			c.Set(x, y, col, frame)
		}
	}

	err := dx / 2
	y := y1
	for x := x1; x <= x2; x++ {
		plot(x, y)
		if thickness > 1 {
			for i := 1; i <= thickness; i++ {
				plot(x, y+i)
			}
		}
		err -= dy
		if err < 0 {
			y += ystep
			err += dx
		}
	}
}
