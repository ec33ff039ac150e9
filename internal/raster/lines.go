package raster

import (
	"math"

	"soft3d/internal/frame"
	"soft3d/internal/shading"
)

// DrawLine plots an integer Bresenham line from (x0,y0) to (x1,y1), endpoints included.
// Pixels outside the buffer are dropped; depth is ignored.
func DrawLine(buf *frame.Buffer, x0, y0, x1, y1 int, c shading.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		buf.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPoint plots the pixel nearest to (x, y).
func DrawPoint(buf *frame.Buffer, x, y float64, c shading.Color) {
	buf.Set(int(math.Round(x)), int(math.Round(y)), c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
