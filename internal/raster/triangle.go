package raster

import (
	"math"

	"soft3d/internal/frame"
	"soft3d/internal/scene"
)

// RasterizeTriangle fills the pixels covered by v with the colors returned by shade.
//
// The bounding box is clipped to the buffer, coverage uses affine barycentric weights
// with no winding test, depth is interpolated linearly in screen space and must be
// strictly nearer than the stored value, and UV is interpolated perspective-correct
// through InvW. frag supplies the per-draw fields (light, texture, time, params); the
// rest is filled here. Zero-area triangles draw nothing.
//
// This is the hot path: no allocation inside the pixel loop.
func RasterizeTriangle(buf *frame.Buffer, v [3]scene.ClipVertex, shade scene.FragmentShader, frag *scene.Fragment) {
	x0, y0, z0 := v[0].Screen[0], v[0].Screen[1], v[0].Screen[2]
	x1, y1, z1 := v[1].Screen[0], v[1].Screen[1], v[1].Screen[2]
	x2, y2, z2 := v[2].Screen[0], v[2].Screen[1], v[2].Screen[2]

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det == 0 || math.IsNaN(det) {
		return
	}
	invDet := 1.0 / det

	// Bounding box, clamped before the int conversion so far-off vertices stay defined
	minX, maxX := span(min(x0, x1, x2), max(x0, x1, x2), buf.Width)
	minY, maxY := span(min(y0, y1, y2), max(y0, y1, y2), buf.Height)
	if minX > maxX || minY > maxY {
		return
	}

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	iw0, iw1, iw2 := v[0].InvW, v[1].InvW, v[2].InvW
	u0, u1, u2 := v[0].UV[0]*iw0, v[1].UV[0]*iw1, v[2].UV[0]*iw2
	t0, t1, t2 := v[0].UV[1]*iw0, v[1].UV[1]*iw1, v[2].UV[1]*iw2

	frag.Verts = v

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			if !buf.TestDepth(sx, sy, z) {
				continue
			}

			invW := w0*iw0 + w1*iw1 + w2*iw2
			if invW == 0 {
				continue
			}

			frag.Bary = [3]float64{w0, w1, w2}
			frag.U = (w0*u0 + w1*u1 + w2*u2) / invW
			frag.V = (w0*t0 + w1*t1 + w2*t2) / invW
			frag.X, frag.Y = sx, sy

			c := shade(frag)
			buf.TestAndSetDepth(sx, sy, z)
			buf.Set(sx, sy, c)
		}
	}
}

// span truncates [lo, hi] to pixel indices inside [0, n). An empty result has lo > hi.
func span(lo, hi float64, n int) (int, int) {
	if hi < 0 || lo > float64(n-1) {
		return 1, 0
	}
	return int(math.Max(lo, 0)), int(math.Min(hi, float64(n-1)))
}
