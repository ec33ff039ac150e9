package batch

import (
	"soft3d/internal/frame"
	"soft3d/internal/mathutil"
	"soft3d/internal/raster"
	"soft3d/internal/rt"
	"soft3d/internal/scene"
	"soft3d/internal/shading"
)

// RasterFrames returns a Factory drawing models with the rasterizer at w×h. Models are
// read-only here; the camera orbits instead.
func RasterFrames(models []*scene.Model, cam scene.Camera, lightDir mathutil.Vec3, background shading.Color, mode raster.Mode, w, h int) Factory {
	return func() FrameFunc {
		e := raster.New(w, h)
		e.Mode = mode
		return func(angle float64) *frame.Buffer {
			ctx := raster.NewDrawContext(cam.Orbit(angle), w, h, lightDir)
			e.Clear(background)
			for _, m := range models {
				e.DrawModel(m, ctx)
			}
			return e.Buffer()
		}
	}
}

// TracedFrames returns a Factory ray tracing sc at w×h.
func TracedFrames(sc *rt.Scene, cam scene.Camera, maxDepth, w, h int) Factory {
	return func() FrameFunc {
		buf := frame.New(w, h)
		return func(angle float64) *frame.Buffer {
			tr := rt.NewTracer(sc, cam.Orbit(angle))
			tr.MaxDepth = maxDepth
			tr.Render(buf)
			return buf
		}
	}
}
