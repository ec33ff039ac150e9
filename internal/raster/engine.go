// Package raster is the triangle rasterization engine: per-vertex transform, primitive
// assembly, depth-tested scan conversion and programmable fragment shading.
package raster

import (
	"fmt"
	"math"

	"soft3d/internal/frame"
	"soft3d/internal/mathutil"
	"soft3d/internal/scene"
	"soft3d/internal/shading"
)

// Mode selects how the vertex stream is grouped into primitives.
type Mode int

const (
	Triangles Mode = iota
	Lines
	Points
)

func (m Mode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case Points:
		return "points"
	}
	return "unknown"
}

// ParseMode maps a config name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "triangles":
		return Triangles, nil
	case "lines", "wireframe":
		return Lines, nil
	case "points":
		return Points, nil
	}
	return Triangles, fmt.Errorf("raster: unknown mode %q", s)
}

// DrawContext is the per-draw state a caller hands to DrawModel.
type DrawContext struct {
	Transform mathutil.Mat4 // viewport · projection · view
	LightDir  mathutil.Vec3 // unit direction the light travels
	Time      float64       // seconds, forwarded to fragment shaders
}

// NewDrawContext builds the transform for a w×h target seen through cam.
func NewDrawContext(cam scene.Camera, w, h int, lightDir mathutil.Vec3) DrawContext {
	vp := mathutil.Viewport(0, 0, float64(w), float64(h))
	return DrawContext{
		Transform: mathutil.Mat4Chain(vp, cam.Projection(scene.Aspect(w, h)), cam.View()),
		LightDir:  lightDir.Normalize(),
	}
}

// Presenter receives the finished frame.
type Presenter interface {
	Present(buf *frame.Buffer) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(buf *frame.Buffer) error

func (f PresenterFunc) Present(buf *frame.Buffer) error { return f(buf) }

// Engine owns one color+depth buffer. It is not safe for concurrent use; run one
// Engine per goroutine.
type Engine struct {
	Mode Mode

	buf   *frame.Buffer
	verts []scene.ClipVertex
	live  []bool
	frag  scene.Fragment
}

// New allocates an engine rendering triangles into a w×h buffer.
func New(w, h int) *Engine {
	return &Engine{buf: frame.NewWithDepth(w, h)}
}

func (e *Engine) Buffer() *frame.Buffer { return e.buf }

// Clear fills the frame with c and resets depth to +Inf.
func (e *Engine) Clear(c shading.Color) {
	e.buf.Clear(c)
}

// Present hands the current frame to p.
func (e *Engine) Present(p Presenter) error {
	return p.Present(e.buf)
}

// DrawModel transforms m's vertices and draws them in the current mode. Incomplete
// trailing primitives are ignored. Triangles with a vertex at or behind the eye plane
// (clip w ≤ 0) are dropped.
func (e *Engine) DrawModel(m *scene.Model, ctx DrawContext) {
	n := e.transform(m, ctx)

	switch e.Mode {
	case Points:
		for i := 0; i < n; i++ {
			if e.live[i] {
				s := e.verts[i].Screen
				DrawPoint(e.buf, s[0], s[1], m.WireColor)
			}
		}
	case Lines:
		for i := 0; i+2 < n; i += 3 {
			for j := 0; j < 3; j++ {
				a, b := i+j, i+(j+1)%3
				if e.live[a] && e.live[b] {
					e.edge(e.verts[a].Screen, e.verts[b].Screen, m.WireColor)
				}
			}
		}
	default:
		shade := m.FragmentShader
		if shade == nil {
			shade = Unlit
		}
		e.frag = scene.Fragment{
			LightDir: ctx.LightDir,
			Texture:  m.Texture,
			Time:     ctx.Time,
			Params:   m.Params,
		}
		for i := 0; i+2 < n; i += 3 {
			if !e.live[i] || !e.live[i+1] || !e.live[i+2] {
				continue
			}
			tri := [3]scene.ClipVertex{e.verts[i], e.verts[i+1], e.verts[i+2]}
			RasterizeTriangle(e.buf, tri, shade, &e.frag)
		}
	}
}

// transform runs the vertex stage into e.verts and returns the vertex count.
func (e *Engine) transform(m *scene.Model, ctx DrawContext) int {
	n := m.VertexCount()
	if cap(e.verts) < n {
		e.verts = make([]scene.ClipVertex, n)
		e.live = make([]bool, n)
	}
	e.verts = e.verts[:n]
	e.live = e.live[:n]

	model := m.Matrix()
	vs := m.VertexShader
	if vs == nil {
		vs = TransformVertex
	}

	for i := 0; i < n; i++ {
		v := m.Vertex(i)
		world := vs(v.Position, model)
		clip := ctx.Transform.MulVec4(world.Point())

		w := clip[3]
		e.live[i] = w > 0
		if !e.live[i] {
			e.verts[i] = scene.ClipVertex{}
			continue
		}
		inv := 1 / w
		e.verts[i] = scene.ClipVertex{
			Screen: mathutil.Vec3{clip[0] * inv, clip[1] * inv, clip[2] * inv},
			Normal: v.Normal,
			UV:     v.UV,
			InvW:   inv,
		}
	}
	return n
}

// maxCoord bounds line endpoints so a vertex projected near infinity cannot stall
// the Bresenham walk.
const maxCoord = 1 << 20

func (e *Engine) edge(a, b mathutil.Vec3, c shading.Color) {
	w, h := float64(e.buf.Width), float64(e.buf.Height)
	if (a[0] < 0 && b[0] < 0) || (a[1] < 0 && b[1] < 0) ||
		(a[0] >= w && b[0] >= w) || (a[1] >= h && b[1] >= h) {
		return
	}
	for _, v := range []float64{a[0], a[1], b[0], b[1]} {
		if math.IsNaN(v) || math.Abs(v) > maxCoord {
			return
		}
	}
	DrawLine(e.buf, int(math.Round(a[0])), int(math.Round(a[1])), int(math.Round(b[0])), int(math.Round(b[1])), c)
}
