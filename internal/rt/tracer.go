package rt

import (
	"soft3d/internal/frame"
	"soft3d/internal/mathutil"
	"soft3d/internal/scene"
	"soft3d/internal/shading"
)

const (
	DefaultEpsilon  = 1e-4
	DefaultMaxDepth = 3
)

// Tracer renders a Scene through a Camera. Only Camera.Eye, Target, Up and FovY are
// used; there is no far plane.
type Tracer struct {
	Scene    *Scene
	Camera   scene.Camera
	MaxDepth int
	Epsilon  float64
}

// NewTracer returns a tracer with the default epsilon and recursion limit.
func NewTracer(sc *Scene, cam scene.Camera) *Tracer {
	return &Tracer{Scene: sc, Camera: cam, MaxDepth: DefaultMaxDepth, Epsilon: DefaultEpsilon}
}

// PrimaryRay returns the ray through the center of pixel (x, y) of a w×h image.
// y grows upward.
func (t *Tracer) PrimaryRay(x, y, w, h int) scene.Ray {
	nx := 2*(float64(x)+0.5)/float64(w) - 1
	ny := 2*(float64(y)+0.5)/float64(h) - 1
	return t.Camera.RayThrough(nx, ny, scene.Aspect(w, h))
}

// Render traces one ray per pixel into buf.
func (t *Tracer) Render(buf *frame.Buffer) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			buf.Set(x, y, t.Trace(t.PrimaryRay(x, y, buf.Width, buf.Height), 0))
		}
	}
}

// Trace returns the color seen along r. depth counts the bounces taken so far;
// at MaxDepth reflective and transparent surfaces fall back to local shading.
func (t *Tracer) Trace(r scene.Ray, depth int) shading.Color {
	hit, ok := t.Scene.Hit(r, t.Epsilon, inf)
	if !ok {
		return t.Scene.Sky(r)
	}

	mat := hit.Object.Material()
	if mat.Kind == shading.Opaque || depth >= t.MaxDepth {
		return t.local(hit, mat)
	}

	switch mat.Kind {
	case shading.Reflective:
		n := facing(hit.Normal, r.Direction)
		refl := t.Trace(scene.Ray{
			Origin:    hit.Point.Add(n.Scale(t.Epsilon)),
			Direction: shading.Reflect(r.Direction, n).Normalize(),
		}, depth+1)
		return t.local(hit, mat).Lerp(refl, mat.Reflectivity)
	case shading.Transparent:
		return t.transmit(r, hit, mat, depth)
	}
	return t.local(hit, mat)
}

// local is Phong shading with shadow rays toward every non-ambient light.
func (t *Tracer) local(hit scene.Intercept, mat shading.Material) shading.Color {
	n := facing(hit.Normal, hit.Incoming)
	view := hit.Incoming.Negate()
	origin := hit.Point.Add(n.Scale(t.Epsilon))

	occluded := func(s shading.LightSample) bool {
		if s.Direction == (mathutil.Vec3{}) {
			return false
		}
		return t.Scene.Blocked(scene.Ray{Origin: origin, Direction: s.Direction}, t.Epsilon, s.Distance)
	}
	return shading.Phong(mat, hit.Color, hit.Point, n, view, t.Scene.Lights, occluded)
}

// transmit splits r at a dielectric boundary into Fresnel-weighted reflected and
// refracted rays. Total internal reflection sends everything to the reflected ray.
func (t *Tracer) transmit(r scene.Ray, hit scene.Intercept, mat shading.Material, depth int) shading.Color {
	n := hit.Normal
	n1, n2 := 1.0, mat.IOR
	cosI := -r.Direction.Dot(n)
	if cosI < 0 {
		// leaving the medium
		n = n.Negate()
		cosI = -cosI
		n1, n2 = n2, n1
	}

	kr := shading.Fresnel(cosI, n1, n2)
	reflected := t.Trace(scene.Ray{
		Origin:    hit.Point.Add(n.Scale(t.Epsilon)),
		Direction: shading.Reflect(r.Direction, n).Normalize(),
	}, depth+1)

	var refracted shading.Color
	if kr < 1 {
		if dir, ok := shading.Refract(r.Direction, n, n1/n2); ok {
			refracted = t.Trace(scene.Ray{
				Origin:    hit.Point.Sub(n.Scale(t.Epsilon)),
				Direction: dir,
			}, depth+1)
		} else {
			kr = 1
		}
	}
	return reflected.Scale(kr).Add(refracted.Scale(1 - kr)).Clamp()
}

// facing flips n to the side the ray d arrives from.
func facing(n, d mathutil.Vec3) mathutil.Vec3 {
	if n.Dot(d) > 0 {
		return n.Negate()
	}
	return n
}
