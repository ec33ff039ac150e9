package scene

import (
	"math"

	"soft3d/internal/mathutil"
	"soft3d/internal/shading"
	"soft3d/internal/texture"
)

// Ray is a half-line. Direction is expected to be unit length.
type Ray struct {
	Origin, Direction mathutil.Vec3
}

func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Intercept records one ray/primitive hit. Normal is unit length and points away from
// the primitive regardless of which side the ray arrived from.
type Intercept struct {
	Point    mathutil.Vec3
	Normal   mathutil.Vec3
	Distance float64
	Incoming mathutil.Vec3
	Object   Primitive

	// Color is the surface base color at Point: texture sample or material diffuse.
	Color shading.Color
}

// Primitive is anything a ray can hit.
type Primitive interface {
	// Intersect returns the nearest hit with tMin < t < tMax.
	Intersect(r Ray, tMin, tMax float64) (Intercept, bool)
	Material() shading.Material
}

// Sphere is a ray-traceable sphere. When Texture is set it is mapped by latitude and
// longitude and replaces Mat.Diffuse as the base color.
type Sphere struct {
	Center  mathutil.Vec3
	Radius  float64
	Mat     shading.Material
	Texture texture.Sampler
}

func (s *Sphere) Material() shading.Material { return s.Mat }

func (s *Sphere) Intersect(r Ray, tMin, tMax float64) (Intercept, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	halfB := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 || a == 0 {
		return Intercept{}, false
	}
	sq := math.Sqrt(disc)

	t := (-halfB - sq) / a
	if t <= tMin || t >= tMax {
		t = (-halfB + sq) / a
		if t <= tMin || t >= tMax {
			return Intercept{}, false
		}
	}

	p := r.At(t)
	n := p.Sub(s.Center).Scale(1 / s.Radius)
	return Intercept{
		Point:    p,
		Normal:   n,
		Distance: t,
		Incoming: r.Direction,
		Object:   s,
		Color:    s.colorAt(n),
	}, true
}

func (s *Sphere) colorAt(n mathutil.Vec3) shading.Color {
	if s.Texture == nil {
		return s.Mat.Diffuse
	}
	u := 0.5 + math.Atan2(n[0], n[2])/(2*math.Pi)
	v := 0.5 + math.Asin(math.Max(-1, math.Min(1, n[1])))/math.Pi
	return s.Texture.Sample(u, v)
}

// Plane is an infinite plane through Point. Normal must be unit length.
type Plane struct {
	Point  mathutil.Vec3
	Normal mathutil.Vec3
	Mat    shading.Material
}

func (p *Plane) Material() shading.Material { return p.Mat }

func (p *Plane) Intersect(r Ray, tMin, tMax float64) (Intercept, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < 1e-12 {
		return Intercept{}, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t <= tMin || t >= tMax {
		return Intercept{}, false
	}
	return Intercept{
		Point:    r.At(t),
		Normal:   p.Normal,
		Distance: t,
		Incoming: r.Direction,
		Object:   p,
		Color:    p.Mat.Diffuse,
	}, true
}
