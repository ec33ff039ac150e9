// Package rt is the recursive ray-tracing engine.
package rt

import (
	"math"

	"soft3d/internal/scene"
	"soft3d/internal/shading"
	"soft3d/internal/texture"
)

// Scene is what the tracer sees: primitives, lights and what lies beyond them.
type Scene struct {
	Primitives []scene.Primitive
	Lights     []shading.Light
	Background shading.Color
	Env        *texture.EnvMap // nil means Background
}

func (s *Scene) Add(p ...scene.Primitive) {
	s.Primitives = append(s.Primitives, p...)
}

func (s *Scene) AddLight(l ...shading.Light) {
	s.Lights = append(s.Lights, l...)
}

// Hit returns the nearest intersection with tMin < t < tMax.
func (s *Scene) Hit(r scene.Ray, tMin, tMax float64) (scene.Intercept, bool) {
	var best scene.Intercept
	found := false
	closest := tMax
	for _, p := range s.Primitives {
		if hit, ok := p.Intersect(r, tMin, closest); ok {
			best = hit
			closest = hit.Distance
			found = true
		}
	}
	return best, found
}

// Blocked reports whether anything lies on r within (tMin, tMax). It stops at the first hit.
func (s *Scene) Blocked(r scene.Ray, tMin, tMax float64) bool {
	for _, p := range s.Primitives {
		if _, ok := p.Intersect(r, tMin, tMax); ok {
			return true
		}
	}
	return false
}

// Sky returns the color seen along a ray that hits nothing.
func (s *Scene) Sky(r scene.Ray) shading.Color {
	if s.Env != nil && s.Env.Source != nil {
		return s.Env.Lookup(r.Direction)
	}
	return s.Background
}

var inf = math.Inf(1)
