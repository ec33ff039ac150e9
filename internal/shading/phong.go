package shading

import (
	"math"

	"soft3d/internal/mathutil"
)

// OcclusionTest reports whether the light described by s is blocked at the shaded point.
// A nil OcclusionTest means nothing is ever occluded.
type OcclusionTest func(s LightSample) bool

// Phong evaluates the local illumination at point:
//
//	base·(ka·ΣAmbient + kd·ΣL·max(0,N·L)) + ks·ΣL·max(0,R·V)^shininess
//
// normal and view must be unit vectors; view points from the surface toward the eye.
// The result is clamped to [0,1].
func Phong(m Material, base Color, point, normal, view mathutil.Vec3, lights []Light, occluded OcclusionTest) Color {
	var ambient, diffuse, specular Color

	for _, light := range lights {
		s := light.Sample(point)
		if s.Kind == KindAmbient {
			ambient = ambient.Add(s.Color)
			continue
		}
		if occluded != nil && occluded(s) {
			continue
		}

		ndl := normal.Dot(s.Direction)
		if ndl <= 0 {
			continue
		}
		diffuse = diffuse.Add(s.Color.Scale(ndl))

		r := Reflect(s.Direction.Negate(), normal)
		rdv := r.Dot(view)
		if rdv > 0 {
			specular = specular.Add(s.Color.Scale(math.Pow(rdv, m.Shininess)))
		}
	}

	lit := ambient.Scale(m.Ka).Add(diffuse.Scale(m.Kd))
	return base.Mul(lit).Add(specular.Scale(m.Ks)).Clamp()
}
