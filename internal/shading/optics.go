package shading

import (
	"math"

	"soft3d/internal/mathutil"
)

// Reflect mirrors the incoming direction d about the unit normal n: d - 2(d·n)n.
func Reflect(d, n mathutil.Vec3) mathutil.Vec3 {
	return d.Sub(n.Scale(2 * d.Dot(n)))
}

// Refract bends the unit direction d through a boundary with unit normal n facing the
// incoming side, where eta = n1/n2. ok is false on total internal reflection.
func Refract(d, n mathutil.Vec3, eta float64) (out mathutil.Vec3, ok bool) {
	cosI := -d.Dot(n)
	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		return mathutil.Vec3{}, false
	}
	return d.Scale(eta).Add(n.Scale(eta*cosI - math.Sqrt(k))).Normalize(), true
}

// Fresnel returns the fraction of light reflected at a dielectric boundary for a ray
// arriving at cosine cosI (against the normal on the incoming side) from medium n1 into n2.
// Total internal reflection yields 1. Transmittance is 1 - Fresnel.
func Fresnel(cosI, n1, n2 float64) float64 {
	cosI = math.Min(math.Max(cosI, 0), 1)
	sinT := n1 / n2 * math.Sqrt(math.Max(0, 1-cosI*cosI))
	if sinT >= 1 {
		return 1
	}
	cosT := math.Sqrt(math.Max(0, 1-sinT*sinT))
	rs := (n1*cosI - n2*cosT) / (n1*cosI + n2*cosT)
	rp := (n1*cosT - n2*cosI) / (n1*cosT + n2*cosI)
	return (rs*rs + rp*rp) / 2
}
