// Package mesh builds procedural interleaved vertex buffers in scene.VertexStride layout.
package mesh

import (
	"math"

	"soft3d/internal/mathutil"
	"soft3d/internal/scene"
)

// Quad returns a unit square in the XY plane facing +Z, as two triangles.
func Quad() []float64 {
	n := mathutil.Vec3{0, 0, 1}
	v := [4]scene.Vertex{
		{Position: mathutil.Vec3{-0.5, -0.5, 0}, Normal: n, UV: [2]float64{0, 0}},
		{Position: mathutil.Vec3{0.5, -0.5, 0}, Normal: n, UV: [2]float64{1, 0}},
		{Position: mathutil.Vec3{0.5, 0.5, 0}, Normal: n, UV: [2]float64{1, 1}},
		{Position: mathutil.Vec3{-0.5, 0.5, 0}, Normal: n, UV: [2]float64{0, 1}},
	}
	return quad(nil, v)
}

func quad(buf []float64, v [4]scene.Vertex) []float64 {
	for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
		buf = v[i].Append(buf)
	}
	return buf
}

// Cube returns an axis-aligned cube of edge 1 centered on the origin with flat face normals.
func Cube() []float64 {
	faces := []struct{ n, u, v mathutil.Vec3 }{
		{mathutil.Vec3{0, 0, 1}, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 1, 0}},
		{mathutil.Vec3{0, 0, -1}, mathutil.Vec3{-1, 0, 0}, mathutil.Vec3{0, 1, 0}},
		{mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 0, -1}, mathutil.Vec3{0, 1, 0}},
		{mathutil.Vec3{-1, 0, 0}, mathutil.Vec3{0, 0, 1}, mathutil.Vec3{0, 1, 0}},
		{mathutil.Vec3{0, 1, 0}, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 0, -1}},
		{mathutil.Vec3{0, -1, 0}, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 0, 1}},
	}

	var buf []float64
	for _, f := range faces {
		c := f.n.Scale(0.5)
		corner := func(su, sv float64) scene.Vertex {
			p := c.Add(f.u.Scale(su * 0.5)).Add(f.v.Scale(sv * 0.5))
			return scene.Vertex{Position: p, Normal: f.n, UV: [2]float64{(su + 1) / 2, (sv + 1) / 2}}
		}
		buf = quad(buf, [4]scene.Vertex{corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)})
	}
	return buf
}

// UVSphere returns a unit sphere tessellated into stacks×slices quads. Normals equal
// positions; u runs around the equator and v from the south pole (0) to the north (1).
func UVSphere(stacks, slices int) []float64 {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	at := func(i, j int) scene.Vertex {
		v := float64(i) / float64(stacks)
		u := float64(j) / float64(slices)
		theta := math.Pi * (1 - v) // polar angle from +Y
		phi := 2 * math.Pi * u
		p := mathutil.Vec3{
			math.Sin(theta) * math.Sin(phi),
			math.Cos(theta),
			math.Sin(theta) * math.Cos(phi),
		}
		return scene.Vertex{Position: p, Normal: p, UV: [2]float64{u, v}}
	}

	var buf []float64
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b := at(i, j), at(i, j+1)
			c, d := at(i+1, j+1), at(i+1, j)
			if i > 0 {
				buf = a.Append(buf)
				buf = b.Append(buf)
				buf = c.Append(buf)
			}
			if i < stacks-1 {
				buf = a.Append(buf)
				buf = c.Append(buf)
				buf = d.Append(buf)
			}
		}
	}
	return buf
}

// Bounds returns the axis-aligned extent of the positions in buf.
func Bounds(buf []float64) (lo, hi mathutil.Vec3) {
	lo = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i+scene.VertexStride <= len(buf); i += scene.VertexStride {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], buf[i+k])
			hi[k] = math.Max(hi[k], buf[i+k])
		}
	}
	return lo, hi
}

// Fit recenters buf on its bounding-box center and scales it so the farthest vertex
// lies at radius. Normals and UVs are untouched. buf is modified in place and returned.
func Fit(buf []float64, radius float64) []float64 {
	if len(buf) < scene.VertexStride {
		return buf
	}
	lo, hi := Bounds(buf)
	center := lo.Add(hi).Scale(0.5)

	far := 0.0
	for i := 0; i+scene.VertexStride <= len(buf); i += scene.VertexStride {
		p := mathutil.Vec3{buf[i], buf[i+1], buf[i+2]}.Sub(center)
		far = math.Max(far, p.Len())
	}
	s := 1.0
	if far > 1e-12 {
		s = radius / far
	}

	for i := 0; i+scene.VertexStride <= len(buf); i += scene.VertexStride {
		for k := 0; k < 3; k++ {
			buf[i+k] = (buf[i+k] - center[k]) * s
		}
	}
	return buf
}

// ByName returns a procedural mesh for scene files: "cube", "sphere", or "quad".
func ByName(name string) ([]float64, bool) {
	switch name {
	case "cube":
		return Cube(), true
	case "sphere":
		return UVSphere(16, 32), true
	case "quad", "plane":
		return Quad(), true
	}
	return nil, false
}
