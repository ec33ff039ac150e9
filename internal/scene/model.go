// Package scene holds the entities both engines consume: models and their shader
// bindings, the camera, and the ray-traceable primitives.
package scene

import (
	"soft3d/internal/mathutil"
	"soft3d/internal/shading"
	"soft3d/internal/texture"
)

// VertexStride is the number of floats per interleaved vertex: position, normal, uv.
const VertexStride = 8

// Vertex is one decoded entry of a model's vertex buffer.
type Vertex struct {
	Position mathutil.Vec3
	Normal   mathutil.Vec3
	UV       [2]float64
}

// Append writes v to buf in interleaved order.
func (v Vertex) Append(buf []float64) []float64 {
	return append(buf,
		v.Position[0], v.Position[1], v.Position[2],
		v.Normal[0], v.Normal[1], v.Normal[2],
		v.UV[0], v.UV[1])
}

// Model is a flat interleaved vertex buffer plus its placement and shader bindings.
// A driver may change Translation, Rotation and Scale between frames, never during one.
type Model struct {
	Name     string
	Vertices []float64

	Translation mathutil.Vec3
	Rotation    mathutil.Vec3 // pitch, yaw, roll in degrees
	Scale       mathutil.Vec3

	VertexShader   VertexShader
	FragmentShader FragmentShader
	Texture        texture.Sampler
	Params         Params

	// WireColor is used by the points and lines primitive modes.
	WireColor shading.Color
}

// NewModel returns a model at the origin with unit scale and white wireframe.
func NewModel(vertices []float64) *Model {
	return &Model{
		Vertices:  vertices,
		Scale:     mathutil.Vec3{1, 1, 1},
		WireColor: shading.White,
	}
}

// Matrix returns T·Rx·Ry·Rz·S for the current placement.
func (m *Model) Matrix() mathutil.Mat4 {
	return mathutil.ModelMatrix(m.Translation, m.Rotation, m.Scale)
}

// VertexCount returns the number of complete vertices in the buffer.
func (m *Model) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// Vertex decodes vertex i. i must be below VertexCount.
func (m *Model) Vertex(i int) Vertex {
	b := m.Vertices[i*VertexStride : (i+1)*VertexStride]
	return Vertex{
		Position: mathutil.Vec3{b[0], b[1], b[2]},
		Normal:   mathutil.Vec3{b[3], b[4], b[5]},
		UV:       [2]float64{b[6], b[7]},
	}
}
