package scene

import (
	"soft3d/internal/mathutil"
	"soft3d/internal/shading"
	"soft3d/internal/texture"
)

// VertexShader maps a model-space position to world space. The engine applies view,
// projection, viewport and the perspective divide afterwards.
type VertexShader func(local mathutil.Vec3, model mathutil.Mat4) mathutil.Vec3

// FragmentShader returns the color of one covered pixel.
type FragmentShader func(in *Fragment) shading.Color

// ClipVertex is a vertex after the engine's transform stage.
type ClipVertex struct {
	Screen mathutil.Vec3 // pixel x, pixel y, depth in [0,1]
	Normal mathutil.Vec3
	UV     [2]float64
	InvW   float64
}

// Fragment is everything a fragment shader may read. The engine reuses one Fragment
// per triangle, so shaders must not retain the pointer.
type Fragment struct {
	Verts    [3]ClipVertex
	Bary     [3]float64
	LightDir mathutil.Vec3
	Texture  texture.Sampler
	U, V     float64
	X, Y     int
	Time     float64
	Params   Params
}

// Normal interpolates the vertex normals with the barycentric weights and normalizes.
func (f *Fragment) Normal() mathutil.Vec3 {
	var n mathutil.Vec3
	for i := range f.Verts {
		n = n.Add(f.Verts[i].Normal.Scale(f.Bary[i]))
	}
	return n.Normalize()
}

// Params is the typed extension map passed to fragment shaders.
type Params struct {
	Floats   map[string]float64
	Colors   map[string]shading.Color
	Textures map[string]texture.Sampler
}

// Float returns the named value or def.
func (p Params) Float(name string, def float64) float64 {
	if v, ok := p.Floats[name]; ok {
		return v
	}
	return def
}

// Color returns the named color or def.
func (p Params) Color(name string, def shading.Color) shading.Color {
	if v, ok := p.Colors[name]; ok {
		return v
	}
	return def
}

// Texture returns the named sampler, or nil.
func (p Params) Texture(name string) texture.Sampler {
	return p.Textures[name]
}

func (p *Params) SetFloat(name string, v float64) {
	if p.Floats == nil {
		p.Floats = make(map[string]float64)
	}
	p.Floats[name] = v
}

func (p *Params) SetColor(name string, c shading.Color) {
	if p.Colors == nil {
		p.Colors = make(map[string]shading.Color)
	}
	p.Colors[name] = c
}

func (p *Params) SetTexture(name string, s texture.Sampler) {
	if p.Textures == nil {
		p.Textures = make(map[string]texture.Sampler)
	}
	p.Textures[name] = s
}
