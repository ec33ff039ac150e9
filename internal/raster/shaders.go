package raster

import (
	"math"

	"soft3d/internal/mathutil"
	"soft3d/internal/scene"
	"soft3d/internal/shading"
	"soft3d/internal/texture"
)

// ambientFloor is the light level of faces turned away from the light in Flat and Gouraud.
const ambientFloor = 0.3

// TransformVertex applies the model matrix, with a homogeneous divide when the matrix
// is not affine.
func TransformVertex(local mathutil.Vec3, model mathutil.Mat4) mathutil.Vec3 {
	if model[12] == 0 && model[13] == 0 && model[14] == 0 && model[15] == 1 {
		return model.MulPoint(local)
	}
	p := model.MulVec4(local.Point())
	if p[3] != 0 && p[3] != 1 {
		return p.XYZ().Scale(1 / p[3])
	}
	return p.XYZ()
}

// base is the surface color at the fragment: the bound texture, else the "color"
// param, else white.
func base(in *scene.Fragment) shading.Color {
	return texture.OrDefault(in.Texture, in.U, in.V, in.Params.Color("color", shading.White))
}

// Unlit returns the surface color unchanged.
func Unlit(in *scene.Fragment) shading.Color {
	return base(in)
}

// Flat lights the whole triangle with the average of its vertex normals.
func Flat(in *scene.Fragment) shading.Color {
	n := in.Verts[0].Normal.Add(in.Verts[1].Normal).Add(in.Verts[2].Normal).Normalize()
	return base(in).Scale(lambert(n, in.LightDir)).Clamp()
}

// Gouraud lights each pixel with the barycentric blend of the vertex normals.
func Gouraud(in *scene.Fragment) shading.Color {
	return base(in).Scale(lambert(in.Normal(), in.LightDir)).Clamp()
}

func lambert(n, lightDir mathutil.Vec3) float64 {
	diff := math.Max(0, n.Dot(lightDir.Negate()))
	return ambientFloor + (1-ambientFloor)*diff
}

// viewDir is the viewer direction assumed by Phong; shaders see no camera.
var viewDir = mathutil.Vec3{0, 0, 1}

// Phong evaluates shading.Phong with one white directional light along LightDir and a
// white ambient term. Coefficients come from the float params ka, kd, ks, shininess
// and default to shading.DefaultMaterial.
func Phong(in *scene.Fragment) shading.Color {
	def := shading.DefaultMaterial()
	mat := shading.Material{
		Ka:        in.Params.Float("ka", def.Ka),
		Kd:        in.Params.Float("kd", def.Kd),
		Ks:        in.Params.Float("ks", def.Ks),
		Shininess: in.Params.Float("shininess", def.Shininess),
	}
	lights := []shading.Light{
		shading.Ambient{Color: shading.White, Intensity: 1},
		shading.Directional{Direction: in.LightDir, Color: shading.White, Intensity: 1},
	}
	return shading.Phong(mat, base(in), mathutil.Vec3{}, in.Normal(), viewDir, lights, nil)
}

// Pulse modulates Gouraud shading with a sine of time and screen height. The "speed"
// param sets the angular frequency (default 2 rad/s).
func Pulse(in *scene.Fragment) shading.Color {
	speed := in.Params.Float("speed", 2)
	k := 0.75 + 0.25*math.Sin(in.Time*speed+float64(in.Y)*0.05)
	return Gouraud(in).Scale(k).Clamp()
}

// ShaderByName resolves the stock fragment shaders for config and scene files.
func ShaderByName(name string) (scene.FragmentShader, bool) {
	switch name {
	case "", "unlit":
		return Unlit, true
	case "flat":
		return Flat, true
	case "gouraud":
		return Gouraud, true
	case "phong":
		return Phong, true
	case "pulse":
		return Pulse, true
	}
	return nil, false
}
