package scenefile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"soft3d/internal/mathutil"
	"soft3d/internal/mesh"
	"soft3d/internal/raster"
	"soft3d/internal/rt"
	"soft3d/internal/scene"
	"soft3d/internal/shading"
	"soft3d/internal/texture"
)

// defaultLightDir is the raster light when the file names none.
var defaultLightDir = mathutil.Vec3{0.5, -0.7, -1}

// Builder turns a File into engine inputs. Textures are looked up through Textures;
// names that do not resolve are recorded in Warnings and left unbound. Relative .obj
// mesh paths are joined to MeshDir.
type Builder struct {
	Textures texture.Resolver
	MeshDir  string
	Warnings []string
}

func (b *Builder) texture(name string) texture.Sampler {
	if name == "" {
		return nil
	}
	if b.Textures != nil {
		if img, ok := b.Textures.Resolve(name); ok {
			return img
		}
	}
	b.Warnings = append(b.Warnings, fmt.Sprintf("texture %q not found", name))
	return nil
}

// ViewCamera returns the scene camera, defaulting up to +Y, fov to 60° and the depth
// range to 0.1..100.
func (f *File) ViewCamera() scene.Camera {
	c := scene.NewCamera(f.Camera.Eye, f.Camera.Target)
	if f.Camera.Up != nil {
		c.Up = *f.Camera.Up
	}
	if f.Camera.Fov > 0 {
		c.FovY = f.Camera.Fov
	}
	if f.Camera.Near > 0 {
		c.Near = f.Camera.Near
	}
	if f.Camera.Far > 0 {
		c.Far = f.Camera.Far
	}
	return c
}

// RasterLight returns the light direction for the rasterizer.
func (f *File) RasterLight() mathutil.Vec3 {
	if f.LightDir != nil {
		return f.LightDir.Normalize()
	}
	return defaultLightDir.Normalize()
}

// Models builds the rasterizer models.
func (b *Builder) Models(f *File) ([]*scene.Model, error) {
	models := make([]*scene.Model, 0, len(f.Models))
	for i, def := range f.Models {
		verts, meshTex, err := b.mesh(def.Mesh)
		if err != nil {
			return nil, fmt.Errorf("scenefile: model %d: %w", i, err)
		}
		if def.Fit > 0 {
			mesh.Fit(verts, def.Fit)
		}

		m := scene.NewModel(verts)
		m.Name = def.Name
		m.Translation = def.Translation
		m.Rotation = def.Rotation
		if def.Scale != nil {
			m.Scale = *def.Scale
		}
		if def.WireColor != nil {
			m.WireColor = *def.WireColor
		}

		shader, ok := raster.ShaderByName(def.Shader)
		if !ok {
			return nil, fmt.Errorf("scenefile: model %d: unknown shader %q", i, def.Shader)
		}
		m.FragmentShader = shader
		if def.Texture != "" {
			m.Texture = b.texture(def.Texture)
		} else {
			m.Texture = b.meshTexture(meshTex)
		}

		for k, v := range def.Params.Floats {
			m.Params.SetFloat(k, v)
		}
		for k, v := range def.Params.Colors {
			m.Params.SetColor(k, v)
		}
		for _, k := range sortedKeys(def.Params.Textures) {
			if s := b.texture(def.Params.Textures[k]); s != nil {
				m.Params.SetTexture(k, s)
			}
		}
		models = append(models, m)
	}
	return models, nil
}

// meshTexture binds a texture named by a mesh's material library. The path is loaded
// directly when it exists; otherwise its stem goes through the texture index.
func (b *Builder) meshTexture(path string) texture.Sampler {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		img, err := texture.Load(path)
		if err == nil {
			return img
		}
		b.Warnings = append(b.Warnings, err.Error())
		return nil
	}
	return b.texture(path)
}

// mesh returns the vertex buffer for a model's mesh field and, for OBJ files, the
// diffuse texture its material library names.
func (b *Builder) mesh(name string) ([]float64, string, error) {
	if strings.EqualFold(filepath.Ext(name), ".obj") {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.MeshDir, path)
		}
		o, err := mesh.LoadOBJ(path)
		if err != nil {
			return nil, "", err
		}
		return o.Vertices, o.Texture(), nil
	}
	verts, ok := mesh.ByName(name)
	if !ok {
		return nil, "", fmt.Errorf("unknown mesh %q", name)
	}
	return verts, "", nil
}

// RayScene builds the ray tracer's scene.
func (b *Builder) RayScene(f *File) (*rt.Scene, error) {
	mats := make(map[string]shading.Material, len(f.Materials))
	for _, name := range sortedKeys(f.Materials) {
		m, err := f.Materials[name].material()
		if err != nil {
			return nil, fmt.Errorf("scenefile: material %s: %w", name, err)
		}
		mats[name] = m
	}
	lookup := func(name string) (shading.Material, error) {
		if name == "" {
			return shading.DefaultMaterial(), nil
		}
		m, ok := mats[name]
		if !ok {
			return shading.Material{}, fmt.Errorf("scenefile: unknown material %q", name)
		}
		return m, nil
	}

	sc := &rt.Scene{Background: f.Background}
	for _, def := range f.Spheres {
		m, err := lookup(def.Material)
		if err != nil {
			return nil, err
		}
		sc.Add(&scene.Sphere{Center: def.Center, Radius: def.Radius, Mat: m, Texture: b.texture(def.Texture)})
	}
	for _, def := range f.Planes {
		m, err := lookup(def.Material)
		if err != nil {
			return nil, err
		}
		sc.Add(&scene.Plane{Point: def.Point, Normal: def.Normal.Normalize(), Mat: m})
	}

	lights, err := f.lights()
	if err != nil {
		return nil, err
	}
	sc.AddLight(lights...)

	if env := f.Environment; env != nil {
		proj, err := texture.ParseProjection(env.Projection)
		if err != nil {
			return nil, fmt.Errorf("scenefile: environment: %w", err)
		}
		if src := b.texture(env.Texture); src != nil {
			sc.Env = texture.NewEnvMap(src, proj, env.Yaw, env.FlipV)
		}
	}
	return sc, nil
}

// lights returns the declared lights, or a dim ambient plus one directional light.
func (f *File) lights() ([]shading.Light, error) {
	if len(f.Lights) == 0 {
		return []shading.Light{
			shading.Ambient{Color: shading.White, Intensity: 0.1},
			shading.Directional{Direction: f.RasterLight(), Color: shading.White, Intensity: 1},
		}, nil
	}

	out := make([]shading.Light, 0, len(f.Lights))
	for i, def := range f.Lights {
		col := shading.White
		if def.Color != nil {
			col = *def.Color
		}
		intensity := 1.0
		if def.Intensity != nil {
			intensity = *def.Intensity
		}
		switch def.Type {
		case "ambient":
			out = append(out, shading.Ambient{Color: col, Intensity: intensity})
		case "directional":
			out = append(out, shading.Directional{Direction: def.Direction, Color: col, Intensity: intensity})
		case "point":
			out = append(out, shading.Point{Position: def.Position, Color: col, Intensity: intensity, A: def.A, B: def.B})
		default:
			return nil, fmt.Errorf("scenefile: light %d: unknown type %q", i, def.Type)
		}
	}
	return out, nil
}

func (d MaterialDef) material() (shading.Material, error) {
	kind, err := shading.ParseMaterialKind(d.Kind)
	if err != nil {
		return shading.Material{}, err
	}
	m := shading.DefaultMaterial()
	m.Kind = kind
	if d.Diffuse != nil {
		m.Diffuse = *d.Diffuse
	}
	if d.Ka != nil {
		m.Ka = *d.Ka
	}
	if d.Kd != nil {
		m.Kd = *d.Kd
	}
	if d.Ks != nil {
		m.Ks = *d.Ks
	}
	if d.Shininess != 0 {
		m.Shininess = d.Shininess
	}
	m.IOR = d.IOR
	m.Reflectivity = d.Reflectivity
	if err := m.Validate(); err != nil {
		return shading.Material{}, err
	}
	return m, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
