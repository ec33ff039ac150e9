// Package scenefile reads YAML scene descriptions (JSON is accepted as a YAML subset)
// and builds rasterizer models or a ray-tracer scene from them.
package scenefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"soft3d/internal/mathutil"
	"soft3d/internal/shading"
)

// File is the on-disk scene description.
type File struct {
	Camera      CameraDef              `yaml:"camera"`
	Background  shading.Color          `yaml:"background"`
	Environment *EnvDef                `yaml:"environment,omitempty"`
	LightDir    *mathutil.Vec3         `yaml:"light_dir,omitempty"`
	Lights      []LightDef             `yaml:"lights"`
	Materials   map[string]MaterialDef `yaml:"materials"`
	Models      []ModelDef             `yaml:"models"`
	Spheres     []SphereDef            `yaml:"spheres"`
	Planes      []PlaneDef             `yaml:"planes"`
}

type CameraDef struct {
	Eye    mathutil.Vec3  `yaml:"eye"`
	Target mathutil.Vec3  `yaml:"target"`
	Up     *mathutil.Vec3 `yaml:"up,omitempty"`
	Fov    float64        `yaml:"fov"`
	Near   float64        `yaml:"near"`
	Far    float64        `yaml:"far"`
}

type EnvDef struct {
	Texture    string  `yaml:"texture"`
	Projection string  `yaml:"projection"`
	Yaw        float64 `yaml:"yaw"`
	FlipV      bool    `yaml:"flip_v"`
}

type LightDef struct {
	Type      string         `yaml:"type"`                // ambient | directional | point
	Color     *shading.Color `yaml:"color,omitempty"`     // default white
	Intensity *float64       `yaml:"intensity,omitempty"` // default 1
	Direction mathutil.Vec3  `yaml:"direction"`
	Position  mathutil.Vec3  `yaml:"position"`
	A         float64        `yaml:"a"`
	B         float64        `yaml:"b"`
}

type MaterialDef struct {
	Kind         string         `yaml:"kind"`
	Diffuse      *shading.Color `yaml:"diffuse,omitempty"`
	Ka           *float64       `yaml:"ka,omitempty"`
	Kd           *float64       `yaml:"kd,omitempty"`
	Ks           *float64       `yaml:"ks,omitempty"`
	Shininess    float64        `yaml:"shininess"`
	IOR          float64        `yaml:"ior"`
	Reflectivity float64        `yaml:"reflectivity"`
}

type ModelDef struct {
	Name        string         `yaml:"name"`
	Mesh        string         `yaml:"mesh"`
	Fit         float64        `yaml:"fit"`
	Translation mathutil.Vec3  `yaml:"translation"`
	Rotation    mathutil.Vec3  `yaml:"rotation"`
	Scale       *mathutil.Vec3 `yaml:"scale,omitempty"`
	Shader      string         `yaml:"shader"`
	Texture     string         `yaml:"texture"`
	WireColor   *shading.Color `yaml:"wire_color,omitempty"`
	Params      ParamsDef      `yaml:"params"`
}

type ParamsDef struct {
	Floats   map[string]float64       `yaml:"floats"`
	Colors   map[string]shading.Color `yaml:"colors"`
	Textures map[string]string        `yaml:"textures"`
}

type SphereDef struct {
	Center   mathutil.Vec3 `yaml:"center"`
	Radius   float64       `yaml:"radius"`
	Material string        `yaml:"material"`
	Texture  string        `yaml:"texture"`
}

type PlaneDef struct {
	Point    mathutil.Vec3 `yaml:"point"`
	Normal   mathutil.Vec3 `yaml:"normal"`
	Material string        `yaml:"material"`
}

// Load reads and parses a scene file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenefile: parse %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scene description.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
