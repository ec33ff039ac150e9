package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"soft3d/internal/output"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir" yaml:"base_dir"`
	SceneFile  string `json:"scene" yaml:"scene"`
	TextureDir string `json:"texture_dir" yaml:"texture_dir"`
	Output     string `json:"output" yaml:"output"`
	OutputDir  string `json:"output_dir" yaml:"output_dir"`

	// Render settings
	Engine      string `json:"engine" yaml:"engine"` // "raster" | "rt"
	Mode        string `json:"mode" yaml:"mode"`     // raster primitive mode
	Width       int    `json:"width" yaml:"width"`
	Height      int    `json:"height" yaml:"height"`
	Supersample int    `json:"supersample" yaml:"supersample"`
	Format      string `json:"format" yaml:"format"`             // "bmp" | "png" | "webp"
	WebPQuality int    `json:"webp_quality" yaml:"webp_quality"` // kept for config compatibility; the lossless encoder ignores it
	Workers     int    `json:"workers" yaml:"workers"`
	MaxDepth    *int   `json:"max_depth,omitempty" yaml:"max_depth,omitempty"`

	// Animation and preview
	Frames int    `json:"frames" yaml:"frames"`
	FPS    int    `json:"fps" yaml:"fps"`
	Addr   string `json:"addr" yaml:"addr"`
}

// Load reads a config file and returns Config. Files ending in .yaml or .yml are YAML,
// anything else JSON. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes c in the format implied by the path's extension.
func Save(path string, c Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SceneFile != "" {
		c.SceneFile = flags.SceneFile
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Engine != "" {
		c.Engine = flags.Engine
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.MaxDepth >= 0 {
		d := flags.MaxDepth
		c.MaxDepth = &d
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Addr != "" {
		c.Addr = flags.Addr
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		c.SceneFile = c.rel(c.SceneFile)
		c.TextureDir = c.rel(c.TextureDir)
		c.Output = c.rel(c.Output)
		c.OutputDir = c.rel(c.OutputDir)
	}
	if c.TextureDir == "" && c.SceneFile != "" {
		c.TextureDir = filepath.Dir(c.SceneFile)
	}

	// Defaults for render settings
	if c.Engine == "" {
		c.Engine = "raster"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 360
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Format == "" {
		c.Format = output.FormatOf(c.Output)
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxDepth == nil {
		d := 3
		c.MaxDepth = &d
	}
	if c.Frames <= 0 {
		c.Frames = 36
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

func (c *Config) rel(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Depth returns the ray-tracing recursion limit. Valid after Resolve.
func (c *Config) Depth() int {
	if c.MaxDepth == nil {
		return 3
	}
	return *c.MaxDepth
}

// Validate reports settings no renderer can honor.
func (c *Config) Validate() error {
	switch c.Engine {
	case "raster", "rt":
	default:
		return fmt.Errorf("config: unknown engine %q", c.Engine)
	}
	if !slices.Contains(output.Formats, c.Format) {
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if c.Depth() < 0 {
		return fmt.Errorf("config: negative max_depth %d", c.Depth())
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
// MaxDepth is negative when unset, since zero is a valid limit.
type Flags struct {
	SceneFile   string
	Output      string
	OutputDir   string
	Engine      string
	Mode        string
	Width       int
	Height      int
	Supersample int
	Quality     int
	Workers     int
	MaxDepth    int
	Frames      int
	Addr        string
}
