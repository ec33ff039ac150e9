package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"soft3d/internal/batch"
	"soft3d/internal/config"
	"soft3d/internal/raster"
	"soft3d/internal/scenefile"
	"soft3d/internal/texture"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	sceneFile := flag.String("scene", "", "Path to scene file")
	engine := flag.String("engine", "", "Renderer: raster | rt (default: raster)")
	outputDir := flag.String("output", "", "Output directory (default: turntable)")
	frames := flag.Int("frames", 0, "Number of frames in one turn (default: 36)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	width := flag.Int("width", 0, "Frame width (default: 640)")
	height := flag.Int("height", 0, "Frame height (default: 360)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 1)")
	quality := flag.Int("quality", 0, "WebP quality 1-100; ignored, WebP output is always lossless")
	maxDepth := flag.Int("maxdepth", -1, "Ray-tracing recursion limit (default: 3)")
	mode := flag.String("mode", "", "Raster primitive mode: triangles | lines | points")
	format := flag.String("format", "", "Frame format: png | bmp | webp (default: png)")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
	}
	if *format != "" {
		cfg.Format = *format
	}
	cfg.Resolve(config.Flags{
		SceneFile:   *sceneFile,
		OutputDir:   *outputDir,
		Engine:      *engine,
		Mode:        *mode,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Quality:     *quality,
		Workers:     *workers,
		MaxDepth:    *maxDepth,
		Frames:      *frames,
	})
	if cfg.OutputDir == "" {
		cfg.OutputDir = "turntable"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Send()
	}
	if cfg.SceneFile == "" {
		log.Fatal().Msg("no scene file; use -scene or config")
	}

	f, err := scenefile.Load(cfg.SceneFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load scene")
	}
	b := &scenefile.Builder{
		Textures: texture.NewCache(texture.BuildIndex(cfg.TextureDir)),
		MeshDir:  filepath.Dir(cfg.SceneFile),
	}

	w, h := cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample
	var factory batch.Factory
	switch cfg.Engine {
	case "rt":
		sc, err := b.RayScene(f)
		if err != nil {
			log.Fatal().Err(err).Msg("build scene")
		}
		factory = batch.TracedFrames(sc, f.ViewCamera(), cfg.Depth(), w, h)
	default:
		m, err := raster.ParseMode(cfg.Mode)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		models, err := b.Models(f)
		if err != nil {
			log.Fatal().Err(err).Msg("build models")
		}
		factory = batch.RasterFrames(models, f.ViewCamera(), f.RasterLight(), f.Background, m, w, h)
	}
	for _, warn := range b.Warnings {
		log.Warn().Msg(warn)
	}

	log.Info().
		Str("scene", cfg.SceneFile).
		Str("engine", cfg.Engine).
		Int("frames", cfg.Frames).
		Int("workers", cfg.Workers).
		Str("output", cfg.OutputDir).
		Msg("turntable start")

	start := time.Now()
	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      cfg.Format,
		Frames:      cfg.Frames,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Log:         log.Logger,
	}, factory)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			log.Error().Int("frame", r.Frame).Str("error", r.Error).Msg("frame failed")
		}
	}
	log.Info().Int("rendered", len(results)-failed).Int("total", len(results)).Dur("elapsed", time.Since(start)).Msg("done")

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, cfg.Width, cfg.Height, cfg.Format, results); err != nil {
		log.Warn().Err(err).Msg("manifest write failed")
	} else {
		log.Info().Str("path", manifestPath).Msg("manifest written")
	}
	if err := config.Save(filepath.Join(cfg.OutputDir, "config.json"), cfg); err != nil {
		log.Warn().Err(err).Msg("config snapshot failed")
	}

	if failed > 0 {
		os.Exit(1)
	}
}
