package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"soft3d/internal/config"
	"soft3d/internal/frame"
	"soft3d/internal/output"
	"soft3d/internal/postprocess"
	"soft3d/internal/raster"
	"soft3d/internal/rt"
	"soft3d/internal/scenefile"
	"soft3d/internal/texture"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	sceneFile := flag.String("scene", "", "Path to scene file")
	engine := flag.String("engine", "", "Renderer: raster | rt (default: raster)")
	out := flag.String("out", "", "Output image path (.png, .bmp, .webp)")
	width := flag.Int("width", 0, "Image width (default: 640)")
	height := flag.Int("height", 0, "Image height (default: 360)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 1)")
	quality := flag.Int("quality", 0, "WebP quality 1-100; ignored, WebP output is always lossless")
	maxDepth := flag.Int("maxdepth", -1, "Ray-tracing recursion limit (default: 3)")
	mode := flag.String("mode", "", "Raster primitive mode: triangles | lines | points")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
	}
	cfg.Resolve(config.Flags{
		SceneFile:   *sceneFile,
		Output:      *out,
		Engine:      *engine,
		Mode:        *mode,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Quality:     *quality,
		MaxDepth:    *maxDepth,
	})
	if cfg.Output == "" {
		cfg.Output = "render" + output.Ext(cfg.Format)
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
	texIndex := texture.BuildIndex(cfg.TextureDir)
	b := &scenefile.Builder{
		Textures: texture.NewCache(texIndex),
		MeshDir:  filepath.Dir(cfg.SceneFile),
	}
	log.Info().Str("scene", cfg.SceneFile).Int("textures", texIndex.Len()).Str("engine", cfg.Engine).Msg("scene loaded")

	w, h := cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample
	start := time.Now()

	var buf *frame.Buffer
	switch cfg.Engine {
	case "rt":
		sc, err := b.RayScene(f)
		if err != nil {
			log.Fatal().Err(err).Msg("build scene")
		}
		tr := rt.NewTracer(sc, f.ViewCamera())
		tr.MaxDepth = cfg.Depth()
		buf = frame.New(w, h)
		tr.Render(buf)
	default:
		m, err := raster.ParseMode(cfg.Mode)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		models, err := b.Models(f)
		if err != nil {
			log.Fatal().Err(err).Msg("build models")
		}
		e := raster.New(w, h)
		e.Mode = m
		ctx := raster.NewDrawContext(f.ViewCamera(), w, h, f.RasterLight())
		e.Clear(f.Background)
		for _, model := range models {
			e.DrawModel(model, ctx)
		}
		buf = e.Buffer()
	}

	for _, warn := range b.Warnings {
		log.Warn().Msg(warn)
	}

	img := postprocess.Resolve(buf, cfg.Supersample)
	if err := output.Save(cfg.Output, img, cfg.Format); err != nil {
		log.Fatal().Err(err).Msg("save")
	}
	log.Info().Str("path", cfg.Output).Dur("elapsed", time.Since(start)).Msg("rendered")
}
