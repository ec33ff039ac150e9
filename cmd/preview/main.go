package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"soft3d/internal/config"
	"soft3d/internal/mathutil"
	"soft3d/internal/preview"
	"soft3d/internal/raster"
	"soft3d/internal/scenefile"
	"soft3d/internal/texture"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	sceneFile := flag.String("scene", "", "Path to scene file")
	addr := flag.String("addr", "", "Listen address (default: :8080)")
	width := flag.Int("width", 0, "Frame width (default: 640)")
	height := flag.Int("height", 0, "Frame height (default: 360)")
	mode := flag.String("mode", "", "Raster primitive mode: triangles | lines | points")
	fps := flag.Int("fps", 0, "Frames per second (default: 30)")
	spin := flag.Float64("spin", 45, "Model yaw speed in degrees per second")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	cfg.Resolve(config.Flags{
		SceneFile: *sceneFile,
		Mode:      *mode,
		Width:     *width,
		Height:    *height,
		MaxDepth:  -1,
		Addr:      *addr,
	})
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
	models, err := b.Models(f)
	if err != nil {
		log.Fatal().Err(err).Msg("build models")
	}
	for _, warn := range b.Warnings {
		log.Warn().Msg(warn)
	}
	m, err := raster.ParseMode(cfg.Mode)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	hub := preview.NewHub(cfg.FPS, log.Logger)
	e := raster.New(cfg.Width, cfg.Height)
	e.Mode = m
	d := &preview.Driver{
		Engine:     e,
		Models:     models,
		Camera:     f.ViewCamera(),
		LightDir:   f.RasterLight(),
		Background: f.Background,
		Spin:       mathutil.Vec3{0, *spin, 0},
		FPS:        cfg.FPS,
		Presenter:  hub,
		Log:        log.Logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.Addr, Handler: hub.Mux()}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()
	log.Info().Str("addr", cfg.Addr).Int("fps", cfg.FPS).Int("models", len(models)).Msg("preview running")

	_ = d.Run(ctx)

	shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdown)
	log.Info().Msg("preview stopped")
}
