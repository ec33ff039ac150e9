// Package batch renders turntable frame sequences on a worker pool.
package batch

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"soft3d/internal/frame"
	"soft3d/internal/output"
	"soft3d/internal/postprocess"
)

// FrameFunc renders the scene with the camera orbited by angleDeg.
type FrameFunc func(angleDeg float64) *frame.Buffer

// Factory returns a FrameFunc owned by a single worker. Engines are not shared
// between goroutines.
type Factory func() FrameFunc

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir   string
	Format      string
	Frames      int
	Supersample int
	Workers     int
	Log         zerolog.Logger
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Angle   float64
	Image   string // path relative to OutputDir
	Success bool
	Error   string
	Elapsed time.Duration
}

// Angle returns the orbit angle of frame i out of n, covering one full turn.
func Angle(i, n int) float64 {
	return 360 * float64(i) / float64(n)
}

// FrameName returns the file name of frame i.
func FrameName(i int, format string) string {
	return fmt.Sprintf("frame_%04d%s", i, output.Ext(format))
}

// Run renders all frames using a worker pool.
func Run(cfg Config, factory Factory) []Result {
	total := cfg.Frames
	results := make([]Result, total)
	workers := max(1, cfg.Workers)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					cfg.Log.Info().
						Int64("done", p).
						Int("total", total).
						Float64("fps", float64(p)/elapsed).
						Msg("progress")
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			render := factory()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, render, idx)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	cfg.Log.Info().
		Int("frames", total).
		Dur("elapsed", time.Since(start)).
		Msg("batch finished")

	return results
}

func processFrame(cfg Config, render FrameFunc, idx int) Result {
	t0 := time.Now()
	res := Result{
		Frame: idx,
		Angle: Angle(idx, cfg.Frames),
		Image: FrameName(idx, cfg.Format),
	}

	buf := render(res.Angle)
	img := postprocess.Resolve(buf, cfg.Supersample)

	path := filepath.Join(cfg.OutputDir, res.Image)
	if err := output.Save(path, img, cfg.Format); err != nil {
		res.Error = err.Error()
		cfg.Log.Warn().Err(err).Str("path", path).Msg("frame not saved")
		return res
	}

	res.Success = true
	res.Elapsed = time.Since(t0)
	cfg.Log.Debug().Int("frame", idx).Dur("elapsed", res.Elapsed).Str("path", path).Msg("frame saved")
	return res
}
