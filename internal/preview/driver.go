package preview

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"soft3d/internal/mathutil"
	"soft3d/internal/raster"
	"soft3d/internal/scene"
	"soft3d/internal/shading"
)

// Driver owns the per-frame loop. Between frames it advances every model's rotation
// by Spin degrees per second; nothing else changes across frames.
type Driver struct {
	Engine     *raster.Engine
	Models     []*scene.Model
	Camera     scene.Camera
	LightDir   mathutil.Vec3
	Background shading.Color
	Spin       mathutil.Vec3
	FPS        int
	Presenter  raster.Presenter
	Log        zerolog.Logger
}

// Step advances the animation by dt seconds and renders and presents one frame
// stamped with time t.
func (d *Driver) Step(t, dt float64) error {
	for _, m := range d.Models {
		m.Rotation = m.Rotation.Add(d.Spin.Scale(dt))
	}

	buf := d.Engine.Buffer()
	ctx := raster.NewDrawContext(d.Camera, buf.Width, buf.Height, d.LightDir)
	ctx.Time = t

	d.Engine.Clear(d.Background)
	for _, m := range d.Models {
		d.Engine.DrawModel(m, ctx)
	}
	return d.Engine.Present(d.Presenter)
}

// Run steps at FPS until ctx is done. Present errors are logged, not fatal.
func (d *Driver) Run(ctx context.Context) error {
	fps := max(1, d.FPS)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	last := start
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if err := d.Step(now.Sub(start).Seconds(), now.Sub(last).Seconds()); err != nil {
				d.Log.Warn().Err(err).Msg("present failed")
			}
			last = now
		}
	}
}
