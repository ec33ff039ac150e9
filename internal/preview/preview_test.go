package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soft3d/internal/frame"
	"soft3d/internal/mathutil"
	"soft3d/internal/mesh"
	"soft3d/internal/raster"
	"soft3d/internal/scene"
	"soft3d/internal/shading"
)

func TestHubBroadcastsFramesToClient(t *testing.T) {
	hub := NewHub(30, zerolog.Nop())
	srv := httptest.NewServer(hub.Mux())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	buf := frame.New(6, 4)
	buf.Clear(shading.Color{0, 1, 0})
	require.NoError(t, hub.Present(buf))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)

	img, err := png.Decode(bytes.NewReader(msg))
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	_, g, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), g)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, 1.0, health["frame_id"])
	assert.Equal(t, 1.0, health["clients"])
}

func TestHubForgetsClosedClients(t *testing.T) {
	hub := NewHub(30, zerolog.Nop())
	srv := httptest.NewServer(hub.Mux())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
}

func TestViewerPage(t *testing.T) {
	hub := NewHub(30, zerolog.Nop())
	rec := httptest.NewRecorder()
	hub.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/ws")

	rec = httptest.NewRecorder()
	hub.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func newDriver(p raster.Presenter) (*Driver, *scene.Model) {
	m := scene.NewModel(mesh.Cube())
	m.FragmentShader = raster.Flat
	return &Driver{
		Engine:    raster.New(16, 16),
		Models:    []*scene.Model{m},
		Camera:    scene.NewCamera(mathutil.Vec3{0, 0, 3}, mathutil.Vec3{}),
		LightDir:  mathutil.Vec3{0, 0, -1},
		Spin:      mathutil.Vec3{0, 90, 0},
		FPS:       100,
		Presenter: p,
		Log:       zerolog.Nop(),
	}, m
}

func TestDriverStepMutatesRotationAndPresents(t *testing.T) {
	var got *frame.Buffer
	d, m := newDriver(raster.PresenterFunc(func(b *frame.Buffer) error { got = b; return nil }))

	require.NoError(t, d.Step(0.5, 0.5))
	assert.Equal(t, mathutil.Vec3{0, 45, 0}, m.Rotation)
	require.NotNil(t, got)
	assert.NotEqual(t, [3]uint8{}, got.At(8, 8), "cube covers the center")

	require.NoError(t, d.Step(1, 0.5))
	assert.Equal(t, mathutil.Vec3{0, 90, 0}, m.Rotation)
}

func TestDriverRunStopsOnCancel(t *testing.T) {
	var frames atomic.Int64
	d, _ := newDriver(raster.PresenterFunc(func(*frame.Buffer) error { frames.Add(1); return nil }))

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	require.NoError(t, d.Run(ctx))
	assert.Greater(t, frames.Load(), int64(0))
}
