// Package preview is the real-time driver: it runs the Clear, DrawModel, Present loop
// and streams every presented frame to WebSocket clients as PNG.
package preview

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"soft3d/internal/frame"
)

// Hub tracks connected viewers and fans frames out to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	frameID uint64
	start   time.Time
	fps     int
	log     zerolog.Logger
}

func NewHub(fps int, log zerolog.Logger) *Hub {
	return &Hub{
		clients: map[*websocket.Conn]bool{},
		start:   time.Now(),
		fps:     fps,
		log:     log,
	}
}

// Mux serves /ws (frame stream), /health and a minimal viewer page at /.
func (h *Hub) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(viewerPage))
	})
	return mux
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("upgrade failed")
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.log.Info().Str("remote", r.RemoteAddr).Msg("viewer connected")

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.start).Seconds(),
		"clients":  len(h.clients),
		"fps":      h.fps,
	}
	h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Present encodes buf as PNG and sends it to every viewer. It satisfies raster.Presenter.
func (h *Hub) Present(buf *frame.Buffer) error {
	var b bytes.Buffer
	if err := png.Encode(&b, buf.Image()); err != nil {
		return err
	}
	h.Broadcast(b.Bytes())
	return nil
}

// Broadcast sends one binary message to every viewer. Slow viewers miss frames
// instead of stalling the render loop.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frameID++
	for c := range h.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			h.log.Debug().Err(err).Msg("write frame")
		}
	}
}

const viewerPage = `<!doctype html>
<title>soft3d preview</title>
<body style="margin:0;background:#111">
<img id="f" style="display:block;margin:auto;image-rendering:pixelated">
<script>
const img = document.getElementById("f");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
ws.onmessage = (e) => {
  const url = URL.createObjectURL(e.data);
  img.onload = () => URL.revokeObjectURL(url);
  img.src = url;
};
</script>
`
