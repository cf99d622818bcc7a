// Package ws serves a live preview of rendered frames over websockets, plus
// health and snapshot endpoints.
package ws

import (
	"encoding/json"
	"image/png"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/arcaluminis-fx/internal/sink"
)

// Hub is a sink that fans every frame out to connected preview clients.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*websocket.Conn]bool
	frameID   uint64
	startTime time.Time
	status    map[string]any

	snap *sink.Snapshot
	log  zerolog.Logger
}

// NewHub creates a hub. snap, when not nil, backs the snapshot endpoint.
func NewHub(log zerolog.Logger, snap *sink.Snapshot) *Hub {
	return &Hub{
		clients:   map[*websocket.Conn]bool{},
		startTime: time.Now(),
		status:    map[string]any{},
		snap:      snap,
		log:       log,
	}
}

// SetStatus publishes a key on the health endpoint.
func (h *Hub) SetStatus(key string, v any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status[key] = v
}

// Clients reports how many preview clients are connected.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	Channel uint8  `json:"channel"`
	RGB     []byte `json:"rgb"`
}

func (h *Hub) Write(channel uint8, rgb []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frameID++
	if len(h.clients) == 0 {
		return nil
	}
	b, err := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: h.frameID, Channel: channel, RGB: rgb})
	if err != nil {
		return err
	}
	for c := range h.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			h.log.Debug().Err(err).Msg("write frame")
		}
	}
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
			time.Now().Add(100*time.Millisecond))
		c.Close()
		delete(h.clients, c)
	}
	return nil
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("upgrade")
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.log.Debug().Str("remote", r.RemoteAddr).Msg("preview client connected")

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
	h.mu.RLock()
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.startTime).Seconds(),
		"clients":  len(h.clients),
	}
	for k, v := range h.status {
		resp[k] = v
	}
	h.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleSnapshot serves the latest frame as a PNG. Query parameters:
// channel (default 0) and scale (pixel size, default 8).
func (h *Hub) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snap == nil {
		http.Error(w, "snapshots disabled", http.StatusNotFound)
		return
	}
	channel, scale := 0, 8
	if v := r.URL.Query().Get("channel"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 255 {
			http.Error(w, "bad channel", http.StatusBadRequest)
			return
		}
		channel = n
	}
	if v := r.URL.Query().Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 64 {
			http.Error(w, "bad scale", http.StatusBadRequest)
			return
		}
		scale = n
	}
	img, err := h.snap.Image(uint8(channel), scale)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		h.log.Debug().Err(err).Msg("encode snapshot")
	}
}

// Routes registers the hub's handlers on mux.
func (h *Hub) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/snapshot.png", h.HandleSnapshot)
}
