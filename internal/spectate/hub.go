// Package spectate broadcasts live game frames to WebSocket viewers.
// Each playing session publishes into a named stream; viewers subscribe to
// one stream and receive msgpack-encoded core.Scene frames.
package spectate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/brickfall/internal/core"
)

const writeWait = 2 * time.Second

// StreamInfo describes a live stream for the /streams listing.
type StreamInfo struct {
	Name    string `json:"name"`
	Viewers int    `json:"viewers"`
	Tick    uint64 `json:"tick"`
	Status  string `json:"status"`
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte // capacity 1: only the newest frame is kept
}

type stream struct {
	last    []byte
	scene   core.Scene
	viewers map[*viewer]struct{}
}

// Hub fans published frames out to the viewers of each stream.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	streams map[string]*stream
}

// NewHub creates an empty hub. A nil logger discards log output.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
		streams:  make(map[string]*stream),
	}
}

// EncodeFrame serializes a scene for the wire.
func EncodeFrame(s core.Scene) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("spectate: encode frame: %w", err)
	}
	return data, nil
}

// DecodeFrame parses a frame produced by EncodeFrame.
func DecodeFrame(data []byte) (core.Scene, error) {
	var s core.Scene
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return core.Scene{}, fmt.Errorf("spectate: decode frame: %w", err)
	}
	return s, nil
}

// Publish sends a frame to every viewer of the named stream, creating the
// stream on first use. Slow viewers skip frames rather than queueing them.
func (h *Hub) Publish(name string, s core.Scene) error {
	data, err := EncodeFrame(s)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.streams[name]
	if !ok {
		st = &stream{viewers: make(map[*viewer]struct{})}
		h.streams[name] = st
		h.logf("stream started", "stream", name)
	}
	st.last = data
	st.scene = s
	for v := range st.viewers {
		offer(v, data)
	}
	return nil
}

// offer replaces any unsent frame in the viewer's queue with data.
func offer(v *viewer, data []byte) {
	select {
	case v.send <- data:
		return
	default:
	}
	select {
	case <-v.send:
	default:
	}
	select {
	case v.send <- data:
	default:
	}
}

// End closes a stream and disconnects its viewers.
func (h *Hub) End(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.streams[name]
	if !ok {
		return
	}
	for v := range st.viewers {
		close(v.send)
	}
	delete(h.streams, name)
	h.logf("stream ended", "stream", name)
}

// Streams lists the live streams sorted by name.
func (h *Hub) Streams() []StreamInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]StreamInfo, 0, len(h.streams))
	for name, st := range h.streams {
		result = append(result, StreamInfo{
			Name:    name,
			Viewers: len(st.viewers),
			Tick:    st.scene.Tick,
			Status:  st.scene.Status,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Handler returns the HTTP routes of the hub: GET /streams and GET /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /streams", h.serveStreams)
	mux.HandleFunc("GET /ws", h.serveWS)
	return mux
}

func (h *Hub) serveStreams(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Streams()); err != nil {
		h.logf("cannot write stream list", "err", err)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("stream")

	h.mu.Lock()
	_, ok := h.streams[name]
	h.mu.Unlock()
	if !ok {
		http.Error(w, fmt.Sprintf("unknown stream %q", name), http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logf("upgrade failed", "err", err)
		return
	}

	v := &viewer{conn: conn, send: make(chan []byte, 1)}
	if !h.attach(name, v) {
		conn.Close()
		return
	}
	h.logf("viewer connected", "stream", name, "addr", conn.RemoteAddr())

	go h.writeLoop(v)
	h.readLoop(name, v)
}

// attach registers v and queues the stream's latest frame for it.
func (h *Hub) attach(name string, v *viewer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.streams[name]
	if !ok {
		return false
	}
	st.viewers[v] = struct{}{}
	if st.last != nil {
		v.send <- st.last
	}
	return true
}

// detach unregisters v unless the stream already ended and released it.
func (h *Hub) detach(name string, v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.streams[name]
	if !ok {
		return
	}
	if _, ok := st.viewers[v]; ok {
		delete(st.viewers, v)
		close(v.send)
	}
}

func (h *Hub) writeLoop(v *viewer) {
	defer v.conn.Close()
	for data := range v.send {
		_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := v.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			return
		}
	}
	_ = v.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stream ended"),
		time.Now().Add(writeWait))
}

// readLoop discards viewer messages until the connection fails.
func (h *Hub) readLoop(name string, v *viewer) {
	defer h.detach(name, v)
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			h.logf("viewer disconnected", "stream", name)
			return
		}
	}
}

func (h *Hub) logf(msg string, kv ...any) {
	if h.logger != nil {
		h.logger.Info(msg, kv...)
	}
}
