package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Samspei01/LM-BOX-5/internal/capture"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// LandmarksHandler broadcasts the capture loop's latest detections via
// WebSocket.
type LandmarksHandler struct {
	loop    *capture.Loop
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewLandmarksHandler creates a new LandmarksHandler with the given
// capture loop.
func NewLandmarksHandler(loop *capture.Loop) *LandmarksHandler {
	h := &LandmarksHandler{
		loop:    loop,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LandmarksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast sends the latest detection to all connected clients.
func (h *LandmarksHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	var lastSent time.Time
	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		snap, ok := h.loop.Latest()
		if !ok || !snap.Timestamp.After(lastSent) {
			continue
		}
		lastSent = snap.Timestamp

		msg, _ := json.Marshal(map[string]any{
			"hands":     snap.Detection.Hands,
			"nose":      snap.Detection.Nose,
			"timestamp": snap.Timestamp.UnixMilli(),
		})

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
