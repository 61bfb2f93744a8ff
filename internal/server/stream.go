package server

import (
	"fmt"
	"image/jpeg"
	"net/http"
	"time"

	"github.com/Samspei01/LM-BOX-5/internal/capture"
)

// StreamHandler serves MJPEG frames from the capture loop's snapshots.
// It never touches the camera directly; the loop is the only reader.
type StreamHandler struct {
	loop *capture.Loop
}

// NewStreamHandler creates a new StreamHandler with the given capture loop.
func NewStreamHandler(loop *capture.Loop) *StreamHandler {
	return &StreamHandler{loop: loop}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	var lastSent time.Time
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		snap, ok := h.loop.Latest()
		if !ok || snap.Image == nil || !snap.Timestamp.After(lastSent) {
			continue
		}
		lastSent = snap.Timestamp

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n\r\n")
		if err := jpeg.Encode(w, snap.Image, &jpeg.Options{Quality: 80}); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
