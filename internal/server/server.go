// Package server provides the diagnostics HTTP server: health, player and
// high-score APIs, and live camera/landmark feeds.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Samspei01/LM-BOX-5/internal/capture"
	"github.com/Samspei01/LM-BOX-5/internal/server/api"
	"github.com/Samspei01/LM-BOX-5/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Capture   *capture.Loop
}

// Server represents the diagnostics HTTP server.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register player and score APIs if Store is configured
	if s.config.Store != nil {
		userHandler := api.NewUserHandler(s.config.Store)
		userScoresHandler := api.NewUserScoresHandler(s.config.Store)

		// Use a wrapper to route between users and their score history:
		// /api/users/{id}/scores
		userRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/scores") {
				userScoresHandler.ServeHTTP(w, r)
				return
			}
			userHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/users", userRouter)
		s.mux.Handle("/api/users/", userRouter)
		s.mux.Handle("/api/scores", api.NewScoresHandler(s.config.Store))
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store))
	}

	// Register live feeds if a capture loop is configured
	if s.config.Capture != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Capture))
		s.mux.Handle("/api/landmarks", NewLandmarksHandler(s.config.Capture))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
		"camera": s.config.Capture != nil && s.config.Capture.Available(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
