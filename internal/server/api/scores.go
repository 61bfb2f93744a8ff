package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Samspei01/LM-BOX-5/internal/store"
)

// Games accepted by the scores endpoints.
var validGames = map[string]bool{
	"pong":     true,
	"balloons": true,
	"runner":   true,
}

const defaultScoreLimit = 10

// ScoresHandler handles HTTP requests for the high-score table.
type ScoresHandler struct {
	store *store.Store
}

// NewScoresHandler creates a new ScoresHandler with the given store.
func NewScoresHandler(s *store.Store) *ScoresHandler {
	return &ScoresHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/scores?game={game}&limit={n} and POST /api/scores.
func (h *ScoresHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.top(w, r)
	case http.MethodPost:
		h.record(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type recordScoreRequest struct {
	UserID     string `json:"user_id"`
	Game       string `json:"game"`
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
}

type scoreResponse struct {
	ID         int64  `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name,omitempty"`
	Game       string `json:"game"`
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
	CreatedAt  string `json:"created_at"`
}

type listScoresResponse struct {
	Scores []scoreResponse `json:"scores"`
}

func toScoreResponse(s *store.HighScore) scoreResponse {
	return scoreResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		UserName:   s.UserName,
		Game:       s.Game,
		Score:      s.Score,
		Difficulty: s.Difficulty,
		CreatedAt:  s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// top handles GET /api/scores and returns the best scores for a game.
func (h *ScoresHandler) top(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	if !validGames[game] {
		writeError(w, http.StatusBadRequest, "Unknown game")
		return
	}

	limit := defaultScoreLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	scores, err := h.store.Scores().Top(game, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scores")
		return
	}

	response := listScoresResponse{
		Scores: make([]scoreResponse, 0, len(scores)),
	}
	for _, s := range scores {
		response.Scores = append(response.Scores, toScoreResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// record handles POST /api/scores and stores a finished round's score.
func (h *ScoresHandler) record(w http.ResponseWriter, r *http.Request) {
	var req recordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "User id is required")
		return
	}
	if !validGames[req.Game] {
		writeError(w, http.StatusBadRequest, "Unknown game")
		return
	}
	if req.Score < 0 {
		writeError(w, http.StatusBadRequest, "Score cannot be negative")
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "normal"
	}

	score := &store.HighScore{
		UserID:     req.UserID,
		Game:       req.Game,
		Score:      req.Score,
		Difficulty: req.Difficulty,
	}

	if err := h.store.Scores().Record(score); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record score")
		return
	}

	writeJSON(w, http.StatusCreated, toScoreResponse(score))
}

// UserScoresHandler handles HTTP requests for one player's score history.
type UserScoresHandler struct {
	store *store.Store
}

// NewUserScoresHandler creates a new UserScoresHandler with the given store.
func NewUserScoresHandler(s *store.Store) *UserScoresHandler {
	return &UserScoresHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/users/{id}/scores
func (h *UserScoresHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/users/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "scores" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	scores, err := h.store.Scores().ForUser(parts[0])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scores")
		return
	}

	response := listScoresResponse{
		Scores: make([]scoreResponse, 0, len(scores)),
	}
	for _, s := range scores {
		response.Scores = append(response.Scores, toScoreResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}
