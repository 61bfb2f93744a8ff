// Package api provides the HTTP API handlers for the diagnostics server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Samspei01/LM-BOX-5/internal/store"
)

// UserHandler handles HTTP requests for player profiles.
type UserHandler struct {
	store *store.Store
}

// NewUserHandler creates a new UserHandler with the given store.
func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// the appropriate methods.
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/users or /api/users/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/users")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/users
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/users/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.rename(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createUserRequest struct {
	Name string `json:"name"`
}

type renameUserRequest struct {
	Name string `json:"name"`
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listUsersResponse struct {
	Users []userResponse `json:"users"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.User to a userResponse.
func toResponse(u *store.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/users and returns all players.
func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.Users().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	response := listUsersResponse{
		Users: make([]userResponse, 0, len(users)),
	}
	for _, u := range users {
		response.Users = append(response.Users, toResponse(u))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/users/{id} and returns a single player.
func (h *UserHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.store.Users().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(user))
}

// create handles POST /api/users and creates a new player profile.
func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	user := &store.User{
		ID:   uuid.New().String(),
		Name: req.Name,
	}

	if err := h.store.Users().Create(user); err != nil {
		writeError(w, http.StatusConflict, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(user))
}

// rename handles PUT /api/users/{id} and renames a player.
func (h *UserHandler) rename(w http.ResponseWriter, r *http.Request, id string) {
	var req renameUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.store.Users().Rename(id, req.Name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to rename user")
		return
	}

	user, err := h.store.Users().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(user))
}

// delete handles DELETE /api/users/{id} and removes a player and their scores.
func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Users().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
