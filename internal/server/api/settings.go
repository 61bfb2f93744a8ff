package api

import (
	"encoding/json"
	"net/http"

	"github.com/Samspei01/LM-BOX-5/internal/store"
)

// SettingsHandler handles HTTP requests for application settings.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: GET /api/settings, PUT /api/settings.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// list handles GET /api/settings and returns all stored settings.
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// update handles PUT /api/settings and stores every key in the body.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "No settings provided")
		return
	}

	for k, v := range req {
		if err := h.store.Settings().Set(k, v); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store settings")
			return
		}
	}

	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
