package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/Samspei01/LM-BOX-5/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestUserHandler_Create(t *testing.T) {
	h := NewUserHandler(newTestStore(t))

	t.Run("creates a user with a generated id", func(t *testing.T) {
		body := bytes.NewBufferString(`{"name": "sam"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/users", body)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d", http.StatusCreated, rec.Code)
		}

		var resp userResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Name != "sam" {
			t.Errorf("expected name 'sam', got %q", resp.Name)
		}
		if _, err := uuid.Parse(resp.ID); err != nil {
			t.Errorf("expected a valid uuid, got %q", resp.ID)
		}
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(`{`))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestUserHandler_GetMissing(t *testing.T) {
	h := NewUserHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestUserHandler_ListEmpty(t *testing.T) {
	h := NewUserHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp listUsersResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Users) != 0 {
		t.Errorf("expected an empty user list, got %d entries", len(resp.Users))
	}
}

func TestScoresHandler_Validation(t *testing.T) {
	s := newTestStore(t)
	h := NewScoresHandler(s)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing user id", `{"game": "pong", "score": 1}`, http.StatusBadRequest},
		{"unknown game", `{"user_id": "x", "game": "chess", "score": 1}`, http.StatusBadRequest},
		{"negative score", `{"user_id": "x", "game": "pong", "score": -1}`, http.StatusBadRequest},
		{"invalid JSON", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/scores", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestScoresHandler_TopRequiresKnownGame(t *testing.T) {
	h := NewScoresHandler(newTestStore(t))

	for _, q := range []string{"", "?game=chess", "?game=pong&limit=0"} {
		req := httptest.NewRequest(http.MethodGet, "/api/scores"+q, nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: expected status %d, got %d", q, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestUserScoresHandler_BadPath(t *testing.T) {
	h := NewUserScoresHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/users/abc/other", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
