// Package engagement exposes the viewer signal sets over HTTP: liked,
// my-list, and watched, each a toggleable membership list.
package engagement

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/metrics"
	"github.com/blackgoldstudios/animax/internal/signals"
	"github.com/blackgoldstudios/animax/internal/validate"
)

// Server holds the engagement handlers' collaborators.
type Server struct {
	store signals.Store
}

// New creates the engagement server.
func New(store signals.Store) *Server {
	return &Server{store: store}
}

// RegisterRoutes registers the signal routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/signals", auth.RequireAuth(http.HandlerFunc(s.handleSnapshot)))
	mux.HandleFunc("/signals/", auth.RequireAuth(http.HandlerFunc(s.handleToggle)))
}

// GET /signals — all three sets for the authenticated viewer.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	sets := signals.Snapshot(r.Context(), s.store, userID)

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"liked":   sets.Liked,
		"my_list": sets.MyList,
		"watched": sets.Watched,
	})
}

// toggleRequest is the JSON body for POST /signals/{namespace}/toggle.
type toggleRequest struct {
	ContentID string `json:"content_id"`
}

// POST /signals/{namespace}/toggle
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}

	ns := pathSegment(r.URL.Path, 1)
	action := pathSegment(r.URL.Path, 2)
	if action != "toggle" {
		auth.WriteError(w, http.StatusNotFound, "not_found", "Unknown signals operation")
		return
	}
	if !signals.ValidNamespace(ns) {
		auth.WriteError(w, http.StatusBadRequest, "invalid_namespace",
			"Namespace must be liked, my-list, or watched")
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}
	if err := validate.IsContentID("content_id", req.ContentID); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "invalid_content_id", err.Error())
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	present, err := s.store.Toggle(r.Context(), userID, ns, req.ContentID)
	if err != nil {
		auth.WriteError(w, http.StatusInternalServerError, "toggle_failed", "Could not update signals")
		return
	}

	state := "off"
	if present {
		state = "on"
	}
	metrics.SignalToggles.WithLabelValues(ns, state).Inc()

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"namespace":  ns,
		"content_id": req.ContentID,
		"present":    present,
	})
}

func pathSegment(path string, n int) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if n >= len(parts) {
		return ""
	}
	return parts[n]
}
