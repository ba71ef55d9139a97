// handlers_messages.go — chat wall: list recent messages, post a message.
package community

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/validate"
)

const (
	// maxMessageLength caps one chat message.
	maxMessageLength = 500
	// messageWindow is how many recent messages the wall shows.
	messageWindow = 50
)

// message is one chat wall entry.
type message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// handleMessages routes GET/POST for /community/messages.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listMessages(w, r)
	case http.MethodPost:
		s.postMessage(w, r)
	default:
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET or POST required")
	}
}

// listMessages returns the latest messages, oldest first so clients render
// top-down. A store failure degrades to an empty wall rather than an error:
// chat is decoration, not a dependency.
func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	msgs := []message{}

	rows, err := s.db.QueryContext(r.Context(), `
		SELECT id, user_id, user_name, body, created_at
		FROM messages ORDER BY created_at DESC LIMIT $1
	`, messageWindow)
	if err != nil {
		log.Printf("[community] list messages failed: %v", err)
		auth.WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
		return
	}
	defer rows.Close()

	for rows.Next() {
		var m message
		if err := rows.Scan(&m.ID, &m.UserID, &m.UserName, &m.Body, &m.CreatedAt); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}

	// Reverse into chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

// postMessage stores a new chat message for the authenticated viewer.
// Rate limited: 10 messages per viewer per minute.
func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ValidateJWT(r)
	if err != nil {
		auth.WriteError(w, http.StatusUnauthorized, "unauthorized", "valid session required")
		return
	}

	if allowed, retryAfter := s.limiter.CheckMessagePost(r.Context(), claims.Subject); !allowed {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		auth.WriteError(w, http.StatusTooManyRequests, "rate_limited",
			"You are posting too fast. Slow down.")
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}

	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		auth.WriteError(w, http.StatusBadRequest, "empty_message", "Message body is required")
		return
	}
	if err := validate.MaxLength("body", req.Body, maxMessageLength); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "message_too_long",
			fmt.Sprintf("Messages are limited to %d characters", maxMessageLength))
		return
	}

	userName := claims.Name
	if userName == "" {
		userName = claims.Email
	}

	m := message{
		ID:        uuid.NewString(),
		UserID:    claims.Subject,
		UserName:  userName,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	_, err = s.db.ExecContext(r.Context(), `
		INSERT INTO messages (id, user_id, user_name, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.UserID, m.UserName, m.Body, m.CreatedAt)
	if err != nil {
		auth.WriteError(w, http.StatusInternalServerError, "server_error", "Could not post message")
		return
	}

	auth.WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": m})
}
