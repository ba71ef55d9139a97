// Package community implements the viewer chat wall and the static
// community posts feed.
package community

import (
	"database/sql"
	"net/http"

	"github.com/blackgoldstudios/animax/internal/ratelimit"
)

// Server holds the community handlers' collaborators.
type Server struct {
	db      *sql.DB
	limiter *ratelimit.Limiter
}

// New creates the community server.
func New(db *sql.DB, limiter *ratelimit.Limiter) *Server {
	return &Server{db: db, limiter: limiter}
}

// RegisterRoutes registers all community routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/community/messages", s.handleMessages)
	mux.HandleFunc("/community/posts", s.handlePosts)
}
