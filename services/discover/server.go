// Package discover serves the catalog listing surfaces: home, per-type
// listings, search, and the watch page. Every handler applies the age
// eligibility filter to its own payload before responding.
package discover

import (
	"net/http"

	"github.com/blackgoldstudios/animax/internal/agegate"
	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/signals"
	"github.com/blackgoldstudios/animax/internal/tmdb"
)

// Server holds the discover handlers' collaborators.
type Server struct {
	provider tmdb.Provider
	signals  signals.Store

	// recommendFiltered controls whether the home recommendation pool is the
	// age-filtered combined list (matching the rendered page) or the raw
	// catalog. Default true.
	recommendFiltered bool
}

// New creates the discover server. store may be nil — the home page then
// simply omits recommendations.
func New(provider tmdb.Provider, store signals.Store) *Server {
	return &Server{provider: provider, signals: store, recommendFiltered: true}
}

// RegisterRoutes registers all discover routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/discover/home", auth.OptionalAuth(http.HandlerFunc(s.handleHome)))
	mux.HandleFunc("/discover/movies", auth.OptionalAuth(http.HandlerFunc(s.handleMovies)))
	mux.HandleFunc("/discover/series", auth.OptionalAuth(http.HandlerFunc(s.handleSeries)))
	mux.HandleFunc("/discover/animes", auth.OptionalAuth(http.HandlerFunc(s.handleAnimes)))
	mux.HandleFunc("/discover/search", auth.OptionalAuth(http.HandlerFunc(s.handleSearch)))
	mux.HandleFunc("/discover/watch/", auth.OptionalAuth(http.HandlerFunc(s.handleWatch)))
}

// viewerCeiling resolves the age ceiling for the request: the authenticated
// viewer's stored preference, or the default for anonymous viewers.
func viewerCeiling(r *http.Request) float64 {
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		return agegate.Ceiling(claims.MaxAgeRating)
	}
	return agegate.Ceiling(nil)
}
