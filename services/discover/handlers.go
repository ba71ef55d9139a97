// handlers.go — discover endpoint implementations.
package discover

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/blackgoldstudios/animax/internal/agegate"
	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/content"
	"github.com/blackgoldstudios/animax/internal/metrics"
	"github.com/blackgoldstudios/animax/internal/recommend"
	"github.com/blackgoldstudios/animax/internal/signals"
	"github.com/blackgoldstudios/animax/internal/validate"
)

const (
	heroPerCategory = 3
	recentLimit     = 15
	recentMinYear   = 2020
)

// homeResponse is the full home page payload. Recommended is omitted when
// the viewer has no engagement signals or nothing scores.
type homeResponse struct {
	Hero        []content.Item    `json:"hero"`
	Recent      []content.Item    `json:"recent"`
	Sections    []content.Section `json:"sections"`
	Recommended []content.Item    `json:"recommended,omitempty"`
}

// GET /discover/home
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}

	ceiling := viewerCeiling(r)
	ctx := r.Context()

	// Each category is fetched and filtered independently, so one eligible
	// list never leaks items from another category's raw fetch.
	movies, err := s.provider.Movies(ctx)
	if err != nil {
		auth.WriteError(w, http.StatusBadGateway, "catalog_unavailable", "Catalog fetch failed")
		return
	}
	series, err := s.provider.Series(ctx)
	if err != nil {
		auth.WriteError(w, http.StatusBadGateway, "catalog_unavailable", "Catalog fetch failed")
		return
	}
	animes, err := s.provider.Animes(ctx)
	if err != nil {
		auth.WriteError(w, http.StatusBadGateway, "catalog_unavailable", "Catalog fetch failed")
		return
	}

	rawCount := len(movies) + len(series) + len(animes)
	movies = agegate.Filter(movies, ceiling)
	series = agegate.Filter(series, ceiling)
	animes = agegate.Filter(animes, ceiling)
	metrics.ItemsFiltered.Add(float64(rawCount - len(movies) - len(series) - len(animes)))

	combined := make([]content.Item, 0, len(movies)+len(series)+len(animes))
	combined = append(combined, movies...)
	combined = append(combined, series...)
	combined = append(combined, animes...)

	resp := homeResponse{
		Hero:   heroItems(movies, series, animes),
		Recent: recentItems(combined),
		Sections: []content.Section{
			{Title: "Filmes Populares", Items: movies},
			{Title: "Séries em Alta", Items: series},
			{Title: "Animes", Items: animes},
		},
	}

	if userID := auth.UserIDFromContext(ctx); userID != "" && s.signals != nil {
		sets := signals.Snapshot(ctx, s.signals, userID)
		pool := combined
		if !s.recommendFiltered {
			pool = s.rawCombined(r)
		}
		if recs, ok := recommend.Build(pool, sets); ok {
			resp.Recommended = recs
			metrics.RecommendationsBuilt.WithLabelValues("hit").Inc()
		} else {
			metrics.RecommendationsBuilt.WithLabelValues("empty").Inc()
		}
	}

	auth.WriteJSON(w, http.StatusOK, resp)
}

// rawCombined re-fetches all categories without age filtering. Only used
// when recommendFiltered is disabled.
func (s *Server) rawCombined(r *http.Request) []content.Item {
	ctx := r.Context()
	var out []content.Item
	if movies, err := s.provider.Movies(ctx); err == nil {
		out = append(out, movies...)
	}
	if series, err := s.provider.Series(ctx); err == nil {
		out = append(out, series...)
	}
	if animes, err := s.provider.Animes(ctx); err == nil {
		out = append(out, animes...)
	}
	return out
}

// heroItems picks the top-rated few from each category for the hero rail.
func heroItems(categories ...[]content.Item) []content.Item {
	var hero []content.Item
	for _, items := range categories {
		sorted := append([]content.Item(nil), items...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })
		if len(sorted) > heroPerCategory {
			sorted = sorted[:heroPerCategory]
		}
		hero = append(hero, sorted...)
	}
	return hero
}

// recentItems returns the newest releases, newest first.
func recentItems(items []content.Item) []content.Item {
	var recent []content.Item
	for _, it := range items {
		if it.Year >= recentMinYear {
			recent = append(recent, it)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Year > recent[j].Year })
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return recent
}

// GET /discover/movies
func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	s.handleListing(w, r, s.provider.Movies)
}

// GET /discover/series
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	s.handleListing(w, r, s.provider.Series)
}

// GET /discover/animes
func (s *Server) handleAnimes(w http.ResponseWriter, r *http.Request) {
	s.handleListing(w, r, s.provider.Animes)
}

// handleListing is the shared fetch-filter-respond path for the per-type
// listing endpoints.
func (s *Server) handleListing(w http.ResponseWriter, r *http.Request, fetch func(context.Context) ([]content.Item, error)) {
	if r.Method != http.MethodGet {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}

	items, err := fetch(r.Context())
	if err != nil {
		auth.WriteError(w, http.StatusBadGateway, "catalog_unavailable", "Catalog fetch failed")
		return
	}

	ceiling := viewerCeiling(r)
	filtered := agegate.Filter(items, ceiling)
	metrics.ItemsFiltered.Add(float64(len(items) - len(filtered)))

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": filtered,
		"count": len(filtered),
	})
}

// GET /discover/search?q=title or ?genre=Drama
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	genre := strings.TrimSpace(r.URL.Query().Get("genre"))
	if q == "" && genre == "" {
		auth.WriteError(w, http.StatusBadRequest, "missing_query", "q or genre parameter required")
		return
	}
	if err := validate.MaxLength("q", q, 200); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	ctx := r.Context()
	var results []content.Item

	if q != "" {
		movies, err := s.provider.SearchMovies(ctx, q)
		if err != nil {
			auth.WriteError(w, http.StatusBadGateway, "catalog_unavailable", "Search failed")
			return
		}
		series, err := s.provider.SearchSeries(ctx, q)
		if err != nil {
			auth.WriteError(w, http.StatusBadGateway, "catalog_unavailable", "Search failed")
			return
		}
		results = append(results, movies...)
		results = append(results, series...)
	} else {
		// Genre browse walks the popular lists; TMDB items carry no genre
		// names, so this mostly serves the local catalog.
		all := s.rawCombined(r)
		for _, it := range all {
			for _, g := range it.Genre {
				if strings.EqualFold(g, genre) {
					results = append(results, it)
					break
				}
			}
		}
	}

	ceiling := viewerCeiling(r)
	filtered := agegate.Filter(results, ceiling)
	metrics.ItemsFiltered.Add(float64(len(results) - len(filtered)))

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": filtered,
		"count": len(filtered),
	})
}

// watchResponse is the watch page payload for an eligible item.
type watchResponse struct {
	Item    content.Item   `json:"item"`
	Similar []content.Item `json:"similar"`
}

// GET /discover/watch/{id}
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}

	id := pathSegment(r.URL.Path, 2)
	if id == "" {
		auth.WriteError(w, http.StatusBadRequest, "missing_id", "Content id required")
		return
	}
	if err := validate.IsContentID("id", id); err != nil {
		auth.WriteError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	item, ok, err := s.provider.ItemByID(r.Context(), id)
	if err != nil {
		auth.WriteError(w, http.StatusBadGateway, "catalog_unavailable", "Lookup failed")
		return
	}
	if !ok {
		auth.WriteError(w, http.StatusNotFound, "not_found", "Content not found")
		return
	}

	ceiling := viewerCeiling(r)
	if !agegate.Eligible(item, ceiling) {
		metrics.ItemsFiltered.Add(1)
		auth.WriteError(w, http.StatusForbidden, "age_restricted",
			"This title is not available under the current content settings")
		return
	}

	if item.EmbedURL == "" {
		season := queryInt(r, "season", 1)
		episode := queryInt(r, "episode", 1)
		item.EmbedURL = content.PlayerEmbedURL(item.ID, item.Type, season, episode)
	}

	auth.WriteJSON(w, http.StatusOK, watchResponse{
		Item:    item,
		Similar: s.similarItems(r, item),
	})
}

// similarItems returns eligible same-type items sharing a genre (or just the
// type, when the item carries no genre names).
func (s *Server) similarItems(r *http.Request, item content.Item) []content.Item {
	pool := s.rawCombined(r)
	pool = agegate.Filter(pool, viewerCeiling(r))

	var similar []content.Item
	for _, it := range pool {
		if it.ID == item.ID || it.Type != item.Type {
			continue
		}
		if len(item.Genre) == 0 || sharesGenre(it.Genre, item.Genre) {
			similar = append(similar, it)
		}
		if len(similar) >= 12 {
			break
		}
	}
	return similar
}

func sharesGenre(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				return true
			}
		}
	}
	return false
}

func pathSegment(path string, n int) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if n >= len(parts) {
		return ""
	}
	return parts[n]
}

// queryInt reads a positive integer query parameter, falling back to def
// when absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}
