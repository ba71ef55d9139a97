// Package tmdb fetches catalog metadata from The Movie Database API.
// Certifications feed the agegate mapping; every returned item carries a
// numeric age rating string ready for eligibility filtering.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/blackgoldstudios/animax/internal/agegate"
	"github.com/blackgoldstudios/animax/internal/content"
)

const (
	baseURL   = "https://api.themoviedb.org/3"
	imageBase = "https://image.tmdb.org/t/p"

	// animeGenreID is TMDB's Animation genre; combined with Japanese origin
	// it identifies anime within the TV catalog.
	animeGenreID = 16
)

// Client talks to the TMDB HTTP API. A nil *Client is valid and reports
// itself as not configured — callers fall back to the local catalog.
type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
}

// NewFromEnv builds a client from TMDB_API_KEY. Returns nil when the key is
// unset so the caller can fall back to local data.
func NewFromEnv() *Client {
	key := os.Getenv("TMDB_API_KEY")
	if key == "" {
		return nil
	}
	return &Client{
		apiKey:  key,
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the client can reach TMDB.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// ── wire types ────────────────────────────────────────────────────────────────

type tmdbMovie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	Adult        bool    `json:"adult"`
}

type tmdbTV struct {
	ID               int         `json:"id"`
	Name             string      `json:"name"`
	Overview         string      `json:"overview"`
	PosterPath       *string     `json:"poster_path"`
	BackdropPath     *string     `json:"backdrop_path"`
	VoteAverage      float64     `json:"vote_average"`
	FirstAirDate     string      `json:"first_air_date"`
	Adult            bool        `json:"adult"`
	OriginalLanguage string      `json:"original_language"`
	Genres           []tmdbGenre `json:"genres"`
}

type tmdbGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type movieListResponse struct {
	Results []tmdbMovie `json:"results"`
}

type tvListResponse struct {
	Results []tmdbTV `json:"results"`
}

// ── fetch helpers ─────────────────────────────────────────────────────────────

// get performs a GET against path with the api key and pt-BR locale applied.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if params.Get("language") == "" {
		params.Set("language", "pt-BR")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ── certifications ────────────────────────────────────────────────────────────

// movieCertification fetches a movie's certification, preferring BR then US
// releases, then any country that carries one. Empty string means unknown.
func (c *Client) movieCertification(ctx context.Context, movieID int) string {
	var resp struct {
		Results []struct {
			Country      string `json:"iso_3166_1"`
			ReleaseDates []struct {
				Certification string `json:"certification"`
			} `json:"release_dates"`
		} `json:"results"`
	}
	params := url.Values{}
	params.Set("language", "en-US") // release_dates is locale-independent
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/release_dates", movieID), params, &resp); err != nil {
		return ""
	}

	for _, country := range []string{"BR", "US"} {
		for _, r := range resp.Results {
			if r.Country != country {
				continue
			}
			for _, d := range r.ReleaseDates {
				if cert := strings.TrimSpace(d.Certification); cert != "" {
					return cert
				}
			}
		}
	}
	for _, r := range resp.Results {
		for _, d := range r.ReleaseDates {
			if cert := strings.TrimSpace(d.Certification); cert != "" {
				return cert
			}
		}
	}
	return ""
}

// tvCertification fetches a TV show's content rating with the same BR → US →
// any-country preference order.
func (c *Client) tvCertification(ctx context.Context, tvID int) string {
	var resp struct {
		Results []struct {
			Country string `json:"iso_3166_1"`
			Rating  string `json:"rating"`
		} `json:"results"`
	}
	params := url.Values{}
	params.Set("language", "en-US")
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/content_ratings", tvID), params, &resp); err != nil {
		return ""
	}

	for _, country := range []string{"BR", "US"} {
		for _, r := range resp.Results {
			if r.Country == country && strings.TrimSpace(r.Rating) != "" {
				return strings.TrimSpace(r.Rating)
			}
		}
	}
	for _, r := range resp.Results {
		if strings.TrimSpace(r.Rating) != "" {
			return strings.TrimSpace(r.Rating)
		}
	}
	return ""
}

// ── mapping ───────────────────────────────────────────────────────────────────

func (c *Client) mapMovie(ctx context.Context, m tmdbMovie) content.Item {
	cert := c.movieCertification(ctx, m.ID)
	ageRating := agegate.MapCertification(cert, "movie", m.Adult)

	year := 0
	if len(m.ReleaseDate) >= 4 {
		year, _ = strconv.Atoi(m.ReleaseDate[:4])
	}

	desc := m.Overview
	if desc == "" {
		desc = "Sem descrição disponível."
	}

	return content.Item{
		ID:           fmt.Sprintf("tmdb-movie-%d", m.ID),
		Title:        m.Title,
		Description:  desc,
		ThumbnailURL: imageURL(m.PosterPath, "w500"),
		CoverURL:     imageURL(m.BackdropPath, "w780"),
		Genre:        []string{},
		Rating:       roundRating(m.VoteAverage),
		Year:         year,
		Type:         content.TypeMovie,
		AgeRating:    ageRating,
	}
}

func (c *Client) mapTV(ctx context.Context, tv tmdbTV, typ content.Type) content.Item {
	cert := c.tvCertification(ctx, tv.ID)
	ageRating := agegate.MapCertification(cert, "tv", tv.Adult)

	year := 0
	if len(tv.FirstAirDate) >= 4 {
		year, _ = strconv.Atoi(tv.FirstAirDate[:4])
	}

	desc := tv.Overview
	if desc == "" {
		desc = "Sem descrição disponível."
	}

	return content.Item{
		ID:           fmt.Sprintf("tmdb-tv-%d", tv.ID),
		Title:        tv.Name,
		Description:  desc,
		ThumbnailURL: imageURL(tv.PosterPath, "w500"),
		CoverURL:     imageURL(tv.BackdropPath, "w780"),
		Genre:        []string{},
		Rating:       roundRating(tv.VoteAverage),
		Year:         year,
		Type:         typ,
		AgeRating:    ageRating,
	}
}

func imageURL(path *string, size string) string {
	if path == nil || *path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", imageBase, size, *path)
}

// roundRating converts TMDB's 0–10 vote average to the catalog's 0–5
// display scale, one decimal place.
func roundRating(vote float64) float64 {
	if vote == 0 {
		return 0
	}
	return math.Round(vote/2*10) / 10
}

// ── catalog fetches ───────────────────────────────────────────────────────────

const perPage = 20

// PopularMovies returns up to limit popular movies, paging as needed.
func (c *Client) PopularMovies(ctx context.Context, limit int) ([]content.Item, error) {
	items := make([]content.Item, 0, limit)
	maxPages := (limit + perPage - 1) / perPage
	if maxPages < 1 {
		maxPages = 1
	}

	for page := 1; page <= maxPages && len(items) < limit; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))

		var resp movieListResponse
		if err := c.get(ctx, "/movie/popular", params, &resp); err != nil {
			if len(items) > 0 {
				break
			}
			return nil, err
		}
		if len(resp.Results) == 0 {
			break
		}
		for _, m := range resp.Results {
			items = append(items, c.mapMovie(ctx, m))
			if len(items) >= limit {
				break
			}
		}
	}
	return items, nil
}

// PopularSeries returns up to limit popular TV series.
func (c *Client) PopularSeries(ctx context.Context, limit int) ([]content.Item, error) {
	return c.popularTV(ctx, "/tv/popular", nil, content.TypeSeries, limit)
}

// PopularAnimes returns up to limit popular anime: Japanese-origin TV shows
// carrying the Animation genre.
func (c *Client) PopularAnimes(ctx context.Context, limit int) ([]content.Item, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(animeGenreID))
	params.Set("with_original_language", "ja")
	return c.popularTV(ctx, "/discover/tv", params, content.TypeAnime, limit)
}

func (c *Client) popularTV(ctx context.Context, path string, base url.Values, typ content.Type, limit int) ([]content.Item, error) {
	items := make([]content.Item, 0, limit)
	maxPages := (limit + perPage - 1) / perPage
	if maxPages < 1 {
		maxPages = 1
	}

	for page := 1; page <= maxPages && len(items) < limit; page++ {
		params := url.Values{}
		for k, vs := range base {
			for _, v := range vs {
				params.Add(k, v)
			}
		}
		params.Set("page", strconv.Itoa(page))

		var resp tvListResponse
		if err := c.get(ctx, path, params, &resp); err != nil {
			if len(items) > 0 {
				break
			}
			return nil, err
		}
		if len(resp.Results) == 0 {
			break
		}
		for _, tv := range resp.Results {
			items = append(items, c.mapTV(ctx, tv, typ))
			if len(items) >= limit {
				break
			}
		}
	}
	return items, nil
}

// SearchMovies searches movies by title, excluding adult results.
func (c *Client) SearchMovies(ctx context.Context, query string, limit int) ([]content.Item, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("include_adult", "false")

	var resp movieListResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}

	results := resp.Results
	if len(results) > limit {
		results = results[:limit]
	}
	items := make([]content.Item, 0, len(results))
	for _, m := range results {
		items = append(items, c.mapMovie(ctx, m))
	}
	return items, nil
}

// SearchSeries searches TV shows by title.
func (c *Client) SearchSeries(ctx context.Context, query string, limit int) ([]content.Item, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")

	var resp tvListResponse
	if err := c.get(ctx, "/search/tv", params, &resp); err != nil {
		return nil, err
	}

	results := resp.Results
	if len(results) > limit {
		results = results[:limit]
	}
	items := make([]content.Item, 0, len(results))
	for _, tv := range results {
		items = append(items, c.mapTV(ctx, tv, content.TypeSeries))
	}
	return items, nil
}

// ItemByID resolves a "tmdb-movie-N" or "tmdb-tv-N" catalog ID to a full
// item. TV shows are classified as anime when Japanese-origin with the
// Animation genre. Returns found=false for IDs this client does not own.
func (c *Client) ItemByID(ctx context.Context, id string) (content.Item, bool, error) {
	switch {
	case strings.HasPrefix(id, "tmdb-movie-"):
		tmdbID, err := strconv.Atoi(strings.TrimPrefix(id, "tmdb-movie-"))
		if err != nil {
			return content.Item{}, false, nil
		}
		var m tmdbMovie
		if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), nil, &m); err != nil {
			return content.Item{}, false, err
		}
		return c.mapMovie(ctx, m), true, nil

	case strings.HasPrefix(id, "tmdb-tv-"):
		tmdbID, err := strconv.Atoi(strings.TrimPrefix(id, "tmdb-tv-"))
		if err != nil {
			return content.Item{}, false, nil
		}
		var tv tmdbTV
		if err := c.get(ctx, fmt.Sprintf("/tv/%d", tmdbID), nil, &tv); err != nil {
			return content.Item{}, false, err
		}
		typ := content.TypeSeries
		if tv.OriginalLanguage == "ja" {
			for _, g := range tv.Genres {
				if g.ID == animeGenreID {
					typ = content.TypeAnime
					break
				}
			}
		}
		return c.mapTV(ctx, tv, typ), true, nil
	}

	return content.Item{}, false, nil
}
