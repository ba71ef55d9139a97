// Package content defines the catalog data model shared by every Animax
// listing surface. A catalog snapshot is a plain []Item assembled by a
// provider (TMDB or the local seed catalog) — item IDs are unique within
// any single snapshot.
package content

// Type classifies a catalog entry.
type Type string

const (
	TypeMovie  Type = "movie"
	TypeSeries Type = "series"
	TypeAnime  Type = "anime"
)

// Item is one catalog entry. AgeRating is kept as the raw string the
// metadata source supplied — the agegate package is the only consumer that
// interprets it numerically.
type Item struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnail_url"`
	CoverURL     string   `json:"cover_url"`
	Genre        []string `json:"genre"`
	Rating       float64  `json:"rating"` // 0–5 display rating
	Year         int      `json:"year"`
	Type         Type     `json:"type"`
	AgeRating    string   `json:"age_rating"`
	Duration     string   `json:"duration,omitempty"` // movies
	Seasons      int      `json:"seasons,omitempty"`  // series and animes
	VideoURL     string   `json:"video_url,omitempty"` // official trailer
	EmbedURL     string   `json:"embed_url,omitempty"` // external player iframe
	Cast         []string `json:"cast,omitempty"`
	Director     string   `json:"director,omitempty"`
}

// Episode is a single episode of a series or anime, used by the
// recent-episodes rail on the home page.
type Episode struct {
	ID            string `json:"id"`
	SeriesID      string `json:"series_id"`
	SeriesTitle   string `json:"series_title"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ThumbnailURL  string `json:"thumbnail_url"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	AirDate       string `json:"air_date"`
	DurationMins  int    `json:"duration_minutes,omitempty"`
}

// Section is a titled row of items as rendered on a listing page.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}
