// player.go — external player embed URLs.
package content

import (
	"fmt"
	"strings"
)

// playerBaseURL is the external iframe player used by the watch page.
const playerBaseURL = "https://superflixapi.asia"

// PlayerEmbedURL derives the iframe player URL for a catalog item. The
// player is keyed by the numeric TMDB id, which is the last dash-separated
// segment of the catalog id ("tmdb-movie-603" ⇒ "603"). Ids whose last
// segment is not numeric have no player and yield "".
//
// Movies map to /filme/{tmdbId}; series and animes map to
// /serie/{tmdbId}/{season}/{episode}, with season/episode clamped to 1.
func PlayerEmbedURL(id string, typ Type, season, episode int) string {
	parts := strings.Split(id, "-")
	tmdbID := parts[len(parts)-1]
	if !isDigits(tmdbID) {
		return ""
	}
	if typ == TypeMovie {
		return fmt.Sprintf("%s/filme/%s", playerBaseURL, tmdbID)
	}
	if season < 1 {
		season = 1
	}
	if episode < 1 {
		episode = 1
	}
	return fmt.Sprintf("%s/serie/%s/%d/%d", playerBaseURL, tmdbID, season, episode)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
