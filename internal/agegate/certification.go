// certification.go — maps TMDB certification strings to Animax numeric
// age-rating strings. TMDB returns Brazilian ClassInd values for BR and
// MPAA/TV Parental Guidelines values for US; both are normalized here so
// the filter only ever sees numeric strings.
package agegate

import (
	"strconv"
	"strings"
)

// MapCertification converts a raw certification to a numeric rating string.
// mediaType is "movie" or "tv". Unknown certifications fall back to "14",
// or "18" when the source flags the title as adult. An adult flag also
// floors the result at 18 regardless of the certification.
func MapCertification(certification, mediaType string, adult bool) string {
	fallback := "14"
	if adult {
		fallback = "18"
	}

	value := strings.ToUpper(strings.TrimSpace(certification))
	if value == "" {
		return fallback
	}

	result := fallback
	if mediaType == "movie" {
		switch value {
		case "L", "0", "G":
			result = "0"
		case "10", "PG":
			result = "10"
		case "12":
			result = "12"
		case "14", "PG-13":
			result = "14"
		case "16":
			result = "16"
		case "18", "R", "NC-17":
			result = "18"
		}
	} else {
		switch value {
		case "L", "0", "TV-Y", "TV-G":
			result = "0"
		case "10", "TV-Y7", "TV-PG":
			result = "10"
		case "12":
			result = "12"
		case "14", "TV-14":
			result = "14"
		case "16", "18", "TV-MA":
			result = "18"
		}
	}

	if adult {
		if n, err := strconv.Atoi(result); err == nil && n < 18 {
			return "18"
		}
	}
	return result
}
