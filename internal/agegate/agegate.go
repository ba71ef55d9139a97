// Package agegate implements the age-eligibility filter applied by every
// listing surface. The filter is a pure function over a catalog snapshot:
// it never reorders items and it fails closed — a rating that does not
// parse as a finite number is excluded no matter how high the viewer's
// ceiling is, so a broken upstream rating can never grant access.
package agegate

import (
	"math"
	"strconv"
	"strings"

	"github.com/blackgoldstudios/animax/internal/content"
)

// DefaultMaxAgeRating is the ceiling used when the viewer has no profile or
// the profile carries no explicit ceiling.
const DefaultMaxAgeRating = 16

// AllowedCeilings are the explicit ceilings a profile may select. The filter
// itself accepts any finite non-negative ceiling — this list only constrains
// what profile updates persist.
var AllowedCeilings = []int{10, 12, 14, 16, 18}

// IsAllowedCeiling reports whether v is a selectable profile ceiling.
func IsAllowedCeiling(v int) bool {
	for _, a := range AllowedCeilings {
		if v == a {
			return true
		}
	}
	return false
}

// Ceiling resolves a profile's ceiling. A nil pointer means no profile or no
// explicit value — the default applies.
func Ceiling(maxAgeRating *int) float64 {
	if maxAgeRating == nil {
		return DefaultMaxAgeRating
	}
	return float64(*maxAgeRating)
}

// Eligible reports whether a single item's rating parses to a finite number
// within the ceiling.
func Eligible(item content.Item, maxAgeRating float64) bool {
	n, err := strconv.ParseFloat(strings.TrimSpace(item.AgeRating), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return false
	}
	return n <= maxAgeRating
}

// Filter returns the ordered subsequence of items whose age rating is
// eligible under maxAgeRating. Input order is preserved; the input slice is
// never mutated.
func Filter(items []content.Item, maxAgeRating float64) []content.Item {
	out := make([]content.Item, 0, len(items))
	for _, item := range items {
		if Eligible(item, maxAgeRating) {
			out = append(out, item)
		}
	}
	return out
}
