// Package recommend builds the "Recommended for you" rail from a catalog
// snapshot and the viewer's engagement signals. It is a pure computation:
// no storage, no network, and fully deterministic for a given catalog order
// and signal snapshot. The one non-success outcome is absence — callers
// render nothing when no recommendation is available.
package recommend

import (
	"sort"

	"github.com/blackgoldstudios/animax/internal/content"
	"github.com/blackgoldstudios/animax/internal/signals"
)

// MaxResults caps the recommendation rail.
const MaxResults = 20

// FavoriteGenreCount is how many top genres count as "favorite".
const FavoriteGenreCount = 3

// preferenceScore is the score given to items the viewer explicitly
// signaled — explicit preference outranks any inferred similarity (which
// maxes out at 2: type match + genre match).
const preferenceScore = 3

// scored pairs an item with its ranking score for one pass. Transient.
type scored struct {
	item  content.Item
	score int
}

// tally counts keys while remembering first-seen order, because the
// favorite-genre and primary-type tie-breaks are "first encountered wins"
// and Go maps do not iterate in insertion order.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// top returns up to n keys by descending count, ties kept in first-seen
// order (stable sort on count only).
func (t *tally) top(n int) []string {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// max returns the key with the strictly highest count; on a tie the first
// key encountered wins. Empty tally returns "".
func (t *tally) max() string {
	best := ""
	bestCount := 0
	for _, key := range t.order {
		if t.counts[key] > bestCount {
			best = key
			bestCount = t.counts[key]
		}
	}
	return best
}

// Build ranks the catalog against the viewer's signal sets and returns up
// to MaxResults deduplicated items. The second return is false when no
// recommendation is available: all signal sets empty, every signal id
// dangling, or nothing scored above zero.
//
// Whether items is the age-filtered or the raw catalog is the caller's
// choice; Build treats the slice as an opaque snapshot either way.
func Build(items []content.Item, sets signals.Sets) ([]content.Item, bool) {
	preferenceIDs := make(map[string]bool)
	for _, id := range sets.Union() {
		preferenceIDs[id] = true
	}
	if len(preferenceIDs) == 0 {
		return nil, false
	}

	// Signal ids may be dangling — catalogs are refetched live and change
	// shape between sessions. Only ids that resolve count as preferences.
	var preferred []content.Item
	for _, item := range items {
		if preferenceIDs[item.ID] {
			preferred = append(preferred, item)
		}
	}
	if len(preferred) == 0 {
		return nil, false
	}

	genres := newTally()
	types := newTally()
	for _, item := range preferred {
		types.add(string(item.Type))
		for _, g := range item.Genre {
			genres.add(g)
		}
	}

	favoriteGenres := genres.top(FavoriteGenreCount)
	favoriteSet := make(map[string]bool, len(favoriteGenres))
	for _, g := range favoriteGenres {
		favoriteSet[g] = true
	}
	primaryType := types.max()

	candidates := make([]scored, 0, len(items))
	for _, item := range items {
		if preferenceIDs[item.ID] {
			candidates = append(candidates, scored{item: item, score: preferenceScore})
			continue
		}
		score := 0
		if primaryType != "" && string(item.Type) == primaryType {
			score++
		}
		// At most +1 for genre overlap regardless of how many genres match.
		for _, g := range item.Genre {
			if favoriteSet[g] {
				score++
				break
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{item: item, score: score})
		}
	}

	// Stable: equal scores keep the catalog's original relative order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	seen := make(map[string]bool, len(candidates))
	result := make([]content.Item, 0, MaxResults)
	for _, c := range candidates {
		if !seen[c.item.ID] {
			seen[c.item.ID] = true
			result = append(result, c.item)
		}
		if len(result) >= MaxResults {
			break
		}
	}

	if len(result) == 0 {
		return nil, false
	}
	return result, true
}
