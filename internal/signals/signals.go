// Package signals manages the viewer's engagement signals: the liked,
// my-list, and watched id sets that feed the recommender. The sets grow and
// shrink only through toggles on content cards and the watch page; they are
// never pruned when items leave the catalog, so consumers must tolerate
// dangling ids.
//
// The core recommender never touches a Store — callers read a snapshot of
// the three lists first and hand it over as a Sets value.
package signals

import "context"

// Namespaces for the three signal sets. These double as store key suffixes.
const (
	NamespaceLiked   = "liked"
	NamespaceMyList  = "my-list"
	NamespaceWatched = "watched"
)

// Namespaces lists every valid signal namespace.
var Namespaces = []string{NamespaceLiked, NamespaceMyList, NamespaceWatched}

// ValidNamespace reports whether ns names one of the three signal sets.
func ValidNamespace(ns string) bool {
	return ns == NamespaceLiked || ns == NamespaceMyList || ns == NamespaceWatched
}

// Sets is a point-in-time snapshot of one viewer's three signal sets.
type Sets struct {
	Liked   []string `json:"liked"`
	MyList  []string `json:"my_list"`
	Watched []string `json:"watched"`
}

// Empty reports whether all three sets are empty.
func (s Sets) Empty() bool {
	return len(s.Liked) == 0 && len(s.MyList) == 0 && len(s.Watched) == 0
}

// Union returns the deduplicated union of the three sets in first-seen
// order (liked, then my-list, then watched).
func (s Sets) Union() []string {
	seen := make(map[string]bool, len(s.Liked)+len(s.MyList)+len(s.Watched))
	var out []string
	for _, group := range [][]string{s.Liked, s.MyList, s.Watched} {
		for _, id := range group {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Store persists signal sets per viewer. Implementations must degrade to an
// empty list rather than failing a page render: ReadIDs never returns an
// error. Toggle must be atomic from the caller's perspective so rapid
// toggling cannot lose updates.
type Store interface {
	// ReadIDs returns the ids in a namespace, in insertion order. A missing
	// or corrupt underlying record yields an empty list.
	ReadIDs(ctx context.Context, viewerID, namespace string) []string
	// WriteIDs replaces the ids in a namespace.
	WriteIDs(ctx context.Context, viewerID, namespace string, ids []string) error
	// Toggle atomically adds contentID if absent or removes it if present.
	// Returns whether the id is present after the toggle.
	Toggle(ctx context.Context, viewerID, namespace, contentID string) (bool, error)
}

// Snapshot reads all three sets for a viewer from a store.
func Snapshot(ctx context.Context, store Store, viewerID string) Sets {
	return Sets{
		Liked:   store.ReadIDs(ctx, viewerID, NamespaceLiked),
		MyList:  store.ReadIDs(ctx, viewerID, NamespaceMyList),
		Watched: store.ReadIDs(ctx, viewerID, NamespaceWatched),
	}
}
