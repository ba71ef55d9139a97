// recommend_test.go — recommender ranking, tie-break, and absence tests.
package recommend

import (
	"reflect"
	"testing"

	"github.com/blackgoldstudios/animax/internal/content"
	"github.com/blackgoldstudios/animax/internal/signals"
)

func item(id string, typ content.Type, genres ...string) content.Item {
	return content.Item{ID: id, Type: typ, Genre: genres, AgeRating: "14"}
}

func resultIDs(items []content.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestNoSignalsMeansNoRecommendation(t *testing.T) {
	catalog := []content.Item{
		item("1", content.TypeMovie, "Action"),
		item("2", content.TypeAnime, "Romance"),
	}
	got, ok := Build(catalog, signals.Sets{})
	if ok || got != nil {
		t.Errorf("empty signal sets must yield no recommendation, got %v", resultIDs(got))
	}
}

func TestAllDanglingSignalsMeansNoRecommendation(t *testing.T) {
	catalog := []content.Item{item("1", content.TypeMovie, "Action")}
	sets := signals.Sets{Liked: []string{"gone-1"}, Watched: []string{"gone-2"}}
	got, ok := Build(catalog, sets)
	if ok || got != nil {
		t.Errorf("all-dangling signals must yield no recommendation, got %v", resultIDs(got))
	}
}

func TestEmptyCatalogMeansNoRecommendation(t *testing.T) {
	if got, ok := Build(nil, signals.Sets{Liked: []string{"1"}}); ok || got != nil {
		t.Errorf("empty catalog must yield no recommendation, got %v", resultIDs(got))
	}
}

// The worked scenario: liked anime "1" (Action) makes Action the favorite
// genre and anime the primary type. Item "2" scores 1 on shared genre,
// item "3" scores 1 on matching type; the tie keeps catalog order.
func TestScenarioLikedAnime(t *testing.T) {
	catalog := []content.Item{
		item("1", content.TypeAnime, "Action"),
		item("2", content.TypeMovie, "Action"),
		item("3", content.TypeAnime, "Romance"),
	}
	sets := signals.Sets{Liked: []string{"1"}}
	got, ok := Build(catalog, sets)
	if !ok {
		t.Fatal("expected a recommendation")
	}
	want := []string{"1", "2", "3"}
	if !reflect.DeepEqual(resultIDs(got), want) {
		t.Errorf("result = %v, want %v", resultIDs(got), want)
	}
}

func TestPreferredItemsOutrankInferredOnes(t *testing.T) {
	catalog := []content.Item{
		item("similar", content.TypeAnime, "Action"),
		item("liked", content.TypeAnime, "Action"),
		item("listed", content.TypeAnime, "Action"),
	}
	sets := signals.Sets{Liked: []string{"liked"}, MyList: []string{"listed"}}
	got, ok := Build(catalog, sets)
	if !ok {
		t.Fatal("expected a recommendation")
	}
	// Both preferred items (score 3) come before the inferred one (score 2),
	// preserving their catalog order between themselves.
	want := []string{"liked", "listed", "similar"}
	if !reflect.DeepEqual(resultIDs(got), want) {
		t.Errorf("result = %v, want %v", resultIDs(got), want)
	}
}

func TestZeroScoreItemsAreDropped(t *testing.T) {
	catalog := []content.Item{
		item("1", content.TypeAnime, "Action"),
		item("unrelated", content.TypeMovie, "Documentary"),
	}
	got, ok := Build(catalog, signals.Sets{Liked: []string{"1"}})
	if !ok {
		t.Fatal("expected a recommendation")
	}
	for _, id := range resultIDs(got) {
		if id == "unrelated" {
			t.Error("zero-score item must not appear in the result")
		}
	}
}

func TestGenreOverlapScoresAtMostOnce(t *testing.T) {
	// "multi" shares two favorite genres but must still score only 1, so it
	// stays tied with "single" and catalog order decides.
	catalog := []content.Item{
		item("pref", content.TypeAnime, "Action", "Sci-Fi"),
		item("single", content.TypeMovie, "Action"),
		item("multi", content.TypeMovie, "Action", "Sci-Fi"),
	}
	got, ok := Build(catalog, signals.Sets{Watched: []string{"pref"}})
	if !ok {
		t.Fatal("expected a recommendation")
	}
	want := []string{"pref", "single", "multi"}
	if !reflect.DeepEqual(resultIDs(got), want) {
		t.Errorf("result = %v, want %v", resultIDs(got), want)
	}
}

func TestPrimaryTypeTieFirstSeenWins(t *testing.T) {
	// One movie and one anime preferred: tied type tally. The movie is
	// tallied first, so movie becomes the primary type and "bonus-movie"
	// outranks "bonus-anime".
	catalog := []content.Item{
		item("m1", content.TypeMovie, "Action"),
		item("a1", content.TypeAnime, "Romance"),
		item("bonus-movie", content.TypeMovie, "Documentary"),
		item("bonus-anime", content.TypeAnime, "Documentary"),
	}
	sets := signals.Sets{Liked: []string{"m1", "a1"}}
	got, ok := Build(catalog, sets)
	if !ok {
		t.Fatal("expected a recommendation")
	}
	idx := map[string]int{}
	for i, id := range resultIDs(got) {
		idx[id] = i
	}
	if _, found := idx["bonus-movie"]; !found {
		t.Fatal("bonus-movie should be recommended (type match)")
	}
	if _, found := idx["bonus-anime"]; found {
		t.Error("bonus-anime should be dropped (no type or genre match)")
	}
}

func TestFavoriteGenresAreTopThreeStable(t *testing.T) {
	// Preferred items tally Drama=2, Action=1, Comedy=1 — those three are
	// the favorites. Horror only appears on a non-preferred item, so
	// "h-only" (a movie, wrong type, no favorite genre) scores 0 and drops.
	catalog := []content.Item{
		item("p1", content.TypeAnime, "Action", "Drama"),
		item("p2", content.TypeAnime, "Comedy", "Drama"),
		item("p3", content.TypeAnime, "Horror"),
		item("h-only", content.TypeMovie, "Horror"),
		item("a-only", content.TypeMovie, "Action"),
	}
	sets := signals.Sets{Liked: []string{"p1", "p2"}}
	got, ok := Build(catalog, sets)
	if !ok {
		t.Fatal("expected a recommendation")
	}
	ids := resultIDs(got)
	for _, id := range ids {
		if id == "h-only" {
			t.Error("Horror is not a favorite genre; h-only must be dropped")
		}
	}
	found := false
	for _, id := range ids {
		if id == "a-only" {
			found = true
		}
	}
	if !found {
		t.Error("a-only shares favorite genre Action and must appear")
	}
}

func TestResultCappedAtTwenty(t *testing.T) {
	catalog := make([]content.Item, 0, 40)
	catalog = append(catalog, item("seed", content.TypeAnime, "Action"))
	for i := 0; i < 39; i++ {
		catalog = append(catalog, item(string(rune('A'+i%26))+string(rune('a'+i/26)), content.TypeAnime, "Action"))
	}
	got, ok := Build(catalog, signals.Sets{Liked: []string{"seed"}})
	if !ok {
		t.Fatal("expected a recommendation")
	}
	if len(got) != MaxResults {
		t.Errorf("result length = %d, want %d", len(got), MaxResults)
	}
	if got[0].ID != "seed" {
		t.Errorf("preferred item must rank first, got %q", got[0].ID)
	}
}

func TestDuplicateCatalogIDsDeduplicated(t *testing.T) {
	dup := item("1", content.TypeAnime, "Action")
	catalog := []content.Item{dup, dup, item("2", content.TypeAnime, "Action")}
	got, ok := Build(catalog, signals.Sets{Liked: []string{"1"}})
	if !ok {
		t.Fatal("expected a recommendation")
	}
	count := 0
	for _, id := range resultIDs(got) {
		if id == "1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("id 1 appears %d times, want exactly once", count)
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	catalog := []content.Item{
		item("1", content.TypeAnime, "Action", "Drama"),
		item("2", content.TypeMovie, "Action"),
		item("3", content.TypeSeries, "Drama"),
		item("4", content.TypeAnime, "Romance"),
		item("5", content.TypeMovie, "Drama", "Action"),
	}
	sets := signals.Sets{Liked: []string{"1"}, MyList: []string{"3"}, Watched: []string{"1", "4"}}

	first, ok1 := Build(catalog, sets)
	for i := 0; i < 50; i++ {
		next, ok2 := Build(catalog, sets)
		if ok1 != ok2 || !reflect.DeepEqual(resultIDs(first), resultIDs(next)) {
			t.Fatalf("run %d differed: %v vs %v", i, resultIDs(first), resultIDs(next))
		}
	}
}

func TestMixedDanglingAndResolvableSignals(t *testing.T) {
	catalog := []content.Item{
		item("1", content.TypeAnime, "Action"),
		item("2", content.TypeAnime, "Action"),
	}
	sets := signals.Sets{Liked: []string{"gone", "1"}, Watched: []string{"also-gone"}}
	got, ok := Build(catalog, sets)
	if !ok {
		t.Fatal("one resolvable signal id is enough for a recommendation")
	}
	want := []string{"1", "2"}
	if !reflect.DeepEqual(resultIDs(got), want) {
		t.Errorf("result = %v, want %v", resultIDs(got), want)
	}
}
