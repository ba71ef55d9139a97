// signals_test.go — toggle semantics and set-union behavior.
package signals

import (
	"context"
	"sync"
	"testing"
)

func TestUnionFirstSeenOrder(t *testing.T) {
	s := Sets{
		Liked:   []string{"a", "b"},
		MyList:  []string{"b", "c"},
		Watched: []string{"a", "d", ""},
	}
	got := s.Union()
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("Union = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Union order = %v, want %v", got, want)
		}
	}
}

func TestEmpty(t *testing.T) {
	if !(Sets{}).Empty() {
		t.Error("zero Sets should be empty")
	}
	if (Sets{Watched: []string{"x"}}).Empty() {
		t.Error("non-empty watched set should not be empty")
	}
}

func TestValidNamespace(t *testing.T) {
	for _, ns := range Namespaces {
		if !ValidNamespace(ns) {
			t.Errorf("namespace %q should be valid", ns)
		}
	}
	for _, ns := range []string{"", "likes", "list", "LIKED"} {
		if ValidNamespace(ns) {
			t.Errorf("namespace %q should be invalid", ns)
		}
	}
}

func TestMemoryStoreToggle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	present, err := store.Toggle(ctx, "u1", NamespaceLiked, "m-1")
	if err != nil || !present {
		t.Fatalf("first toggle: present=%v err=%v, want true nil", present, err)
	}
	present, err = store.Toggle(ctx, "u1", NamespaceLiked, "m-1")
	if err != nil || present {
		t.Fatalf("second toggle: present=%v err=%v, want false nil", present, err)
	}
	if got := store.ReadIDs(ctx, "u1", NamespaceLiked); len(got) != 0 {
		t.Errorf("after toggle off, ReadIDs = %v, want empty", got)
	}
}

func TestMemoryStoreToggleKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, id := range []string{"a", "b", "c"} {
		store.Toggle(ctx, "u1", NamespaceMyList, id)
	}
	store.Toggle(ctx, "u1", NamespaceMyList, "b") // remove middle
	got := store.ReadIDs(ctx, "u1", NamespaceMyList)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("ReadIDs = %v, want [a c]", got)
	}
}

func TestMemoryStoreIsolatesViewersAndNamespaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Toggle(ctx, "u1", NamespaceLiked, "x")
	if got := store.ReadIDs(ctx, "u2", NamespaceLiked); len(got) != 0 {
		t.Errorf("viewer u2 sees u1's signals: %v", got)
	}
	if got := store.ReadIDs(ctx, "u1", NamespaceWatched); len(got) != 0 {
		t.Errorf("watched namespace sees liked signals: %v", got)
	}
}

func TestMemoryStoreConcurrentTogglesDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// 100 distinct ids toggled concurrently must all land exactly once.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Toggle(ctx, "u1", NamespaceWatched, string(rune('A'+n%26))+string(rune('a'+n/26)))
		}(i)
	}
	wg.Wait()
	if got := store.ReadIDs(ctx, "u1", NamespaceWatched); len(got) != 100 {
		t.Errorf("expected 100 ids after concurrent toggles, got %d", len(got))
	}
}

func TestSnapshotReadsAllNamespaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Toggle(ctx, "u1", NamespaceLiked, "1")
	store.Toggle(ctx, "u1", NamespaceMyList, "2")
	store.Toggle(ctx, "u1", NamespaceWatched, "3")

	snap := Snapshot(ctx, store, "u1")
	if len(snap.Liked) != 1 || snap.Liked[0] != "1" {
		t.Errorf("Liked = %v", snap.Liked)
	}
	if len(snap.MyList) != 1 || snap.MyList[0] != "2" {
		t.Errorf("MyList = %v", snap.MyList)
	}
	if len(snap.Watched) != 1 || snap.Watched[0] != "3" {
		t.Errorf("Watched = %v", snap.Watched)
	}
}
