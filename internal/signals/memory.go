// memory.go — in-memory signal store for dev mode and tests.
// Toggles serialize on a mutex, matching the atomicity the Redis store
// gets from its Lua script.
package signals

import (
	"context"
	"sync"
)

// MemoryStore implements Store with an in-process map. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]string // key(viewer, namespace) → ordered ids
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]string)}
}

func (s *MemoryStore) ReadIDs(_ context.Context, viewerID, namespace string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.data[key(viewerID, namespace)]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func (s *MemoryStore) WriteIDs(_ context.Context, viewerID, namespace string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]string, len(ids))
	copy(cp, ids)
	s.data[key(viewerID, namespace)] = cp
	return nil
}

func (s *MemoryStore) Toggle(_ context.Context, viewerID, namespace, contentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(viewerID, namespace)
	ids := s.data[k]
	for i, id := range ids {
		if id == contentID {
			s.data[k] = append(append([]string{}, ids[:i]...), ids[i+1:]...)
			return false, nil
		}
	}
	s.data[k] = append(ids, contentID)
	return true, nil
}
