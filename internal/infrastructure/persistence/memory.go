package persistence

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps favorite slots in process memory. Nothing survives a
// restart; used for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, ok := s.slots[key]

	return slices.Clone(ids), ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = slices.Clone(ids)

	return nil
}
