package memory

import (
	"context"
	"sync"

	"islandtracker/internal/types"
)

// Store keeps entries in process memory. Nothing survives a restart.
type Store struct {
	mu         sync.RWMutex
	data       map[string]types.CacheEntry
	registered bool
}

func NewStore() *Store {
	return &Store{data: make(map[string]types.CacheEntry)}
}

func (s *Store) Load(_ context.Context, key string) (*types.CacheEntry, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	// callers own their copy
	e.Value = append([]byte(nil), e.Value...)
	return &e, nil
}

func (s *Store) Save(_ context.Context, entry types.CacheEntry) error {
	entry.Value = append([]byte(nil), entry.Value...)
	s.mu.Lock()
	s.data[entry.Key] = entry
	s.mu.Unlock()
	return nil
}

func (s *Store) ClearAll(context.Context) error {
	s.mu.Lock()
	s.data = make(map[string]types.CacheEntry)
	s.mu.Unlock()
	return nil
}

func (s *Store) HasRegistered(context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registered, nil
}

func (s *Store) SetRegistered(context.Context) error {
	s.mu.Lock()
	s.registered = true
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error { return nil }
