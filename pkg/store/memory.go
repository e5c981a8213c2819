package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process chart store for development and tests.
// Charts do not survive a restart.
type MemoryStore struct {
	mu     sync.Mutex
	charts map[string]*Chart
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]*Chart)}
}

// Get retrieves a chart by ID. Expired charts are removed on access.
// The returned record is a copy, so mutating it does not affect the store.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Chart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.charts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if c.IsExpired() {
		delete(s.charts, id)
		return nil, ErrExpired
	}
	cp := *c
	return &cp, nil
}

// Set stores a chart, replacing any existing record with the same ID.
func (s *MemoryStore) Set(ctx context.Context, c *Chart) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("chart id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.charts[c.ID] = &cp
	return nil
}

// Delete removes a chart. Deleting a missing chart is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.charts, id)
	return nil
}

// Cleanup removes expired charts and reports how many were removed.
func (s *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, c := range s.charts {
		if c.IsExpired() {
			delete(s.charts, id)
			removed++
		}
	}
	return removed, nil
}

// Close discards all charts.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.charts = make(map[string]*Chart)
	return nil
}

// Len reports the number of stored charts, expired or not. Used by tests.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.charts)
}

var _ Store = (*MemoryStore)(nil)
