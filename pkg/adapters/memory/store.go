package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/value"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]value.Map
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]value.Map),
	}
}

// Save stores a copy of result.
func (s *Store) Save(ctx context.Context, name string, result value.Map) error {
	copied := maps.Clone(result)
	if copied == nil {
		copied = value.Map{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load retrieves a copy of the stored result so callers can't mutate the store.
func (s *Store) Load(ctx context.Context, name string) (value.Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.data[name]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return maps.Clone(result), nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored result names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
