package scopestore

import (
	"context"
	"sync"
)

type recordKey struct {
	scope    Scope
	scopeKey string
	name     string
}

// MemoryStore is an in-memory implementation of the Store interface.
// Suitable for development and testing.
type MemoryStore struct {
	records map[recordKey]Record
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory scoped value store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[recordKey]Record),
	}
}

func (s *MemoryStore) Get(ctx context.Context, scope Scope, scopeKey, name string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[recordKey{scope, scopeKey, name}]
	if !exists {
		return nil, ErrRecordNotFound
	}

	// Return a copy to prevent external mutation of stored data
	recCopy := rec
	return &recCopy, nil
}

func (s *MemoryStore) List(ctx context.Context, scope Scope, scopeKeys []string, name string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Record, 0, len(scopeKeys))
	for _, key := range scopeKeys {
		if rec, exists := s.records[recordKey{scope, key, name}]; exists {
			result = append(result, rec)
		}
	}

	return result, nil
}

func (s *MemoryStore) Set(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.Scope == "" || rec.Name == "" {
		return ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[recordKey{rec.Scope, rec.ScopeKey, rec.Name}] = rec
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, scope Scope, scopeKey, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, recordKey{scope, scopeKey, name})
	return nil
}

func (s *MemoryStore) DeleteScope(ctx context.Context, scope Scope, scopeKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.records {
		if key.scope == scope && key.scopeKey == scopeKey {
			delete(s.records, key)
		}
	}
	return nil
}
