package notification

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type subscriptionKey struct {
	name   string
	entity Entity
}

// MemorySubscriptionStore is an in-memory SubscriptionStore.
// Suitable for development and testing.
type MemorySubscriptionStore struct {
	// subscribers keeps insertion order per key so GetSubscribers output
	// is deterministic in tests.
	subscribers map[subscriptionKey][]uuid.UUID
	mu          sync.RWMutex
}

// NewMemorySubscriptionStore creates a new in-memory subscription store.
func NewMemorySubscriptionStore() *MemorySubscriptionStore {
	return &MemorySubscriptionStore{
		subscribers: make(map[subscriptionKey][]uuid.UUID),
	}
}

func (s *MemorySubscriptionStore) Store(ctx context.Context, sub Subscription) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := subscriptionKey{sub.Name, sub.Entity}
	if slices.Contains(s.subscribers[key], sub.UserID) {
		return nil
	}
	s.subscribers[key] = append(s.subscribers[key], sub.UserID)
	return nil
}

func (s *MemorySubscriptionStore) Remove(ctx context.Context, sub Subscription) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := subscriptionKey{sub.Name, sub.Entity}
	s.subscribers[key] = slices.DeleteFunc(s.subscribers[key], func(id uuid.UUID) bool {
		return id == sub.UserID
	})
	return nil
}

func (s *MemorySubscriptionStore) Exists(ctx context.Context, sub Subscription) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Contains(s.subscribers[subscriptionKey{sub.Name, sub.Entity}], sub.UserID), nil
}

func (s *MemorySubscriptionStore) Subscribers(ctx context.Context, name string, entity Entity) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.subscribers[subscriptionKey{name, entity}]), nil
}

func (s *MemorySubscriptionStore) RemoveForUser(ctx context.Context, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ids := range s.subscribers {
		s.subscribers[key] = slices.DeleteFunc(ids, func(id uuid.UUID) bool {
			return id == userID
		})
	}
	return nil
}
