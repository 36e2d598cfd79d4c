package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Entity optionally narrows a subscription to a single entity instance.
// The zero value means the subscription covers the notification name as a
// whole.
type Entity struct {
	Type string
	ID   string
}

// IsZero reports whether the entity is unset.
func (e Entity) IsZero() bool {
	return e.Type == "" && e.ID == ""
}

// Subscription is a single "user U wants notification N" fact,
// optionally scoped to an entity.
type Subscription struct {
	UserID uuid.UUID
	Name   string
	Entity Entity
}

// SubscriptionStore persists subscription facts.
// Rows are unique per (user, name, entity); storing an existing
// subscription is a no-op, as is removing a missing one.
type SubscriptionStore interface {
	// Store records a subscription.
	Store(ctx context.Context, sub Subscription) error

	// Remove deletes a subscription.
	Remove(ctx context.Context, sub Subscription) error

	// Exists reports whether the subscription is recorded.
	Exists(ctx context.Context, sub Subscription) (bool, error)

	// Subscribers returns the IDs of all users subscribed to (name, entity).
	Subscribers(ctx context.Context, name string, entity Entity) ([]uuid.UUID, error)

	// RemoveForUser deletes every subscription of a user, typically when
	// the user is removed.
	RemoveForUser(ctx context.Context, userID uuid.UUID) error
}

// Index answers "who is subscribed to X" and manages subscription facts.
// It validates notification names against the registry; resolution of
// subscribers is a pure membership lookup.
type Index struct {
	store    SubscriptionStore
	registry *Registry
}

// NewIndex creates a subscription index.
// Panics if store or registry is nil to fail fast during initialization.
func NewIndex(store SubscriptionStore, registry *Registry) *Index {
	if store == nil {
		panic("notification: SubscriptionStore is required")
	}
	if registry == nil {
		panic("notification: Registry is required")
	}
	return &Index{store: store, registry: registry}
}

// Subscribe records the user's interest in a notification.
// Subscribing twice is a no-op.
func (i *Index) Subscribe(ctx context.Context, userID uuid.UUID, name string, entity Entity) error {
	sub, err := i.subscription(userID, name, entity)
	if err != nil {
		return err
	}
	return i.store.Store(ctx, sub)
}

// Unsubscribe removes the user's interest. Removing a missing
// subscription is a no-op: absence already means "not interested".
func (i *Index) Unsubscribe(ctx context.Context, userID uuid.UUID, name string, entity Entity) error {
	sub, err := i.subscription(userID, name, entity)
	if err != nil {
		return err
	}
	return i.store.Remove(ctx, sub)
}

// IsSubscribed reports whether the user is subscribed to (name, entity).
func (i *Index) IsSubscribed(ctx context.Context, userID uuid.UUID, name string, entity Entity) (bool, error) {
	sub, err := i.subscription(userID, name, entity)
	if err != nil {
		return false, err
	}
	return i.store.Exists(ctx, sub)
}

// GetSubscribers returns the set of users subscribed to (name, entity).
// An entity-scoped lookup matches only subscriptions to that exact entity;
// a bare lookup matches only non-entity subscriptions.
func (i *Index) GetSubscribers(ctx context.Context, name string, entity Entity) ([]uuid.UUID, error) {
	if !i.registry.Has(name) {
		return nil, errors.Join(ErrNotRegistered, fmt.Errorf("notification %q", name))
	}
	return i.store.Subscribers(ctx, name, entity)
}

// UnsubscribeAll removes every subscription of a user.
func (i *Index) UnsubscribeAll(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrMissingUserID
	}
	return i.store.RemoveForUser(ctx, userID)
}

func (i *Index) subscription(userID uuid.UUID, name string, entity Entity) (Subscription, error) {
	if userID == uuid.Nil {
		return Subscription{}, ErrMissingUserID
	}
	if !i.registry.Has(name) {
		return Subscription{}, errors.Join(ErrNotRegistered, fmt.Errorf("notification %q", name))
	}
	return Subscription{UserID: userID, Name: name, Entity: entity}, nil
}
