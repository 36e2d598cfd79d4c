package permission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/grantkit/pkg/scopestore"
)

// Invalidator is notified after every grant write so external caches can
// drop stale entries. Implementations must be safe for concurrent use.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(ctx context.Context, keys ...string) error { return nil }

// Manager performs administrative grant and revoke operations.
// Every write is an upsert on exactly one (scope, scopeKey, name) row and
// notifies the configured cache invalidator.
type Manager struct {
	store       scopestore.Store
	registry    *Registry
	invalidator Invalidator
	logger      *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithInvalidator sets the cache invalidator notified on writes.
func WithInvalidator(inv Invalidator) ManagerOption {
	return func(m *Manager) {
		if inv != nil {
			m.invalidator = inv
		}
	}
}

// WithManagerLogger sets the logger used for invalidation failures.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a grant manager.
// The registry guards writes: granting an unregistered permission is an
// administrative mistake and fails with ErrNotRegistered.
func NewManager(store scopestore.Store, registry *Registry, opts ...ManagerOption) *Manager {
	if store == nil {
		panic("permission: scopestore.Store is required")
	}
	if registry == nil {
		panic("permission: Registry is required")
	}

	m := &Manager{
		store:       store,
		registry:    registry,
		invalidator: noopInvalidator{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GrantToUser records an explicit user-level grant.
func (m *Manager) GrantToUser(ctx context.Context, userID uuid.UUID, name string) error {
	return m.set(ctx, scopestore.ScopeUser, userID, name, grantedValue)
}

// RevokeFromUser records an explicit user-level revocation. The revoked row
// denies the permission even when one of the user's roles grants it.
func (m *Manager) RevokeFromUser(ctx context.Context, userID uuid.UUID, name string) error {
	return m.set(ctx, scopestore.ScopeUser, userID, name, revokedValue)
}

// ResetForUser removes the user-level override so role grants apply again.
func (m *Manager) ResetForUser(ctx context.Context, userID uuid.UUID, name string) error {
	return m.remove(ctx, scopestore.ScopeUser, userID, name)
}

// GrantToRole records a role-level grant.
func (m *Manager) GrantToRole(ctx context.Context, roleID uuid.UUID, name string) error {
	return m.set(ctx, scopestore.ScopeRole, roleID, name, grantedValue)
}

// RevokeFromRole removes a role-level grant. Role rows have no deny
// semantics, so revoking is deletion rather than writing a false row.
func (m *Manager) RevokeFromRole(ctx context.Context, roleID uuid.UUID, name string) error {
	return m.remove(ctx, scopestore.ScopeRole, roleID, name)
}

// ResetScope removes every grant row for the given scope key, typically
// when a user or role is deleted.
func (m *Manager) ResetScope(ctx context.Context, scope scopestore.Scope, scopeKey uuid.UUID) error {
	if scopeKey == uuid.Nil {
		return ErrMissingScopeKey
	}
	if err := m.store.DeleteScope(ctx, scope, scopeKey.String()); err != nil {
		return err
	}
	m.notify(ctx, cacheKey(scope, scopeKey.String(), ""))
	return nil
}

func (m *Manager) set(ctx context.Context, scope scopestore.Scope, scopeKey uuid.UUID, name, value string) error {
	if scopeKey == uuid.Nil {
		return ErrMissingScopeKey
	}
	if !m.registry.Has(name) {
		return errors.Join(ErrNotRegistered, fmt.Errorf("permission %q", name))
	}

	if err := m.store.Set(ctx, scopestore.Record{
		Scope:    scope,
		ScopeKey: scopeKey.String(),
		Name:     name,
		Value:    value,
	}); err != nil {
		return err
	}

	m.notify(ctx, cacheKey(scope, scopeKey.String(), name))
	return nil
}

func (m *Manager) remove(ctx context.Context, scope scopestore.Scope, scopeKey uuid.UUID, name string) error {
	if scopeKey == uuid.Nil {
		return ErrMissingScopeKey
	}
	if !m.registry.Has(name) {
		return errors.Join(ErrNotRegistered, fmt.Errorf("permission %q", name))
	}

	if err := m.store.Delete(ctx, scope, scopeKey.String(), name); err != nil {
		return err
	}

	m.notify(ctx, cacheKey(scope, scopeKey.String(), name))
	return nil
}

// notify is best effort: the write already succeeded and readers go
// through the store, so a failed invalidation only delays cache refresh.
func (m *Manager) notify(ctx context.Context, key string) {
	if err := m.invalidator.Invalidate(ctx, key); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to invalidate permission cache",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func cacheKey(scope scopestore.Scope, scopeKey, name string) string {
	return fmt.Sprintf("permission:%s:%s:%s", scope, scopeKey, name)
}
