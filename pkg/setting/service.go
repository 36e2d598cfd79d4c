package setting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/dmitrymomot/grantkit/pkg/scopestore"
)

// Invalidator is notified after every setting write so external caches can
// drop stale entries.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(ctx context.Context, keys ...string) error { return nil }

// ScopeOption narrows a read to user and tenant override layers.
type ScopeOption func(*scopeQuery)

type scopeQuery struct {
	userID   uuid.UUID
	tenantID uuid.UUID
}

// ForUser includes the user-scoped override layer in the resolution chain.
func ForUser(userID uuid.UUID) ScopeOption {
	return func(q *scopeQuery) { q.userID = userID }
}

// ForTenant includes the tenant-scoped override layer in the resolution chain.
func ForTenant(tenantID uuid.UUID) ScopeOption {
	return func(q *scopeQuery) { q.tenantID = tenantID }
}

// Service resolves and mutates scoped setting values.
// It holds no mutable state and performs no internal caching: every read
// goes to the store so writes are immediately observable.
type Service struct {
	store       scopestore.Store
	registry    *Registry
	invalidator Invalidator
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithInvalidator sets the cache invalidator notified on writes.
func WithInvalidator(inv Invalidator) ServiceOption {
	return func(s *Service) {
		if inv != nil {
			s.invalidator = inv
		}
	}
}

// WithLogger sets the logger used for invalidation failures.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a setting service.
// Panics if store or registry is nil to fail fast during initialization.
func NewService(store scopestore.Store, registry *Registry, opts ...ServiceOption) *Service {
	if store == nil {
		panic("setting: scopestore.Store is required")
	}
	if registry == nil {
		panic("setting: Registry is required")
	}

	s := &Service{
		store:       store,
		registry:    registry,
		invalidator: noopInvalidator{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetValue resolves the effective value of a setting, scanning the override
// chain top-down: user row, tenant row, global row, registered default.
// The first hit wins. An unknown name with no rows resolves to "" without
// error; store failures propagate unchanged.
func (s *Service) GetValue(ctx context.Context, name string, opts ...ScopeOption) (string, error) {
	var q scopeQuery
	for _, opt := range opts {
		opt(&q)
	}

	if q.userID != uuid.Nil {
		if value, found, err := s.lookup(ctx, scopestore.ScopeUser, q.userID.String(), name); err != nil {
			return "", err
		} else if found {
			return value, nil
		}
	}

	if q.tenantID != uuid.Nil {
		if value, found, err := s.lookup(ctx, scopestore.ScopeTenant, q.tenantID.String(), name); err != nil {
			return "", err
		} else if found {
			return value, nil
		}
	}

	if value, found, err := s.lookup(ctx, scopestore.ScopeGlobal, "", name); err != nil {
		return "", err
	} else if found {
		return value, nil
	}

	if def, ok := s.registry.Get(name); ok {
		return def.DefaultValue, nil
	}
	return "", nil
}

// GetValueOrDefault resolves the setting without user or tenant overrides:
// global row, then registered default.
func (s *Service) GetValueOrDefault(ctx context.Context, name string) (string, error) {
	return s.GetValue(ctx, name)
}

// GetBool resolves and parses a boolean setting.
// Parse failures surface as ErrInvalidValue, never a silent default.
func (s *Service) GetBool(ctx context.Context, name string, opts ...ScopeOption) (bool, error) {
	value, err := s.GetValue(ctx, name, opts...)
	if err != nil {
		return false, err
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Join(ErrInvalidValue,
			fmt.Errorf("setting %q: %q is not a boolean", name, value))
	}
	return parsed, nil
}

// GetInt resolves and parses an integer setting.
// Parse failures surface as ErrInvalidValue, never a silent default.
func (s *Service) GetInt(ctx context.Context, name string, opts ...ScopeOption) (int64, error) {
	value, err := s.GetValue(ctx, name, opts...)
	if err != nil {
		return 0, err
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Join(ErrInvalidValue,
			fmt.Errorf("setting %q: %q is not an integer", name, value))
	}
	return parsed, nil
}

// SetForUser upserts the user-scoped value for a setting.
func (s *Service) SetForUser(ctx context.Context, userID uuid.UUID, name, value string) error {
	if userID == uuid.Nil {
		return ErrMissingScopeKey
	}
	return s.set(ctx, scopestore.ScopeUser, userID.String(), name, value)
}

// SetForTenant upserts the tenant-scoped value for a setting.
func (s *Service) SetForTenant(ctx context.Context, tenantID uuid.UUID, name, value string) error {
	if tenantID == uuid.Nil {
		return ErrMissingScopeKey
	}
	return s.set(ctx, scopestore.ScopeTenant, tenantID.String(), name, value)
}

// SetGlobal upserts the global value for a setting.
func (s *Service) SetGlobal(ctx context.Context, name, value string) error {
	return s.set(ctx, scopestore.ScopeGlobal, "", name, value)
}

// DeleteForUser removes the user-scoped override so lower layers apply again.
func (s *Service) DeleteForUser(ctx context.Context, userID uuid.UUID, name string) error {
	if userID == uuid.Nil {
		return ErrMissingScopeKey
	}
	return s.delete(ctx, scopestore.ScopeUser, userID.String(), name)
}

// DeleteForTenant removes the tenant-scoped override.
func (s *Service) DeleteForTenant(ctx context.Context, tenantID uuid.UUID, name string) error {
	if tenantID == uuid.Nil {
		return ErrMissingScopeKey
	}
	return s.delete(ctx, scopestore.ScopeTenant, tenantID.String(), name)
}

// DeleteGlobal removes the global row so the registered default applies.
func (s *Service) DeleteGlobal(ctx context.Context, name string) error {
	return s.delete(ctx, scopestore.ScopeGlobal, "", name)
}

func (s *Service) lookup(ctx context.Context, scope scopestore.Scope, scopeKey, name string) (string, bool, error) {
	rec, err := s.store.Get(ctx, scope, scopeKey, name)
	if err != nil {
		if errors.Is(err, scopestore.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return rec.Value, true, nil
}

func (s *Service) set(ctx context.Context, scope scopestore.Scope, scopeKey, name, value string) error {
	if !s.registry.Has(name) {
		return errors.Join(ErrNotRegistered, fmt.Errorf("setting %q", name))
	}

	if err := s.store.Set(ctx, scopestore.Record{
		Scope:    scope,
		ScopeKey: scopeKey,
		Name:     name,
		Value:    value,
	}); err != nil {
		return err
	}

	s.notify(ctx, cacheKey(scope, scopeKey, name))
	return nil
}

func (s *Service) delete(ctx context.Context, scope scopestore.Scope, scopeKey, name string) error {
	if !s.registry.Has(name) {
		return errors.Join(ErrNotRegistered, fmt.Errorf("setting %q", name))
	}

	if err := s.store.Delete(ctx, scope, scopeKey, name); err != nil {
		return err
	}

	s.notify(ctx, cacheKey(scope, scopeKey, name))
	return nil
}

// notify is best effort: readers go through the store, so a failed
// invalidation only delays external cache refresh.
func (s *Service) notify(ctx context.Context, key string) {
	if err := s.invalidator.Invalidate(ctx, key); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to invalidate setting cache",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func cacheKey(scope scopestore.Scope, scopeKey, name string) string {
	return fmt.Sprintf("setting:%s:%s:%s", scope, scopeKey, name)
}
