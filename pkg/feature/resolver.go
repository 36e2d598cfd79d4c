package feature

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/dmitrymomot/grantkit/pkg/scopestore"
)

// Invalidator is notified after every override write so external caches
// can drop stale entries.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(ctx context.Context, keys ...string) error { return nil }

// Resolver resolves per-tenant feature values.
// Plans are loaded once at construction and treated as immutable; override
// rows and plan assignments are read fresh on every call.
type Resolver struct {
	store          scopestore.Store
	registry       *Registry
	plans          map[string]Plan
	planIDResolver PlanIDResolver
	invalidator    Invalidator
	logger         *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithPlanIDResolver sets how the tenant's active plan ID is resolved.
// Defaults to PlanIDContextResolver.
func WithPlanIDResolver(fn PlanIDResolver) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.planIDResolver = fn
		}
	}
}

// WithInvalidator sets the cache invalidator notified on override writes.
func WithInvalidator(inv Invalidator) ResolverOption {
	return func(r *Resolver) {
		if inv != nil {
			r.invalidator = inv
		}
	}
}

// WithLogger sets the logger used for invalidation failures.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a feature resolver, loading the plan catalog from src.
// Panics if store, registry or src is nil to fail fast during initialization.
func NewResolver(ctx context.Context, store scopestore.Store, registry *Registry, src PlanSource, opts ...ResolverOption) (*Resolver, error) {
	if store == nil {
		panic("feature: scopestore.Store is required")
	}
	if registry == nil {
		panic("feature: Registry is required")
	}
	if src == nil {
		panic("feature: PlanSource is required")
	}

	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if plans == nil {
		plans = make(map[string]Plan)
	}

	r := &Resolver{
		store:          store,
		registry:       registry,
		plans:          plans,
		planIDResolver: PlanIDContextResolver,
		invalidator:    noopInvalidator{},
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// GetValue resolves the effective value of a feature for a tenant: the
// tenant override row wins over the plan-assigned value. A feature present
// in neither layer is absent (ok=false), which callers treat as not
// granted / zero limit, not as an error.
func (r *Resolver) GetValue(ctx context.Context, tenantID uuid.UUID, name string) (value string, ok bool, err error) {
	if tenantID == uuid.Nil {
		return "", false, ErrMissingScopeKey
	}

	rec, err := r.store.Get(ctx, scopestore.ScopeTenant, tenantID.String(), name)
	if err == nil {
		return rec.Value, true, nil
	}
	if !errors.Is(err, scopestore.ErrRecordNotFound) {
		return "", false, err
	}

	planID, err := r.planIDResolver(ctx, tenantID)
	if err != nil {
		return "", false, err
	}
	plan, exists := r.plans[planID]
	if !exists {
		return "", false, errors.Join(ErrPlanNotFound, fmt.Errorf("plan %q", planID))
	}

	if planValue, found := plan.FeatureValue(name); found {
		return planValue, true, nil
	}
	return "", false, nil
}

// IsEnabled reports whether a feature is enabled for a tenant.
// Boolean features parse their value; numeric and metered features are
// enabled when present with a non-zero limit. Absent features are
// disabled. A value that fails to parse surfaces ErrInvalidValue.
func (r *Resolver) IsEnabled(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	value, ok, err := r.GetValue(ctx, tenantID, name)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	def, registered := r.registry.Get(name)
	if !registered || def.Type == TypeBoolean {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return false, errors.Join(ErrInvalidValue,
				fmt.Errorf("feature %q: %q is not a boolean", name, value))
		}
		return enabled, nil
	}

	limit, err := parseLimit(name, value)
	if err != nil {
		return false, err
	}
	return limit != 0, nil
}

// GetLimit resolves the numeric limit of a numeric or metered feature.
// Absent features have a zero limit; Unlimited (-1) means no limit.
func (r *Resolver) GetLimit(ctx context.Context, tenantID uuid.UUID, name string) (int64, error) {
	value, ok, err := r.GetValue(ctx, tenantID, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return parseLimit(name, value)
}

// SetOverride upserts a per-tenant feature override, e.g. a negotiated
// custom limit that should win over the plan value.
func (r *Resolver) SetOverride(ctx context.Context, tenantID uuid.UUID, name, value string) error {
	if tenantID == uuid.Nil {
		return ErrMissingScopeKey
	}
	if !r.registry.Has(name) {
		return errors.Join(ErrNotRegistered, fmt.Errorf("feature %q", name))
	}

	if err := r.store.Set(ctx, scopestore.Record{
		Scope:    scopestore.ScopeTenant,
		ScopeKey: tenantID.String(),
		Name:     name,
		Value:    value,
	}); err != nil {
		return err
	}

	r.notify(ctx, cacheKey(tenantID, name))
	return nil
}

// RemoveOverride deletes a per-tenant override so the plan value applies again.
func (r *Resolver) RemoveOverride(ctx context.Context, tenantID uuid.UUID, name string) error {
	if tenantID == uuid.Nil {
		return ErrMissingScopeKey
	}
	if !r.registry.Has(name) {
		return errors.Join(ErrNotRegistered, fmt.Errorf("feature %q", name))
	}

	if err := r.store.Delete(ctx, scopestore.ScopeTenant, tenantID.String(), name); err != nil {
		return err
	}

	r.notify(ctx, cacheKey(tenantID, name))
	return nil
}

// Plan returns the plan definition for the given ID.
func (r *Resolver) Plan(planID string) (Plan, bool) {
	plan, ok := r.plans[planID]
	return plan, ok
}

func parseLimit(name, value string) (int64, error) {
	limit, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Join(ErrInvalidValue,
			fmt.Errorf("feature %q: %q is not a number", name, value))
	}
	return limit, nil
}

// notify is best effort: readers go through the store, so a failed
// invalidation only delays external cache refresh.
func (r *Resolver) notify(ctx context.Context, key string) {
	if err := r.invalidator.Invalidate(ctx, key); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to invalidate feature cache",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func cacheKey(tenantID uuid.UUID, name string) string {
	return fmt.Sprintf("feature:T:%s:%s", tenantID, name)
}
