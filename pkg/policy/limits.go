package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/grantkit/pkg/feature"
)

// LimitResolver resolves the effective limit of a metered feature.
// Satisfied by *feature.Resolver.
type LimitResolver interface {
	GetLimit(ctx context.Context, tenantID uuid.UUID, name string) (int64, error)
}

// LimitGuard enforces metered feature limits. It resolves the tenant's
// effective limit, increments the usage counter atomically, and rejects
// consumption that would cross the limit.
type LimitGuard struct {
	resolver LimitResolver
	counter  feature.UsageCounter
	now      func() time.Time
}

// LimitGuardOption configures a LimitGuard.
type LimitGuardOption func(*LimitGuard)

// WithClock overrides the time source used to derive the usage period.
func WithClock(now func() time.Time) LimitGuardOption {
	return func(g *LimitGuard) {
		if now != nil {
			g.now = now
		}
	}
}

// NewLimitGuard creates a limit guard.
// Panics if resolver or counter is nil to fail fast during initialization.
func NewLimitGuard(resolver LimitResolver, counter feature.UsageCounter, opts ...LimitGuardOption) *LimitGuard {
	if resolver == nil {
		panic("policy: LimitResolver is required")
	}
	if counter == nil {
		panic("policy: UsageCounter is required")
	}
	g := &LimitGuard{resolver: resolver, counter: counter, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ConsumeMetered records by units of usage for the tenant's feature and
// returns the new count. Consumption that would cross the limit fails
// with ErrFeatureLimitExceeded and records nothing.
//
// The check-then-increment is not transactional across tenants' racing
// requests; a burst can land at most one increment past the limit
// before subsequent calls start failing. Exact enforcement would need a
// store-side conditional update, which no current counter backend
// supports.
func (g *LimitGuard) ConsumeMetered(ctx context.Context, tenantID uuid.UUID, name string, by int64) (int64, error) {
	if by <= 0 {
		return 0, fmt.Errorf("policy: consume amount must be positive, got %d", by)
	}

	limit, err := g.resolver.GetLimit(ctx, tenantID, name)
	if err != nil {
		return 0, err
	}

	period := feature.PeriodKey(g.now())

	if limit != feature.Unlimited {
		current, err := g.counter.Current(ctx, tenantID, name, period)
		if err != nil {
			return 0, err
		}
		if current+by > limit {
			return current, errors.Join(ErrFeatureLimitExceeded,
				fmt.Errorf("feature %q: usage %d + %d exceeds limit %d", name, current, by, limit))
		}
	}

	return g.counter.Increment(ctx, tenantID, name, period, by)
}

// Remaining returns how many units the tenant may still consume this
// period. Unlimited features report feature.Unlimited.
func (g *LimitGuard) Remaining(ctx context.Context, tenantID uuid.UUID, name string) (int64, error) {
	limit, err := g.resolver.GetLimit(ctx, tenantID, name)
	if err != nil {
		return 0, err
	}
	if limit == feature.Unlimited {
		return feature.Unlimited, nil
	}

	current, err := g.counter.Current(ctx, tenantID, name, feature.PeriodKey(g.now()))
	if err != nil {
		return 0, err
	}
	if current >= limit {
		return 0, nil
	}
	return limit - current, nil
}
