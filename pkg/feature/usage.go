package feature

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UsageCounter tracks metered feature usage per tenant and period.
//
// Increment must be atomic: two requests incrementing the same counter
// concurrently must not lose an update. Counts are monotonically
// non-decreasing within a period; resetting is an administrative action
// outside this package.
//
// The counter only reports usage. Comparing the count against the resolved
// limit is the policy layer's job (see pkg/policy).
type UsageCounter interface {
	// Increment atomically adds by to the counter and returns the new count.
	Increment(ctx context.Context, tenantID uuid.UUID, name, periodKey string, by int64) (int64, error)

	// Current returns the counter value, zero when never incremented.
	Current(ctx context.Context, tenantID uuid.UUID, name, periodKey string) (int64, error)
}

// PeriodKey returns the usage period key for a point in time.
// Periods are calendar months in UTC, e.g. "2026-08".
func PeriodKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

type usageKey struct {
	tenantID  uuid.UUID
	name      string
	periodKey string
}

// MemoryCounter is an in-memory UsageCounter.
// Suitable for development and testing.
type MemoryCounter struct {
	counts map[usageKey]int64
	mu     sync.Mutex
}

// NewMemoryCounter creates a new in-memory usage counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		counts: make(map[usageKey]int64),
	}
}

func (c *MemoryCounter) Increment(ctx context.Context, tenantID uuid.UUID, name, periodKey string, by int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if tenantID == uuid.Nil {
		return 0, ErrMissingScopeKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := usageKey{tenantID, name, periodKey}
	c.counts[key] += by
	return c.counts[key], nil
}

func (c *MemoryCounter) Current(ctx context.Context, tenantID uuid.UUID, name, periodKey string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[usageKey{tenantID, name, periodKey}], nil
}
