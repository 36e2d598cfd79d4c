package feature

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/grantkit/pkg/scopestore"
)

// RedisCounter is a UsageCounter backed by Redis INCRBY.
// Redis executes INCRBY atomically, so concurrent increments from multiple
// application instances never lose an update.
type RedisCounter struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisCounterOption configures a RedisCounter.
type RedisCounterOption func(*RedisCounter)

// WithKeyPrefix sets the Redis key prefix. Defaults to "usage".
func WithKeyPrefix(prefix string) RedisCounterOption {
	return func(c *RedisCounter) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// NewRedisCounter creates a usage counter over an existing Redis client.
// The client lifecycle is owned by the caller.
func NewRedisCounter(client redis.UniversalClient, opts ...RedisCounterOption) *RedisCounter {
	if client == nil {
		panic("feature: redis client is required")
	}

	c := &RedisCounter{client: client, keyPrefix: "usage"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCounter) Increment(ctx context.Context, tenantID uuid.UUID, name, periodKey string, by int64) (int64, error) {
	if tenantID == uuid.Nil {
		return 0, ErrMissingScopeKey
	}

	count, err := c.client.IncrBy(ctx, c.key(tenantID, name, periodKey), by).Result()
	if err != nil {
		return 0, errors.Join(scopestore.ErrStoreUnavailable, err)
	}
	return count, nil
}

func (c *RedisCounter) Current(ctx context.Context, tenantID uuid.UUID, name, periodKey string) (int64, error) {
	count, err := c.client.Get(ctx, c.key(tenantID, name, periodKey)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Join(scopestore.ErrStoreUnavailable, err)
	}
	return count, nil
}

func (c *RedisCounter) key(tenantID uuid.UUID, name, periodKey string) string {
	return fmt.Sprintf("%s:%s:%s:%s", c.keyPrefix, tenantID, name, periodKey)
}
