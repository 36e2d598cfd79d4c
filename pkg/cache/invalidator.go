package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidationFailed wraps transport errors from invalidation publishing.
var ErrInvalidationFailed = errors.New("cache.invalidation_failed")

// Invalidator receives the cache keys of every changed grant, setting,
// or feature override. Satisfies the invalidator hooks of
// permission.Manager, setting.Service, and feature.Resolver.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// InvalidatorFunc adapts a function to the Invalidator interface.
type InvalidatorFunc func(ctx context.Context, keys ...string) error

func (f InvalidatorFunc) Invalidate(ctx context.Context, keys ...string) error {
	return f(ctx, keys...)
}

// NoOpInvalidator discards invalidation events. The default for
// deployments without edge caches.
type NoOpInvalidator struct{}

func (NoOpInvalidator) Invalidate(ctx context.Context, keys ...string) error { return nil }

// LocalInvalidator evicts keys from a single in-process cache.
// Use RedisInvalidator when multiple processes hold caches.
func LocalInvalidator[V any](c *TTLCache[string, V]) Invalidator {
	return InvalidatorFunc(func(ctx context.Context, keys ...string) error {
		for _, key := range keys {
			c.Remove(key)
		}
		return nil
	})
}

const defaultChannel = "grantkit:invalidate"

// RedisInvalidator broadcasts invalidated keys over a Redis pub/sub
// channel so every process in the fleet can evict its local cache.
type RedisInvalidator struct {
	client  redis.UniversalClient
	channel string
	log     *slog.Logger
}

// RedisInvalidatorOption configures a RedisInvalidator.
type RedisInvalidatorOption func(*RedisInvalidator)

// WithChannel overrides the pub/sub channel name.
func WithChannel(name string) RedisInvalidatorOption {
	return func(i *RedisInvalidator) {
		if name != "" {
			i.channel = name
		}
	}
}

// WithLogger sets the logger for subscription errors.
func WithLogger(log *slog.Logger) RedisInvalidatorOption {
	return func(i *RedisInvalidator) {
		if log != nil {
			i.log = log
		}
	}
}

// NewRedisInvalidator creates an invalidator publishing on the
// "grantkit:invalidate" channel by default.
// Panics if client is nil to fail fast during initialization.
func NewRedisInvalidator(client redis.UniversalClient, opts ...RedisInvalidatorOption) *RedisInvalidator {
	if client == nil {
		panic("cache: redis client is required")
	}
	i := &RedisInvalidator{
		client:  client,
		channel: defaultChannel,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Invalidate publishes each key to the channel.
func (i *RedisInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := i.client.Publish(ctx, i.channel, key).Err(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidationFailed}, errs...)...)
	}
	return nil
}

// Listen subscribes to the channel and calls evict for every key
// published by any process. It returns a stop function that closes the
// subscription; the goroutine exits when the context is canceled or the
// subscription is closed.
func (i *RedisInvalidator) Listen(ctx context.Context, evict func(key string)) func() {
	sub := i.client.Subscribe(ctx, i.channel)

	go func() {
		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				evict(msg.Payload)
			case <-ctx.Done():
				if err := sub.Close(); err != nil {
					i.log.LogAttrs(ctx, slog.LevelWarn, "Failed to close invalidation subscription",
						slog.Any("error", err))
				}
				return
			}
		}
	}()

	return func() { _ = sub.Close() }
}
