// Package cache provides the invalidation plumbing for edge caches built
// on top of grant resolution.
//
// Resolvers read the store directly and never cache, so writes are
// visible immediately. Applications that add their own read-through
// caches in front of resolvers plug an Invalidator into the write paths
// (permission.Manager, setting.Service, feature.Resolver) to learn when
// cached values go stale.
//
// Two implementations are provided: NoOpInvalidator for deployments
// without caching, and RedisInvalidator which publishes invalidated keys
// on a Redis channel so every process in the fleet can evict its local
// entries. TTLCache is a bounded in-process LRU with per-entry expiry
// suitable as the local layer.
//
//	local := cache.NewTTLCache[string, string](10_000, time.Minute)
//	inv := cache.NewRedisInvalidator(client)
//	stop := inv.Listen(ctx, func(key string) { local.Remove(key) })
//	defer stop()
package cache
