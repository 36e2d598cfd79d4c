// Package redis connects to Redis with retrying startup and exposes a
// health probe. The resulting client backs the usage counter
// (feature.RedisCounter) and the fleet-wide cache invalidation channel
// (cache.RedisInvalidator).
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package redis
