// Package config loads typed configuration structs from environment
// variables, with optional .env file support for development.
//
// Configs are declared as structs with env tags and loaded once per
// type, so every component sees the same values:
//
//	type RedisConfig struct {
//		ConnectionURL string `env:"REDIS_URL,required"`
//	}
//
//	var cfg RedisConfig
//	config.MustLoad(&cfg)
package config
