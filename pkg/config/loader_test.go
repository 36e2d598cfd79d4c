package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/grantkit/pkg/config"
)

type storeConfig struct {
	Table    string `env:"TEST_STORE_TABLE" envDefault:"scoped_values"`
	PoolSize int    `env:"TEST_STORE_POOL_SIZE" envDefault:"10"`
}

type requiredConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

type cachedConfig struct {
	Value string `env:"TEST_CACHED_VALUE" envDefault:"initial"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg storeConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "scoped_values", cfg.Table)
	assert.Equal(t, 10, cfg.PoolSize)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_STORE_TABLE", "permission_grants")

	// A fresh type so the cached default from other tests does not apply.
	type envConfig struct {
		Table string `env:"TEST_STORE_TABLE" envDefault:"scoped_values"`
	}
	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "permission_grants", cfg.Table)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *storeConfig
	err := config.Load(cfg)
	require.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_CachesPerType(t *testing.T) {
	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "initial", first.Value)

	// Environment changes after the first load are not observed.
	t.Setenv("TEST_CACHED_VALUE", "changed")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "initial", second.Value)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type mustConfig struct {
		Secret string `env:"TEST_MUST_SECRET,required"`
	}
	assert.Panics(t, func() {
		var cfg mustConfig
		config.MustLoad(&cfg)
	})
}
