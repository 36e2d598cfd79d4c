package feature_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/grantkit/pkg/feature"
)

func TestInMemSource_DeepCopies(t *testing.T) {
	t.Parallel()

	plans := testPlans()
	source := feature.NewInMemSource(plans)

	// Mutating the input after construction must not leak into the source.
	plans["pro"].Features["MaxUsers"] = "999"

	loaded, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10", loaded["pro"].Features["MaxUsers"])

	// Mutating a loaded copy must not leak back either.
	loaded["pro"].Features["MaxUsers"] = "0"
	reloaded, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10", reloaded["pro"].Features["MaxUsers"])
}

func TestYAMLSource_Load(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plans:
  - id: free
    name: Free
    features:
      MaxUsers: "3"
      SSO: "false"
  - id: pro
    name: Pro
    trial_days: 14
    public: true
    features:
      MaxUsers: "50"
      SSO: "true"
`), 0o600))

	plans, err := feature.NewYAMLSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)

	pro := plans["pro"]
	assert.Equal(t, "Pro", pro.Name)
	assert.Equal(t, 14, pro.TrialDays)
	assert.True(t, pro.Public)

	value, ok := pro.FeatureValue("MaxUsers")
	require.True(t, ok)
	assert.Equal(t, "50", value)

	_, ok = plans["free"].FeatureValue("ApiCalls")
	assert.False(t, ok)
}

func TestYAMLSource_Errors(t *testing.T) {
	t.Parallel()

	_, err := feature.NewYAMLSource(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background())
	assert.ErrorIs(t, err, feature.ErrFailedToLoadPlans)

	path := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plans:
  - id: free
  - id: free
`), 0o600))

	_, err = feature.NewYAMLSource(path).Load(context.Background())
	assert.ErrorIs(t, err, feature.ErrFailedToLoadPlans)
}

func TestNewRegistry_Validation(t *testing.T) {
	t.Parallel()

	_, err := feature.NewRegistry(feature.Definition{Name: ""})
	assert.ErrorIs(t, err, feature.ErrInvalidDefinition)

	_, err = feature.NewRegistry(
		feature.Definition{Name: "SSO"},
		feature.Definition{Name: "SSO"},
	)
	assert.ErrorIs(t, err, feature.ErrDuplicateDefinition)

	// The zero type defaults to boolean.
	registry, err := feature.NewRegistry(feature.Definition{Name: "SSO"})
	require.NoError(t, err)
	def, ok := registry.Get("SSO")
	require.True(t, ok)
	assert.Equal(t, feature.TypeBoolean, def.Type)
}
