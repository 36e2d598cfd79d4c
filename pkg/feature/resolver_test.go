package feature_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/grantkit/pkg/feature"
	"github.com/dmitrymomot/grantkit/pkg/scopestore"
)

func testPlans() map[string]feature.Plan {
	return map[string]feature.Plan{
		"free": {
			ID:   "free",
			Name: "Free",
			Features: map[string]string{
				"MaxUsers": "3",
				"SSO":      "false",
			},
		},
		"pro": {
			ID:        "pro",
			Name:      "Pro",
			TrialDays: 14,
			Public:    true,
			Features: map[string]string{
				"MaxUsers": "10",
				"SSO":      "true",
				"ApiCalls": "100000",
				"Storage":  "-1",
			},
		},
	}
}

func testRegistry(t *testing.T) *feature.Registry {
	t.Helper()
	registry, err := feature.NewRegistry(
		feature.Definition{Name: "SSO", Type: feature.TypeBoolean},
		feature.Definition{Name: "MaxUsers", Type: feature.TypeNumeric},
		feature.Definition{Name: "ApiCalls", Type: feature.TypeMetered},
		feature.Definition{Name: "Storage", Type: feature.TypeNumeric},
	)
	require.NoError(t, err)
	return registry
}

// planFor pins every tenant to the given plan ID.
func planFor(planID string) feature.PlanIDResolver {
	return func(ctx context.Context, _ uuid.UUID) (string, error) {
		return planID, nil
	}
}

func newTestResolver(t *testing.T, planID string) (*feature.Resolver, scopestore.Store) {
	t.Helper()
	store := scopestore.NewMemoryStore()
	resolver, err := feature.NewResolver(context.Background(), store, testRegistry(t),
		feature.NewInMemSource(testPlans()),
		feature.WithPlanIDResolver(planFor(planID)),
	)
	require.NoError(t, err)
	return resolver, store
}

func TestResolver_TenantOverridePrecedence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	resolver, _ := newTestResolver(t, "pro")
	tenantID := uuid.New()

	// Plan grants MaxUsers=10.
	value, ok, err := resolver.GetValue(ctx, tenantID, "MaxUsers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "10", value)

	// A negotiated tenant override wins over the plan value.
	require.NoError(t, resolver.SetOverride(ctx, tenantID, "MaxUsers", "25"))
	value, ok, err = resolver.GetValue(ctx, tenantID, "MaxUsers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "25", value)

	// Removing the override restores the plan value.
	require.NoError(t, resolver.RemoveOverride(ctx, tenantID, "MaxUsers"))
	value, _, err = resolver.GetValue(ctx, tenantID, "MaxUsers")
	require.NoError(t, err)
	assert.Equal(t, "10", value)
}

func TestResolver_AbsentFeature(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	resolver, _ := newTestResolver(t, "free")
	tenantID := uuid.New()

	// The free plan has no ApiCalls entry: absent, not an error.
	_, ok, err := resolver.GetValue(ctx, tenantID, "ApiCalls")
	require.NoError(t, err)
	assert.False(t, ok)

	enabled, err := resolver.IsEnabled(ctx, tenantID, "ApiCalls")
	require.NoError(t, err)
	assert.False(t, enabled)

	limit, err := resolver.GetLimit(ctx, tenantID, "ApiCalls")
	require.NoError(t, err)
	assert.Zero(t, limit)
}

func TestResolver_IsEnabled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()

	free, _ := newTestResolver(t, "free")
	pro, _ := newTestResolver(t, "pro")

	enabled, err := free.IsEnabled(ctx, tenantID, "SSO")
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = pro.IsEnabled(ctx, tenantID, "SSO")
	require.NoError(t, err)
	assert.True(t, enabled)

	// Numeric features are enabled when present with a non-zero limit;
	// Unlimited (-1) counts as enabled.
	enabled, err = pro.IsEnabled(ctx, tenantID, "MaxUsers")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = pro.IsEnabled(ctx, tenantID, "Storage")
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestResolver_GetLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	resolver, _ := newTestResolver(t, "pro")
	tenantID := uuid.New()

	limit, err := resolver.GetLimit(ctx, tenantID, "ApiCalls")
	require.NoError(t, err)
	assert.EqualValues(t, 100000, limit)

	limit, err = resolver.GetLimit(ctx, tenantID, "Storage")
	require.NoError(t, err)
	assert.Equal(t, feature.Unlimited, limit)
}

func TestResolver_InvalidValueSurfaces(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	resolver, _ := newTestResolver(t, "pro")
	tenantID := uuid.New()

	require.NoError(t, resolver.SetOverride(ctx, tenantID, "SSO", "definitely"))
	_, err := resolver.IsEnabled(ctx, tenantID, "SSO")
	assert.ErrorIs(t, err, feature.ErrInvalidValue)

	require.NoError(t, resolver.SetOverride(ctx, tenantID, "MaxUsers", "lots"))
	_, err = resolver.GetLimit(ctx, tenantID, "MaxUsers")
	assert.ErrorIs(t, err, feature.ErrInvalidValue)
}

func TestResolver_UnknownPlan(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	resolver, _ := newTestResolver(t, "enterprise")

	_, _, err := resolver.GetValue(ctx, uuid.New(), "MaxUsers")
	assert.ErrorIs(t, err, feature.ErrPlanNotFound)
}

func TestResolver_PlanIDFromContext(t *testing.T) {
	t.Parallel()

	store := scopestore.NewMemoryStore()
	resolver, err := feature.NewResolver(context.Background(), store, testRegistry(t),
		feature.NewInMemSource(testPlans()))
	require.NoError(t, err)

	tenantID := uuid.New()

	// Default resolver reads the plan ID from the context.
	ctx := feature.SetPlanIDToContext(context.Background(), "pro")
	value, ok, err := resolver.GetValue(ctx, tenantID, "MaxUsers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "10", value)

	_, _, err = resolver.GetValue(context.Background(), tenantID, "MaxUsers")
	assert.ErrorIs(t, err, feature.ErrPlanIDNotInContext)
}

func TestResolver_WriteValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	resolver, _ := newTestResolver(t, "pro")

	err := resolver.SetOverride(ctx, uuid.Nil, "MaxUsers", "5")
	assert.ErrorIs(t, err, feature.ErrMissingScopeKey)

	err = resolver.SetOverride(ctx, uuid.New(), "Unknown", "5")
	assert.ErrorIs(t, err, feature.ErrNotRegistered)

	_, _, err = resolver.GetValue(ctx, uuid.Nil, "MaxUsers")
	assert.ErrorIs(t, err, feature.ErrMissingScopeKey)
}
