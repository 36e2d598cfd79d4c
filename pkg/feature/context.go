package feature

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// PlanIDResolver resolves the current active plan ID for a tenant.
// This is the boundary to the subscription system: implementations
// typically read the tenant's subscription row.
type PlanIDResolver func(ctx context.Context, tenantID uuid.UUID) (string, error)

// planIDCtxKey is the context key for the tenant's plan ID.
type planIDCtxKey struct{}

// SetPlanIDToContext stores the plan ID in the context for downstream access.
func SetPlanIDToContext(ctx context.Context, planID string) context.Context {
	return context.WithValue(ctx, planIDCtxKey{}, planID)
}

// GetPlanIDFromContext retrieves the plan ID from the context, if present.
func GetPlanIDFromContext(ctx context.Context) (string, bool) {
	planID, ok := ctx.Value(planIDCtxKey{}).(string)
	return planID, ok
}

// PlanIDContextResolver is the default resolver: gets the plan ID from the
// context or returns an error. Request middleware that already resolved
// the tenant's subscription can use it to avoid a second lookup.
func PlanIDContextResolver(ctx context.Context, _ uuid.UUID) (string, error) {
	planID, ok := GetPlanIDFromContext(ctx)
	if !ok {
		return "", errors.Join(ErrPlanNotFound, ErrPlanIDNotInContext)
	}
	return planID, nil
}
