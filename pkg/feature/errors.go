package feature

import "errors"

// Domain errors for feature operations.
var (
	// ErrInvalidDefinition is returned when a feature definition is malformed.
	ErrInvalidDefinition = errors.New("feature.invalid_definition")

	// ErrDuplicateDefinition is returned when a feature name is registered twice.
	ErrDuplicateDefinition = errors.New("feature.duplicate_definition")

	// ErrNotRegistered is returned by override writes for unknown feature names.
	ErrNotRegistered = errors.New("feature.not_registered")

	// ErrMissingScopeKey is returned when an operation receives the zero tenant ID.
	ErrMissingScopeKey = errors.New("feature.missing_scope_key")

	// ErrInvalidValue is returned when a feature value fails to parse as its
	// declared type. Surfaced to the caller, never silently defaulted.
	ErrInvalidValue = errors.New("feature.invalid_value")

	// ErrPlanNotFound is returned when the tenant's plan ID is unknown.
	ErrPlanNotFound = errors.New("feature.plan_not_found")

	// ErrPlanIDNotInContext is returned by the default plan resolver when no
	// plan ID was stored in the context.
	ErrPlanIDNotInContext = errors.New("feature.plan_id_not_in_context")

	// ErrFailedToLoadPlans wraps plan source failures during construction.
	ErrFailedToLoadPlans = errors.New("feature.failed_to_load_plans")
)
