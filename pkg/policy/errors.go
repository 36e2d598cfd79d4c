package policy

import "errors"

// Domain errors for policy decisions.
var (
	// ErrUnknownOperation is returned when an operation has no rule in the table.
	// Unknown operations are denied, not allowed.
	ErrUnknownOperation = errors.New("policy.unknown_operation")

	// ErrForbidden is returned when the user does not hold the required permissions.
	ErrForbidden = errors.New("policy.forbidden")

	// ErrInvalidRule is returned when a rule has no permissions.
	ErrInvalidRule = errors.New("policy.invalid_rule")

	// ErrFeatureLimitExceeded is returned when consuming usage would cross
	// the tenant's metered feature limit.
	ErrFeatureLimitExceeded = errors.New("policy.feature_limit_exceeded")
)
