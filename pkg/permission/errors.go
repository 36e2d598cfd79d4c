package permission

import "errors"

// Domain errors for permission operations.
var (
	// ErrInvalidDefinition is returned when a permission definition is malformed.
	ErrInvalidDefinition = errors.New("permission.invalid_definition")

	// ErrDuplicateDefinition is returned when a permission name is registered twice.
	ErrDuplicateDefinition = errors.New("permission.duplicate_definition")

	// ErrNotRegistered is returned by administrative grant operations when the
	// permission name is unknown. Resolution itself never returns it: absence
	// resolves to a denied check, not an error.
	ErrNotRegistered = errors.New("permission.not_registered")

	// ErrMissingScopeKey is returned when a grant operation targets the zero ID.
	ErrMissingScopeKey = errors.New("permission.missing_scope_key")

	// ErrUserNotInContext is returned when no user ID is found in the context.
	ErrUserNotInContext = errors.New("permission.user_not_in_context")
)
