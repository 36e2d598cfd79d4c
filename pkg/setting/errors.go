package setting

import "errors"

// Domain errors for setting operations.
var (
	// ErrInvalidDefinition is returned when a setting definition is malformed.
	ErrInvalidDefinition = errors.New("setting.invalid_definition")

	// ErrDuplicateDefinition is returned when a setting name is registered twice.
	ErrDuplicateDefinition = errors.New("setting.duplicate_definition")

	// ErrNotRegistered is returned by write operations for unknown setting
	// names. Reads never return it: an unknown name resolves to "".
	ErrNotRegistered = errors.New("setting.not_registered")

	// ErrMissingScopeKey is returned when a scoped operation receives the zero ID.
	ErrMissingScopeKey = errors.New("setting.missing_scope_key")

	// ErrInvalidValue is returned when a setting value fails to parse as its
	// declared type. It is surfaced to the caller, never silently defaulted.
	ErrInvalidValue = errors.New("setting.invalid_value")
)
