package scopestore

import "errors"

// Domain errors for scoped value storage.
var (
	// ErrRecordNotFound is returned when no record exists for the requested key.
	ErrRecordNotFound = errors.New("scopestore.record_not_found")

	// ErrStoreUnavailable wraps transport or persistence failures.
	// It is always fatal to the caller; resolution never degrades to defaults.
	ErrStoreUnavailable = errors.New("scopestore.store_unavailable")

	// ErrInvalidRecord is returned when a record is missing its scope or name.
	ErrInvalidRecord = errors.New("scopestore.invalid_record")
)
