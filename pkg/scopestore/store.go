package scopestore

import "context"

// Scope identifies the override layer a record is attached to.
type Scope string

// Predefined scopes. The single-letter values double as provider names in
// persisted rows, so they must stay stable across releases.
const (
	ScopeUser   Scope = "U"
	ScopeRole   Scope = "R"
	ScopeTenant Scope = "T"
	ScopeGlobal Scope = "G"
)

// Record is a single scoped value row.
// Global records carry an empty ScopeKey.
type Record struct {
	Scope    Scope
	ScopeKey string
	Name     string
	Value    string
}

// Store is the persistence contract shared by all resolvers.
// Implementations must support concurrent reads without blocking and must
// propagate transport failures unchanged so that callers never fail open.
type Store interface {
	// Get returns the record for (scope, scopeKey, name).
	// Returns ErrRecordNotFound when no such record exists.
	Get(ctx context.Context, scope Scope, scopeKey, name string) (*Record, error)

	// List returns all records matching name within scope whose scope key is
	// in scopeKeys. A single call replaces per-key lookups when resolving
	// against a user's full role set.
	List(ctx context.Context, scope Scope, scopeKeys []string, name string) ([]Record, error)

	// Set creates or updates the record identified by (Scope, ScopeKey, Name).
	Set(ctx context.Context, rec Record) error

	// Delete removes the record for (scope, scopeKey, name).
	// Deleting a missing record is not an error.
	Delete(ctx context.Context, scope Scope, scopeKey, name string) error

	// DeleteScope removes every record for (scope, scopeKey).
	// Used when a user, role or tenant is removed.
	DeleteScope(ctx context.Context, scope Scope, scopeKey string) error
}
