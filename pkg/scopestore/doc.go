// Package scopestore provides a persistence-agnostic key/value store for
// scoped override rows: permission grants, setting values and feature
// overrides are all kept as records keyed by (scope, scope key, name).
//
// The package defines the Store interface consumed by the resolver packages
// and ships two implementations: an in-memory store for tests and simple
// deployments, and a PostgreSQL store backed by pgx.
//
// A record's scope key identifies the owner within its scope (user ID,
// role ID, tenant ID); global records use an empty scope key. Records are
// unique per (scope, scope key, name) and writes are upserts.
//
// Basic usage:
//
//	store := scopestore.NewMemoryStore()
//
//	err := store.Set(ctx, scopestore.Record{
//	    Scope:    scopestore.ScopeTenant,
//	    ScopeKey: tenantID.String(),
//	    Name:     "Theme",
//	    Value:    "dark",
//	})
//
//	rec, err := store.Get(ctx, scopestore.ScopeTenant, tenantID.String(), "Theme")
//	if errors.Is(err, scopestore.ErrRecordNotFound) {
//	    // no override at this scope
//	}
package scopestore
