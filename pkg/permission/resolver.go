package permission

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/grantkit/pkg/scopestore"
)

// Grant row values. An explicit revoked row is distinct from no row at all:
// it denies even when a role grants the permission.
const (
	grantedValue = "true"
	revokedValue = "false"
)

// RoleMembershipProvider resolves the role set for a user.
// Implemented by the application's role storage.
type RoleMembershipProvider interface {
	// RolesFor returns the IDs of all roles the user belongs to.
	RolesFor(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Checker is the read-side contract used by enforcement layers.
type Checker interface {
	// IsGranted reports whether the named permission is granted to the user.
	IsGranted(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}

// Resolver resolves permission checks against a scoped value store.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	store scopestore.Store
	roles RoleMembershipProvider
}

// NewResolver creates a permission resolver.
// Panics if store or roles is nil to fail fast during initialization.
func NewResolver(store scopestore.Store, roles RoleMembershipProvider) *Resolver {
	if store == nil {
		panic("permission: scopestore.Store is required")
	}
	if roles == nil {
		panic("permission: RoleMembershipProvider is required")
	}
	return &Resolver{store: store, roles: roles}
}

// IsGranted resolves whether the named permission is granted to the user.
//
// The user-level row is consulted first and its value is returned verbatim
// when present; role grants aggregate as any-true; unresolved hierarchical
// names fall back once to their first dot segment. An unauthenticated
// (zero) user ID resolves to false without error. Store failures propagate
// unchanged so callers never fail open.
func (r *Resolver) IsGranted(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}

	userKey := userID.String()

	// Explicit user-level override short-circuits before roles are consulted.
	granted, found, err := r.userGrant(ctx, userKey, name)
	if err != nil {
		return false, err
	}
	if found {
		return granted, nil
	}

	// Role set is fetched once and reused by the fallback pass.
	roleIDs, err := r.roles.RolesFor(ctx, userID)
	if err != nil {
		return false, err
	}
	roleKeys := make([]string, len(roleIDs))
	for i, id := range roleIDs {
		roleKeys[i] = id.String()
	}

	granted, err = r.anyRoleGrants(ctx, roleKeys, name)
	if err != nil {
		return false, err
	}
	if granted {
		return true, nil
	}

	// Single-level fallback to the first dot segment. Only a positive grant
	// at the parent resolves the check; a parent revoke adds nothing beyond
	// the default deny.
	if !strings.Contains(name, Separator) {
		return false, nil
	}
	parent := parentName(name)

	granted, found, err = r.userGrant(ctx, userKey, parent)
	if err != nil {
		return false, err
	}
	if found && granted {
		return true, nil
	}

	return r.anyRoleGrants(ctx, roleKeys, parent)
}

// userGrant looks up the user-scoped grant row for name.
func (r *Resolver) userGrant(ctx context.Context, userKey, name string) (granted, found bool, err error) {
	rec, err := r.store.Get(ctx, scopestore.ScopeUser, userKey, name)
	if err != nil {
		if errors.Is(err, scopestore.ErrRecordNotFound) {
			return false, false, nil
		}
		return false, false, err
	}
	return rec.Value == grantedValue, true, nil
}

// anyRoleGrants reports whether any of the roles has a granting row for name.
// Role rows are only ever checked for a positive grant; there is no
// role-level deny semantics.
func (r *Resolver) anyRoleGrants(ctx context.Context, roleKeys []string, name string) (bool, error) {
	if len(roleKeys) == 0 {
		return false, nil
	}

	recs, err := r.store.List(ctx, scopestore.ScopeRole, roleKeys, name)
	if err != nil {
		return false, err
	}

	for _, rec := range recs {
		if rec.Value == grantedValue {
			return true, nil
		}
	}
	return false, nil
}

// IsGrantedFromContext resolves the permission for the user ID stored in
// the context. A missing user ID resolves to false, matching the
// unauthenticated behavior of IsGranted.
func (r *Resolver) IsGrantedFromContext(ctx context.Context, name string) (bool, error) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return false, nil
	}
	return r.IsGranted(ctx, userID, name)
}
