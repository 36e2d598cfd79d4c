// Package permission resolves named permissions for users by combining
// user-level overrides, role-aggregated grants and a single level of
// hierarchical fallback on dot-separated permission names.
//
// Permission definitions form a forest: "Students.Create" is a child of
// "Students". Definitions are registered once at startup into an immutable
// Registry; grants are scoped rows in a scopestore.Store.
//
// Resolution rules:
//
//   - An explicit user-level grant or revoke always wins. A user row with
//     value false is a hard deny even when a role grants the permission.
//   - Role grants aggregate as any-true: one granting role is enough.
//   - When the exact name resolves nothing and contains a dot, the first
//     dot segment is consulted as a fallback parent. The fallback is a
//     single level only; "A.B.C" falls back to "A", never to "A.B".
//     Deeper ancestor walking would silently change authorization
//     outcomes for existing grant data, so the behavior is kept as is.
//   - Absence resolves to false, never to an error. Store failures
//     propagate unchanged; permission checks never fail open.
//
// Basic usage:
//
//	registry, err := permission.NewRegistry(
//	    permission.Definition{Name: "Students", DisplayName: "Manage students"},
//	    permission.Definition{Name: "Students.Create", DisplayName: "Create students"},
//	)
//
//	resolver := permission.NewResolver(store, memberships)
//	ok, err := resolver.IsGranted(ctx, userID, "Students.Create")
package permission
