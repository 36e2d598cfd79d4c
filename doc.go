// Package grantkit resolves scoped overrides for multi-tenant SaaS
// back-offices: permissions, settings, feature limits, and notification
// subscriptions.
//
// All four subsystems share one shape. A name is declared once in an
// immutable registry, override rows live in a scoped value store, and a
// resolver walks the scope chain at read time. Nothing is cached inside
// resolvers, so a write is visible to the next read.
//
// The subsystems live under pkg/:
//
//   - pkg/scopestore — the shared scoped value store (memory, Postgres)
//   - pkg/permission — user override, any-true role aggregation, one-level
//     dotted-name fallback
//   - pkg/setting — user → tenant → global → default resolution with
//     typed getters
//   - pkg/feature — tenant override → plan value resolution plus metered
//     usage counters (memory, Redis, Postgres)
//   - pkg/notification — subscription index and non-blocking fan-out
//   - pkg/policy — the enforcement layer: operation authorization and
//     metered limit guarding
//
// Supporting infrastructure follows under pkg/logger, pkg/config, pkg/pg,
// pkg/redis, and pkg/cache, with goose migrations in migrations/.
//
// A minimal permission setup:
//
//	registry, err := permission.NewRegistry(
//		permission.Definition{Name: "Orders"},
//		permission.Definition{Name: "Orders.Export"},
//	)
//	if err != nil {
//		return err
//	}
//
//	store := scopestore.NewMemoryStore()
//	manager := permission.NewManager(store, registry)
//	resolver := permission.NewResolver(store, memberships)
//
//	if err := manager.GrantToUser(ctx, userID, "Orders.Export"); err != nil {
//		return err
//	}
//	granted, err := resolver.IsGranted(ctx, userID, "Orders.Export")
package grantkit
