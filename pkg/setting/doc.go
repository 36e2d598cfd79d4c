// Package setting resolves named settings through a scoped override chain:
// user value, then tenant value, then global value, then the registered
// default. The first hit wins.
//
// Setting definitions are registered once at startup into an immutable
// Registry; values live as rows in a scopestore.Store, one row per
// (scope, scope key, name). The resolver performs no internal caching, so
// a write is observable by the next read within the same process; an
// Invalidator hook lets external caches drop stale entries on writes.
//
// Basic usage:
//
//	registry, err := setting.NewRegistry(
//	    setting.Definition{Name: "Theme", DefaultValue: "light"},
//	    setting.Definition{Name: "MaxExportRows", DefaultValue: "1000", Type: setting.TypeInt},
//	)
//
//	svc := setting.NewService(store, registry)
//
//	// Tenant override chain: user -> tenant -> global -> default.
//	value, err := svc.GetValue(ctx, "Theme", setting.ForUser(userID), setting.ForTenant(tenantID))
//
//	// Typed access surfaces parse failures instead of silently defaulting.
//	rows, err := svc.GetInt(ctx, "MaxExportRows", setting.ForTenant(tenantID))
package setting
