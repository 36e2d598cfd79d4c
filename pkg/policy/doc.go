// Package policy is the enforcement layer on top of permission and
// feature resolution.
//
// Resolvers answer questions; policy turns answers into decisions. The
// Enforcer maps named operations to permission requirements and returns
// ErrForbidden when they are not met. The LimitGuard consumes metered
// feature usage and returns ErrFeatureLimitExceeded when a tenant would
// cross its plan limit.
//
//	table, err := policy.NewTable(map[string]policy.Rule{
//		"orders.export": {Permissions: []string{"Orders.Export"}},
//	})
//	enforcer := policy.NewEnforcer(table, resolver)
//	if err := enforcer.Authorize(ctx, userID, "orders.export"); err != nil {
//		// handle policy.ErrForbidden
//	}
package policy
