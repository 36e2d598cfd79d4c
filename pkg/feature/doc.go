// Package feature resolves per-tenant feature values and tracks metered
// usage.
//
// A feature's effective value comes from a two-layer chain: an explicit
// tenant override row (a negotiated custom limit, for example) takes
// precedence over the value assigned by the tenant's current subscription
// plan. When neither layer has the feature, it is absent: not granted and
// zero limit, never an error.
//
// The tenant's plan is resolved through a PlanIDResolver, the boundary to
// the subscription system. Plan definitions load once at construction from
// a PlanSource (in-memory or YAML file) and are immutable afterwards.
//
// Metered features count usage per period through a UsageCounter. Counters
// are atomic under concurrent increments; limit enforcement is deliberately
// NOT done here — the resolver reports values and counts, the policy layer
// decides (see pkg/policy).
//
// Basic usage:
//
//	plans, err := feature.NewYAMLSource("config/plans.yaml")
//	resolver, err := feature.NewResolver(ctx, store, registry, plans,
//	    feature.WithPlanIDResolver(subscriptions.CurrentPlanID))
//
//	value, ok, err := resolver.GetValue(ctx, tenantID, "MaxUsers")
//	enabled, err := resolver.IsEnabled(ctx, tenantID, "SSO")
//
//	count, err := counter.Increment(ctx, tenantID, "ApiCalls", feature.PeriodKey(time.Now()), 1)
package feature
