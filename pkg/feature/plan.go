package feature

import (
	"context"
	"maps"
	"sync"
)

// Plan is a subscription plan with its assigned feature values.
// Feature values are strings interpreted per the feature's declared type.
type Plan struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Features    map[string]string `yaml:"features"`
	TrialDays   int               `yaml:"trial_days"`
	Public      bool              `yaml:"public"`
}

// FeatureValue returns the plan-assigned value for a feature.
func (p Plan) FeatureValue(name string) (string, bool) {
	value, ok := p.Features[name]
	return value, ok
}

// PlanSource defines how plans are loaded into the feature resolver.
type PlanSource interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

// inMemSource implements PlanSource over an in-memory plan map.
type inMemSource struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewInMemSource returns an in-memory PlanSource with a deep copy of the
// given plans.
func NewInMemSource(plans map[string]Plan) PlanSource {
	return &inMemSource{plans: clonePlans(plans)}
}

// Load returns a copy of all available plans from memory.
func (s *inMemSource) Load(ctx context.Context) (map[string]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlans(s.plans), nil
}

func clonePlans(plans map[string]Plan) map[string]Plan {
	plansCopy := make(map[string]Plan, len(plans))
	for id, plan := range plans {
		plan.Features = maps.Clone(plan.Features)
		plansCopy[id] = plan
	}
	return plansCopy
}
