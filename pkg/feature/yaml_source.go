package feature

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSource loads plans from a YAML file on every Load call, so a restart
// is not required to pick up plan catalog changes when the resolver is
// rebuilt.
type yamlSource struct {
	path string
}

// NewYAMLSource returns a PlanSource reading a plan catalog file:
//
//	plans:
//	  - id: free
//	    name: Free
//	    features:
//	      MaxUsers: "3"
//	      SSO: "false"
//	  - id: pro
//	    name: Pro
//	    trial_days: 14
//	    public: true
//	    features:
//	      MaxUsers: "50"
//	      SSO: "true"
//	      ApiCalls: "100000"
func NewYAMLSource(path string) PlanSource {
	return &yamlSource{path: path}
}

type planCatalog struct {
	Plans []Plan `yaml:"plans"`
}

func (s *yamlSource) Load(ctx context.Context) (map[string]Plan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var catalog planCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[string]Plan, len(catalog.Plans))
	for _, plan := range catalog.Plans {
		if plan.ID == "" {
			return nil, errors.Join(ErrFailedToLoadPlans,
				fmt.Errorf("plan without id in %s", s.path))
		}
		if _, exists := plans[plan.ID]; exists {
			return nil, errors.Join(ErrFailedToLoadPlans,
				fmt.Errorf("duplicate plan id %q in %s", plan.ID, s.path))
		}
		plans[plan.ID] = plan
	}

	return plans, nil
}
