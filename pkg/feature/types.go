package feature

import (
	"errors"
	"fmt"
	"slices"
)

// Type declares how a feature's string value is interpreted.
type Type string

const (
	// TypeBoolean features are on or off ("true"/"false").
	TypeBoolean Type = "boolean"
	// TypeNumeric features carry a static numeric limit, e.g. "MaxUsers".
	TypeNumeric Type = "numeric"
	// TypeMetered features carry a numeric limit compared against
	// period-counted usage, e.g. "ApiCalls".
	TypeMetered Type = "metered"
)

// Unlimited marks a numeric or metered feature with no limit.
const Unlimited int64 = -1

// Definition describes a registered feature.
type Definition struct {
	// Name is the globally unique feature name, e.g. "MaxUsers".
	Name string

	// DisplayName is a human-readable label for plan comparison pages.
	DisplayName string

	// Type declares how the feature's value parses. Zero value means boolean.
	Type Type
}

// Registry holds all feature definitions for the process.
// Populated once at startup, immutable afterwards, safe for concurrent reads.
type Registry struct {
	definitions map[string]Definition
	sorted      []string
}

// NewRegistry builds a registry from the given definitions.
func NewRegistry(defs ...Definition) (*Registry, error) {
	definitions := make(map[string]Definition, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, ErrInvalidDefinition
		}
		if _, exists := definitions[def.Name]; exists {
			return nil, errors.Join(ErrDuplicateDefinition,
				fmt.Errorf("feature %q registered twice", def.Name))
		}
		if def.Type == "" {
			def.Type = TypeBoolean
		}
		definitions[def.Name] = def
	}

	sorted := make([]string, 0, len(definitions))
	for name := range definitions {
		sorted = append(sorted, name)
	}
	slices.Sort(sorted)

	return &Registry{definitions: definitions, sorted: sorted}, nil
}

// Get returns the definition for name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.definitions[name]
	return ok
}

// All returns every registered definition sorted by name.
func (r *Registry) All() []Definition {
	result := make([]Definition, 0, len(r.sorted))
	for _, name := range r.sorted {
		result = append(result, r.definitions[name])
	}
	return result
}
