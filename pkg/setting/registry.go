package setting

import (
	"errors"
	"fmt"
	"slices"
)

// Registry holds all setting definitions for the process.
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
				fmt.Errorf("setting %q registered twice", def.Name))
		}
		if def.Type == "" {
			def.Type = TypeString
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
