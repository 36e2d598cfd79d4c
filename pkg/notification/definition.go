package notification

import (
	"errors"
	"fmt"
	"slices"
)

// Definition describes a registered notification.
type Definition struct {
	// Name is the globally unique notification name, e.g. "Orders.CommentAdded".
	Name string

	// DisplayName is a human-readable label for subscription settings UIs.
	DisplayName string

	// RequiresSubscription gates delivery to subscribed users only.
	// When false the notification broadcasts to all users.
	RequiresSubscription bool
}

// Registry holds all notification definitions for the process.
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
				fmt.Errorf("notification %q registered twice", def.Name))
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
