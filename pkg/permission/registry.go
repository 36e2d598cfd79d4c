package permission

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Registry holds all permission definitions for the process.
// It is populated once at startup and treated as immutable afterwards,
// so concurrent reads need no locking.
type Registry struct {
	definitions map[string]Definition
	children    map[string][]string
	sorted      []string
}

// NewRegistry builds a registry from the given definitions.
// Names must be unique and non-empty; a child name requires its fallback
// parent to be registered so that grant data stays resolvable.
func NewRegistry(defs ...Definition) (*Registry, error) {
	definitions := make(map[string]Definition, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, ErrInvalidDefinition
		}
		if strings.HasPrefix(def.Name, Separator) || strings.HasSuffix(def.Name, Separator) {
			return nil, errors.Join(ErrInvalidDefinition,
				fmt.Errorf("permission name %q has a leading or trailing separator", def.Name))
		}
		if _, exists := definitions[def.Name]; exists {
			return nil, errors.Join(ErrDuplicateDefinition,
				fmt.Errorf("permission %q registered twice", def.Name))
		}
		definitions[def.Name] = def
	}

	children := make(map[string][]string)
	for name, def := range definitions {
		parent := def.ParentName()
		if parent == "" {
			continue
		}
		if _, exists := definitions[parent]; !exists {
			return nil, errors.Join(ErrInvalidDefinition,
				fmt.Errorf("permission %q references unregistered parent %q", name, parent))
		}
		children[parent] = append(children[parent], name)
	}

	sorted := make([]string, 0, len(definitions))
	for name := range definitions {
		sorted = append(sorted, name)
	}
	slices.Sort(sorted)
	for _, names := range children {
		slices.Sort(names)
	}

	return &Registry{
		definitions: definitions,
		children:    children,
		sorted:      sorted,
	}, nil
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

// Children returns the names of direct children of the given permission,
// sorted alphabetically.
func (r *Registry) Children(name string) []string {
	return slices.Clone(r.children[name])
}

// All returns every registered definition sorted by name. Host-only
// permissions are excluded unless hostContext is true, matching their
// visibility in tenant-scoped administration.
func (r *Registry) All(hostContext bool) []Definition {
	result := make([]Definition, 0, len(r.sorted))
	for _, name := range r.sorted {
		def := r.definitions[name]
		if def.HostOnly && !hostContext {
			continue
		}
		result = append(result, def)
	}
	return result
}
