package policy

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Rule states which permissions an operation requires.
type Rule struct {
	// Permissions lists the required permission names.
	Permissions []string

	// RequireAll demands every listed permission. When false, holding
	// any one of them is enough.
	RequireAll bool
}

// Table maps operation names to their rules. Built once at startup,
// immutable afterwards, safe for concurrent reads.
type Table struct {
	rules map[string]Rule
}

// NewTable builds a policy table. Every rule must name at least one
// permission; a permissionless rule would silently allow everything.
func NewTable(rules map[string]Rule) (*Table, error) {
	cloned := make(map[string]Rule, len(rules))
	for operation, rule := range rules {
		if operation == "" {
			return nil, errors.Join(ErrInvalidRule, errors.New("empty operation name"))
		}
		if len(rule.Permissions) == 0 {
			return nil, errors.Join(ErrInvalidRule,
				fmt.Errorf("operation %q has no permissions", operation))
		}
		rule.Permissions = slices.Clone(rule.Permissions)
		cloned[operation] = rule
	}
	return &Table{rules: cloned}, nil
}

// Rule returns the rule for an operation.
func (t *Table) Rule(operation string) (Rule, bool) {
	rule, ok := t.rules[operation]
	if ok {
		rule.Permissions = slices.Clone(rule.Permissions)
	}
	return rule, ok
}

// Operations returns all operation names sorted.
func (t *Table) Operations() []string {
	return slices.Sorted(maps.Keys(t.rules))
}
