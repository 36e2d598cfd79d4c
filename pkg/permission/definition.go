package permission

import "strings"

// Separator splits segments of a hierarchical permission name.
const Separator = "."

// Definition describes a registered permission. Definitions are immutable
// after registration; grants reference them by name only.
type Definition struct {
	// Name is the globally unique, dot-separated permission name,
	// e.g. "Students.Create".
	Name string

	// DisplayName is a human-readable label for administrative UIs.
	DisplayName string

	// HostOnly marks permissions that are visible and assignable only in
	// the non-tenant-scoped administrative context.
	HostOnly bool
}

// ParentName returns the fallback parent for hierarchical names: the first
// dot segment of the name. Top-level names have no parent and return "".
//
// Note the fallback is fixed-prefix: the parent of "A.B.C" is "A", not
// "A.B". This mirrors how existing grant data is interpreted and must not
// be changed to a full ancestor walk.
func (d Definition) ParentName() string {
	return parentName(d.Name)
}

func parentName(name string) string {
	if first, _, found := strings.Cut(name, Separator); found {
		return first
	}
	return ""
}
