package shape

import "strings"

// Path builds a readable location string inside a shape.
// Examples:
//   - "Zone" for the root
//   - "Zone.animals" for a field
//   - "Zone.animals[]" for the elements of a list field
//   - "Zone.animals[].birthDate" for a field within list elements
type Path struct {
	parts []string
}

// NewPath creates a new Path from a root name.
func NewPath(root string) Path {
	if root == "" {
		root = "$"
	}

	return Path{parts: []string{root}}
}

// RootPath returns the path of s itself, named after s when it has a name.
func RootPath(s *Shape) Path {
	if s == nil {
		return NewPath("")
	}

	return NewPath(s.Name)
}

// Field appends a field name to the path.
func (p Path) Field(name string) Path {
	parts := make([]string, len(p.parts), len(p.parts)+1)
	copy(parts, p.parts)

	return Path{parts: append(parts, name)}
}

// Elem appends a list element indicator "[]" to the path.
func (p Path) Elem() Path {
	if len(p.parts) == 0 {
		return Path{parts: []string{"[]"}}
	}

	parts := make([]string, len(p.parts))
	copy(parts, p.parts)
	parts[len(parts)-1] += "[]"

	return Path{parts: parts}
}

// String returns the full path string.
func (p Path) String() string {
	if len(p.parts) == 0 {
		return "$"
	}

	return strings.Join(p.parts, ".")
}
