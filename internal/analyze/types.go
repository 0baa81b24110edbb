package analyze

import (
	"fmt"
	"maps"
	"slices"

	"form-mapper/internal/match"
	"form-mapper/internal/shape"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "form-mapper/examples/zoo"
	Name    string // e.g., "Zone"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Graph holds the shapes of all analyzed named types.
type Graph struct {
	// Shapes maps TypeID to the shape of every exported named type.
	Shapes map[TypeID]*shape.Shape
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package, sorted by name
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		Shapes:   make(map[TypeID]*shape.Shape),
		Packages: make(map[string]*PackageInfo),
	}
}

// Lookup returns the shape of the named type. The error suggests similarly
// named types of the same package when the name is unknown.
func (g *Graph) Lookup(pkgPath, name string) (*shape.Shape, error) {
	id := TypeID{PkgPath: pkgPath, Name: name}
	if s, ok := g.Shapes[id]; ok {
		return s, nil
	}

	pkg, ok := g.Packages[pkgPath]
	if !ok {
		return nil, fmt.Errorf("package %s is not loaded", pkgPath)
	}

	names := make([]string, 0, len(pkg.Types))
	for _, t := range pkg.Types {
		names = append(names, t.Name)
	}

	if suggestions := match.Suggest(name, names, 3); len(suggestions) > 0 {
		return nil, fmt.Errorf("type %s not found (did you mean %v?)", id, suggestions)
	}

	return nil, fmt.Errorf("type %s not found", id)
}

// Find looks a type up by name across all loaded packages. It fails when the
// name is unknown or defined in more than one package.
func (g *Graph) Find(name string) (*shape.Shape, error) {
	var found []TypeID

	for id := range g.Shapes {
		if id.Name == name {
			found = append(found, id)
		}
	}

	switch len(found) {
	case 1:
		return g.Shapes[found[0]], nil
	case 0:
		paths := slices.Sorted(maps.Keys(g.Packages))
		if len(paths) == 1 {
			return g.Lookup(paths[0], name)
		}

		return nil, fmt.Errorf("type %s not found in %v", name, paths)
	default:
		slices.SortFunc(found, func(a, b TypeID) int {
			if a.PkgPath < b.PkgPath {
				return -1
			}

			if a.PkgPath > b.PkgPath {
				return 1
			}

			return 0
		})

		return nil, fmt.Errorf("type %s is ambiguous: %v", name, found)
	}
}
