package analyze

import (
	"fmt"
	"go/types"
	"reflect"
	"sort"

	"golang.org/x/tools/go/packages"

	"form-mapper/internal/shape"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a Graph of shapes.
type Analyzer struct {
	graph *Graph
	cache map[types.Type]*shape.Shape // Handles recursive types
	dir   string

	pointers shape.Deferred
}

// NewAnalyzer creates a new Analyzer resolving patterns relative to the
// current directory.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewGraph(),
		cache: make(map[types.Type]*shape.Shape),
	}
}

// WithDir sets the directory patterns are resolved against.
func (a *Analyzer) WithDir(dir string) *Analyzer {
	a.dir = dir
	return a
}

// LoadPackages loads the specified packages and adds their types to the graph.
// Patterns are standard Go package patterns (e.g., "./examples/zoo").
func (a *Analyzer) LoadPackages(patterns ...string) (*Graph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current graph.
func (a *Analyzer) Graph() *Graph {
	return a.graph
}

// processPackage derives shapes for the exported named types of a package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		// Generic types have no shape until instantiated.
		if named, ok := typeName.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}

		a.graph.Shapes[id] = a.shapeOf(typeName.Type())
		a.pointers.Resolve()
		pkgInfo.Types = append(pkgInfo.Types, id)
	}

	sort.Slice(pkgInfo.Types, func(i, j int) bool { return pkgInfo.Types[i].Name < pkgInfo.Types[j].Name })

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// shapeOf classifies t. The precedence mirrors shape.FromType: lists, then
// time.Time, then structs, then booleans, then every other leaf.
func (a *Analyzer) shapeOf(t types.Type) *shape.Shape {
	t = types.Unalias(t)

	if cached, ok := a.cache[t]; ok {
		return cached
	}

	if ptr, ok := t.(*types.Pointer); ok {
		return a.pointers.Nullable(a.shapeOf(ptr.Elem()))
	}

	name := ""
	if named, ok := t.(*types.Named); ok {
		name = named.Obj().Name()
	}

	switch u := t.Underlying().(type) {
	case *types.Slice:
		s := &shape.Shape{Kind: shape.KindList, Name: name}
		a.cache[t] = s
		s.Elem = a.shapeOf(u.Elem())

		return s

	case *types.Array:
		s := &shape.Shape{Kind: shape.KindList, Name: name}
		a.cache[t] = s
		s.Elem = a.shapeOf(u.Elem())

		return s
	}

	if isTime(t) {
		return shape.Date()
	}

	switch u := t.Underlying().(type) {
	case *types.Struct:
		s := &shape.Shape{Kind: shape.KindRecord, Name: name}
		a.cache[t] = s
		s.Fields = a.structFields(u)

		return s

	case *types.Basic:
		return basicShape(u)

	default:
		return shape.Opaque(types.TypeString(t, (*types.Package).Name))
	}
}

// structFields derives record fields from a struct type.
// Only exported fields are kept; json tags rename or skip fields.
func (a *Analyzer) structFields(st *types.Struct) []shape.Field {
	var fields []shape.Field

	for i := range st.NumFields() {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}

		tag := reflect.StructTag(st.Tag(i)).Get("json")

		name, optional, skip := shape.JSONFieldName(field.Name(), tag)
		if skip {
			continue
		}

		fields = append(fields, shape.Field{
			Name:     name,
			Shape:    a.shapeOf(field.Type()),
			Optional: optional,
		})
	}

	return fields
}

func isTime(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()

	return obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time"
}

func basicShape(b *types.Basic) *shape.Shape {
	info := b.Info()

	switch {
	case info&types.IsBoolean != 0:
		return shape.Boolean()
	case info&types.IsNumeric != 0:
		return shape.Number()
	case info&types.IsString != 0:
		return shape.Text()
	default:
		return shape.Opaque(b.Name())
	}
}
