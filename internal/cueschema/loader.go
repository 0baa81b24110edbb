package cueschema

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/parser"
	"cuelang.org/go/cue/token"

	"form-mapper/internal/diagnostic"
	"form-mapper/internal/match"
	"form-mapper/internal/shape"
)

// ErrUnknownDefinition is returned when a requested definition does not exist.
var ErrUnknownDefinition = errors.New("unknown definition")

// maxDepth bounds anonymous nesting; named references never count against it.
const maxDepth = 64

// Schema holds the shapes of the definitions of one CUE file.
type Schema struct {
	names  []string // Definition names without "#", in file order
	shapes map[string]*shape.Shape
}

// LoadFile loads the CUE file at path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CUE file %s: %w", path, err)
	}

	return Parse(path, data)
}

// Parse compiles CUE source and derives a shape for every definition.
// The filename is used in error positions only.
func Parse(filename string, data []byte) (*Schema, error) {
	file, err := parser.ParseFile(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	root := cuecontext.New().BuildFile(file)
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", filename, err)
	}

	b := &builder{
		defs:    make(map[string]definition),
		shapes:  make(map[string]*shape.Shape),
		pending: make(map[string]bool),
	}

	for _, decl := range file.Decls {
		field, ok := decl.(*ast.Field)
		if !ok {
			continue
		}

		label, ok := field.Label.(*ast.Ident)
		if !ok || !strings.HasPrefix(label.Name, "#") {
			continue
		}

		b.defs[label.Name] = definition{
			value: root.LookupPath(cue.ParsePath(label.Name)),
			expr:  field.Value,
		}
		b.order = append(b.order, label.Name)
	}

	schema := &Schema{shapes: make(map[string]*shape.Shape, len(b.order))}

	for _, name := range b.order {
		b.named(name, shape.NewPath(displayName(name)))
	}

	for _, f := range b.fixups {
		*f.slot = *f.target
		f.slot.Nullable = true
	}

	for _, name := range b.order {
		s := b.shapes[name]
		b.diags.Merge(shape.Check(s))

		schema.names = append(schema.names, displayName(name))
		schema.shapes[displayName(name)] = s
	}

	if err := b.diags.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return schema, nil
}

// Names returns the definition names, without "#", in file order.
func (s *Schema) Names() []string {
	return s.names
}

// Shape returns the shape of a definition. The leading "#" is optional.
func (s *Schema) Shape(name string) (*shape.Shape, error) {
	name = displayName(name)

	if found, ok := s.shapes[name]; ok {
		return found, nil
	}

	if suggestions := match.Suggest(name, s.names, 3); len(suggestions) > 0 {
		return nil, fmt.Errorf("%w #%s (did you mean %s?)", ErrUnknownDefinition, name, strings.Join(suggestions, ", "))
	}

	return nil, fmt.Errorf("%w #%s", ErrUnknownDefinition, name)
}

type definition struct {
	value cue.Value
	expr  ast.Expr
}

// placeholder is a nullable reference to a definition that may still be
// under construction; it is filled in after every definition is built.
type placeholder struct {
	target *shape.Shape
	slot   *shape.Shape
}

type builder struct {
	defs    map[string]definition
	order   []string
	shapes  map[string]*shape.Shape // Handles recursive definitions
	pending map[string]bool
	fixups  []placeholder
	diags   diagnostic.Diagnostics
}

func (b *builder) named(name string, path shape.Path) *shape.Shape {
	if s, ok := b.shapes[name]; ok {
		return s
	}

	def, ok := b.defs[name]
	if !ok {
		b.diags.AddError(diagnostic.CodeUnresolvedType,
			fmt.Sprintf("definition %s is not declared at the top level", name), path.String(),
			match.Suggest(name, b.order, 3)...)

		return shape.Opaque(name)
	}

	if b.pending[name] {
		b.diags.AddError(diagnostic.CodeUnresolvedType,
			fmt.Sprintf("definition %s refers to itself without a struct or list in between", name), path.String())

		return shape.Opaque(name)
	}

	b.pending[name] = true
	s := b.shapeOf(def.value, def.expr, path, name, 0)
	delete(b.pending, name)

	b.shapes[name] = s

	return s
}

// shapeOf classifies v. src is the syntax v was written as, when known; it is
// used to follow references to definitions and to recognize time.Time.
// A non-empty name registers composite shapes before their contents are
// built.
func (b *builder) shapeOf(v cue.Value, src ast.Expr, path shape.Path, name string, depth int) *shape.Shape {
	if src == nil {
		src, _ = v.Source().(ast.Expr)
	}

	if ref, nullable, ok := reference(src); ok {
		return b.reference(ref, nullable, path)
	}

	if depth > maxDepth {
		b.diags.AddWarning(diagnostic.CodeUnsupported, "value nested too deeply, treated as opaque", path.String())
		return shape.Opaque("_")
	}

	kind := v.IncompleteKind()

	nullable := kind&cue.NullKind != 0 && kind != cue.NullKind
	kind &^= cue.NullKind

	// Values open to several kinds, "_" included, have no usable structure.
	if kind&(kind-1) != 0 && kind&^cue.NumberKind != 0 {
		return shape.Opaque("_")
	}

	var s *shape.Shape

	switch {
	case kind == cue.ListKind:
		s = &shape.Shape{Kind: shape.KindList, Name: displayName(name)}
		b.register(name, s)
		s.Elem = b.elem(v, src, path.Elem(), depth)

	case kind != cue.StructKind && mentionsTime(src):
		s = shape.Date()

	case kind == cue.StructKind:
		s = &shape.Shape{Kind: shape.KindRecord, Name: displayName(name)}
		b.register(name, s)
		s.Fields = b.fields(v, src, path, depth)

	case kind == cue.BoolKind:
		s = shape.Boolean()

	case kind != 0 && kind&^cue.NumberKind == 0:
		s = shape.Number()

	case kind == cue.StringKind:
		s = shape.Text()

	default:
		s = shape.Opaque(kind.String())
	}

	return shape.Widen(s, nullable)
}

func (b *builder) register(name string, s *shape.Shape) {
	if name != "" {
		b.shapes[name] = s
	}
}

// reference resolves a reference to a definition. A nullable reference to a
// record or list gets its own shape, filled in once the target is complete.
func (b *builder) reference(name string, nullable bool, path shape.Path) *shape.Shape {
	s := b.named(name, path)
	if !nullable || s.IsLeaf() {
		return shape.Widen(s, nullable)
	}

	slot := &shape.Shape{}
	b.fixups = append(b.fixups, placeholder{target: s, slot: slot})

	return slot
}

func (b *builder) elem(v cue.Value, src ast.Expr, path shape.Path, depth int) *shape.Shape {
	var elemSrc ast.Expr

	if list, ok := src.(*ast.ListLit); ok && len(list.Elts) > 0 {
		switch last := list.Elts[len(list.Elts)-1].(type) {
		case *ast.Ellipsis:
			elemSrc = last.Type
		default:
			elemSrc = last
		}
	}

	elem := v.LookupPath(cue.MakePath(cue.AnyIndex))
	if !elem.Exists() {
		elem = v.LookupPath(cue.MakePath(cue.Index(0)))
	}

	if !elem.Exists() && elemSrc == nil {
		return shape.Opaque("_")
	}

	return b.shapeOf(elem, elemSrc, path, "", depth+1)
}

func (b *builder) fields(v cue.Value, src ast.Expr, path shape.Path, depth int) []shape.Field {
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		b.diags.AddError(diagnostic.CodeInvalidKind, err.Error(), path.String())
		return nil
	}

	var fields []shape.Field

	for iter.Next() {
		name := iter.Label()

		fields = append(fields, shape.Field{
			Name:     name,
			Shape:    b.shapeOf(iter.Value(), fieldExpr(src, name), path.Field(name), "", depth+1),
			Optional: iter.IsOptional(),
		})
	}

	return fields
}

// fieldExpr finds the syntax of a field inside a struct literal.
func fieldExpr(src ast.Expr, name string) ast.Expr {
	lit, ok := src.(*ast.StructLit)
	if !ok {
		return nil
	}

	for _, decl := range lit.Elts {
		field, ok := decl.(*ast.Field)
		if !ok {
			continue
		}

		if label, _, err := ast.LabelName(field.Label); err == nil && label == name {
			return field.Value
		}
	}

	return nil
}

// reference reports whether src names a definition, optionally in a
// disjunction with null ("null | #Keeper", "*null | #Keeper").
func reference(src ast.Expr) (name string, nullable, ok bool) {
	switch x := src.(type) {
	case *ast.Ident:
		if strings.HasPrefix(x.Name, "#") {
			return x.Name, false, true
		}

	case *ast.ParenExpr:
		return reference(x.X)

	case *ast.BinaryExpr:
		if x.Op != token.OR {
			return "", false, false
		}

		switch {
		case isNull(x.X):
			name, _, ok = reference(x.Y)
		case isNull(x.Y):
			name, _, ok = reference(x.X)
		}

		return name, ok, ok
	}

	return "", false, false
}

func isNull(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.BasicLit:
		return x.Kind == token.NULL
	case *ast.Ident:
		return x.Name == "null"
	case *ast.UnaryExpr:
		return x.Op == token.MUL && isNull(x.X)
	case *ast.ParenExpr:
		return isNull(x.X)
	default:
		return false
	}
}

// mentionsTime reports whether src constrains the value with time.Time.
func mentionsTime(src ast.Expr) bool {
	if src == nil {
		return false
	}

	out, err := format.Node(src)
	if err != nil {
		return false
	}

	return strings.Contains(string(out), "time.Time")
}

func displayName(name string) string {
	name = strings.TrimPrefix(name, "#")

	if unquoted, err := strconv.Unquote(name); err == nil {
		return unquoted
	}

	return name
}
