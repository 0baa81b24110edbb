package schema

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"form-mapper/internal/diagnostic"
	"form-mapper/internal/match"
	"form-mapper/internal/shape"
)

const maxSuggestions = 3

var builtins = map[string]func() *shape.Shape{
	"number":    shape.Number,
	"int":       shape.Number,
	"integer":   shape.Number,
	"float":     shape.Number,
	"text":      shape.Text,
	"string":    shape.Text,
	"boolean":   shape.Boolean,
	"bool":      shape.Boolean,
	"date":      shape.Date,
	"time":      shape.Date,
	"datetime":  shape.Date,
	"timestamp": shape.Date,
	"any":       func() *shape.Shape { return shape.Opaque("any") },
	"opaque":    func() *shape.Shape { return shape.Opaque("any") },
}

// Builtins returns the builtin type names, sorted.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// placeholder is a nullable reference to a composite that may still be under
// construction. It is filled in once every declaration is resolved.
type placeholder struct {
	target *shape.Shape
	slot   *shape.Shape
}

type resolver struct {
	decls   map[string]*TypeDecl
	known   []string
	shapes  map[string]*shape.Shape
	pending map[string]bool
	fixups  []placeholder
	diags   diagnostic.Diagnostics
}

// resolve builds the shape of every declaration. Resolved shapes are kept
// only when no errors were found.
func (d *Document) resolve() diagnostic.Diagnostics {
	r := &resolver{
		decls:   make(map[string]*TypeDecl, len(d.Types)),
		shapes:  make(map[string]*shape.Shape, len(d.Types)),
		pending: make(map[string]bool),
	}

	if d.Version != CurrentVersion {
		r.diags.AddError(diagnostic.CodeUnsupported,
			fmt.Sprintf("schema version %q is not supported, expected %q", d.Version, CurrentVersion), "version")
	}

	for i := range d.Types {
		decl := &d.Types[i]

		switch {
		case !isName(decl.Name):
			r.diags.AddError(diagnostic.CodeInvalidTypeExpr,
				fmt.Sprintf("type name %q is not an identifier", decl.Name), decl.Name)
		case builtins[decl.Name] != nil:
			r.diags.AddError(diagnostic.CodeInvalidTypeExpr,
				fmt.Sprintf("type name %q shadows a builtin", decl.Name), decl.Name)
		case r.decls[decl.Name] != nil:
			r.diags.AddError(diagnostic.CodeDuplicateField,
				fmt.Sprintf("type %q is declared more than once", decl.Name), decl.Name)
		default:
			r.decls[decl.Name] = decl
			r.known = append(r.known, decl.Name)
		}
	}

	r.known = append(r.known, Builtins()...)

	for _, name := range d.Names() {
		if r.decls[name] != nil {
			r.named(name, shape.NewPath(name))
		}
	}

	for _, f := range r.fixups {
		*f.slot = *f.target
		f.slot.Nullable = true
	}

	for _, name := range d.Names() {
		if s, ok := r.shapes[name]; ok {
			r.diags.Merge(shape.Check(s))
		}
	}

	if d.Root != "" && r.shapes[d.Root] == nil && r.decls[d.Root] == nil {
		r.diags.AddError(diagnostic.CodeUnresolvedType,
			fmt.Sprintf("root type %q is not declared", d.Root), "root",
			match.Suggest(d.Root, d.Names(), maxSuggestions)...)
	}

	if !r.diags.HasErrors() {
		d.shapes = r.shapes
	}

	return r.diags
}

// named resolves a declared type. Records and lists are cached before their
// contents are resolved so that recursive references reach the same shape.
func (r *resolver) named(name string, path shape.Path) *shape.Shape {
	if s, ok := r.shapes[name]; ok {
		return s
	}

	decl := r.decls[name]
	expr := &decl.Type

	switch {
	case expr.Kind == ExprRecord:
		s := &shape.Shape{Kind: shape.KindRecord, Name: name}
		r.shapes[name] = s
		s.Fields = r.fields(expr, path)

		return s

	case expr.Kind == ExprList:
		s := &shape.Shape{Kind: shape.KindList, Name: name}
		r.shapes[name] = s
		s.Elem = r.expr(expr.Elem, path.Elem())

		return s

	case strings.HasPrefix(expr.Ref, "[]"):
		s := &shape.Shape{Kind: shape.KindList, Name: name}
		r.shapes[name] = s
		s.Elem = r.ref(strings.TrimPrefix(expr.Ref, "[]"), expr.Line, path.Elem())

		return s
	}

	if r.pending[name] {
		r.diags.AddError(diagnostic.CodeUnresolvedType,
			fmt.Sprintf("type %q refers to itself without a record or list in between", name), path.String())

		return shape.Opaque(name)
	}

	r.pending[name] = true
	s := r.ref(expr.Ref, expr.Line, path)
	delete(r.pending, name)

	r.shapes[name] = s

	return s
}

func (r *resolver) expr(e *TypeExpr, path shape.Path) *shape.Shape {
	switch e.Kind {
	case ExprRecord:
		return shape.Record("", r.fields(e, path)...)
	case ExprList:
		return shape.ListOf(r.expr(e.Elem, path.Elem()))
	default:
		return r.ref(e.Ref, e.Line, path)
	}
}

func (r *resolver) fields(e *TypeExpr, path shape.Path) []shape.Field {
	var fields []shape.Field

	for i := range e.Fields {
		f := &e.Fields[i]
		fieldPath := path.Field(f.Name)

		if !isName(f.Name) {
			r.diags.AddError(diagnostic.CodeInvalidTypeExpr,
				fmt.Sprintf("field name %q is not an identifier (line %d)", f.Name, f.Type.Line), fieldPath.String())
		}

		fields = append(fields, shape.Field{
			Name:     f.Name,
			Shape:    r.expr(&f.Type, fieldPath),
			Optional: f.Optional,
		})
	}

	return fields
}

// ref resolves a reference expression such as "text", "Animal?" or "[]Zone".
func (r *resolver) ref(ref string, line int, path shape.Path) *shape.Shape {
	ref = strings.TrimSpace(ref)

	if rest, ok := strings.CutPrefix(ref, "[]"); ok {
		return shape.ListOf(r.ref(rest, line, path.Elem()))
	}

	name, nullable := strings.CutSuffix(ref, "?")

	if !isName(name) {
		r.diags.AddError(diagnostic.CodeInvalidTypeExpr,
			fmt.Sprintf("invalid type expression %q (line %d)", ref, line), path.String())

		return shape.Opaque(ref)
	}

	if build, ok := builtins[name]; ok {
		return shape.Widen(build(), nullable)
	}

	if r.decls[name] == nil {
		r.diags.AddError(diagnostic.CodeUnresolvedType,
			fmt.Sprintf("unknown type %q (line %d)", name, line), path.String(),
			match.Suggest(name, r.known, maxSuggestions)...)

		return shape.Opaque(name)
	}

	s := r.named(name, path)
	if !nullable || s.IsLeaf() {
		return shape.Widen(s, nullable)
	}

	slot := &shape.Shape{}
	r.fixups = append(r.fixups, placeholder{target: s, slot: slot})

	return slot
}

func unknownType(name string, known []string) error {
	suggestions := match.Suggest(name, known, maxSuggestions)
	if len(suggestions) == 0 {
		return fmt.Errorf("%w %q", ErrUnknownType, name)
	}

	return fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownType, name, strings.Join(suggestions, ", "))
}

// isName reports whether s is a letter followed by letters, digits or
// underscores. Go keywords are allowed.
func isName(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		switch {
		case unicode.IsLetter(c), c == '_':
		case unicode.IsDigit(c) && i > 0:
		default:
			return false
		}
	}

	return true
}
