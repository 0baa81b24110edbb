package shape

import "errors"

//go:generate go tool stringer -type=Kind,LeafKind -linecomment -output=kind_string.go

// ErrInvalidShape reports a structurally malformed shape description.
var ErrInvalidShape = errors.New("invalid shape")

// Kind is the top-level classification of a shape.
type Kind int

const (
	_ Kind = iota // skip zero value, an unset Kind is invalid

	KindLeaf   // leaf
	KindList   // list
	KindRecord // record
)

// LeafKind classifies atomic values.
type LeafKind int

const (
	_ LeafKind = iota // skip zero value, only meaningful for KindLeaf

	LeafNumber  // number
	LeafText    // text
	LeafBoolean // boolean
	LeafDate    // date
	LeafOpaque  // any
)

// Shape describes the structure of a value.
type Shape struct {
	Kind Kind
	// Name is the source type name, if any (e.g. "Zone"). It is informative
	// only and does not take part in Equal.
	Name string
	// Leaf is set for KindLeaf shapes.
	Leaf LeafKind
	// Nullable reports whether the value may be absent.
	Nullable bool
	// Elem is the element shape of a KindList shape.
	Elem *Shape
	// Fields are the fields of a KindRecord shape, in declaration order.
	Fields []Field
}

// Field is a named member of a record shape.
type Field struct {
	Name  string
	Shape *Shape
	// Optional reports whether the field may be omitted from the record.
	// It is independent of Shape.Nullable.
	Optional bool
}

// IsLeaf reports whether s is a leaf shape.
func (s *Shape) IsLeaf() bool { return s != nil && s.Kind == KindLeaf }

// IsList reports whether s is a list shape.
func (s *Shape) IsList() bool { return s != nil && s.Kind == KindList }

// IsRecord reports whether s is a record shape.
func (s *Shape) IsRecord() bool { return s != nil && s.Kind == KindRecord }

// IsDate reports whether s is a date leaf.
func (s *Shape) IsDate() bool { return s.IsLeaf() && s.Leaf == LeafDate }

// Lookup returns the field with the given name.
func (s *Shape) Lookup(name string) (Field, bool) {
	if !s.IsRecord() {
		return Field{}, false
	}

	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// FieldNames returns the field names of a record in declaration order.
func (s *Shape) FieldNames() []string {
	if !s.IsRecord() {
		return nil
	}

	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}

	return names
}

// Leaf returns a non-nullable leaf shape of the given kind.
func Leaf(kind LeafKind) *Shape {
	return &Shape{Kind: KindLeaf, Leaf: kind}
}

// Number returns a number leaf.
func Number() *Shape { return Leaf(LeafNumber) }

// Text returns a text leaf.
func Text() *Shape { return Leaf(LeafText) }

// Boolean returns a boolean leaf.
func Boolean() *Shape { return Leaf(LeafBoolean) }

// Date returns a date leaf.
func Date() *Shape { return Leaf(LeafDate) }

// Opaque returns a leaf for a value with no decomposable structure.
// The name is used only for display (e.g. "map[string]int").
func Opaque(name string) *Shape {
	return &Shape{Kind: KindLeaf, Leaf: LeafOpaque, Name: name}
}

// ListOf returns a list shape with the given element shape.
func ListOf(elem *Shape) *Shape {
	return &Shape{Kind: KindList, Elem: elem}
}

// Record returns a record shape with the given fields.
func Record(name string, fields ...Field) *Shape {
	return &Shape{Kind: KindRecord, Name: name, Fields: fields}
}

// NewField returns a required record field.
func NewField(name string, s *Shape) Field {
	return Field{Name: name, Shape: s}
}

// OptionalField returns a record field that may be omitted.
func OptionalField(name string, s *Shape) Field {
	return Field{Name: name, Shape: s, Optional: true}
}

// Nullable returns s widened to also accept the absent value.
func Nullable(s *Shape) *Shape {
	return Widen(s, true)
}

// Widen returns s if nullable is false or s is already nullable, otherwise a
// shallow copy of s marked nullable. The input is never modified, so a widened
// record still shares its fields with the original.
func Widen(s *Shape, nullable bool) *Shape {
	if s == nil || !nullable || s.Nullable {
		return s
	}

	widened := *s
	widened.Nullable = true

	return &widened
}
