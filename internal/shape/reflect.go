package shape

import (
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeFor[time.Time]()

// Of returns the shape of the Go type T. See FromType.
func Of[T any]() *Shape {
	return FromType(reflect.TypeFor[T]())
}

// FromType derives a shape from a Go type. Classification follows a strict
// precedence, first match wins:
//  1. slice or array -> List
//  2. time.Time -> Date leaf
//  3. struct -> Record (exported fields only)
//  4. bool -> Boolean leaf
//  5. anything else -> number, text or opaque Leaf
//
// A pointer yields the pointee shape widened to nullable. A pointer to a list
// or record yields a nullable copy sharing the pointee's fields or element,
// so recursive types still terminate.
//
// Struct fields use their json tag name when present, "omitempty" marks the
// field optional and `json:"-"` skips it.
func FromType(t reflect.Type) *Shape {
	b := reflectBuilder{cache: make(map[reflect.Type]*Shape)}

	s := b.shapeOf(t)
	b.pointers.Resolve()

	return s
}

type reflectBuilder struct {
	cache    map[reflect.Type]*Shape // Handles recursive named types
	pointers Deferred
}

func (b *reflectBuilder) shapeOf(t reflect.Type) *Shape {
	if t == nil {
		return Opaque("nil")
	}

	if t.Kind() == reflect.Pointer {
		return b.pointers.Nullable(b.shapeOf(t.Elem()))
	}

	if cached, ok := b.cache[t]; ok {
		return cached
	}

	switch {
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		s := &Shape{Kind: KindList, Name: t.Name()}
		b.cache[t] = s
		s.Elem = b.shapeOf(t.Elem())

		return s

	case t == timeType:
		return Date()

	case t.Kind() == reflect.Struct:
		s := &Shape{Kind: KindRecord, Name: t.Name()}
		b.cache[t] = s
		s.Fields = b.structFields(t)

		return s

	case t.Kind() == reflect.Bool:
		return Boolean()

	default:
		return leafOf(t)
	}
}

func (b *reflectBuilder) structFields(t reflect.Type) []Field {
	fields := make([]Field, 0, t.NumField())

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, optional, skip := JSONFieldName(sf.Name, sf.Tag.Get("json"))
		if skip {
			continue
		}

		fields = append(fields, Field{
			Name:     name,
			Shape:    b.shapeOf(sf.Type),
			Optional: optional,
		})
	}

	return fields
}

func leafOf(t reflect.Type) *Shape {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number()
	case reflect.String:
		return Text()
	default:
		return Opaque(t.String())
	}
}

// JSONFieldName parses a json struct tag into the field name, whether the field
// is optional and whether it must be skipped.
func JSONFieldName(goName, tag string) (name string, optional, skip bool) {
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = goName
	}

	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			optional = true
		}
	}

	return name, optional, false
}
