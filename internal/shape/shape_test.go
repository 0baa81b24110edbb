package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"form-mapper/internal/diagnostic"
)

func animal() *Shape {
	return Record("Animal",
		NewField("name", Text()),
		NewField("species", Text()),
		NewField("birthDate", Date()),
	)
}

func TestWiden(t *testing.T) {
	t.Parallel()

	s := Text()
	w := Widen(s, true)

	assert.True(t, w.Nullable)
	assert.False(t, s.Nullable, "input must not be modified")
	assert.Same(t, s, Widen(s, false))
	assert.Same(t, w, Widen(w, true), "already nullable shapes are returned as is")
	assert.Nil(t, Widen(nil, true))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *Shape
		want bool
	}{
		{"same leaf kind", Number(), Number(), true},
		{"different leaf kind", Number(), Text(), false},
		{"nullability differs", Text(), Nullable(Text()), false},
		{"names ignored", Opaque("a"), Opaque("b"), true},
		{"lists", ListOf(Date()), ListOf(Date()), true},
		{"list elements differ", ListOf(Date()), ListOf(Boolean()), false},
		{"records", animal(), animal(), true},
		{"field order matters", Record("", NewField("a", Text()), NewField("b", Text())),
			Record("", NewField("b", Text()), NewField("a", Text())), false},
		{"optionality matters", Record("", NewField("a", Text())),
			Record("", OptionalField("a", Text())), false},
		{"nil vs shape", nil, Text(), false},
		{"nil vs nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestEqual_Recursive(t *testing.T) {
	t.Parallel()

	tree := func(leaf *Shape) *Shape {
		n := Record("Node")
		n.Fields = []Field{
			NewField("label", leaf),
			NewField("children", ListOf(n)),
		}

		return n
	}

	assert.True(t, Equal(tree(Text()), tree(Text())))
	assert.False(t, Equal(tree(Text()), tree(Number())))
}

func TestString(t *testing.T) {
	t.Parallel()

	zone := Record("Zone",
		NewField("name", Nullable(Text())),
		OptionalField("maxCapacity", Number()),
		NewField("animals", ListOf(animal())),
		NewField("tags", ListOf(Nullable(Text()))),
		NewField("extra", Opaque("map[string]int")),
	)

	assert.Equal(t,
		"{name: text | null, maxCapacity?: number, animals: []{name: text, species: text, birthDate: date}, "+
			"tags: [](text | null), extra: map[string]int}",
		zone.String())

	var nilShape *Shape
	assert.Equal(t, "<nil>", nilShape.String())
}

func TestString_Recursive(t *testing.T) {
	t.Parallel()

	n := Record("Node")
	n.Fields = []Field{NewField("children", ListOf(n))}

	assert.Equal(t, "{children: []Node}", n.String())
}

func TestLookup(t *testing.T) {
	t.Parallel()

	a := animal()

	f, ok := a.Lookup("birthDate")
	require.True(t, ok)
	assert.True(t, f.Shape.IsDate())

	_, ok = a.Lookup("missing")
	assert.False(t, ok)

	_, ok = Text().Lookup("name")
	assert.False(t, ok)

	assert.Equal(t, []string{"name", "species", "birthDate"}, a.FieldNames())
	assert.Nil(t, Text().FieldNames())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(animal()))

	bad := Record("Bad",
		NewField("a", Text()),
		NewField("a", Number()),
		NewField("items", &Shape{Kind: KindList}),
		NewField("missing", nil),
		NewField("weird", &Shape{}),
		NewField("leaf", &Shape{Kind: KindLeaf}),
	)

	err := Validate(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidShape)

	diags := Check(bad)
	assert.Equal(t, []string{
		diagnostic.CodeDuplicateField,
		diagnostic.CodeMissingElement,
		diagnostic.CodeMissingShape,
		diagnostic.CodeInvalidKind,
		diagnostic.CodeInvalidKind,
	}, diags.Codes())
	assert.Equal(t, "Bad.items", diags.Errors[1].Path)
}

func TestValidate_Recursive(t *testing.T) {
	t.Parallel()

	n := Record("Node")
	n.Fields = []Field{NewField("children", ListOf(n))}

	assert.NoError(t, Validate(n))
}

func TestPath(t *testing.T) {
	t.Parallel()

	p := NewPath("Zone")
	assert.Equal(t, "Zone", p.String())
	assert.Equal(t, "Zone.animals", p.Field("animals").String())
	assert.Equal(t, "Zone.animals[]", p.Field("animals").Elem().String())
	assert.Equal(t, "Zone.animals[].birthDate", p.Field("animals").Elem().Field("birthDate").String())
	assert.Equal(t, "$[]", NewPath("").Elem().String())

	// Paths are values; deriving one must not alter its parent.
	base := p.Field("a")
	_ = base.Field("b")
	_ = base.Elem()
	assert.Equal(t, "Zone.a", base.String())

	var zero Path
	assert.Equal(t, "$", zero.String())
	assert.Equal(t, "[]", zero.Elem().String())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "record", KindRecord.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.Equal(t, "boolean", LeafBoolean.String())
	assert.Equal(t, "any", LeafOpaque.String())
	assert.Equal(t, "LeafKind(9)", LeafKind(9).String())
}
