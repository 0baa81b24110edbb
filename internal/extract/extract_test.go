package extract_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"form-mapper/internal/control"
	"form-mapper/internal/extract"
	"form-mapper/internal/mapper"
	"form-mapper/internal/schema"
	"form-mapper/internal/shape"
)

func animalShape() *shape.Shape {
	return shape.Record("Animal",
		shape.NewField("name", shape.Text()),
		shape.NewField("species", shape.Text()),
		shape.NewField("birthDate", shape.Date()),
	)
}

func zoneShape() *shape.Shape {
	return shape.Record("Zone",
		shape.NewField("name", shape.Text()),
		shape.NewField("maxCapacity", shape.Number()),
		shape.NewField("animals", shape.ListOf(animalShape())),
	)
}

func mapDeep(t *testing.T, s *shape.Shape, n mapper.Nullability) control.Node {
	t.Helper()

	node, err := mapper.Map(s, mapper.Config{Depth: mapper.Deep, Nullability: n})
	require.NoError(t, err)

	return node
}

func TestRoundTrip_Complete(t *testing.T) {
	t.Parallel()

	for _, s := range []*shape.Shape{
		zoneShape(),
		shape.Record("Env",
			shape.NewField("name", shape.Text()),
			shape.OptionalField("open", shape.Boolean()),
			shape.NewField("zones", shape.ListOf(zoneShape())),
			shape.NewField("matrix", shape.ListOf(shape.ListOf(shape.Number()))),
		),
	} {
		got, err := extract.RawValue(mapDeep(t, s, mapper.NonNullable))
		require.NoError(t, err)

		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRoundTrip_NullableComposites(t *testing.T) {
	t.Parallel()

	s := shape.Record("Holder",
		shape.NewField("keeper", shape.Nullable(shape.Record("Keeper", shape.NewField("name", shape.Text())))),
		shape.NewField("tags", shape.Nullable(shape.ListOf(shape.Text()))),
		shape.OptionalField("zones", shape.Nullable(shape.ListOf(zoneShape()))),
	)

	got, err := extract.RawValue(mapDeep(t, s, mapper.NonNullable))
	require.NoError(t, err)
	assert.True(t, shape.Equal(s, got), "want %s\ngot  %s", s, got)

	got, err = extract.RawValue(mapDeep(t, s, mapper.Nullable))
	require.NoError(t, err)
	assert.Equal(t,
		"{keeper: {name: text | null} | null, tags: [](text | null) | null, zones?: []{name: text | null, "+
			"maxCapacity: number | null, animals: []{name: text | null, species: text | null, birthDate: date | null}} | null}",
		got.String())

	got, err = extract.Value(mapDeep(t, s, mapper.NonNullable))
	require.NoError(t, err)
	assert.Equal(t, "{name?: text} | null", got.Fields[0].Shape.String(), "partial keeps record nullability")
}

func TestRoundTrip_NullableSchemaReference(t *testing.T) {
	t.Parallel()

	doc, err := schema.Parse([]byte(`
types:
  Keeper:
    name: text
  Holder:
    keeper: "Keeper?"
  Node:
    label: text
    parent: "Node?"
`))
	require.NoError(t, err)

	for _, name := range []string{"Holder", "Node"} {
		in, err := doc.Shape(name)
		require.NoError(t, err)

		out, err := extract.RawValue(mapDeep(t, in, mapper.NonNullable))
		require.NoError(t, err)
		assert.True(t, shape.Equal(in, out), "%s: want %s\ngot  %s", name, in, out)
	}
}

func TestRoundTrip_NullableWidening(t *testing.T) {
	t.Parallel()

	for _, leaf := range []*shape.Shape{shape.Number(), shape.Text(), shape.Boolean(), shape.Date(), shape.Opaque("x")} {
		got, err := extract.RawValue(mapDeep(t, leaf, mapper.Nullable))
		require.NoError(t, err)

		assert.True(t, got.Nullable, "%s must widen to include absent", leaf)
		assert.Equal(t, leaf.Leaf, got.Leaf)
		assert.False(t, leaf.Nullable, "input shape must not change")
	}
}

func TestBooleanDistinguishability(t *testing.T) {
	t.Parallel()

	s := shape.Record("", shape.NewField("done", shape.Boolean()))

	for _, mode := range []extract.Mode{extract.Complete, extract.Partial} {
		got, err := extract.Extract(mapDeep(t, s, mapper.Nullable), mode)
		require.NoError(t, err)

		done, ok := got.Lookup("done")
		require.True(t, ok)
		assert.Equal(t, "boolean | null", done.Shape.String(), mode.String())
	}
}

func TestPartialWidening(t *testing.T) {
	t.Parallel()

	s := shape.Record("",
		shape.NewField("a", shape.Text()),
		shape.NewField("b", shape.Nullable(shape.Number())),
	)

	for _, n := range []mapper.Nullability{mapper.NonNullable, mapper.Nullable} {
		got, err := extract.Value(mapDeep(t, s, n))
		require.NoError(t, err)

		for _, f := range got.Fields {
			assert.True(t, f.Optional, "%s must be optional (%s)", f.Name, n)
		}

		a, _ := got.Lookup("a")
		assert.Equal(t, n == mapper.Nullable, a.Shape.Nullable, "presence and nullability are independent")

		b, _ := got.Lookup("b")
		assert.True(t, b.Shape.Nullable)
	}
}

func TestShallowOpacity(t *testing.T) {
	t.Parallel()

	list := shape.ListOf(animalShape())
	s := shape.Record("Holder", shape.NewField("x", list))

	node, err := mapper.Map(s, mapper.Config{Depth: mapper.Shallow})
	require.NoError(t, err)

	for _, mode := range []extract.Mode{extract.Complete, extract.Partial} {
		got, err := extract.Extract(node, mode)
		require.NoError(t, err)

		x, ok := got.Lookup("x")
		require.True(t, ok)
		assert.Same(t, list, x.Shape, "a shallow cell yields the original list shape unchanged")
	}
}

func TestScenario_Zone(t *testing.T) {
	t.Parallel()

	node := mapDeep(t, zoneShape(), mapper.Nullable)

	raw, err := extract.RawValue(node)
	require.NoError(t, err)
	assert.Equal(t,
		"{name: text | null, maxCapacity: number | null, animals: []"+
			"{name: text | null, species: text | null, birthDate: date | null}}",
		raw.String())

	want := shape.Record("Zone",
		shape.NewField("name", shape.Nullable(shape.Text())),
		shape.NewField("maxCapacity", shape.Nullable(shape.Number())),
		shape.NewField("animals", shape.ListOf(shape.Record("Animal",
			shape.NewField("name", shape.Nullable(shape.Text())),
			shape.NewField("species", shape.Nullable(shape.Text())),
			shape.NewField("birthDate", shape.Nullable(shape.Date())),
		))),
	)
	assert.True(t, shape.Equal(want, raw), spew.Sdump(raw))

	partial, err := extract.Value(node)
	require.NoError(t, err)
	assert.Equal(t,
		"{name?: text | null, maxCapacity?: number | null, animals?: []"+
			"{name?: text | null, species?: text | null, birthDate?: date | null}}",
		partial.String())
}

func TestCompleteKeepsDeclaredOptionality(t *testing.T) {
	t.Parallel()

	s := shape.Record("",
		shape.NewField("a", shape.Text()),
		shape.OptionalField("b", shape.Text()),
	)

	got, err := extract.RawValue(mapDeep(t, s, mapper.NonNullable))
	require.NoError(t, err)
	assert.Equal(t, "{a: text, b?: text}", got.String())
}

func TestRecursive(t *testing.T) {
	t.Parallel()

	n := shape.Record("Node")
	n.Fields = []shape.Field{
		shape.NewField("label", shape.Text()),
		shape.NewField("children", shape.ListOf(n)),
	}

	got, err := extract.RawValue(mapDeep(t, n, mapper.NonNullable))
	require.NoError(t, err)
	assert.True(t, shape.Equal(n, got))

	children, ok := got.Lookup("children")
	require.True(t, ok)
	assert.Same(t, got, children.Shape.Elem)
}

type foreignNode struct{}

func (foreignNode) Kind() control.NodeKind { return 0 }

func TestNoMatchingShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node control.Node
		path string
	}{
		{"nil", nil, "$"},
		{"foreign", foreignNode{}, "$"},
		{"typed nil group", (*control.Group)(nil), "$"},
		{"empty cell", &control.Cell{}, "$"},
		{"foreign member", control.NewGroup("Zone",
			control.Member{Name: "name", Node: control.NewCell(shape.Text(), false)},
			control.Member{Name: "animals", Node: control.NewArray(foreignNode{})},
		), "Zone.animals[]"},
		{"custom without value", control.NewGroup("",
			control.Member{Name: "w", Node: &control.Custom{Name: "widget"}},
		), "$.w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := extract.RawValue(tt.node)
			require.ErrorIs(t, err, extract.ErrNoMatchingShape)
			assert.Contains(t, err.Error(), tt.path+":")
		})
	}
}

func TestCustom(t *testing.T) {
	t.Parallel()

	picker := &control.Custom{Name: "colorPicker", Value: shape.Nullable(shape.Text())}
	g := control.NewGroup("", control.Member{Name: "color", Node: picker})

	got, err := extract.Value(g)
	require.NoError(t, err)
	assert.Equal(t, "{color?: text | null}", got.String())
	assert.Equal(t, "group<{color: custom colorPicker<text | null>}>", control.String(g))
}

func TestInvalidMode(t *testing.T) {
	t.Parallel()

	_, err := extract.Extract(control.NewCell(shape.Text(), false), extract.Mode(3))
	require.ErrorIs(t, err, extract.ErrInvalidMode)
}

func TestModeParsing(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]extract.Mode{
		"complete": extract.Complete,
		"raw":      extract.Complete,
		"":         extract.Complete,
		"partial":  extract.Partial,
	} {
		got, err := extract.ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := extract.ParseMode("half")
	assert.Error(t, err)

	var opts struct {
		Mode extract.Mode `yaml:"mode"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("mode: partial"), &opts))
	assert.Equal(t, extract.Partial, opts.Mode)
}
