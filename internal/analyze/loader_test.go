package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"form-mapper/internal/schema"
	"form-mapper/internal/shape"
)

const zooPkg = "form-mapper/examples/zoo"

func loadZoo(t *testing.T) *Graph {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(zooPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadZoo(t)

	require.Contains(t, graph.Packages, zooPkg)
	assert.Equal(t, "zoo", graph.Packages[zooPkg].Name)

	var names []string
	for _, id := range graph.Packages[zooPkg].Types {
		names = append(names, id.Name)
	}

	assert.Equal(t, []string{"Animal", "Environment", "Keeper", "Shift", "Zone"}, names)
}

func TestAnalyzer_Zone(t *testing.T) {
	graph := loadZoo(t)

	zone, err := graph.Lookup(zooPkg, "Zone")
	require.NoError(t, err)

	want := shape.Record("Zone",
		shape.NewField("name", shape.Text()),
		shape.NewField("maxCapacity", shape.Number()),
		shape.NewField("animals", shape.ListOf(shape.Record("Animal",
			shape.NewField("name", shape.Text()),
			shape.NewField("species", shape.Text()),
			shape.NewField("lifeStage", shape.Text()),
			shape.NewField("birthDate", shape.Date()),
		))),
	)

	assert.True(t, shape.Equal(want, zone), "want %s\ngot  %s", want, zone)
	assert.Equal(t, "Zone", zone.Name)
}

func TestAnalyzer_SharedAndRecursive(t *testing.T) {
	graph := loadZoo(t)

	zone, err := graph.Lookup(zooPkg, "Zone")
	require.NoError(t, err)

	env, err := graph.Lookup(zooPkg, "Environment")
	require.NoError(t, err)

	zones, ok := env.Lookup("zones")
	require.True(t, ok)
	assert.Same(t, zone, zones.Shape.Elem, "named types resolve to one shape")

	keeper, err := graph.Lookup(zooPkg, "Keeper")
	require.NoError(t, err)

	mentor, ok := keeper.Lookup("mentor")
	require.True(t, ok)
	assert.True(t, mentor.Optional)
	require.True(t, mentor.Shape.IsRecord())
	assert.True(t, mentor.Shape.Nullable, "pointer to a record is nullable")
	assert.Equal(t, keeper.FieldNames(), mentor.Shape.FieldNames())

	nickname, ok := keeper.Lookup("nickname")
	require.True(t, ok)
	assert.True(t, nickname.Optional)
	assert.Equal(t, "text | null", nickname.Shape.String())

	onDuty, _ := keeper.Lookup("onDuty")
	assert.Equal(t, "boolean", onDuty.Shape.String())

	notes, _ := keeper.Lookup("notes")
	assert.Equal(t, "map[string]string", notes.Shape.String())

	_, ok = keeper.Lookup("internal")
	assert.False(t, ok, "unexported fields are skipped")

	shift, err := graph.Lookup(zooPkg, "Shift")
	require.NoError(t, err)
	require.True(t, shift.IsList())
	assert.Same(t, keeper, shift.Elem)
}

func TestAnalyzer_MatchesReflection(t *testing.T) {
	graph := loadZoo(t)

	for _, name := range []string{"Animal", "Zone", "Environment", "Keeper"} {
		fromSource, err := graph.Lookup(zooPkg, name)
		require.NoError(t, err)

		fromReflect := reflectShapes[name]
		assert.True(t, shape.Equal(fromReflect, fromSource),
			"%s: source %s, reflect %s", name, fromSource, fromReflect)
	}
}

func TestAnalyzer_MatchesSchema(t *testing.T) {
	graph := loadZoo(t)

	doc, err := schema.Parse([]byte(`
types:
  Keeper:
    name: text
    nickname?: "text?"
    onDuty: boolean
    mentor?: "Keeper?"
    notes: any
`))
	require.NoError(t, err)

	fromSchema, err := doc.Shape("Keeper")
	require.NoError(t, err)

	fromSource, err := graph.Lookup(zooPkg, "Keeper")
	require.NoError(t, err)

	assert.True(t, shape.Equal(fromSchema, fromSource), "schema %s\nsource %s", fromSchema, fromSource)
	assert.True(t, shape.Equal(fromSchema, reflectShapes["Keeper"]), "schema %s\nreflect %s",
		fromSchema, reflectShapes["Keeper"])
}

func TestGraph_LookupErrors(t *testing.T) {
	graph := loadZoo(t)

	_, err := graph.Lookup(zooPkg, "Zoen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean [Zone]")

	_, err = graph.Lookup("form-mapper/missing", "Zone")
	assert.ErrorContains(t, err, "not loaded")

	s, err := graph.Find("Animal")
	require.NoError(t, err)
	assert.True(t, s.IsRecord())

	_, err = graph.Find("Anmal")
	assert.ErrorContains(t, err, "Animal")
}
