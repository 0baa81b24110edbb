package control

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"form-mapper/internal/shape"
)

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"cell", NewCell(shape.Text(), false), "cell<text>"},
		{"nullable cell", NewCell(shape.Date(), true), "cell<date | null>"},
		{"nullable value", NewCell(shape.Nullable(shape.Number()), true), "cell<number | null>"},
		{"custom", &Custom{Name: "datepicker", Value: shape.Date()}, "custom datepicker<date>"},
		{"array", NewArray(NewCell(shape.Boolean(), false)), "array<cell<boolean>>"},
		{
			"group",
			NewGroup("Zone",
				Member{Name: "name", Node: NewCell(shape.Text(), true)},
				Member{Name: "notes", Node: NewCell(shape.Text(), false), Optional: true},
			),
			"group<{name: cell<text | null>, notes?: cell<text>}>",
		},
		{"nullable array", &Array{Elem: NewCell(shape.Text(), false), Nullable: true}, "array<cell<text>> | null"},
		{
			"nullable group",
			&Group{Name: "Keeper", Fields: []Member{{Name: "name", Node: NewCell(shape.Text(), false)}}, Nullable: true},
			"group<{name: cell<text>}> | null",
		},
		{"nil", nil, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, String(tt.node))
		})
	}
}

func TestString_Recursive(t *testing.T) {
	t.Parallel()

	node := NewGroup("Node", Member{Name: "label", Node: NewCell(shape.Text(), false)})
	node.Fields = append(node.Fields, Member{Name: "children", Node: NewArray(node)})

	assert.Equal(t, "group<{label: cell<text>, children: array<Node...>}>", node.String())
	assert.Equal(t, KindGroup, node.Kind())

	children, ok := node.Lookup("children")
	assert.True(t, ok)
	assert.Equal(t, KindArray, children.Node.Kind())
}
