package control

import "form-mapper/internal/shape"

//go:generate go tool stringer -type=NodeKind -linecomment -output=kind_string.go

// NodeKind identifies a control node type.
type NodeKind int

const (
	_ NodeKind = iota // skip zero value, foreign nodes may report it

	KindCell   // cell
	KindGroup  // group
	KindArray  // array
	KindCustom // custom
)

// Node is a control tree node. The recognized implementations are *Cell,
// *Group, *Array and *Custom.
type Node interface {
	Kind() NodeKind
}

// Cell is the control counterpart of a single value. It holds a value of
// Value's type, or nothing when Nullable.
type Cell struct {
	Value    *shape.Shape
	Nullable bool
}

// Kind implements Node.
func (*Cell) Kind() NodeKind { return KindCell }

// Group is the control counterpart of a record: a fixed mapping from field
// name to child control.
type Group struct {
	Name   string // Source record name, informative only
	Fields []Member
	// Nullable reports whether the whole group may be absent, as for a
	// nullable record.
	Nullable bool
}

// Kind implements Node.
func (*Group) Kind() NodeKind { return KindGroup }

// Member is a named child of a group.
type Member struct {
	Name string
	Node Node
	// Optional reports whether the control may be missing from the group.
	Optional bool
}

// Lookup returns the member with the given name.
func (g *Group) Lookup(name string) (Member, bool) {
	for _, m := range g.Fields {
		if m.Name == name {
			return m, true
		}
	}

	return Member{}, false
}

// Array is the control counterpart of a list: every child control has the
// shape Elem.
type Array struct {
	Elem Node
	// Nullable reports whether the whole array may be absent.
	Nullable bool
}

// Kind implements Node.
func (*Array) Kind() NodeKind { return KindArray }

// Custom is a control implemented outside this package that declares the
// shape of the value it yields.
type Custom struct {
	Name  string
	Value *shape.Shape
}

// Kind implements Node.
func (*Custom) Kind() NodeKind { return KindCustom }

// NewCell returns a cell for s, widened to accept absent when nullable.
func NewCell(s *shape.Shape, nullable bool) *Cell {
	return &Cell{Value: s, Nullable: nullable}
}

// NewGroup returns a group with the given members.
func NewGroup(name string, members ...Member) *Group {
	return &Group{Name: name, Fields: members}
}

// NewArray returns an array of elem controls.
func NewArray(elem Node) *Array {
	return &Array{Elem: elem}
}
