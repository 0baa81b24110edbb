package mapper

import (
	"errors"
	"fmt"

	"form-mapper/internal/common"
	"form-mapper/internal/control"
	"form-mapper/internal/shape"
)

// ErrUnsupportedShape reports a mapping entry point applied to a shape it
// cannot map, such as a group mapping over a list.
var ErrUnsupportedShape = errors.New("unsupported shape")

// ErrInvalidConfig reports an out of range Depth or Nullability.
var ErrInvalidConfig = errors.New("invalid mapping config")

// Map derives the control tree shape for s. It is total over valid shapes:
// lists map to arrays, records to groups and every leaf, dates and booleans
// included, to a cell. With Shallow depth only the first level is mapped.
//
// A nullable list or record maps to a nullable array or group, so the
// absent value survives the round trip through Extract.
//
// Recursive shapes produce recursive trees: a record reached again while it
// is being mapped resolves to the group already under construction.
func Map(s *shape.Shape, cfg Config) (control.Node, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}

	err = shape.Validate(s)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", shape.RootPath(s), err)
	}

	m := newMapper(cfg)
	if cfg.Depth == Shallow {
		return m.shallow(s), nil
	}

	return m.deep(s), nil
}

// MapGroup maps a record deeply into a group.
func MapGroup(s *shape.Shape, n Nullability) (*control.Group, error) {
	return mapGroup(s, Config{Depth: Deep, Nullability: n})
}

// MapGroupShallow maps a record into a group of cells, one per field, each
// holding the field's whole value.
func MapGroupShallow(s *shape.Shape, n Nullability) (*control.Group, error) {
	return mapGroup(s, Config{Depth: Shallow, Nullability: n})
}

// MapArray maps a list deeply into an array.
func MapArray(s *shape.Shape, n Nullability) (*control.Array, error) {
	return mapArray(s, Config{Depth: Deep, Nullability: n})
}

// MapArrayShallow maps a list into an array of cells, each holding a whole
// element.
func MapArrayShallow(s *shape.Shape, n Nullability) (*control.Array, error) {
	return mapArray(s, Config{Depth: Shallow, Nullability: n})
}

func mapGroup(s *shape.Shape, cfg Config) (*control.Group, error) {
	if !s.IsRecord() {
		return nil, unsupported(s, "group", "record")
	}

	node, err := Map(s, cfg)
	if err != nil {
		return nil, err
	}

	return node.(*control.Group), nil
}

func mapArray(s *shape.Shape, cfg Config) (*control.Array, error) {
	if !s.IsList() {
		return nil, unsupported(s, "array", "list")
	}

	node, err := Map(s, cfg)
	if err != nil {
		return nil, err
	}

	return node.(*control.Array), nil
}

func unsupported(s *shape.Shape, entry, want string) error {
	got := "nil shape"

	switch {
	case s.IsDate():
		got = "date"
	case s != nil:
		got = s.Kind.String()
	}

	return fmt.Errorf("%s: %w: %s mapping needs a %s, got %s",
		shape.RootPath(s), ErrUnsupportedShape, entry, want, got)
}

func (c Config) validate() error {
	if !common.IsInRange(Deep, c.Depth, Shallow) {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Depth)
	}

	if !common.IsInRange(NonNullable, c.Nullability, Nullable) {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Nullability)
	}

	return nil
}

type mapper struct {
	nullable bool
	built    map[*shape.Shape]control.Node // Composite nodes, handles recursive shapes
}

func newMapper(cfg Config) *mapper {
	return &mapper{
		nullable: cfg.Nullability == Nullable,
		built:    make(map[*shape.Shape]control.Node),
	}
}

// deep maps s and everything below it. The order of the checks matters:
// lists and dates are tested before records.
func (m *mapper) deep(s *shape.Shape) control.Node {
	if node, ok := m.built[s]; ok {
		return node
	}

	switch {
	case s.IsList():
		arr := &control.Array{Nullable: s.Nullable}
		m.built[s] = arr
		arr.Elem = m.deep(s.Elem)

		return arr

	case s.IsDate():
		return m.cell(s)

	case s.IsRecord():
		group := &control.Group{Name: s.Name, Nullable: s.Nullable}
		m.built[s] = group
		group.Fields = m.members(s, m.deep)

		return group

	default:
		return m.cell(s)
	}
}

// shallow maps the first level of s and keeps everything below it whole.
func (m *mapper) shallow(s *shape.Shape) control.Node {
	switch {
	case s.IsList():
		arr := control.NewArray(m.cell(s.Elem))
		arr.Nullable = s.Nullable

		return arr

	case s.IsDate():
		return m.cell(s)

	case s.IsRecord():
		group := control.NewGroup(s.Name, m.members(s, m.cell)...)
		group.Nullable = s.Nullable

		return group

	default:
		return m.cell(s)
	}
}

func (m *mapper) members(s *shape.Shape, child func(*shape.Shape) control.Node) []control.Member {
	members := make([]control.Member, 0, len(s.Fields))

	for _, f := range s.Fields {
		members = append(members, control.Member{
			Name:     f.Name,
			Node:     child(f.Shape),
			Optional: f.Optional,
		})
	}

	return members
}

func (m *mapper) cell(s *shape.Shape) control.Node {
	return control.NewCell(s, m.nullable)
}
