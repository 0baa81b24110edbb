package extract

import (
	"errors"
	"fmt"

	"form-mapper/internal/common"
	"form-mapper/internal/control"
	"form-mapper/internal/shape"
)

// ErrNoMatchingShape reports a control node that is not one of the
// recognized kinds, or a nil node.
var ErrNoMatchingShape = errors.New("no matching shape")

// ErrInvalidMode reports a Mode outside Complete and Partial.
var ErrInvalidMode = errors.New("invalid extraction mode")

// Extract returns the shape of the value n yields under mode.
//
// Nullable arrays and groups yield nullable lists and records. Cells return
// their value shape unchanged apart from nullable widening, so
// a shallow cell holding a whole list or record yields that list or record
// as is. Recursive trees produce recursive value shapes.
func Extract(n control.Node, mode Mode) (*shape.Shape, error) {
	if !common.IsInRange(Complete, mode, Partial) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}

	e := &extractor{
		partial: mode == Partial,
		built:   make(map[control.Node]*shape.Shape),
	}

	return e.extract(n, rootPath(n))
}

// RawValue extracts n in Complete mode.
func RawValue(n control.Node) (*shape.Shape, error) {
	return Extract(n, Complete)
}

// Value extracts n in Partial mode.
func Value(n control.Node) (*shape.Shape, error) {
	return Extract(n, Partial)
}

type extractor struct {
	partial bool
	built   map[control.Node]*shape.Shape // Composite results, handles recursive trees
}

func (e *extractor) extract(n control.Node, path shape.Path) (*shape.Shape, error) {
	switch n := n.(type) {
	case *control.Array:
		if n == nil {
			return nil, noMatch(path, "nil array")
		}

		if s, ok := e.built[n]; ok {
			return s, nil
		}

		s := &shape.Shape{Kind: shape.KindList, Nullable: n.Nullable}
		e.built[n] = s

		elem, err := e.extract(n.Elem, path.Elem())
		if err != nil {
			return nil, err
		}

		s.Elem = elem

		return s, nil

	case *control.Group:
		if n == nil {
			return nil, noMatch(path, "nil group")
		}

		if s, ok := e.built[n]; ok {
			return s, nil
		}

		s := &shape.Shape{Kind: shape.KindRecord, Name: n.Name, Nullable: n.Nullable}
		e.built[n] = s

		var fields []shape.Field

		for _, m := range n.Fields {
			fs, err := e.extract(m.Node, path.Field(m.Name))
			if err != nil {
				return nil, err
			}

			fields = append(fields, shape.Field{
				Name:     m.Name,
				Shape:    fs,
				Optional: m.Optional || e.partial,
			})
		}

		s.Fields = fields

		return s, nil

	case *control.Cell:
		if n == nil || n.Value == nil {
			return nil, noMatch(path, "empty cell")
		}

		return shape.Widen(n.Value, n.Nullable), nil

	case *control.Custom:
		if n == nil || n.Value == nil {
			return nil, noMatch(path, "custom control without a value shape")
		}

		return n.Value, nil

	case nil:
		return nil, noMatch(path, "nil node")

	default:
		return nil, noMatch(path, fmt.Sprintf("unrecognized node %T", n))
	}
}

func noMatch(path shape.Path, what string) error {
	return fmt.Errorf("%s: %w: %s", path, ErrNoMatchingShape, what)
}

func rootPath(n control.Node) shape.Path {
	if g, ok := n.(*control.Group); ok && g != nil {
		return shape.NewPath(g.Name)
	}

	return shape.NewPath("")
}
