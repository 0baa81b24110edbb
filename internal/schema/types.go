package schema

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"form-mapper/internal/extract"
	"form-mapper/internal/mapper"
	"form-mapper/internal/shape"
)

// CurrentVersion is the only supported document version.
const CurrentVersion = "1"

// Document is a parsed schema file.
type Document struct {
	Version string    `yaml:"version"`
	Options Options   `yaml:"options,omitempty"`
	Root    string    `yaml:"root,omitempty"`
	Types   TypeDecls `yaml:"types"`

	shapes map[string]*shape.Shape
}

// Options are the mapping and extraction defaults declared by a document.
type Options struct {
	Depth       mapper.Depth       `yaml:"depth,omitempty"`
	Nullability mapper.Nullability `yaml:"nullability,omitempty"`
	Mode        extract.Mode       `yaml:"mode,omitempty"`
}

// Config returns the mapping configuration of the options.
func (o Options) Config() mapper.Config {
	return mapper.Config{Depth: o.Depth, Nullability: o.Nullability}
}

// TypeDecls is the ordered list of named type declarations.
type TypeDecls []TypeDecl

// TypeDecl declares a named type.
type TypeDecl struct {
	Name string
	Type TypeExpr
}

// ExprKind tells which form a type expression was written in.
type ExprKind int

const (
	ExprRef    ExprKind = iota // "text", "Animal?", "[]Animal"
	ExprRecord                 // inline mapping of fields
	ExprList                   // one-item sequence
)

// TypeExpr is a type expression as written in the document.
type TypeExpr struct {
	Kind   ExprKind
	Ref    string      // For ExprRef
	Fields []FieldDecl // For ExprRecord, in document order
	Elem   *TypeExpr   // For ExprList
	Line   int         // Source line, 0 when unknown
}

// FieldDecl is a field of an inline record.
type FieldDecl struct {
	Name     string
	Optional bool
	Type     TypeExpr
}

// Ref returns a reference expression.
func Ref(ref string) TypeExpr {
	return TypeExpr{Kind: ExprRef, Ref: ref}
}

// Fields returns an inline record expression.
func Fields(fields ...FieldDecl) TypeExpr {
	return TypeExpr{Kind: ExprRecord, Fields: fields}
}

// UnmarshalYAML implements custom YAML unmarshaling for TypeDecls.
// Declarations keep document order.
func (d *TypeDecls) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: types must be a mapping, got %s", node.Line, kindName(node.Kind))
	}

	decls := make(TypeDecls, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var expr TypeExpr

		err := value.Decode(&expr)
		if err != nil {
			return err
		}

		decls = append(decls, TypeDecl{Name: key.Value, Type: expr})
	}

	*d = decls

	return nil
}

// MarshalYAML implements custom YAML marshaling for TypeDecls.
func (d TypeDecls) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, decl := range d {
		value, err := decl.Type.node()
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content, scalar(decl.Name), value)
	}

	return node, nil
}

// UnmarshalYAML implements custom YAML unmarshaling for TypeExpr.
// Accepts:
//   - Scalar: "text", "Animal?", "[]Animal"
//   - Mapping: an inline record, keys ending in "?" are optional fields
//   - Sequence with exactly one item: a list of that item
func (e *TypeExpr) UnmarshalYAML(node *yaml.Node) error {
	e.Line = node.Line

	switch node.Kind {
	case yaml.ScalarNode:
		e.Kind = ExprRef
		e.Ref = strings.TrimSpace(node.Value)

		return nil

	case yaml.MappingNode:
		e.Kind = ExprRecord
		e.Fields = make([]FieldDecl, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: field name must be a string", key.Line)
			}

			name, optional := strings.CutSuffix(key.Value, "?")

			var ft TypeExpr

			err := value.Decode(&ft)
			if err != nil {
				return err
			}

			e.Fields = append(e.Fields, FieldDecl{Name: name, Optional: optional, Type: ft})
		}

		return nil

	case yaml.SequenceNode:
		if len(node.Content) != 1 {
			return fmt.Errorf("line %d: list type needs exactly one element type, got %d", node.Line, len(node.Content))
		}

		var elem TypeExpr

		err := node.Content[0].Decode(&elem)
		if err != nil {
			return err
		}

		e.Kind = ExprList
		e.Elem = &elem

		return nil

	default:
		return fmt.Errorf("line %d: expected type name, mapping or sequence, got %s", node.Line, kindName(node.Kind))
	}
}

// MarshalYAML implements custom YAML marshaling for TypeExpr.
func (e TypeExpr) MarshalYAML() (any, error) {
	return e.node()
}

func (e TypeExpr) node() (*yaml.Node, error) {
	switch e.Kind {
	case ExprRef:
		return scalar(e.Ref), nil

	case ExprRecord:
		node := &yaml.Node{Kind: yaml.MappingNode}

		for _, f := range e.Fields {
			key := f.Name
			if f.Optional {
				key += "?"
			}

			value, err := f.Type.node()
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, scalar(key), value)
		}

		return node, nil

	case ExprList:
		if e.Elem == nil {
			return nil, errors.New("list type without element type")
		}

		elem, err := e.Elem.node()
		if err != nil {
			return nil, err
		}

		return &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Content: []*yaml.Node{elem}}, nil

	default:
		return nil, fmt.Errorf("unknown type expression kind %d", e.Kind)
	}
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", k)
	}
}
