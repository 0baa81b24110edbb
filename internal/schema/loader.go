package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"form-mapper/internal/shape"
)

// ErrUnknownType is returned when a requested type is not declared.
var ErrUnknownType = errors.New("unknown type")

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse parses YAML data into a Document and resolves every declared type.
func Parse(data []byte) (*Document, error) {
	var doc Document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&doc)

	diags := doc.resolve()
	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &doc, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(doc *Document) {
	if doc.Version == "" {
		doc.Version = CurrentVersion
	}

	if doc.Root == "" && len(doc.Types) == 1 {
		doc.Root = doc.Types[0].Name
	}
}

// Marshal serializes a Document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// WriteFile writes a Document to the given path.
func WriteFile(doc *Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}

	return nil
}

// Names returns the declared type names in document order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Types))
	for _, decl := range d.Types {
		names = append(names, decl.Name)
	}

	return names
}

// Shape returns the resolved shape of the named type.
func (d *Document) Shape(name string) (*shape.Shape, error) {
	if d.shapes == nil {
		diags := d.resolve()
		if err := diags.Error(); err != nil {
			return nil, fmt.Errorf("invalid schema: %w", err)
		}
	}

	s, ok := d.shapes[name]
	if !ok {
		return nil, unknownType(name, d.Names())
	}

	return s, nil
}

// RootShape returns the shape of the root type.
func (d *Document) RootShape() (*shape.Shape, error) {
	if d.Root == "" {
		return nil, fmt.Errorf("%w: document declares no root and has %d types", ErrUnknownType, len(d.Types))
	}

	return d.Shape(d.Root)
}
