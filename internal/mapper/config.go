package mapper

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Depth selects how far the mapping recurses.
type Depth int

const (
	// Deep mirrors every nested record and list.
	Deep Depth = iota
	// Shallow maps one level and keeps nested values whole.
	Shallow
)

// Nullability selects whether generated cells accept the absent value.
type Nullability int

const (
	// NonNullable cells only ever hold a concrete value.
	NonNullable Nullability = iota
	// Nullable cells may also hold the absent value.
	Nullable
)

// Config holds the mapping options. The zero value maps deep with
// non-nullable cells.
type Config struct {
	Depth       Depth       `yaml:"depth"`
	Nullability Nullability `yaml:"nullability"`
}

// String returns the config in "depth/nullability" form.
func (c Config) String() string {
	return c.Depth.String() + "/" + c.Nullability.String()
}

// String returns "deep" or "shallow".
func (d Depth) String() string {
	switch d {
	case Deep:
		return "deep"
	case Shallow:
		return "shallow"
	default:
		return fmt.Sprintf("Depth(%d)", int(d))
	}
}

// String returns "nullable" or "non-nullable".
func (n Nullability) String() string {
	switch n {
	case NonNullable:
		return "non-nullable"
	case Nullable:
		return "nullable"
	default:
		return fmt.Sprintf("Nullability(%d)", int(n))
	}
}

// ParseDepth parses "deep" or "shallow".
func ParseDepth(s string) (Depth, error) {
	switch s {
	case "deep", "":
		return Deep, nil
	case "shallow":
		return Shallow, nil
	default:
		return Deep, fmt.Errorf("unknown depth %q, expected deep or shallow", s)
	}
}

// ParseNullability parses "nullable" or "non-nullable".
func ParseNullability(s string) (Nullability, error) {
	switch s {
	case "non-nullable", "nonnullable", "":
		return NonNullable, nil
	case "nullable":
		return Nullable, nil
	default:
		return NonNullable, fmt.Errorf("unknown nullability %q, expected nullable or non-nullable", s)
	}
}

// UnmarshalYAML implements custom YAML unmarshaling for Depth.
func (d *Depth) UnmarshalYAML(node *yaml.Node) error {
	var s string

	err := node.Decode(&s)
	if err != nil {
		return err
	}

	*d, err = ParseDepth(s)

	return err
}

// MarshalYAML implements custom YAML marshaling for Depth.
func (d Depth) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements custom YAML unmarshaling for Nullability.
// Booleans are accepted as well: true means nullable.
func (n *Nullability) UnmarshalYAML(node *yaml.Node) error {
	var b bool
	if node.Tag == "!!bool" && node.Decode(&b) == nil {
		*n = NonNullable
		if b {
			*n = Nullable
		}

		return nil
	}

	var s string

	err := node.Decode(&s)
	if err != nil {
		return err
	}

	*n, err = ParseNullability(s)

	return err
}

// MarshalYAML implements custom YAML marshaling for Nullability.
func (n Nullability) MarshalYAML() (any, error) {
	return n.String(), nil
}
