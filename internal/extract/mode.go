package extract

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Mode selects the extraction policy.
type Mode int

const (
	// Complete extracts every group field as declared (the "raw" value).
	Complete Mode = iota
	// Partial makes every group field optional.
	Partial
)

// String returns "complete" or "partial".
func (m Mode) String() string {
	switch m {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "complete" (alias "raw") or "partial".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "complete", "raw", "":
		return Complete, nil
	case "partial":
		return Partial, nil
	default:
		return Complete, fmt.Errorf("unknown extraction mode %q, expected complete or partial", s)
	}
}

// UnmarshalYAML implements custom YAML unmarshaling for Mode.
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	var s string

	err := node.Decode(&s)
	if err != nil {
		return err
	}

	*m, err = ParseMode(s)

	return err
}

// MarshalYAML implements custom YAML marshaling for Mode.
func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}
