package shape

import (
	"strings"

	"form-mapper/internal/common"
)

// String renders s as a compact type expression, for example
//
//	{name: text | null, animals?: []{name: text, birthDate: date}}
//
// A record met again while it is being rendered is written by name, which
// keeps recursive shapes finite.
func (s *Shape) String() string {
	var sb strings.Builder

	writeShape(&sb, s, make(map[*Shape]bool))

	return sb.String()
}

func writeShape(sb *strings.Builder, s *Shape, active map[*Shape]bool) {
	if s == nil {
		sb.WriteString("<nil>")
		return
	}

	writeBase(sb, s, active)

	if s.Nullable {
		sb.WriteString(" | ")
		sb.WriteString(common.AbsentStr)
	}
}

func writeBase(sb *strings.Builder, s *Shape, active map[*Shape]bool) {
	switch s.Kind {
	case KindLeaf:
		if s.Leaf == LeafOpaque && s.Name != "" {
			sb.WriteString(s.Name)
			return
		}

		sb.WriteString(s.Leaf.String())

	case KindList:
		sb.WriteString("[]")

		if s.Elem != nil && s.Elem.Nullable {
			sb.WriteString("(")
			writeShape(sb, s.Elem, active)
			sb.WriteString(")")

			return
		}

		writeShape(sb, s.Elem, active)

	case KindRecord:
		if active[s] {
			sb.WriteString(recordRef(s))
			return
		}

		active[s] = true
		defer delete(active, s)

		sb.WriteString("{")

		for i, f := range s.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(f.Name)

			if f.Optional {
				sb.WriteString("?")
			}

			sb.WriteString(": ")
			writeShape(sb, f.Shape, active)
		}

		sb.WriteString("}")

	default:
		sb.WriteString(s.Kind.String())
	}
}

func recordRef(s *Shape) string {
	if s.Name != "" {
		return s.Name
	}

	return "<cycle>"
}
