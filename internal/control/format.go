package control

import (
	"fmt"
	"strings"
)

// String renders the tree as a compact expression, for example
//
//	group<{name: cell<text | null>, animals: array<group<{...}>>}>
//
// A node met again while it is being rendered is written as "Name..." to
// keep recursive trees finite.
func String(n Node) string {
	var sb strings.Builder

	writeNode(&sb, n, make(map[Node]bool))

	return sb.String()
}

// String implements fmt.Stringer.
func (c *Cell) String() string { return String(c) }

// String implements fmt.Stringer.
func (g *Group) String() string { return String(g) }

// String implements fmt.Stringer.
func (a *Array) String() string { return String(a) }

// String implements fmt.Stringer.
func (c *Custom) String() string { return String(c) }

func writeNode(sb *strings.Builder, n Node, active map[Node]bool) {
	switch n := n.(type) {
	case nil:
		sb.WriteString("<nil>")

	case *Cell:
		value := n.Value.String()
		if n.Nullable && (n.Value == nil || !n.Value.Nullable) {
			value += " | null"
		}

		sb.WriteString("cell<" + value + ">")

	case *Custom:
		fmt.Fprintf(sb, "custom %s<%s>", n.Name, n.Value)

	case *Array:
		if active[n] {
			sb.WriteString("array...")
			return
		}

		active[n] = true
		defer delete(active, n)

		sb.WriteString("array<")
		writeNode(sb, n.Elem, active)
		sb.WriteString(">")
		writeAbsent(sb, n.Nullable)

	case *Group:
		if active[n] {
			sb.WriteString(n.Name + "...")
			return
		}

		active[n] = true
		defer delete(active, n)

		sb.WriteString("group<{")

		for i, m := range n.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(m.Name)

			if m.Optional {
				sb.WriteString("?")
			}

			sb.WriteString(": ")
			writeNode(sb, m.Node, active)
		}

		sb.WriteString("}>")
		writeAbsent(sb, n.Nullable)

	default:
		fmt.Fprintf(sb, "%T", n)
	}
}

func writeAbsent(sb *strings.Builder, nullable bool) {
	if nullable {
		sb.WriteString(" | null")
	}
}
