package shape

// Equal reports whether a and b describe the same structure: kinds, leaf
// kinds, nullability, field names, field order, field optionality and element
// shapes. Names are ignored. Equal terminates on recursive shapes.
func Equal(a, b *Shape) bool {
	return equal(a, b, make(map[[2]*Shape]bool))
}

func equal(a, b *Shape, seen map[[2]*Shape]bool) bool {
	if a == b {
		return true
	}

	if a == nil || b == nil {
		return false
	}

	// A pair under comparison is assumed equal; any real difference is found
	// along another branch.
	key := [2]*Shape{a, b}
	if seen[key] {
		return true
	}

	seen[key] = true

	if a.Kind != b.Kind || a.Nullable != b.Nullable {
		return false
	}

	switch a.Kind {
	case KindLeaf:
		return a.Leaf == b.Leaf

	case KindList:
		return equal(a.Elem, b.Elem, seen)

	case KindRecord:
		if len(a.Fields) != len(b.Fields) {
			return false
		}

		for i := range a.Fields {
			fa, fb := a.Fields[i], b.Fields[i]
			if fa.Name != fb.Name || fa.Optional != fb.Optional {
				return false
			}

			if !equal(fa.Shape, fb.Shape, seen) {
				return false
			}
		}

		return true

	default:
		return false
	}
}
