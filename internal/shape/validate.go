package shape

import (
	"fmt"

	"form-mapper/internal/diagnostic"
)

// Validate checks that s is structurally well formed: every kind is set,
// lists have an element shape, fields have shapes and field names are unique
// within each record. It returns an error wrapping ErrInvalidShape that lists
// every problem found.
func Validate(s *Shape) error {
	diags := Check(s)

	if err := diags.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	return nil
}

// Check is like Validate but returns the collected diagnostics.
func Check(s *Shape) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	check(s, RootPath(s), make(map[*Shape]bool), &diags)

	return diags
}

func check(s *Shape, path Path, seen map[*Shape]bool, diags *diagnostic.Diagnostics) {
	if s == nil {
		diags.AddError(diagnostic.CodeMissingShape, "shape is nil", path.String())
		return
	}

	if seen[s] {
		return
	}

	seen[s] = true

	switch s.Kind {
	case KindLeaf:
		if s.Leaf < LeafNumber || s.Leaf > LeafOpaque {
			diags.AddError(diagnostic.CodeInvalidKind,
				fmt.Sprintf("leaf kind %s is not valid", s.Leaf), path.String())
		}

	case KindList:
		if s.Elem == nil {
			diags.AddError(diagnostic.CodeMissingElement, "list has no element shape", path.String())
			return
		}

		check(s.Elem, path.Elem(), seen, diags)

	case KindRecord:
		names := make(map[string]struct{}, len(s.Fields))

		for _, f := range s.Fields {
			fieldPath := path.Field(f.Name)

			if _, dup := names[f.Name]; dup {
				diags.AddError(diagnostic.CodeDuplicateField,
					fmt.Sprintf("field %q is declared more than once", f.Name), fieldPath.String())

				continue
			}

			names[f.Name] = struct{}{}

			check(f.Shape, fieldPath, seen, diags)
		}

	default:
		diags.AddError(diagnostic.CodeInvalidKind,
			fmt.Sprintf("shape kind %s is not valid", s.Kind), path.String())
	}
}
