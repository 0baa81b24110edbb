// Package gen renders value shapes as Go type declarations.
//
// Generation uses text/template + go/format. Every record becomes a struct;
// named records keep their name and anonymous ones are named after the
// enclosing type and field ("ZoneBadge"). Leaves map to Go types:
//   - number -> float64
//   - text -> string
//   - boolean -> bool
//   - date -> time.Time
//   - any -> any
//
// Nullable values and optional fields become pointers, except slices and
// any, whose nil value already means absent. Optional fields are tagged
// `json:",omitempty"`.
package gen
