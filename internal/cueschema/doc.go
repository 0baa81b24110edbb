// Package cueschema builds data shapes from CUE definitions.
//
// Every top-level definition (#Zone, #Animal) becomes a named shape. Values
// are classified with the same precedence as the other shape sources:
//   - lists ([...T]) -> List
//   - time.Time -> Date leaf
//   - structs -> Record, "field?:" marks an optional field
//   - bool -> Boolean leaf
//   - int, float, number -> number; string -> text; anything else is opaque
//
// A "null | T" disjunction makes the value nullable. References to other
// definitions resolve to the shared named shape, which is what keeps
// recursive definitions finite.
package cueschema
