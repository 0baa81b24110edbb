// Package mapper derives control tree shapes from data shapes.
//
// The mapping recurses over the data shape:
//   - List of E -> Array whose element is the mapping of E
//   - Record -> Group with one member per field
//   - Leaf (number, text, boolean, date, opaque) -> Cell
//
// Two independent options control the result. Depth "shallow" stops after
// one level: every direct field of a record, and every element of a list,
// becomes a single cell holding its whole value. Nullability "nullable" lets
// every generated cell also hold the absent value.
//
// The package is pure: mapping never mutates its input and keeps no state
// between calls, so it is safe for concurrent use.
package mapper
