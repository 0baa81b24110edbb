// Package analyze derives data shapes from Go source.
//
// It uses golang.org/x/tools/go/packages with go/types to load packages and
// build a shape for every exported named type. Classification matches
// shape.FromType: slices and arrays are lists, time.Time is a date, structs
// are records, bool is a boolean leaf and every other type is a leaf.
// Pointers make the pointee nullable.
//
// Key types:
//   - TypeID: package import path + type name
//   - Graph: shapes of all analyzed named types
package analyze
