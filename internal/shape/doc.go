// Package shape describes the structure of data values independently of any
// concrete instance.
//
// A Shape is a tagged union over three kinds:
//   - Leaf: an atomic value (number, text, boolean, date or opaque)
//   - List: an ordered, homogeneous sequence of one element shape
//   - Record: a fixed, ordered set of uniquely named fields
//
// Any shape may be marked Nullable, meaning the value may be absent.
// Shapes are immutable once built; helpers such as Widen return copies.
// Recursive data models are represented by pointer cycles: a record that
// contains itself (directly or through lists) points back to the same *Shape.
package shape
