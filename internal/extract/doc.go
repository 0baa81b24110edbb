// Package extract derives the shape of the value a control tree yields.
//
// Extraction is the structural inverse of package mapper:
//   - Array of C -> list of the extraction of C, nullable with the array
//   - Group -> record with one field per member, nullable with the group
//   - Cell holding T -> T, or T | null when the cell is nullable
//   - Custom -> the value shape the control declares
//
// In Complete mode every group member is present in the value, as declared.
// In Partial mode every field at every level becomes optional, modelling a
// form whose controls have not all been touched. Field optionality and value
// nullability are tracked independently.
package extract
