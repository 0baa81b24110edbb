// Package match provides fuzzy name matching used to suggest the intended
// type name when a schema references one that does not exist.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names by similarity to an unknown one
package match
