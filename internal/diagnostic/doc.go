// Package diagnostic provides structured warnings and errors for schema
// loading and shape validation.
//
// Key capabilities:
//   - Error and warning collection with stable codes
//   - Location of each issue as a shape path (e.g. "Zone.animals[].name")
//   - "Did you mean" suggestions for unresolved type references
package diagnostic
