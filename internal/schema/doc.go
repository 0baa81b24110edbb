// Package schema loads data shapes from YAML schema documents.
//
// # Schema Overview
//
//	version: "1"
//	options:
//	  depth: deep             # deep | shallow
//	  nullability: nullable   # nullable | non-nullable
//	  mode: complete          # complete | partial
//	root: Zone
//	types:
//	  Animal:
//	    name: text
//	    species: text
//	    birthDate: date
//	  Zone:
//	    name: text
//	    maxCapacity: number
//	    animals: "[]Animal"   # list of a named type
//	    nickname?: "text?"    # optional field holding a nullable value
//	    keeper:               # inline record
//	      name: text
//	    tags: [text]          # list, sequence form
//
// Field order follows the document. A "?" after a field name makes the field
// optional; a "?" after a type makes the value nullable. Element types of a
// list may be written "[]T" or as a one-item sequence "[T]".
//
// # Type names
//
// Builtins are number (int, integer, float), text (string), boolean (bool),
// date (time, datetime, timestamp) and any (opaque). Every other name refers
// to an entry of "types" and may be used before it is declared. Types may be
// recursive. Unknown names are reported with suggestions.
package schema
