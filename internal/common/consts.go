package common

// UnknownStr is the display name for unrecognized enum values.
const UnknownStr = "unknown"

// AbsentStr is the display name for the absent (null) value.
const AbsentStr = "null"
