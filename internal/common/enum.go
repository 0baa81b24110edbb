package common

// IsInRange reports whether an enum value lies between its first and last
// constants, both inclusive.
func IsInRange[E ~int](first, value, last E) bool {
	return first <= value && value <= last
}
