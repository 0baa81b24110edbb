package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for fuzzy comparison: CamelCase and
// snake_case spellings of the same words normalize to the same string.
// A leading CUE definition marker "#" is dropped.
//
//	"maxCapacity", "MaxCapacity", "max_capacity" -> "maxcapacity"
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(strings.TrimPrefix(s, "#")), "")
}

// TokenizeIdent splits an identifier into lowercase words.
//
//	"birthDate" -> ["birth", "date"]
//	"XMLParser" -> ["xml", "parser"]
//	"life-stage" -> ["life", "stage"]
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			flush()
			continue
		}

		if i > 0 && wordBoundary(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

// wordBoundary reports whether a new word starts at runes[i]: a lower to
// upper transition ("orderID") or the last capital of an acronym followed by
// a lowercase letter ("XMLParser").
func wordBoundary(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return unicode.IsLetter(prev) || unicode.IsDigit(prev)
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
