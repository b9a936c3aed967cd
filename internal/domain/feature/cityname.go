package feature

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatCityName renders a city name for display: trimmed, whitespace runs
// collapsed, each word lower-cased with its first letter upper-cased.
func FormatCityName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
