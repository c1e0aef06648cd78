package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower applies full Unicode lower-case mapping. A Caser is stateful, so a
// fresh one is built per call to keep the helper safe for concurrent use.
func Lower(value string) string {
	if value == "" {
		return ""
	}
	return cases.Lower(language.Und).String(value)
}

// CanonicalKey lowercases title and strips every rune that is not a letter
// or a number. Empty input yields the empty key.
func CanonicalKey(title string) string {
	if title == "" {
		return ""
	}
	lowered := Lower(title)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
