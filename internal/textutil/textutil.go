package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerEnglish = cases.Lower(language.English)

// TitleCase lower-cases text, then upper-cases the first word character of
// each space separated word and any word character directly after a slash.
// Hyphenated words keep their lower-case tail: "project-site" becomes
// "Project-site", "parts/accessories" becomes "Parts/Accessories".
func TitleCase(text string) string {
	runes := []rune(lowerEnglish.String(text))
	inWord := false
	prev := rune(0)
	for i, r := range runes {
		switch {
		case unicode.IsSpace(r):
			inWord = false
		case isWordRune(r) && (!inWord || prev == '/'):
			runes[i] = unicode.ToUpper(r)
			inWord = true
		}
		prev = r
	}
	return string(runes)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
