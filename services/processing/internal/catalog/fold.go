package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining marks, so "Itagüí" and "ITAGUI" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(result)
}

// ContainsAny reports whether text contains any of the keywords. Both sides are compared as given.
func ContainsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether word occurs in text delimited by non-alphanumeric runes.
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)
		if boundaryBefore(text, i) && boundaryAfter(text, end) {
			return true
		}
		start = i + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r := lastRune(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	for _, r := range text[i:] {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
	return true
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
