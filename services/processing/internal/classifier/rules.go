// Package classifier infers structured fields from free-form posting text.
// Every classifier walks an ordered rule table and the first matching rule wins.
package classifier

import "strings"

type keywordRule[T any] struct {
	keywords []string
	result   T
}

// firstMatch returns the result of the first rule with a keyword contained in text.
// text is expected to be lowercased already.
func firstMatch[T any](text string, rules []keywordRule[T], fallback T) T {
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(text, k) {
				return r.result
			}
		}
	}
	return fallback
}

// allMatches returns the results of every rule hit, in table order.
func allMatches[T any](text string, rules []keywordRule[T]) []T {
	out := []T{}
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(text, k) {
				out = append(out, r.result)
				break
			}
		}
	}
	return out
}
