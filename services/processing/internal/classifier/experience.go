package classifier

import (
	"regexp"
	"strconv"
	"strings"

	"empleos/services/processing/internal/models"
)

type experienceRule struct {
	pattern *regexp.Regexp
	// literal rules carry a fixed result and ignore capture groups.
	literal *int
}

// The single-count pattern skips numbers that close a range ("3-5 años"),
// leaving those to the range rule, which reports the lower bound.
var experienceRules = []experienceRule{
	{pattern: regexp.MustCompile(`(?:^|[^\d\s-])\s*(\d+)\s*(?:año|year)`)},
	{pattern: regexp.MustCompile(`(\d+)\s*-\s*\d+\s*(?:año|year)`)},
	{pattern: regexp.MustCompile(`sin experiencia|no experience`), literal: models.Int(0)},
	{pattern: regexp.MustCompile(`\b1 año|\bun año|\bone year`), literal: models.Int(1)},
	{pattern: regexp.MustCompile(`\b2 años|\bdos años|\btwo years`), literal: models.Int(2)},
}

// ClassifyExperience returns the years of experience a text asks for, or nil.
func ClassifyExperience(text string) *int {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return nil
	}

	for _, r := range experienceRules {
		m := r.pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if r.literal != nil {
			return models.Int(*r.literal)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return &n
	}
	return nil
}
