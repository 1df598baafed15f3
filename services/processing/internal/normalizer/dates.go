package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"empleos/services/processing/internal/catalog"
	"empleos/services/processing/internal/models"

	"github.com/araddon/dateparse"
)

var relativeDatePattern = regexp.MustCompile(`hace\s+(?:mas de\s+)?(\d+|un|una)\s+(minuto|hora|dia|semana|mes)`)

// normalizeDate resolves posting-date text against the scrape date. Text that
// cannot be read is returned trimmed so validation can reject it.
func normalizeDate(text string, scrapeDate time.Time) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	folded := catalog.Fold(trimmed)
	if t, ok := relativeDate(folded, scrapeDate); ok {
		return t.Format(models.DateLayout)
	}

	if t, err := time.Parse(models.DateLayout, trimmed); err == nil {
		return t.Format(models.DateLayout)
	}

	t, err := dateparse.ParseIn(trimmed, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return trimmed
	}
	return t.Format(models.DateLayout)
}

func relativeDate(folded string, scrapeDate time.Time) (time.Time, bool) {
	switch {
	case catalog.ContainsWord(folded, "hoy"):
		return scrapeDate, true
	case catalog.ContainsWord(folded, "ayer"):
		return scrapeDate.AddDate(0, 0, -1), true
	}

	m := relativeDatePattern.FindStringSubmatch(folded)
	if m == nil {
		return time.Time{}, false
	}

	n := 1
	if m[1] != "un" && m[1] != "una" {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		n = v
	}

	switch m[2] {
	case "minuto", "hora":
		return scrapeDate, true
	case "dia":
		return scrapeDate.AddDate(0, 0, -n), true
	case "semana":
		return scrapeDate.AddDate(0, 0, -7*n), true
	default:
		return scrapeDate.AddDate(0, -n, 0), true
	}
}
