// Package validator checks canonical records before export. Errors block a
// record; warnings are attached for review and never block it.
package validator

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"empleos/services/processing/internal/catalog"
	"empleos/services/processing/internal/models"
)

const (
	minCompanyLength  = 2
	minTitleLength    = 5
	maxPostingAgeDays = 90
)

type Validator struct {
	now         func() time.Time
	minimumWage float64
}

func New(now func() time.Time, minimumWage float64) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now, minimumWage: minimumWage}
}

type check func(r models.CanonicalJobRecord, res *models.ValidationResult)

// Validate runs every check; one record may collect several errors.
func (v *Validator) Validate(r models.CanonicalJobRecord) models.ValidationResult {
	res := models.ValidationResult{
		Record:   r,
		Errors:   []string{},
		Warnings: []string{},
	}

	for _, c := range []check{
		v.checkCompany,
		v.checkTitle,
		v.checkLocation,
		v.checkDates,
		v.checkSalary,
		v.checkURL,
	} {
		c(r, &res)
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// ValidateBatch partitions records by validity, keeping input order in every output.
func (v *Validator) ValidateBatch(records []models.CanonicalJobRecord) (valid, invalid []models.CanonicalJobRecord, results []models.ValidationResult) {
	valid = []models.CanonicalJobRecord{}
	invalid = []models.CanonicalJobRecord{}
	results = make([]models.ValidationResult, 0, len(records))

	for _, r := range records {
		res := v.Validate(r)
		results = append(results, res)
		if res.IsValid {
			valid = append(valid, r)
		} else {
			invalid = append(invalid, r)
		}
	}
	return valid, invalid, results
}

func (v *Validator) checkCompany(r models.CanonicalJobRecord, res *models.ValidationResult) {
	name := strings.TrimSpace(r.CompanyName)
	switch {
	case name == "":
		res.Errors = append(res.Errors, "company_name is empty")
	case utf8.RuneCountInString(name) < minCompanyLength:
		res.Errors = append(res.Errors, fmt.Sprintf("company_name too short: %q", name))
	}

	if catalog.IsConfidentialCompany(name) {
		res.Warnings = append(res.Warnings, "company_name is confidential, verify manually")
	}
}

func (v *Validator) checkTitle(r models.CanonicalJobRecord, res *models.ValidationResult) {
	title := strings.TrimSpace(r.Title)
	switch {
	case title == "":
		res.Errors = append(res.Errors, "title is empty")
	case utf8.RuneCountInString(title) < minTitleLength:
		res.Errors = append(res.Errors, fmt.Sprintf("title too short: %q", title))
	}
}

func (v *Validator) checkLocation(r models.CanonicalJobRecord, res *models.ValidationResult) {
	loc := strings.TrimSpace(r.ExactLocation)
	if loc == "" {
		res.Errors = append(res.Errors, "exact_location is empty")
		return
	}
	if _, ok := catalog.MatchCity(loc); !ok {
		res.Errors = append(res.Errors, fmt.Sprintf("exact_location is outside Antioquia: %q", loc))
	}
}

func (v *Validator) checkDates(r models.CanonicalJobRecord, res *models.ValidationResult) {
	today := models.CalendarDay(v.now())

	switch posted, err := time.Parse(models.DateLayout, r.PostingDate); {
	case r.PostingDate == "":
		res.Errors = append(res.Errors, "posting_date is empty")
	case err != nil:
		res.Errors = append(res.Errors, fmt.Sprintf("posting_date has invalid format: %q", r.PostingDate))
	case posted.After(today):
		res.Errors = append(res.Errors, fmt.Sprintf("posting_date is in the future: %s", r.PostingDate))
	case today.Sub(posted) >= maxPostingAgeDays*24*time.Hour:
		res.Warnings = append(res.Warnings, fmt.Sprintf("posting_date is older than %d days: %s", maxPostingAgeDays, r.PostingDate))
	}

	if r.ScrapeDate == "" {
		return
	}
	scraped, err := time.Parse(models.DateLayout, r.ScrapeDate)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("scrape_date has invalid format: %q", r.ScrapeDate))
		return
	}
	if scraped.After(today) {
		res.Errors = append(res.Errors, fmt.Sprintf("scrape_date is in the future: %s", r.ScrapeDate))
	}
}

func (v *Validator) checkSalary(r models.CanonicalJobRecord, res *models.ValidationResult) {
	if r.SalaryMin == nil || r.SalaryMax == nil {
		return
	}
	lo, hi := *r.SalaryMin, *r.SalaryMax

	if lo > hi {
		res.Errors = append(res.Errors, fmt.Sprintf("salary_min (%.0f) > salary_max (%.0f)", lo, hi))
	}
	if lo < v.minimumWage*0.5 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("salary_min suspiciously low: %.0f", lo))
	}
	if hi > v.minimumWage*100 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("salary_max suspiciously high: %.0f", hi))
	}
}

func (v *Validator) checkURL(r models.CanonicalJobRecord, res *models.ValidationResult) {
	raw := strings.TrimSpace(r.ListingURL)
	if raw == "" {
		res.Errors = append(res.Errors, "listing_url is empty")
		return
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		res.Errors = append(res.Errors, fmt.Sprintf("listing_url is not a valid http(s) URL: %q", raw))
	}

	if !catalog.KnownPlatformURL(raw) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("listing_url does not mention a known platform: %q", raw))
	}
}
