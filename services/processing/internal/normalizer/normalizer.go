// Package normalizer maps scraped listings onto the canonical job record.
package normalizer

import (
	"strings"
	"time"

	shared "empleos/common/models"
	"empleos/services/processing/internal/catalog"
	"empleos/services/processing/internal/classifier"
	"empleos/services/processing/internal/models"

	"github.com/google/uuid"
)

const maxTechnicalSkills = 10

var idNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Normalizer has no clock of its own: the scrape date is fixed at construction
// so the same raw record always yields the same canonical record.
type Normalizer struct {
	scrapeDate  time.Time
	minimumWage float64
}

func New(scrapeDate time.Time, minimumWage float64) *Normalizer {
	return &Normalizer{
		scrapeDate:  models.CalendarDay(scrapeDate),
		minimumWage: minimumWage,
	}
}

func (n *Normalizer) Normalize(raw shared.RawRecord) models.CanonicalJobRecord {
	raw = raw.Clean()

	platform := catalog.ParsePlatform(raw.Platform)
	if platform == "" {
		platform, _ = catalog.PlatformFromURL(raw.URL)
	}

	rec := models.CanonicalJobRecord{
		SourcePlatform: platform,
		PlatformJobID:  raw.PlatformJobID,
		ListingURL:     raw.URL,

		CompanyName:   companyName(raw.Company, raw.Location),
		Sector:        sector(raw.SectorText),
		CompanySize:   models.DefaultCompanySize,
		ExactLocation: exactLocation(raw.Location),

		Title:          raw.Title,
		SeniorityLevel: classifier.InferSeniority(raw.Title),
		Area:           classifier.InferArea(raw.Title),
		Modality:       classifier.ClassifyModality(raw.Title + " " + raw.ModalityText),
		ContractType:   classifier.ClassifyContract(raw.ContractText),
		WorkSchedule:   classifier.ClassifySchedule(raw.ContractText),

		Currency: models.DefaultCurrency,

		PostingDate: normalizeDate(raw.PostedText, n.scrapeDate),
		ScrapeDate:  n.scrapeDate.Format(models.DateLayout),
		Status:      models.StatusActive,
	}

	rec.SalaryMin, rec.SalaryMax, rec.SalaryPeriod = classifier.ClassifySalary(raw.SalaryText, n.minimumWage)
	if rec.SalaryPeriod == models.PeriodNone {
		rec.SalaryPeriod = models.PeriodMonthly
	}

	benefitsText := raw.BenefitsText
	if benefitsText == "" {
		benefitsText = raw.Description
	}
	rec.Benefits = catalog.MatchBenefits(benefitsText)

	rec.YearsExperience = classifier.InferYearsFromTitle(raw.Title)
	if rec.YearsExperience == nil {
		rec.YearsExperience = classifier.ClassifyExperience(raw.ExperienceText)
	}
	if rec.YearsExperience == nil {
		rec.YearsExperience = classifier.ClassifyExperience(raw.Description)
	}

	rec.MinEducation = classifier.ClassifyEducation(raw.EducationText)
	if rec.MinEducation == models.EducationNone {
		rec.MinEducation = classifier.ClassifyEducation(raw.Description)
	}

	technical, soft := classifier.ClassifySkills(raw.Description)
	rec.TechnicalSkills = classifier.MergeSkills(maxTechnicalSkills, classifier.InferSkillsFromTitle(raw.Title), technical)
	rec.SoftSkills = soft
	rec.LanguagesRequired = classifier.ClassifyLanguages(raw.Description)

	key := rec.IdentityKey()
	if key == "" {
		key = rec.Title + "|" + rec.CompanyName + "|" + rec.ExactLocation
	}
	rec.ID = uuid.NewSHA1(idNamespace, []byte(key)).String()

	return rec
}

// NormalizeAll keeps input order.
func (n *Normalizer) NormalizeAll(raws []shared.RawRecord) []models.CanonicalJobRecord {
	out := make([]models.CanonicalJobRecord, 0, len(raws))
	for _, r := range raws {
		out = append(out, n.Normalize(r))
	}
	return out
}

func companyName(company, location string) string {
	if catalog.IsPlaceholderCompany(company) {
		return "Empresa en " + placeholderCity(location)
	}
	return catalog.CanonicalCompany(company)
}

func placeholderCity(location string) string {
	city := strings.TrimSpace(strings.Split(location, ",")[0])
	if city == "" {
		return string(catalog.DefaultCity)
	}
	return city
}

func exactLocation(location string) string {
	if city, ok := catalog.MatchCity(location); ok {
		return string(city)
	}
	return location
}

func sector(text string) string {
	if s := catalog.NormalizeSector(text); s != "" {
		return s
	}
	return models.DefaultSector
}
