package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"empleos/common/errors"
	"empleos/services/processing/internal/models"
)

const listSeparator = "|"

type column struct {
	name string
	get  func(r *models.CanonicalJobRecord) string
	set  func(r *models.CanonicalJobRecord, v string) error
}

func stringColumn(name string, field func(r *models.CanonicalJobRecord) *string) column {
	return column{
		name: name,
		get:  func(r *models.CanonicalJobRecord) string { return *field(r) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			*field(r) = v
			return nil
		},
	}
}

func listColumn(name string, field func(r *models.CanonicalJobRecord) *[]string) column {
	return column{
		name: name,
		get:  func(r *models.CanonicalJobRecord) string { return strings.Join(*field(r), listSeparator) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			if v == "" {
				*field(r) = []string{}
				return nil
			}
			*field(r) = strings.Split(v, listSeparator)
			return nil
		},
	}
}

func floatColumn(name string, field func(r *models.CanonicalJobRecord) **float64) column {
	return column{
		name: name,
		get: func(r *models.CanonicalJobRecord) string {
			if p := *field(r); p != nil {
				return strconv.FormatFloat(*p, 'f', -1, 64)
			}
			return ""
		},
		set: func(r *models.CanonicalJobRecord, v string) error {
			if v == "" {
				*field(r) = nil
				return nil
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			*field(r) = &f
			return nil
		},
	}
}

// The CSV layout is flat: one column per field, lists joined with "|",
// and an empty cell for an absent optional number.
var columns = []column{
	stringColumn("id", func(r *models.CanonicalJobRecord) *string { return &r.ID }),
	{
		name: "source_platform",
		get:  func(r *models.CanonicalJobRecord) string { return string(r.SourcePlatform) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			r.SourcePlatform = models.Platform(v)
			return nil
		},
	},
	stringColumn("platform_job_id", func(r *models.CanonicalJobRecord) *string { return &r.PlatformJobID }),
	stringColumn("listing_url", func(r *models.CanonicalJobRecord) *string { return &r.ListingURL }),
	stringColumn("company_name", func(r *models.CanonicalJobRecord) *string { return &r.CompanyName }),
	stringColumn("sector", func(r *models.CanonicalJobRecord) *string { return &r.Sector }),
	stringColumn("company_size", func(r *models.CanonicalJobRecord) *string { return &r.CompanySize }),
	stringColumn("exact_location", func(r *models.CanonicalJobRecord) *string { return &r.ExactLocation }),
	{
		name: "verified",
		get:  func(r *models.CanonicalJobRecord) string { return strconv.FormatBool(r.Verified) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			b, err := strconv.ParseBool(v)
			r.Verified = b
			return err
		},
	},
	stringColumn("title", func(r *models.CanonicalJobRecord) *string { return &r.Title }),
	{
		name: "seniority_level",
		get:  func(r *models.CanonicalJobRecord) string { return string(r.SeniorityLevel) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			r.SeniorityLevel = models.Seniority(v)
			return nil
		},
	},
	{
		name: "area",
		get:  func(r *models.CanonicalJobRecord) string { return string(r.Area) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			r.Area = models.Area(v)
			return nil
		},
	},
	{
		name: "modality",
		get:  func(r *models.CanonicalJobRecord) string { return string(r.Modality) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			r.Modality = models.Modality(v)
			return nil
		},
	},
	{
		name: "contract_type",
		get:  func(r *models.CanonicalJobRecord) string { return string(r.ContractType) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			r.ContractType = models.ContractType(v)
			return nil
		},
	},
	{
		name: "work_schedule",
		get:  func(r *models.CanonicalJobRecord) string { return string(r.WorkSchedule) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			r.WorkSchedule = models.WorkSchedule(v)
			return nil
		},
	},
	floatColumn("salary_min", func(r *models.CanonicalJobRecord) **float64 { return &r.SalaryMin }),
	floatColumn("salary_max", func(r *models.CanonicalJobRecord) **float64 { return &r.SalaryMax }),
	{
		name: "salary_period",
		get:  func(r *models.CanonicalJobRecord) string { return string(r.SalaryPeriod) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			r.SalaryPeriod = models.SalaryPeriod(v)
			return nil
		},
	},
	stringColumn("currency", func(r *models.CanonicalJobRecord) *string { return &r.Currency }),
	listColumn("benefits", func(r *models.CanonicalJobRecord) *[]string { return &r.Benefits }),
	{
		name: "years_experience",
		get: func(r *models.CanonicalJobRecord) string {
			if r.YearsExperience == nil {
				return ""
			}
			return strconv.Itoa(*r.YearsExperience)
		},
		set: func(r *models.CanonicalJobRecord, v string) error {
			if v == "" {
				r.YearsExperience = nil
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			r.YearsExperience = &n
			return nil
		},
	},
	{
		name: "min_education",
		get:  func(r *models.CanonicalJobRecord) string { return string(r.MinEducation) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			r.MinEducation = models.Education(v)
			return nil
		},
	},
	listColumn("technical_skills", func(r *models.CanonicalJobRecord) *[]string { return &r.TechnicalSkills }),
	listColumn("soft_skills", func(r *models.CanonicalJobRecord) *[]string { return &r.SoftSkills }),
	listColumn("languages_required", func(r *models.CanonicalJobRecord) *[]string { return &r.LanguagesRequired }),
	stringColumn("posting_date", func(r *models.CanonicalJobRecord) *string { return &r.PostingDate }),
	stringColumn("scrape_date", func(r *models.CanonicalJobRecord) *string { return &r.ScrapeDate }),
	{
		name: "status",
		get:  func(r *models.CanonicalJobRecord) string { return string(r.Status) },
		set: func(r *models.CanonicalJobRecord, v string) error {
			r.Status = models.Status(v)
			return nil
		},
	},
}

func header() []string {
	h := make([]string, len(columns))
	for i, c := range columns {
		h[i] = c.name
	}
	return h
}

// EncodeCSV writes a header row followed by one row per record.
func EncodeCSV(w io.Writer, records []models.CanonicalJobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header()); err != nil {
		return errors.Internal("failed to write csv header", err)
	}

	row := make([]string, len(columns))
	for i := range records {
		for j, c := range columns {
			row[j] = c.get(&records[i])
		}
		if err := cw.Write(row); err != nil {
			return errors.Internal(fmt.Sprintf("failed to write csv row %d", i+1), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Internal("failed to flush csv output", err)
	}
	return nil
}

// DecodeCSV is the inverse of EncodeCSV. Columns are matched by header name,
// so their order in the file does not matter.
func DecodeCSV(r io.Reader) ([]models.CanonicalJobRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.InvalidInput("failed to read csv", err)
	}
	if len(rows) == 0 {
		return nil, errors.InvalidInput("csv has no header row", nil)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimPrefix(name, "\ufeff")] = i
	}

	records := make([]models.CanonicalJobRecord, 0, len(rows)-1)
	for line, row := range rows[1:] {
		var rec models.CanonicalJobRecord
		for _, c := range columns {
			i, ok := index[c.name]
			if !ok {
				return nil, errors.InvalidInput("csv is missing column "+c.name, nil)
			}
			if err := c.set(&rec, row[i]); err != nil {
				return nil, errors.InvalidInput(fmt.Sprintf("invalid %s on row %d", c.name, line+2), err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
