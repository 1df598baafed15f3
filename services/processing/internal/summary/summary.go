// Package summary aggregates validated records into descriptive statistics.
package summary

import (
	"sort"

	"empleos/services/processing/internal/models"
)

const DefaultTopCities = 10

type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type Summary struct {
	Total        int            `json:"total"`
	ByPlatform   map[string]int `json:"by_platform"`
	TopCities    []CityCount    `json:"top_cities"`
	WithSalary   int            `json:"with_salary"`
	ByModality   map[string]int `json:"by_modality"`
	SalaryMean   *float64       `json:"salary_min_mean"`
	SalaryMedian *float64       `json:"salary_min_median"`
}

// Summarize leaves records untouched. Cities are ranked by descending count,
// ties broken by name; salary statistics cover records with a salary_min only.
func Summarize(records []models.CanonicalJobRecord, topN int) Summary {
	s := Summary{
		Total:      len(records),
		ByPlatform: make(map[string]int),
		TopCities:  []CityCount{},
		ByModality: map[string]int{
			string(models.ModalityOnSite): 0,
			string(models.ModalityRemote): 0,
			string(models.ModalityHybrid): 0,
		},
	}

	cities := make(map[string]int)
	salaries := make([]float64, 0, len(records))

	for _, r := range records {
		s.ByPlatform[string(r.SourcePlatform)]++
		if r.ExactLocation != "" {
			cities[r.ExactLocation]++
		}
		if r.Modality != "" {
			s.ByModality[string(r.Modality)]++
		}
		if r.SalaryMin != nil {
			s.WithSalary++
			salaries = append(salaries, *r.SalaryMin)
		}
	}

	for city, n := range cities {
		s.TopCities = append(s.TopCities, CityCount{City: city, Count: n})
	}
	sort.Slice(s.TopCities, func(i, j int) bool {
		a, b := s.TopCities[i], s.TopCities[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.City < b.City
	})
	if topN > 0 && len(s.TopCities) > topN {
		s.TopCities = s.TopCities[:topN]
	}

	if len(salaries) > 0 {
		mean := 0.0
		for _, v := range salaries {
			mean += v
		}
		mean /= float64(len(salaries))
		s.SalaryMean = &mean

		sort.Float64s(salaries)
		mid := len(salaries) / 2
		median := salaries[mid]
		if len(salaries)%2 == 0 {
			median = (salaries[mid-1] + salaries[mid]) / 2
		}
		s.SalaryMedian = &median
	}

	return s
}
