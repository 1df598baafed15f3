package summary

import (
	"testing"

	"empleos/services/processing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(platform models.Platform, city string, modality models.Modality, salary *float64) models.CanonicalJobRecord {
	return models.CanonicalJobRecord{
		SourcePlatform: platform,
		ExactLocation:  city,
		Modality:       modality,
		SalaryMin:      salary,
	}
}

func TestSummarize(t *testing.T) {
	records := []models.CanonicalJobRecord{
		record(models.PlatformComputrabajo, "Medellín", models.ModalityOnSite, models.Float(3000000)),
		record(models.PlatformComputrabajo, "Envigado", models.ModalityRemote, models.Float(5000000)),
		record(models.PlatformElempleo, "Medellín", models.ModalityHybrid, nil),
		record(models.PlatformIndeed, "Bello", models.ModalityOnSite, models.Float(2000000)),
		record(models.PlatformIndeed, "Medellín", models.ModalityOnSite, models.Float(4000000)),
	}
	before := records[0]

	s := Summarize(records, 2)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, map[string]int{"Computrabajo": 2, "Elempleo": 1, "Indeed": 2}, s.ByPlatform)
	assert.Equal(t, []CityCount{{City: "Medellín", Count: 3}, {City: "Bello", Count: 1}}, s.TopCities)
	assert.Equal(t, 4, s.WithSalary)
	assert.Equal(t, map[string]int{"Presencial": 3, "Remoto": 1, "Híbrido": 1}, s.ByModality)

	require.NotNil(t, s.SalaryMean)
	require.NotNil(t, s.SalaryMedian)
	assert.Equal(t, 3500000.0, *s.SalaryMean)
	assert.Equal(t, 3500000.0, *s.SalaryMedian)

	assert.Equal(t, before, records[0])
	assert.Equal(t, 3000000.0, *records[0].SalaryMin)
}

func TestSummarizeOddMedian(t *testing.T) {
	s := Summarize([]models.CanonicalJobRecord{
		record(models.PlatformIndeed, "Bello", models.ModalityOnSite, models.Float(1000000)),
		record(models.PlatformIndeed, "Bello", models.ModalityOnSite, models.Float(9000000)),
		record(models.PlatformIndeed, "Bello", models.ModalityOnSite, models.Float(2000000)),
	}, DefaultTopCities)

	require.NotNil(t, s.SalaryMedian)
	assert.Equal(t, 2000000.0, *s.SalaryMedian)
	assert.Equal(t, 4000000.0, *s.SalaryMean)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, DefaultTopCities)
	assert.Equal(t, 0, s.Total)
	assert.Nil(t, s.SalaryMean)
	assert.Nil(t, s.SalaryMedian)
	assert.Empty(t, s.TopCities)
	assert.Equal(t, 0, s.ByModality["Remoto"])
}
