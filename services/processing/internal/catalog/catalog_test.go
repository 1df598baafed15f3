package catalog

import (
	"testing"

	"empleos/services/processing/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMatchCity(t *testing.T) {
	tests := []struct {
		location string
		want     City
		ok       bool
	}{
		{"Medellín, Antioquia", CityMedellin, true},
		{"MEDELLIN", CityMedellin, true},
		{"Itagui, Antioquia", CityItagui, true},
		{"Envigado, Antioquia", CityEnvigado, true},
		{"Antioquia", CityAntioquia, true},
		{"Apartado", CityApartado, true},
		{"Bogotá, D.C.", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			got, ok := MatchCity(tt.location)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "itagui", Fold("Itagüí"))
	assert.Equal(t, "uraba", Fold("URABÁ"))
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("sector ti y servicios", "ti"))
	assert.True(t, ContainsWord("it", "it"))
	assert.False(t, ContainsWord("textil", "ti"))
	assert.False(t, ContainsWord("hospitality", "it"))
}

func TestParsePlatform(t *testing.T) {
	assert.Equal(t, models.PlatformComputrabajo, ParsePlatform("computrabajo"))
	assert.Equal(t, models.PlatformMagneto365, ParsePlatform("Magneto365"))
	assert.Equal(t, models.PlatformMagneto365, ParsePlatform("magneto"))
	assert.Equal(t, models.Platform("Otro Portal"), ParsePlatform(" Otro Portal "))
}

func TestKnownPlatformURL(t *testing.T) {
	assert.True(t, KnownPlatformURL("https://co.computrabajo.com/ofertas-de-trabajo/oferta-123"))
	assert.True(t, KnownPlatformURL("https://www.magneto365.com/co/trabajos/x"))
	assert.False(t, KnownPlatformURL("https://example.com/job/1"))
}

func TestMatchBenefits(t *testing.T) {
	got := MatchBenefits("Prima extralegal, EPS, auxilio de transporte y horario flexible")
	assert.Equal(t, []string{"Salud/EPS", "Bonificación", "Horario flexible", "Transporte"}, got)
	assert.Empty(t, MatchBenefits(""))
	assert.NotNil(t, MatchBenefits(""))
}

func TestNormalizeSector(t *testing.T) {
	assert.Equal(t, "Tecnología", NormalizeSector("Tecnología / Software"))
	assert.Equal(t, "Tecnología", NormalizeSector("Sector TI"))
	assert.Equal(t, "Textil", NormalizeSector("Textil"))
	assert.Equal(t, "Finanzas", NormalizeSector("Banca y seguros"))
	assert.Equal(t, "Minería", NormalizeSector(" Minería "))
	assert.Equal(t, "", NormalizeSector(""))
}

func TestCanonicalCompany(t *testing.T) {
	assert.Equal(t, "Bancolombia", CanonicalCompany("Bancolombia S.A."))
	assert.Equal(t, "Suramericana", CanonicalCompany("Grupo SURA"))
	assert.Equal(t, "Credisura", CanonicalCompany("CREDISURA S.A.S"))
	assert.Equal(t, "Globant", CanonicalCompany("  Globant "))
}

func TestCompanyLiterals(t *testing.T) {
	assert.True(t, IsPlaceholderCompany("No especificada"))
	assert.True(t, IsPlaceholderCompany(" N/A "))
	assert.True(t, IsPlaceholderCompany(""))
	assert.False(t, IsPlaceholderCompany("Globant"))

	assert.True(t, IsConfidentialCompany("Confidencial"))
	assert.False(t, IsConfidentialCompany("Empresa confidencial del sector"))
}
