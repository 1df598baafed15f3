package catalog

import "strings"

// City is a recognized Antioquia location.
type City string

const (
	CityMedellin   City = "Medellín"
	CityEnvigado   City = "Envigado"
	CitySabaneta   City = "Sabaneta"
	CityItagui     City = "Itagüí"
	CityBello      City = "Bello"
	CityRionegro   City = "Rionegro"
	CityLaEstrella City = "La Estrella"
	CityCaldas     City = "Caldas"
	CityCopacabana City = "Copacabana"
	CityGirardota  City = "Girardota"
	CityBarbosa    City = "Barbosa"
	CityApartado   City = "Apartadó"
	CityTurbo      City = "Turbo"
	CityUraba      City = "Urabá"
	CityAntioquia  City = "Antioquia"
)

// Cities is ordered so that municipalities win over the department name,
// e.g. "Envigado, Antioquia" resolves to Envigado.
var Cities = []City{
	CityMedellin,
	CityEnvigado,
	CitySabaneta,
	CityItagui,
	CityBello,
	CityRionegro,
	CityLaEstrella,
	CityCaldas,
	CityCopacabana,
	CityGirardota,
	CityBarbosa,
	CityApartado,
	CityTurbo,
	CityUraba,
	CityAntioquia,
}

// DefaultCity stands in for an empty location when synthesizing a company placeholder.
const DefaultCity = CityMedellin

// MatchCity returns the first city whose name occurs in location, ignoring case and accents.
func MatchCity(location string) (City, bool) {
	folded := Fold(strings.TrimSpace(location))
	if folded == "" {
		return "", false
	}
	for _, c := range Cities {
		if strings.Contains(folded, Fold(string(c))) {
			return c, true
		}
	}
	return "", false
}
