package catalog

import "strings"

// MinimumWage is the 2024 SMMLV in COP.
const MinimumWage = 1423500.0

// Benefit is a benefit category with the keywords that reveal it.
type Benefit struct {
	Name     string
	Keywords []string
}

var Benefits = []Benefit{
	{Name: "Salud/EPS", Keywords: []string{"salud", "eps", "arl", "seguridad social"}},
	{Name: "Pensión", Keywords: []string{"pensión", "pension", "fondo de pensiones"}},
	{Name: "Bonificación", Keywords: []string{"bonificación", "bonificacion", "prima", "bono"}},
	{Name: "Horario flexible", Keywords: []string{"horario flexible", "flexible"}},
	{Name: "Teletrabajo", Keywords: []string{"home office", "remoto", "teletrabajo", "trabajo remoto"}},
	{Name: "Transporte", Keywords: []string{"transporte", "movilidad", "auxilio de transporte"}},
	{Name: "Alimentación", Keywords: []string{"alimentación", "alimentacion", "almuerzo", "casino"}},
	{Name: "Capacitación", Keywords: []string{"capacitación", "capacitacion", "formación", "curso"}},
	{Name: "Comisiones", Keywords: []string{"comisión", "comision", "comisiones", "variable"}},
}

// MatchBenefits returns every benefit category mentioned in text, in table order.
func MatchBenefits(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	if strings.TrimSpace(lower) == "" {
		return found
	}
	for _, b := range Benefits {
		if ContainsAny(lower, b.Keywords) {
			found = append(found, b.Name)
		}
	}
	return found
}

type sectorRule struct {
	keyword string
	sector  string
	// word requires keyword to appear as a whole word.
	word bool
}

var sectorRules = []sectorRule{
	{keyword: "tecnología", sector: "Tecnología"},
	{keyword: "tecnologia", sector: "Tecnología"},
	{keyword: "ti", sector: "Tecnología", word: true},
	{keyword: "it", sector: "Tecnología", word: true},
	{keyword: "software", sector: "Tecnología"},
	{keyword: "informática", sector: "Tecnología"},
	{keyword: "informatica", sector: "Tecnología"},
	{keyword: "finanzas", sector: "Finanzas"},
	{keyword: "bancos", sector: "Finanzas"},
	{keyword: "banca", sector: "Finanzas"},
	{keyword: "aseguradora", sector: "Finanzas"},
	{keyword: "manufactura", sector: "Manufactura"},
	{keyword: "manufacturing", sector: "Manufactura"},
	{keyword: "industrial", sector: "Manufactura"},
	{keyword: "producción", sector: "Manufactura"},
	{keyword: "servicios", sector: "Servicios"},
	{keyword: "salud", sector: "Salud"},
	{keyword: "médico", sector: "Salud"},
	{keyword: "medico", sector: "Salud"},
	{keyword: "hospital", sector: "Salud"},
	{keyword: "educación", sector: "Educación"},
	{keyword: "educacion", sector: "Educación"},
	{keyword: "universidad", sector: "Educación"},
	{keyword: "comercio", sector: "Comercio"},
	{keyword: "retail", sector: "Comercio"},
	{keyword: "construcción", sector: "Construcción"},
	{keyword: "construccion", sector: "Construcción"},
	{keyword: "agricultura", sector: "Agricultura"},
	{keyword: "agro", sector: "Agricultura"},
	{keyword: "transporte", sector: "Transporte"},
	{keyword: "logística", sector: "Logística"},
	{keyword: "logistica", sector: "Logística"},
	{keyword: "turismo", sector: "Turismo"},
	{keyword: "hotelería", sector: "Hotelería"},
	{keyword: "hoteleria", sector: "Hotelería"},
	{keyword: "telecom", sector: "Telecomunicaciones"},
	{keyword: "alimentos", sector: "Alimentos"},
	{keyword: "alimentacion", sector: "Alimentos"},
	{keyword: "automotriz", sector: "Automotriz"},
	{keyword: "automovil", sector: "Automotriz"},
	{keyword: "química", sector: "Químico"},
	{keyword: "quimica", sector: "Químico"},
	{keyword: "textil", sector: "Textil"},
	{keyword: "confección", sector: "Textil"},
	{keyword: "confeccion", sector: "Textil"},
}

// NormalizeSector maps free sector text to a category. Empty text yields "";
// unrecognized text is returned trimmed.
func NormalizeSector(text string) string {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	if lower == "" {
		return ""
	}
	for _, r := range sectorRules {
		if r.word {
			if ContainsWord(lower, r.keyword) {
				return r.sector
			}
			continue
		}
		if strings.Contains(lower, r.keyword) {
			return r.sector
		}
	}
	return trimmed
}

type companyAlias struct {
	contains  string
	canonical string
}

// credisura precedes sura so it is not swallowed by the shorter key.
var companyAliases = []companyAlias{
	{contains: "bancolombia s.a.", canonical: "Bancolombia"},
	{contains: "bancolombia sa", canonical: "Bancolombia"},
	{contains: "ecopetrol s.a.", canonical: "Ecopetrol"},
	{contains: "ecopetrol sa", canonical: "Ecopetrol"},
	{contains: "credisura", canonical: "Credisura"},
	{contains: "grupo sura", canonical: "Suramericana"},
	{contains: "sura", canonical: "Suramericana"},
	{contains: "grupo nutresa", canonical: "Grupo Nutresa"},
	{contains: "grupo éxito", canonical: "Grupo Éxito"},
	{contains: "alkosto", canonical: "Alkosto"},
	{contains: "falabella", canonical: "Falabella"},
	{contains: "homecenter", canonical: "Homecenter"},
}

// CanonicalCompany rewrites well-known employer names to a single spelling.
func CanonicalCompany(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	for _, a := range companyAliases {
		if strings.Contains(lower, a.contains) {
			return a.canonical
		}
	}
	return trimmed
}

// PlaceholderCompanies are values sites use when the employer is hidden or missing.
var PlaceholderCompanies = []string{"", "no especificada", "no especificado", "n/a", "unspecified"}

func IsPlaceholderCompany(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range PlaceholderCompanies {
		if n == p {
			return true
		}
	}
	return false
}

// ConfidentialCompanies are employer names that hide the real company.
var ConfidentialCompanies = []string{"confidencial", "confidential", "anonimo"}

func IsConfidentialCompany(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, c := range ConfidentialCompanies {
		if n == c {
			return true
		}
	}
	return false
}
