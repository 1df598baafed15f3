package classifier

import (
	"strings"

	"empleos/services/processing/internal/models"
)

// Highest credential first.
var educationRules = []keywordRule[models.Education]{
	{keywords: []string{"doctorado", "phd"}, result: models.EducationDoctorate},
	{keywords: []string{"posgrado", "maestría", "maestria", "master"}, result: models.EducationGraduate},
	{keywords: []string{"pregrado", "universidad", "licenciatura"}, result: models.EducationUndergrad},
	{keywords: []string{"tecnólogo", "tecnologo"}, result: models.EducationTechnologist},
	{keywords: []string{"técnico", "tecnico"}, result: models.EducationTechnician},
	{keywords: []string{"bachillerato", "bachiller"}, result: models.EducationSecondary},
}

func ClassifyEducation(text string) models.Education {
	return firstMatch(strings.ToLower(text), educationRules, models.EducationNone)
}
