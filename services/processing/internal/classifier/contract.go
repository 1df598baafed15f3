package classifier

import (
	"strings"

	"empleos/services/processing/internal/models"
)

var contractRules = []keywordRule[models.ContractType]{
	{keywords: []string{"indefinido", "planta", "permanente"}, result: models.ContractIndefinite},
	{keywords: []string{"término fijo", "termino fijo", "fijo"}, result: models.ContractFixedTerm},
	{keywords: []string{"prestación de servicios", "prestacion de servicios", "freelance"}, result: models.ContractServices},
	{keywords: []string{"obra o labor", "obra labor", "contrato por obra"}, result: models.ContractPerJob},
	{keywords: []string{"temporal", "proyecto", "pasantía", "pasantia", "practicante", "aprendiz", "suplencia"}, result: models.ContractTemporary},
}

func ClassifyContract(text string) models.ContractType {
	return firstMatch(strings.ToLower(text), contractRules, models.ContractUnspecified)
}

var scheduleRules = []keywordRule[models.WorkSchedule]{
	{keywords: []string{"medio tiempo", "tiempo parcial", "part-time", "part time"}, result: models.SchedulePartTime},
	{keywords: []string{"por horas"}, result: models.ScheduleHourly},
	{keywords: []string{"freelance"}, result: models.ScheduleFreelance},
	{keywords: []string{"tiempo completo", "full-time", "full time"}, result: models.ScheduleFullTime},
}

func ClassifySchedule(text string) models.WorkSchedule {
	return firstMatch(strings.ToLower(text), scheduleRules, models.ScheduleFullTime)
}

var modalityRules = []keywordRule[models.Modality]{
	{keywords: []string{"remoto", "remote", "desde casa", "home office", "teletrabajo"}, result: models.ModalityRemote},
	{keywords: []string{"híbrido", "hibrido", "hybrid"}, result: models.ModalityHybrid},
}

// ClassifyModality defaults to Presencial.
func ClassifyModality(text string) models.Modality {
	return firstMatch(strings.ToLower(text), modalityRules, models.ModalityOnSite)
}

var languageRules = []keywordRule[string]{
	{keywords: []string{"inglés", "ingles", "english"}, result: "Inglés"},
	{keywords: []string{"portugués", "portugues", "portuguese"}, result: "Portugués"},
	{keywords: []string{"francés", "frances", "french"}, result: "Francés"},
	{keywords: []string{"alemán", "aleman", "german"}, result: "Alemán"},
}

func ClassifyLanguages(text string) []string {
	return allMatches(strings.ToLower(text), languageRules)
}
