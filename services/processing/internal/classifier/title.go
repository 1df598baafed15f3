package classifier

import (
	"strings"

	"empleos/services/processing/internal/models"
)

const maxTitleSkills = 6

var seniorityRules = []keywordRule[models.Seniority]{
	{keywords: []string{"junior", "jr", "trainee", "practicante", "sin experiencia"}, result: models.SeniorityJunior},
	{keywords: []string{"semi", "mid", "1-3", "2-4"}, result: models.SenioritySemiSenior},
}

// InferSeniority defaults to Senior when the title names no level.
func InferSeniority(title string) models.Seniority {
	return firstMatch(strings.ToLower(title), seniorityRules, models.SenioritySenior)
}

var areaRules = []keywordRule[models.Area]{
	{keywords: []string{"data", "datos", "analista", "analytics"}, result: models.AreaDataScience},
	{keywords: []string{"devops", "cloud", "infra"}, result: models.AreaDevOps},
	{keywords: []string{"qa", "test", "pruebas"}, result: models.AreaQA},
	{keywords: []string{"security", "seguridad", "cyber"}, result: models.AreaSecurity},
	{keywords: []string{"redes", "network", "sysadmin"}, result: models.AreaNetworking},
}

func InferArea(title string) models.Area {
	return firstMatch(strings.ToLower(title), areaRules, models.AreaIT)
}

var titleYearsRules = []keywordRule[int]{
	{keywords: []string{"junior", "jr", "jr.", "trainee", "practicante", "sin experiencia"}, result: 1},
	{keywords: []string{"semi", "mid", "1-3", "2-4"}, result: 2},
	{keywords: []string{"senior", "sr", "sr.", "5 años", "5+", "5-"}, result: 5},
	{keywords: []string{"lead", "líder", "coordinador", "jefe"}, result: 6},
}

// InferYearsFromTitle returns nil when the title carries no level hint.
func InferYearsFromTitle(title string) *int {
	years := firstMatch(strings.ToLower(title), titleYearsRules, -1)
	if years < 0 {
		return nil
	}
	return models.Int(years)
}

type titleSkillRule struct {
	keywords []string
	skills   []string
}

var titleSkillRules = []titleSkillRule{
	// languages
	{keywords: []string{"python"}, skills: []string{"Python", "Django", "Flask"}},
	{keywords: []string{"java"}, skills: []string{"Java", "Spring"}},
	{keywords: []string{"javascript", "js"}, skills: []string{"JavaScript", "Node.js"}},
	{keywords: []string{"typescript"}, skills: []string{"TypeScript"}},
	{keywords: []string{".net", "c#"}, skills: []string{".NET", "C#"}},
	{keywords: []string{"php"}, skills: []string{"PHP", "Laravel"}},
	{keywords: []string{"ruby"}, skills: []string{"Ruby", "Rails"}},
	{keywords: []string{"go", "golang"}, skills: []string{"Go", "Golang"}},
	{keywords: []string{"swift"}, skills: []string{"Swift"}},
	{keywords: []string{"kotlin"}, skills: []string{"Kotlin"}},
	// frameworks
	{keywords: []string{"react"}, skills: []string{"React", "React Native"}},
	{keywords: []string{"angular"}, skills: []string{"Angular"}},
	{keywords: []string{"vue"}, skills: []string{"Vue.js"}},
	{keywords: []string{"django"}, skills: []string{"Django"}},
	{keywords: []string{"flask"}, skills: []string{"Flask"}},
	{keywords: []string{"spring"}, skills: []string{"Spring"}},
	{keywords: []string{"node"}, skills: []string{"Node.js"}},
	// data
	{keywords: []string{"data", "datos"}, skills: []string{"SQL", "Excel", "Power BI"}},
	{keywords: []string{"machine learning", "ml "}, skills: []string{"Machine Learning", "Python", "TensorFlow"}},
	{keywords: []string{"analytics"}, skills: []string{"Analytics", "Tableau"}},
	{keywords: []string{"etl"}, skills: []string{"ETL"}},
	// cloud
	{keywords: []string{"devops"}, skills: []string{"Docker", "Kubernetes", "CI/CD"}},
	{keywords: []string{"cloud"}, skills: []string{"AWS", "Azure", "GCP"}},
	{keywords: []string{"aws"}, skills: []string{"AWS"}},
	{keywords: []string{"azure"}, skills: []string{"Azure"}},
	{keywords: []string{"gcp"}, skills: []string{"Google Cloud"}},
	{keywords: []string{"docker"}, skills: []string{"Docker"}},
	{keywords: []string{"kubernetes", "k8s"}, skills: []string{"Kubernetes", "K8s"}},
	{keywords: []string{"terraform"}, skills: []string{"Terraform"}},
	{keywords: []string{"jenkins"}, skills: []string{"Jenkins"}},
	// databases
	{keywords: []string{"sql"}, skills: []string{"SQL"}},
	{keywords: []string{"mysql"}, skills: []string{"MySQL"}},
	{keywords: []string{"postgres", "postgresql"}, skills: []string{"PostgreSQL"}},
	{keywords: []string{"mongo"}, skills: []string{"MongoDB"}},
	{keywords: []string{"oracle"}, skills: []string{"Oracle"}},
	{keywords: []string{"redis"}, skills: []string{"Redis"}},
	// qa
	{keywords: []string{"qa", "testing", "tester"}, skills: []string{"QA", "Testing", "Selenium"}},
	{keywords: []string{"selenium"}, skills: []string{"Selenium"}},
	{keywords: []string{"cypress"}, skills: []string{"Cypress"}},
	// support and infrastructure
	{keywords: []string{"soporte"}, skills: []string{"Soporte técnico", "Windows", "Linux", "Helpdesk"}},
	{keywords: []string{"infraestructura", "infra"}, skills: []string{"Infraestructura", "Redes"}},
	{keywords: []string{"redes", "network"}, skills: []string{"Redes", "Cisco", "VPN"}},
	{keywords: []string{"security", "seguridad"}, skills: []string{"Ciberseguridad", "Security"}},
	{keywords: []string{"sysadmin"}, skills: []string{"SysAdmin", "Linux", "Windows Server"}},
	// general
	{keywords: []string{"software", "desarrollador", "programador"}, skills: []string{"Desarrollo de Software"}},
	{keywords: []string{"web"}, skills: []string{"Desarrollo Web"}},
	{keywords: []string{"mobile", "móvil"}, skills: []string{"Desarrollo Mobile"}},
	{keywords: []string{"fullstack", "full stack"}, skills: []string{"Full Stack", "Frontend", "Backend"}},
	{keywords: []string{"frontend", "front-end"}, skills: []string{"Frontend", "CSS", "HTML"}},
	{keywords: []string{"backend", "back-end"}, skills: []string{"Backend"}},
	{keywords: []string{"erp", "sap"}, skills: []string{"SAP", "ERP"}},
	{keywords: []string{"crm"}, skills: []string{"CRM"}},
	{keywords: []string{"soporte", "support", "tecnico", "técnico"}, skills: []string{"Soporte técnico", "Windows", "Helpdesk"}},
	{keywords: []string{"analista", "analisis", "analysis"}, skills: []string{"Análisis de datos", "Excel", "Reporting"}},
	{keywords: []string{"mejora continua", "procesos"}, skills: []string{"Mejora continua", "Procesos", "Lean"}},
	{keywords: []string{"mantenimiento", "refrigeracion", "refrigeración"}, skills: []string{"Mantenimiento", "Refrigeración"}},
	{keywords: []string{"seguridad electronica", "electrónica"}, skills: []string{"Electrónica", "CCTV", "Seguridad electrónica"}},
	{keywords: []string{"cobros", "cartera", "creditos"}, skills: []string{"Cobros", "Cartera", "Créditos"}},
	{keywords: []string{"servicios", "servicio", "general"}, skills: []string{"Atención al cliente", "Servicio"}},
	{keywords: []string{"montallantas", "vehículo", "vehiculo"}, skills: []string{"Montaje", "Vehículos"}},
	{keywords: []string{"punto de servicio", "pdv"}, skills: []string{"PDV", "Puntos de venta"}},
	{keywords: []string{"auxiliar", "asistente"}, skills: []string{"Auxiliar", "Asistencia"}},
}

// Used only when no skill rule fires.
var titleAreaFallback = []keywordRule[string]{
	{keywords: []string{"data", "datos", "analista"}, result: "Ciencia de Datos"},
	{keywords: []string{"devops", "cloud", "infra"}, result: "DevOps"},
	{keywords: []string{"qa", "test"}, result: "QA"},
	{keywords: []string{"security", "seguridad"}, result: "Seguridad"},
}

// InferSkillsFromTitle returns up to six skill tags implied by a job title,
// deduplicated case-insensitively in first-seen order. A title with no skill
// hint yields a single coarse area tag.
func InferSkillsFromTitle(title string) []string {
	lower := strings.ToLower(title)

	var collected []string
	for _, r := range titleSkillRules {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				collected = append(collected, r.skills...)
				break
			}
		}
	}

	skills := MergeSkills(maxTitleSkills, collected)
	if len(skills) == 0 {
		return []string{firstMatch(lower, titleAreaFallback, "IT")}
	}
	return skills
}

// MergeSkills concatenates lists, drops case-insensitive duplicates keeping the
// first spelling, and truncates to limit. A limit of zero or less means no cap.
func MergeSkills(limit int, lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, s := range list {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}
