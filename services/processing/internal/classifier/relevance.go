package classifier

import "strings"

var itKeywords = []string{
	// development
	"desarrollador", "desarrolladora", "developer", "programador", "programadora",
	"fullstack", "full stack", "frontend", "front-end", "backend", "back-end",
	"web", "mobile", "app", "aplicaciones", "software", "sistema",
	// data
	"data", "datos", "analista", "analisis", "analisis de datos", "big data",
	"machine learning", "ml", "data scientist", "data engineer", "etl", "inteligencia artificial",
	// infrastructure
	"devops", "cloud", "aws", "azure", "gcp", "google cloud", "kubernetes", "k8s",
	"docker", "terraform", "ci/cd", "jenkins", "infraestructura", "sysadmin", "infra",
	"soporte tecnico", "soporte técnico", "helpdesk", "tecnico", "técnico", "tecnologia", "tecnología",
	// qa
	"qa", "quality", "tester", "testing", "pruebas", "calidad",
	// security
	"cybersecurity", "seguridad informatica", "seguridad información", "ciberseguridad",
	// roles and stacks
	"ingeniero sistemas", "ingeniera sistemas", "ingeniero software", "ingeniera software",
	"analista sistemas", "analista de sistemas",
	"python", "java", "javascript", "node", "react", "angular", "vue", "vuejs",
	"django", "flask", ".net", "php", "ruby", "go", "golang", "swift", "kotlin",
	"sql", "mongodb", "mysql", "postgres", "oracle", "dba", "base de datos",
	"sap", "erp", "crm", "salesforce",
	"redes", "network", "cisco", "ccna", "ccnp",
	"ux", "ui", "diseño digital", "producto", "product manager",
	"scrum", "agile", "metodologias ágiles",
}

// Non-IT occupations. Any hit rejects the posting even when an IT keyword is present.
var excludeKeywords = []string{
	"conductor", "chofer", "vigilante", "guardia",
	"cocinero", "cocina", "mesero", "camarero",
	"vendedor", "vendedora", "ventas", "comercial",
	"call center", "telemarketing",
	"profesor", "docente", "maestro", "tutor",
	"enfermero", "enfermera", "médico", "medico",
	"contador", "abogado", "abogacía",
	"recursos humanos", "rrhh", "gestión humana", "talento humano",
	"arquitecto", "construccion", "construcción", "obra civil",
	"mecánico", "mecanico", "electricista", "plomero", "carpintero",
	"soldador", "operario de producción", "fabrica", "fábrica",
	"agricultor", "ganadero", "veterinario", "ambiental",
	"marketing digital", "diseñador gráfico", "comunicador",
	"asesor financiero", "asesor de seguros",
}

// IsRelevantRole reports whether a posting looks like an IT role.
func IsRelevantRole(title, company, description string) bool {
	text := strings.ToLower(title + " " + company + " " + description)

	for _, k := range excludeKeywords {
		if strings.Contains(text, k) {
			return false
		}
	}
	for _, k := range itKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
