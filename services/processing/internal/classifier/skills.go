package classifier

import (
	"sort"
	"strings"
)

// Entries with a trailing space ("c ", "r ") only match the bare letter followed by a space.
var technicalVocabulary = []string{
	"python", "java", "javascript", "typescript", "c#", "c++", "c ", "ruby", "go", "rust",
	"php", "swift", "kotlin", "scala", "r ", "matlab", "sql", "mongodb", "postgresql",
	"mysql", "oracle", "redis", "elasticsearch", "aws", "azure", "gcp", "docker",
	"kubernetes", "jenkins", "git", "linux", "windows", "macos", "react", "angular",
	"vue", "django", "flask", "spring", "node", "express", "nextjs", "nuxt", "flutter",
	"react native", "ionic", "machine learning", "deep learning", "tensorflow", "pytorch",
	"pandas", "numpy", "scikit", "tableau", "power bi", "excel", "spark", "hadoop",
	"hive", "kafka", "rest api", "graphql", "microservices", "agile", "scrum",
}

var softVocabulary = []string{
	"comunicación", "comunicacion", "liderazgo", "trabajo en equipo", "equipo",
	"proactivo", "proactiva", "analítico", "analitica", "resolución de problemas",
	"adaptable", "flexible", "creativo", "organizado", "responsable", "puntual",
	"comprometido", "iniciativa", "autodidacta", "gestión del tiempo", "negociación",
	"atención al cliente", "servicio al cliente", "orientado a resultados",
}

// ClassifySkills returns every vocabulary entry found in text, sorted.
func ClassifySkills(text string) (technical, soft []string) {
	lower := strings.ToLower(text)
	return vocabularyHits(lower, technicalVocabulary), vocabularyHits(lower, softVocabulary)
}

func vocabularyHits(lower string, vocabulary []string) []string {
	seen := make(map[string]struct{})
	hits := []string{}
	if lower == "" {
		return hits
	}
	for _, entry := range vocabulary {
		if !strings.Contains(lower, entry) {
			continue
		}
		name := strings.TrimSpace(entry)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		hits = append(hits, name)
	}
	sort.Strings(hits)
	return hits
}
