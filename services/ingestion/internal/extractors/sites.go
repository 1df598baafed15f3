package extractors

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const computrabajoBase = "https://co.computrabajo.com"

type municipality struct {
	Slug string
	City string
}

// Computrabajo has no region-wide search, so it is walked one municipality at a time.
var computrabajoMunicipalities = []municipality{
	{"medellin-antioquia", "Medellín"},
	{"envigado", "Envigado"},
	{"itagui", "Itagüí"},
	{"bello-antioquia", "Bello"},
	{"rionegro-antioquia", "Rionegro"},
	{"sabaneta-antioquia", "Sabaneta"},
	{"apartado", "Apartadó"},
	{"turbo-antioquia", "Turbo"},
	{"uraba-antioquia", "Urabá"},
}

var Computrabajo = Site{
	Name: "Computrabajo",
	Selectors: Selectors{
		Card:     []string{"article.box_offer", "div.box_offer", "div.bRS", "div[class*='offer']"},
		Link:     []string{"a[href*='/oferta-de-trabajo']", "h2 a", "a.js-o-link", "a[class*='title']"},
		Company:  []string{"a[class*='enterprise']", "span.icon-li-icon", ".company a"},
		Location: []string{"span[class*='location']", "p[class*='city']", ".location"},
		Salary:   []string{"span[class*='salary']", "p[class*='salary']"},
		Date:     []string{"span[class*='date']", "p[class*='date']"},
		Contract: []string{".contract"},
		Modality: []string{".modality"},
		IDAttrs:  []string{"data-id"},
	},
	Pages: func(_ string, maxPages int) []string {
		urls := make([]string, 0, len(computrabajoMunicipalities)*maxPages)
		for _, m := range computrabajoMunicipalities {
			for p := 1; p <= maxPages; p++ {
				u := fmt.Sprintf("%s/empleos-de-%s", computrabajoBase, m.Slug)
				if p > 1 {
					u += "?p=" + strconv.Itoa(p)
				}
				urls = append(urls, u)
			}
		}
		return urls
	},
	FallbackLocation: func(pageURL string) string {
		for _, m := range computrabajoMunicipalities {
			if strings.Contains(pageURL, "empleos-de-"+m.Slug) {
				return m.City + ", Antioquia"
			}
		}
		return "Antioquia"
	},
}

var Indeed = Site{
	Name: "Indeed",
	Selectors: Selectors{
		Card:        []string{".jobsearch-ResultsList > li", "div.job_seen_beacon"},
		Link:        []string{".jobTitle a", "a[data-jk]"},
		Title:       []string{".jobTitle span[title]", ".jobTitle"},
		Company:     []string{".companyName", "[data-testid='company-name']"},
		Location:    []string{".companyLocation", "[data-testid='text-location']"},
		Salary:      []string{".salaryText", ".salary-snippet-container"},
		Date:        []string{".date"},
		Description: []string{".job-snippet"},
		IDAttrs:     []string{"data-jk"},
	},
	Pages: searchPages("https://co.indeed.com/jobs", "q", func(p int) (string, string) {
		return "start", strconv.Itoa((p - 1) * 10)
	}, url.Values{"l": {"Antioquia"}}),
	FallbackLocation: antioquia,
}

var Magneto365 = Site{
	Name: "Magneto365",
	Selectors: Selectors{
		Card:        []string{".job-item", ".MuiCard-root"},
		Link:        []string{"a.job-title", "a[href*='/empleos/']", "a"},
		Title:       []string{".job-title", ".MuiTypography-h6"},
		Company:     []string{".company-name", ".companyInfo"},
		Location:    []string{".location", ".MuiChip-label"},
		Salary:      []string{".salary", ".salary-range"},
		Date:        []string{".posted-date", ".datePosted"},
		Description: []string{".job-description", ".description"},
		Contract:    []string{".contract-type"},
		Modality:    []string{".work-mode", ".modality"},
		IDAttrs:     []string{"data-id", "data-job-id"},
	},
	Pages:            searchPages("https://www.magneto365.com/co/empleos-en-antioquia", "q", pageParam, nil),
	FallbackLocation: antioquia,
}

var Elempleo = Site{
	Name: "Elempleo",
	Selectors: Selectors{
		Card:        []string{".job-item", ".job-box"},
		Link:        []string{"a.title", "a.job-title", "h2 a", "a"},
		Title:       []string{".title", ".job-title", "h2"},
		Company:     []string{".company", ".company-name"},
		Location:    []string{".location", ".city"},
		Salary:      []string{".salary", ".remuneration"},
		Date:        []string{".date", ".published"},
		Description: []string{".description", ".job-description"},
		Contract:    []string{".contract-type"},
		Modality:    []string{".work-mode"},
		IDAttrs:     []string{"data-id", "data-offer-id"},
	},
	Pages:            searchPages("https://www.elempleo.com/co/empleos/antioquia", "trabajo", pageParam, nil),
	FallbackLocation: antioquia,
}

var MasEmpleo = Site{
	Name: "MasEmpleo",
	Selectors: Selectors{
		Card:        []string{".job_listing", ".job-item"},
		Link:        []string{"a.job_title", "a[rel='job']", "a"},
		Title:       []string{".job_title", ".position"},
		Company:     []string{".company_name", ".company"},
		Location:    []string{".location", ".city"},
		Salary:      []string{".salary", ".wage"},
		Date:        []string{".date", ".posted"},
		Description: []string{".description", ".details"},
		Contract:    []string{".contract"},
		Modality:    []string{".work_type"},
		IDAttrs:     []string{"data-id"},
	},
	Pages:            searchPages("https://www.masempleo.com.co/empleos-en-antioquia", "q", pageParam, nil),
	FallbackLocation: antioquia,
}

func pageParam(p int) (string, string) {
	return "page", strconv.Itoa(p)
}

func antioquia(string) string {
	return "Antioquia"
}

// searchPages builds keyword search URLs; the first page carries no paging parameter.
func searchPages(base, keywordParam string, paging func(page int) (string, string), extra url.Values) func(string, int) []string {
	return func(keyword string, maxPages int) []string {
		urls := make([]string, 0, maxPages)
		for p := 1; p <= maxPages; p++ {
			q := url.Values{}
			for k, v := range extra {
				q[k] = v
			}
			if keyword = strings.TrimSpace(keyword); keyword != "" {
				q.Set(keywordParam, keyword)
			}
			if p > 1 {
				k, v := paging(p)
				q.Set(k, v)
			}
			u := base
			if encoded := q.Encode(); encoded != "" {
				u += "?" + encoded
			}
			urls = append(urls, u)
		}
		return urls
	}
}

// All returns an extractor for every supported board, in scheduling order.
func All() []Extractor {
	return []Extractor{New(Computrabajo), New(Elempleo), New(Indeed), New(Magneto365), New(MasEmpleo)}
}

// ByName finds the extractor for a board name, ignoring case.
func ByName(name string) (Extractor, bool) {
	for _, e := range All() {
		if strings.EqualFold(e.Platform(), strings.TrimSpace(name)) {
			return e, true
		}
	}
	return nil, false
}
