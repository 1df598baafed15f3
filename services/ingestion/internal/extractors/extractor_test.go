package extractors

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const computrabajoPage = `
<html><body>
<article class="box_offer" data-id="3F5A1B">
  <h2><a class="js-o-link fc_base" href="/ofertas-de-trabajo/oferta-de-trabajo-de-desarrollador-python-en-envigado-3F5A1B">  Desarrollador
     Python </a></h2>
  <p><a class="fc_base t_ellipsis enterprise">Globant</a></p>
  <p><span class="salary">$ 4.000.000,00 (Mensual)</span></p>
  <p class="fs13 fc_aux date">Hace 2 días</p>
</article>
<article class="box_offer">
  <h2><a href="https://co.computrabajo.com/ofertas-de-trabajo/oferta-de-trabajo-de-analista-qa-9C8D7E#lc=ListOffers">Analista QA</a></h2>
  <span class="location">Medellín, Antioquia</span>
</article>
<article class="box_offer"><h2>Sin enlace</h2></article>
</body></html>`

func TestComputrabajoParse(t *testing.T) {
	e := New(Computrabajo)

	records, err := e.Parse("https://co.computrabajo.com/empleos-de-envigado", []byte(computrabajoPage))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Desarrollador Python", first.Title)
	assert.Equal(t, "Globant", first.Company)
	assert.Equal(t, "Envigado, Antioquia", first.Location)
	assert.Equal(t, "$ 4.000.000,00 (Mensual)", first.SalaryText)
	assert.Equal(t, "Hace 2 días", first.PostedText)
	assert.Equal(t, "https://co.computrabajo.com/ofertas-de-trabajo/oferta-de-trabajo-de-desarrollador-python-en-envigado-3F5A1B", first.URL)
	assert.Equal(t, "3F5A1B", first.PlatformJobID)
	assert.Equal(t, "Computrabajo", first.Platform)

	second := records[1]
	assert.Equal(t, "Analista QA", second.Title)
	assert.Equal(t, "Medellín, Antioquia", second.Location)
	assert.Equal(t, "https://co.computrabajo.com/ofertas-de-trabajo/oferta-de-trabajo-de-analista-qa-9C8D7E", second.URL)
	assert.Equal(t, "9C8D7E", second.PlatformJobID)
	assert.Empty(t, second.Company)
}

func TestParseEmptyPage(t *testing.T) {
	records, err := New(Elempleo).Parse("https://www.elempleo.com/co/empleos/antioquia", []byte("<html><body><p>Sin resultados</p></body></html>"))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestParseRejectsBadPageURL(t *testing.T) {
	_, err := New(Indeed).Parse("://bad", []byte("<html></html>"))
	assert.Error(t, err)
}

func TestIndeedParse(t *testing.T) {
	page := `<ul class="jobsearch-ResultsList"><li>
	  <div class="job_seen_beacon">
	    <h2 class="jobTitle"><a data-jk="abc123" href="/rc/clk?jk=abc123&fccid=x"><span title="Ingeniero de Datos">Ingeniero de Datos</span></a></h2>
	    <span class="companyName">Bancolombia</span>
	    <div class="companyLocation">Medellín, Antioquia</div>
	    <div class="job-snippet">SQL y Python</div>
	  </div>
	</li></ul>`

	records, err := New(Indeed).Parse("https://co.indeed.com/jobs?q=datos&l=Antioquia", []byte(page))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "Ingeniero de Datos", r.Title)
	assert.Equal(t, "Bancolombia", r.Company)
	assert.Equal(t, "Medellín, Antioquia", r.Location)
	assert.Equal(t, "SQL y Python", r.Description)
	assert.Equal(t, "abc123", r.PlatformJobID)
	assert.Equal(t, "https://co.indeed.com/rc/clk?jk=abc123&fccid=x", r.URL)
}

func TestFallbackLocationDefaultsToRegion(t *testing.T) {
	page := `<div class="job_listing"><a class="job_title" href="/empleo/soporte-ti-778">Soporte TI</a></div>`

	records, err := New(MasEmpleo).Parse("https://www.masempleo.com.co/empleos-en-antioquia", []byte(page))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Antioquia", records[0].Location)
	assert.Equal(t, "778", records[0].PlatformJobID)
	assert.Equal(t, "https://www.masempleo.com.co/empleo/soporte-ti-778", records[0].URL)
}

func TestComputrabajoPageURLs(t *testing.T) {
	urls := New(Computrabajo).PageURLs("ignored", 2)
	require.Len(t, urls, 2*len(computrabajoMunicipalities))
	assert.Equal(t, "https://co.computrabajo.com/empleos-de-medellin-antioquia", urls[0])
	assert.Equal(t, "https://co.computrabajo.com/empleos-de-medellin-antioquia?p=2", urls[1])
	assert.Equal(t, "https://co.computrabajo.com/empleos-de-envigado", urls[2])
}

func TestSearchPageURLs(t *testing.T) {
	urls := New(Indeed).PageURLs("desarrollador python", 2)
	assert.Equal(t, []string{
		"https://co.indeed.com/jobs?l=Antioquia&q=desarrollador+python",
		"https://co.indeed.com/jobs?l=Antioquia&q=desarrollador+python&start=10",
	}, urls)

	urls = New(Elempleo).PageURLs("", 0)
	assert.Equal(t, []string{"https://www.elempleo.com/co/empleos/antioquia"}, urls)
}

func TestByName(t *testing.T) {
	e, ok := ByName(" computrabajo ")
	require.True(t, ok)
	assert.Equal(t, "Computrabajo", e.Platform())

	_, ok = ByName("LinkedIn")
	assert.False(t, ok)
}

func TestSlugOnlyURLsHaveNoJobID(t *testing.T) {
	page := `
<div class="job-item"><a class="job-title" href="/co/empleos/desarrollador-java-senior">Desarrollador Java Senior</a></div>
<div class="job-item"><a class="job-title" href="/co/empleos/analista-datos-senior">Analista de Datos Senior</a></div>`

	records, err := New(Magneto365).Parse("https://www.magneto365.com/co/empleos-en-antioquia", []byte(page))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Empty(t, records[0].PlatformJobID)
	assert.Empty(t, records[1].PlatformJobID)
	assert.Equal(t, "https://www.magneto365.com/co/empleos/desarrollador-java-senior", records[0].URL)
	assert.Equal(t, "https://www.magneto365.com/co/empleos/analista-datos-senior", records[1].URL)
}

func TestJobIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://co.indeed.com/viewjob?jk=5f2e9a", "5f2e9a"},
		{"https://www.elempleo.com/co/ofertas-trabajo/desarrollador-net-1886412.html", "1886412"},
		{"https://www.masempleo.com.co/empleo/soporte-ti-778/", "778"},
		{"https://www.magneto365.com/co/empleos/desarrollador-java-senior", ""},
		{"https://www.magneto365.com/co/empleos/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			empty := &goquery.Selection{}
			assert.Equal(t, tt.want, jobID(empty, empty, nil, tt.url))
		})
	}
}
