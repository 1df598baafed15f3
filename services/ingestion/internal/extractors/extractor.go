// Package extractors turns listing pages of the supported job boards into raw
// records. Every board is described by a Site and parsed by the same
// selector-driven extractor.
package extractors

import (
	"bytes"
	"net/url"
	"strings"

	"empleos/common/errors"
	shared "empleos/common/models"

	"github.com/PuerkitoBio/goquery"
)

type Extractor interface {
	Platform() string
	PageURLs(keyword string, maxPages int) []string
	Parse(pageURL string, html []byte) ([]shared.RawRecord, error)
}

// Selectors lists candidate CSS selectors per field. Candidates are tried in
// order and the first one that matches wins.
type Selectors struct {
	Card        []string
	Link        []string
	Title       []string
	Company     []string
	Location    []string
	Salary      []string
	Date        []string
	Description []string
	Contract    []string
	Modality    []string
	// IDAttrs are attributes on the card or link holding the platform job id.
	IDAttrs []string
}

type Site struct {
	Name      string
	Selectors Selectors
	// Pages builds the search page URLs for a keyword.
	Pages func(keyword string, maxPages int) []string
	// FallbackLocation gives the location for cards that do not show one.
	FallbackLocation func(pageURL string) string
}

type selectorExtractor struct {
	site Site
}

func New(site Site) Extractor {
	return &selectorExtractor{site: site}
}

func (e *selectorExtractor) Platform() string {
	return e.site.Name
}

func (e *selectorExtractor) PageURLs(keyword string, maxPages int) []string {
	if maxPages < 1 {
		maxPages = 1
	}
	return e.site.Pages(keyword, maxPages)
}

func (e *selectorExtractor) Parse(pageURL string, html []byte) ([]shared.RawRecord, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.InvalidInput("invalid page url "+pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, errors.InvalidInput("failed to parse html from "+pageURL, err)
	}

	sel := e.site.Selectors
	cards := first(doc.Selection, sel.Card)
	if cards == nil {
		return []shared.RawRecord{}, nil
	}

	records := make([]shared.RawRecord, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		if rec, ok := e.parseCard(base, card); ok {
			records = append(records, rec)
		}
	})
	return records, nil
}

func (e *selectorExtractor) parseCard(base *url.URL, card *goquery.Selection) (shared.RawRecord, bool) {
	sel := e.site.Selectors

	link := first(card, sel.Link)
	if link == nil {
		return shared.RawRecord{}, false
	}
	link = link.First()

	href, _ := link.Attr("href")
	listing := resolve(base, href)

	title := text(card, sel.Title)
	if title == "" {
		title = clean(link.Text())
	}
	if title == "" || listing == "" {
		return shared.RawRecord{}, false
	}

	rec := shared.RawRecord{
		Title:         title,
		Company:       text(card, sel.Company),
		Location:      text(card, sel.Location),
		SalaryText:    text(card, sel.Salary),
		PostedText:    text(card, sel.Date),
		URL:           listing,
		Platform:      e.site.Name,
		PlatformJobID: jobID(card, link, sel.IDAttrs, listing),
		Description:   text(card, sel.Description),
		ContractText:  text(card, sel.Contract),
		ModalityText:  text(card, sel.Modality),
	}
	if rec.Location == "" && e.site.FallbackLocation != nil {
		rec.Location = e.site.FallbackLocation(base.String())
	}
	return rec, true
}

// first returns the matches of the first candidate selector that matches anything.
func first(s *goquery.Selection, candidates []string) *goquery.Selection {
	for _, c := range candidates {
		if found := s.Find(c); found.Length() > 0 {
			return found
		}
	}
	return nil
}

func text(s *goquery.Selection, candidates []string) string {
	found := first(s, candidates)
	if found == nil {
		return ""
	}
	return clean(found.First().Text())
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// jobID reads the id from a card or link attribute, falling back to the
// trailing token of the listing path.
func jobID(card, link *goquery.Selection, attrs []string, listing string) string {
	for _, a := range attrs {
		if v, ok := card.Attr(a); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if v, ok := link.Attr(a); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	u, err := url.Parse(listing)
	if err != nil {
		return ""
	}
	for _, key := range []string{"jk", "id"} {
		if v := u.Query().Get(key); v != "" {
			return v
		}
	}

	segment := strings.TrimSuffix(u.Path, "/")
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	segment = strings.TrimSuffix(segment, ".html")
	if i := strings.LastIndex(segment, "-"); i >= 0 {
		segment = segment[i+1:]
	}
	// Slug words like "senior" are not ids; leaving them empty keys dedup on the URL.
	if !strings.ContainsAny(segment, "0123456789") {
		return ""
	}
	return segment
}
