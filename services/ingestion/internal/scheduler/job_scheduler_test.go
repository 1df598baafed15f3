package scheduler

import (
	"context"
	"testing"
	"time"

	"empleos/common/errors"
	shared "empleos/common/models"
	"empleos/services/ingestion/internal/config"
	"empleos/services/ingestion/internal/extractors"
	"empleos/services/ingestion/internal/staging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	body, ok := f.pages[url]
	if !ok {
		return nil, errors.Unavailable("unexpected status code 503 for "+url, nil)
	}
	return []byte(body), nil
}

type fakePublisher struct {
	records []shared.RawEnvelope
	markers []shared.RunMarker
}

func (p *fakePublisher) PublishRecord(_ context.Context, runID string, rec shared.RawRecord) error {
	p.records = append(p.records, shared.RawEnvelope{RunID: runID, Record: rec})
	return nil
}

func (p *fakePublisher) PublishRunMarker(_ context.Context, m shared.RunMarker) error {
	p.markers = append(p.markers, m)
	return nil
}

func (p *fakePublisher) Close() {}

func board(name, base string) extractors.Extractor {
	return extractors.New(extractors.Site{
		Name: name,
		Selectors: extractors.Selectors{
			Card: []string{".job"},
			Link: []string{"a"},
		},
		Pages: func(_ string, maxPages int) []string {
			urls := []string{base + "/1"}
			if maxPages > 1 {
				urls = append(urls, base+"/2")
			}
			return urls
		},
	})
}

const twoJobs = `<div class="job"><a href="/oferta/desarrollador-go-11">Desarrollador Go</a></div>
<div class="job"><a href="/oferta/analista-datos-12">Analista de Datos</a></div>`

func newTestScheduler(t *testing.T, f *fakeFetcher, p *fakePublisher, exts ...extractors.Extractor) (*JobScheduler, *staging.Stager) {
	t.Helper()
	stager := staging.New(t.TempDir())
	cfg := &config.Config{Keyword: "desarrollador", MaxPages: 2}
	s := NewJobScheduler(f, exts, p, stager, zap.NewNop(), cfg)
	s.now = func() time.Time { return time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC) }
	return s, stager
}

func TestRunPublishesAndStages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://a.example/1": twoJobs,
		"https://a.example/2": `<p>sin resultados</p>`,
		"https://b.example/1": `<div class="job"><a href="https://b.example/oferta/soporte-ti-99">Soporte TI</a></div>`,
	}}
	p := &fakePublisher{}
	s, stager := newTestScheduler(t, f, p, board("BoardA", "https://a.example"), board("BoardB", "https://b.example"))

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "20260310_123000", result.RunID)
	assert.Equal(t, 3, result.Records)
	assert.Equal(t, []string{"BoardA", "BoardB"}, result.Platforms)
	assert.Empty(t, result.Failed)

	require.Len(t, p.records, 3)
	assert.Equal(t, "20260310_123000", p.records[0].RunID)
	assert.Equal(t, "https://a.example/oferta/desarrollador-go-11", p.records[0].Record.URL)
	assert.Equal(t, "11", p.records[0].Record.PlatformJobID)

	require.Len(t, p.markers, 1)
	assert.Equal(t, 3, p.markers[0].Count)
	assert.Equal(t, []string{"BoardA", "BoardB"}, p.markers[0].Platforms)

	staged, err := stager.Load(result.RunID)
	require.NoError(t, err)
	assert.Len(t, staged, 3)
}

func TestRunSkipsFailingPlatform(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://b.example/1": twoJobs,
		"https://b.example/2": twoJobs,
	}}
	p := &fakePublisher{}
	s, _ := newTestScheduler(t, f, p, board("Down", "https://a.example"), board("Up", "https://b.example"))

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Down"}, result.Failed)
	assert.Equal(t, []string{"Up"}, result.Platforms)
	assert.Equal(t, 4, result.Records)
	require.Len(t, p.markers, 1)
	assert.Equal(t, 4, p.markers[0].Count)
}

func TestRunWithoutPublisherOnlyStages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{"https://a.example/1": twoJobs}}
	stager := staging.New(t.TempDir())
	cfg := &config.Config{MaxPages: 1}
	s := NewJobScheduler(f, []extractors.Extractor{board("BoardA", "https://a.example")}, nil, stager, zap.NewNop(), cfg)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Records)
	assert.Equal(t, []string{"https://a.example/1"}, f.calls)

	staged, err := stager.Load(result.RunID)
	require.NoError(t, err)
	assert.Len(t, staged, 2)
}

func TestStartSingleRun(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{"https://a.example/1": twoJobs, "https://a.example/2": twoJobs}}
	p := &fakePublisher{}
	s, _ := newTestScheduler(t, f, p, board("BoardA", "https://a.example"))

	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, p.markers, 1)
}
