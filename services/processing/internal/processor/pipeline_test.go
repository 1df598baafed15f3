package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	shared "empleos/common/models"
	"empleos/services/processing/internal/catalog"
	"empleos/services/processing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	stored [][]models.CanonicalJobRecord
	err    error
}

func (s *fakeStore) Store(_ context.Context, records []models.CanonicalJobRecord) error {
	s.stored = append(s.stored, records)
	return s.err
}

func backend() shared.RawRecord {
	return shared.RawRecord{
		Title:         "Desarrollador Backend Go",
		Company:       "Globant",
		Location:      "Envigado, Antioquia",
		SalaryText:    "$3.000.000 - $4.500.000",
		PostedText:    "Hace 3 días",
		URL:           "https://co.computrabajo.com/ofertas-de-trabajo/oferta-de-trabajo-de-desarrollador-go-ABC123",
		Platform:      "Computrabajo",
		PlatformJobID: "ABC123",
		Description:   "Microservicios con Docker y Kubernetes.",
	}
}

func rawBatch() []shared.RawRecord {
	noURL := backend()
	noURL.Title = "Desarrollador Java"
	noURL.URL = ""
	noURL.PlatformJobID = ""

	waiter := shared.RawRecord{
		Title:    "Mesero",
		Company:  "Restaurante El Patio",
		Location: "Medellín, Antioquia",
		URL:      "https://co.computrabajo.com/ofertas-de-trabajo/oferta-de-trabajo-de-mesero-XYZ",
		Platform: "Computrabajo",
	}

	return []shared.RawRecord{backend(), backend(), noURL, waiter}
}

func newTestProcessor(t *testing.T, store Store, opts Options) *JobProcessor {
	t.Helper()
	if opts.DataDir == "" {
		opts.DataDir = t.TempDir()
	}
	opts.MinimumWage = catalog.MinimumWage
	p := NewJobProcessor(zap.NewNop(), store, opts)
	p.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return p
}

func TestProcessFullPipeline(t *testing.T) {
	store := &fakeStore{}
	p := newTestProcessor(t, store, Options{ITOnly: true, Validate: true})

	report, err := p.Process(context.Background(), "empleos_test", rawBatch())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Raw)
	assert.Equal(t, 3, report.Relevant)
	assert.Equal(t, 2, report.Unique)
	assert.Equal(t, 1, report.Valid)
	assert.Equal(t, 1, report.Invalid)
	require.Len(t, report.Rejections, 1)
	assert.Contains(t, report.Rejections[0].Errors, "listing_url is empty")

	assert.Equal(t, 1, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.WithSalary)

	require.Len(t, store.stored, 1)
	require.Len(t, store.stored[0], 1)
	assert.Equal(t, "ABC123", store.stored[0][0].PlatformJobID)
	assert.Equal(t, "2026-03-07", store.stored[0][0].PostingDate)

	for _, path := range []string{report.Paths.JSONL, report.Paths.JSON, report.Paths.CSV, report.Paths.Summary} {
		assert.FileExists(t, path)
	}
	assert.FileExists(t, filepath.Join(p.opts.DataDir, "exports", "empleos_test_invalid.json"))
}

func TestProcessWithoutFilters(t *testing.T) {
	p := newTestProcessor(t, nil, Options{})

	report, err := p.Process(context.Background(), "all", rawBatch())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Relevant)
	assert.Equal(t, 3, report.Unique)
	assert.Equal(t, 3, report.Valid)
	assert.Empty(t, report.Rejections)

	_, err = os.Stat(filepath.Join(p.opts.DataDir, "exports", "all_invalid.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessEmptyBatch(t *testing.T) {
	store := &fakeStore{}
	p := newTestProcessor(t, store, Options{ITOnly: true, Validate: true})

	report, err := p.Process(context.Background(), "empty", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Valid)
	assert.Equal(t, 0, report.Summary.Total)
	assert.FileExists(t, report.Paths.CSV)
	require.Len(t, store.stored, 1)
	assert.Empty(t, store.stored[0])
}

func TestProcessStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("clickhouse down")}
	p := newTestProcessor(t, store, Options{Validate: true})

	report, err := p.Process(context.Background(), "failing", rawBatch()[:1])
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Valid)
	assert.FileExists(t, report.Paths.JSONL)
}

func TestProcessTodayInZoneAheadOfUTC(t *testing.T) {
	store := &fakeStore{}
	p := newTestProcessor(t, store, Options{ITOnly: true, Validate: true})
	ahead := time.FixedZone("UTC+5", 5*60*60)
	p.now = func() time.Time { return time.Date(2026, 10, 20, 2, 0, 0, 0, ahead) }

	raw := backend()
	raw.PostedText = "Publicado hoy"

	report, err := p.Process(context.Background(), "today", []shared.RawRecord{raw})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Valid)
	assert.Empty(t, report.Rejections)

	require.Len(t, store.stored, 1)
	require.Len(t, store.stored[0], 1)
	assert.Equal(t, "2026-10-20", store.stored[0][0].PostingDate)
	assert.Equal(t, "2026-10-20", store.stored[0][0].ScrapeDate)
}
