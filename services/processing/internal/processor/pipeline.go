// Package processor runs the batch pipeline over the raw records of one run:
// relevance filter, normalization, dedup, validation, export and storage.
package processor

import (
	"context"
	"path/filepath"
	"time"

	shared "empleos/common/models"
	"empleos/common/telemetry"
	"empleos/services/processing/internal/classifier"
	"empleos/services/processing/internal/dedup"
	"empleos/services/processing/internal/exporter"
	"empleos/services/processing/internal/models"
	"empleos/services/processing/internal/normalizer"
	"empleos/services/processing/internal/summary"
	"empleos/services/processing/internal/validator"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Store receives the records that passed validation.
type Store interface {
	Store(ctx context.Context, records []models.CanonicalJobRecord) error
}

type Options struct {
	// DataDir is the root holding processed/ and exports/.
	DataDir     string
	ITOnly      bool
	Validate    bool
	TopCities   int
	MinimumWage float64
}

// Report describes one pipeline pass.
type Report struct {
	Name       string                    `json:"name"`
	Raw        int                       `json:"raw"`
	Relevant   int                       `json:"relevant"`
	Unique     int                       `json:"unique"`
	Valid      int                       `json:"valid"`
	Invalid    int                       `json:"invalid"`
	Summary    summary.Summary           `json:"summary"`
	Paths      exporter.Paths            `json:"paths"`
	Rejections []models.ValidationResult `json:"rejections"`
}

type JobProcessor struct {
	logger *zap.Logger
	tracer trace.Tracer
	store  Store
	opts   Options
	now    func() time.Time
}

// NewJobProcessor builds a processor; store may be nil to skip persistence.
func NewJobProcessor(logger *zap.Logger, store Store, opts Options) *JobProcessor {
	if opts.TopCities <= 0 {
		opts.TopCities = summary.DefaultTopCities
	}
	return &JobProcessor{
		logger: logger,
		tracer: telemetry.GetTracer("empleos/processing/processor"),
		store:  store,
		opts:   opts,
		now:    time.Now,
	}
}

// Process runs one synchronous pass over raws. Per-record problems land in the
// report; only export and storage failures are returned as errors.
func (p *JobProcessor) Process(ctx context.Context, name string, raws []shared.RawRecord) (*Report, error) {
	ctx, span := p.tracer.Start(ctx, "JobProcessor.Process")
	defer span.End()
	span.SetAttributes(telemetry.String("run", name), telemetry.Int("raw", len(raws)))

	now := p.now()
	report := &Report{Name: name, Raw: len(raws), Rejections: []models.ValidationResult{}}

	relevant := raws
	if p.opts.ITOnly {
		relevant = make([]shared.RawRecord, 0, len(raws))
		for _, r := range raws {
			if classifier.IsRelevantRole(r.Title, r.Company, r.Description) {
				relevant = append(relevant, r)
			}
		}
	}
	report.Relevant = len(relevant)

	records := normalizer.New(now, p.opts.MinimumWage).NormalizeAll(relevant)
	records = dedup.Dedup(records)
	report.Unique = len(records)

	accepted := records
	if p.opts.Validate {
		var results []models.ValidationResult
		accepted, _, results = validator.New(func() time.Time { return now }, p.opts.MinimumWage).ValidateBatch(records)

		for _, res := range results {
			if res.IsValid {
				if len(res.Warnings) > 0 {
					p.logger.Debug("Record accepted with warnings",
						zap.String("id", res.Record.ID),
						zap.Strings("warnings", res.Warnings),
					)
				}
				continue
			}
			report.Rejections = append(report.Rejections, res)
			p.logger.Warn("Record rejected",
				zap.String("id", res.Record.ID),
				zap.String("title", res.Record.Title),
				zap.String("url", res.Record.ListingURL),
				zap.Strings("errors", res.Errors),
			)
		}
	}
	report.Valid = len(accepted)
	report.Invalid = len(report.Rejections)
	report.Summary = summary.Summarize(accepted, p.opts.TopCities)

	paths, err := exporter.ExportAll(p.opts.DataDir, name, accepted, report.Summary)
	if err != nil {
		telemetry.RecordError(span, err)
		return report, err
	}
	report.Paths = paths

	if len(report.Rejections) > 0 {
		rejectedPath := filepath.Join(p.opts.DataDir, "exports", name+"_invalid.json")
		if err := exporter.WriteResults(rejectedPath, report.Rejections); err != nil {
			p.logger.Warn("Failed to write rejection report", zap.Error(err))
		}
	}

	if p.store != nil {
		if err := p.store.Store(ctx, accepted); err != nil {
			telemetry.RecordError(span, err)
			return report, err
		}
	}

	p.logger.Info("Pipeline finished",
		zap.String("run", name),
		zap.Int("raw", report.Raw),
		zap.Int("relevant", report.Relevant),
		zap.Int("unique", report.Unique),
		zap.Int("valid", report.Valid),
		zap.Int("invalid", report.Invalid),
	)

	return report, nil
}
