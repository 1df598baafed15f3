// Package repository persists validated records to ClickHouse.
package repository

import (
	"context"
	"fmt"
	"time"

	"empleos/common/errors"
	"empleos/common/telemetry"
	"empleos/services/processing/internal/models"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const insertJobPostings = `
	INSERT INTO job_postings (
		id, source_platform, platform_job_id, listing_url,
		company_name, sector, company_size, exact_location, verified,
		title, seniority_level, area, modality, contract_type, work_schedule,
		salary_min, salary_max, salary_period, currency, benefits,
		years_experience, min_education, technical_skills, soft_skills, languages_required,
		posting_date, scrape_date, status, ingested_at
	)
`

type JobRepository interface {
	Store(ctx context.Context, records []models.CanonicalJobRecord) error
}

type ClickHouseRepository struct {
	conn   clickhouse.Conn
	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewClickHouseRepository(conn clickhouse.Conn, logger *zap.Logger) *ClickHouseRepository {
	return &ClickHouseRepository{
		conn:   conn,
		logger: logger,
		tracer: telemetry.GetTracer("empleos/processing/repository"),
		now:    time.Now,
	}
}

// Store inserts records in one batch. Re-inserting a record with the same id
// replaces the earlier row once ClickHouse merges parts.
func (r *ClickHouseRepository) Store(ctx context.Context, records []models.CanonicalJobRecord) error {
	if len(records) == 0 {
		return nil
	}

	ctx, span := r.tracer.Start(ctx, "ClickHouseRepository.Store")
	defer span.End()
	span.SetAttributes(telemetry.Int("records", len(records)))

	batch, err := r.conn.PrepareBatch(ctx, insertJobPostings)
	if err != nil {
		telemetry.RecordError(span, err)
		return errors.Unavailable("prepare job_postings batch", err)
	}

	ingestedAt := r.now().UTC()
	for i := range records {
		row, err := rowFor(records[i], ingestedAt)
		if err != nil {
			_ = batch.Abort()
			return errors.InvalidInput(fmt.Sprintf("record %s", records[i].ID), err)
		}
		if err := batch.Append(row...); err != nil {
			_ = batch.Abort()
			telemetry.RecordError(span, err)
			return errors.Internal(fmt.Sprintf("append record %s", records[i].ID), err)
		}
	}

	if err := batch.Send(); err != nil {
		telemetry.RecordError(span, err)
		return errors.Unavailable("send job_postings batch", err)
	}

	r.logger.Info("Stored job postings", zap.Int("count", len(records)))
	return nil
}

// rowFor orders values as in insertJobPostings.
func rowFor(rec models.CanonicalJobRecord, ingestedAt time.Time) ([]interface{}, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", rec.ID, err)
	}

	scrapeDate, err := time.Parse(models.DateLayout, rec.ScrapeDate)
	if err != nil {
		return nil, fmt.Errorf("invalid scrape_date %q: %w", rec.ScrapeDate, err)
	}

	var years *int32
	if rec.YearsExperience != nil {
		y := int32(*rec.YearsExperience)
		years = &y
	}

	return []interface{}{
		id,
		string(rec.SourcePlatform),
		rec.PlatformJobID,
		rec.ListingURL,
		rec.CompanyName,
		rec.Sector,
		rec.CompanySize,
		rec.ExactLocation,
		rec.Verified,
		rec.Title,
		string(rec.SeniorityLevel),
		string(rec.Area),
		string(rec.Modality),
		string(rec.ContractType),
		string(rec.WorkSchedule),
		rec.SalaryMin,
		rec.SalaryMax,
		string(rec.SalaryPeriod),
		rec.Currency,
		nonNil(rec.Benefits),
		years,
		string(rec.MinEducation),
		nonNil(rec.TechnicalSkills),
		nonNil(rec.SoftSkills),
		nonNil(rec.LanguagesRequired),
		rec.PostingDate,
		scrapeDate,
		string(rec.Status),
		ingestedAt,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
