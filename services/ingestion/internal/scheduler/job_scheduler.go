package scheduler

import (
	"context"
	"sync"
	"time"

	"empleos/common/errors"
	shared "empleos/common/models"
	"empleos/common/telemetry"
	"empleos/services/ingestion/internal/config"
	"empleos/services/ingestion/internal/extractors"
	"empleos/services/ingestion/internal/fetch"
	"empleos/services/ingestion/internal/messaging"
	"empleos/services/ingestion/internal/staging"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("empleos/ingestion/scheduler")

const runIDLayout = "20060102_150405"

// RunResult describes one ingestion run.
type RunResult struct {
	RunID     string
	Records   int
	Platforms []string
	Failed    []string
}

type JobScheduler struct {
	fetcher    fetch.Fetcher
	extractors []extractors.Extractor
	publisher  messaging.Publisher
	stager     *staging.Stager
	logger     *zap.Logger
	config     *config.Config
	now        func() time.Time
	mutex      sync.Mutex
	isActive   bool
}

// NewJobScheduler builds a scheduler. publisher may be nil to only stage records locally.
func NewJobScheduler(fetcher fetch.Fetcher, exts []extractors.Extractor, publisher messaging.Publisher, stager *staging.Stager, logger *zap.Logger, config *config.Config) *JobScheduler {
	return &JobScheduler{
		fetcher:    fetcher,
		extractors: exts,
		publisher:  publisher,
		stager:     stager,
		logger:     logger,
		config:     config,
		now:        time.Now,
	}
}

// Start runs immediately, then every config.Interval until ctx ends. A zero
// interval performs a single run.
func (s *JobScheduler) Start(ctx context.Context) error {
	s.mutex.Lock()
	if s.isActive {
		s.mutex.Unlock()
		return nil
	}
	s.isActive = true
	s.mutex.Unlock()
	defer s.Stop()

	if _, err := s.Run(ctx); err != nil {
		s.logger.Error("initial run failed", zap.Error(err))
		if s.config.Interval <= 0 {
			return err
		}
	}
	if s.config.Interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Run(ctx); err != nil {
				s.logger.Error("periodic run failed", zap.Error(err))
			}
		}
	}
}

func (s *JobScheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.isActive = false
}

// Run extracts every platform in turn, staging and publishing its records,
// and closes the run with a marker. A platform that fails is logged and skipped.
func (s *JobScheduler) Run(ctx context.Context) (*RunResult, error) {
	ctx, span := tracer.Start(ctx, "JobScheduler.Run")
	defer span.End()

	result := &RunResult{
		RunID:     s.now().UTC().Format(runIDLayout),
		Platforms: []string{},
		Failed:    []string{},
	}
	span.SetAttributes(telemetry.String("run.id", result.RunID))
	s.logger.Info("starting ingestion run",
		zap.String("run", result.RunID),
		zap.Int("platforms", len(s.extractors)))

	for _, ext := range s.extractors {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		records, err := s.scrapePlatform(ctx, ext)
		if err != nil {
			result.Failed = append(result.Failed, ext.Platform())
			s.logger.Error("platform failed, skipping",
				zap.String("platform", ext.Platform()),
				zap.Error(err))
			continue
		}

		if err := s.stager.Stage(result.RunID, records); err != nil {
			s.logger.Warn("failed to stage records",
				zap.String("platform", ext.Platform()),
				zap.Error(err))
		}

		if s.publisher != nil {
			for _, rec := range records {
				if err := s.publisher.PublishRecord(ctx, result.RunID, rec); err != nil {
					telemetry.RecordError(span, err)
					return result, err
				}
			}
		}

		result.Records += len(records)
		result.Platforms = append(result.Platforms, ext.Platform())
	}

	span.SetAttributes(telemetry.Int("run.records", result.Records))

	if s.publisher != nil {
		marker := shared.RunMarker{
			RunID:      result.RunID,
			Platforms:  result.Platforms,
			Count:      result.Records,
			FinishedAt: s.now().UTC(),
		}
		if err := s.publisher.PublishRunMarker(ctx, marker); err != nil {
			telemetry.RecordError(span, err)
			return result, err
		}
	}

	s.logger.Info("completed ingestion run",
		zap.String("run", result.RunID),
		zap.Int("records", result.Records),
		zap.Strings("platforms", result.Platforms),
		zap.Strings("failed", result.Failed),
		zap.String("staged", s.stager.Path(result.RunID)))

	return result, nil
}

// scrapePlatform walks the platform's search pages. Individual pages may fail;
// the platform fails only when no page could be fetched.
func (s *JobScheduler) scrapePlatform(ctx context.Context, ext extractors.Extractor) ([]shared.RawRecord, error) {
	ctx, span := tracer.Start(ctx, "JobScheduler.scrapePlatform")
	defer span.End()
	span.SetAttributes(telemetry.String("platform", ext.Platform()))

	pages := ext.PageURLs(s.config.Keyword, s.config.MaxPages)
	records := []shared.RawRecord{}
	var lastErr error
	fetched := 0

	for _, page := range pages {
		body, err := s.fetcher.Get(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			s.logger.Warn("failed to fetch page",
				zap.String("platform", ext.Platform()),
				zap.String("url", page),
				zap.Error(err))
			continue
		}
		fetched++

		found, err := ext.Parse(page, body)
		if err != nil {
			s.logger.Warn("failed to parse page",
				zap.String("platform", ext.Platform()),
				zap.String("url", page),
				zap.Error(err))
			continue
		}
		s.logger.Debug("parsed page",
			zap.String("platform", ext.Platform()),
			zap.String("url", page),
			zap.Int("records", len(found)))
		records = append(records, found...)
	}

	span.SetAttributes(
		telemetry.Int("pages.fetched", fetched),
		telemetry.Int("records", len(records)),
	)

	if fetched == 0 && len(pages) > 0 {
		telemetry.RecordError(span, lastErr)
		return nil, errors.Unavailable("no page could be fetched for "+ext.Platform(), lastErr)
	}
	return records, nil
}
