package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	shared "empleos/common/models"
	"empleos/common/telemetry"
	"empleos/services/processing/internal/config"
	"empleos/services/processing/internal/processor"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RunProcessor runs the pipeline over one closed ingestion run.
type RunProcessor interface {
	Process(ctx context.Context, name string, raws []shared.RawRecord) (*processor.Report, error)
}

type pendingRun struct {
	records  []shared.RawRecord
	lastSeen time.Time
}

// Handler buffers raw records per run and hands the batch to the processor
// once the run's marker arrives. Records and markers share one subscription,
// so a marker is always handled after every record published before it.
type Handler struct {
	logger    *zap.Logger
	nc        *nats.Conn
	tracer    trace.Tracer
	processor RunProcessor
	cfg       *config.Config
	now       func() time.Time

	mu      sync.Mutex
	pending map[string]*pendingRun
	sub     *nats.Subscription
	stop    chan struct{}
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, tracer trace.Tracer, p RunProcessor, cfg *config.Config) *Handler {
	return &Handler{
		logger:    logger,
		nc:        nc,
		tracer:    tracer,
		processor: p,
		cfg:       cfg,
		now:       time.Now,
		pending:   make(map[string]*pendingRun),
		stop:      make(chan struct{}),
	}
}

// RegisterSubscriptions subscribes without a queue group so that every
// record of a run reaches the instance that sees its marker.
func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	sub, err := h.nc.Subscribe(h.cfg.RawSubject, h.handleMessage)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", h.cfg.RawSubject, err)
	}
	// Runs are processed inside the callback; records arriving meanwhile must not be dropped.
	if err := sub.SetPendingLimits(-1, -1); err != nil {
		_ = sub.Unsubscribe()
		return fmt.Errorf("set pending limits on %s: %w", h.cfg.RawSubject, err)
	}

	h.sub = sub
	h.logger.Info("Registered NATS subscriptions", zap.String("subject", h.cfg.RawSubject))

	if h.cfg.PendingRunTTL > 0 {
		go h.janitor(h.cfg.PendingRunTTL)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			close(h.stop)
			return h.sub.Unsubscribe()
		},
	})

	return nil
}

func (h *Handler) handleMessage(msg *nats.Msg) {
	var env shared.RawEnvelope
	if err := env.UnmarshalBinary(msg.Data); err != nil {
		h.logger.Error("Failed to decode raw envelope",
			zap.Error(err),
			zap.String("subject", msg.Subject),
		)
		return
	}

	if env.IsMarker() {
		if env.Marker.RunID == "" {
			env.Marker.RunID = env.RunID
		}
		h.handleRunMarker(*env.Marker)
		return
	}
	h.handleRawRecord(env)
}

func (h *Handler) handleRawRecord(env shared.RawEnvelope) {
	if env.RunID == "" {
		h.logger.Warn("Dropping raw record without run id", zap.String("url", env.Record.URL))
		return
	}

	h.mu.Lock()
	run, ok := h.pending[env.RunID]
	if !ok {
		run = &pendingRun{}
		h.pending[env.RunID] = run
	}
	run.records = append(run.records, env.Record)
	run.lastSeen = h.now()
	h.mu.Unlock()
}

func (h *Handler) handleRunMarker(marker shared.RunMarker) {
	ctx, span := h.tracer.Start(context.Background(), "handleRunMarker")
	defer span.End()

	if marker.RunID == "" {
		h.logger.Warn("Dropping run marker without run id")
		return
	}

	h.mu.Lock()
	var raws []shared.RawRecord
	if run, ok := h.pending[marker.RunID]; ok {
		raws = run.records
	}
	delete(h.pending, marker.RunID)
	h.mu.Unlock()

	if len(raws) != marker.Count {
		h.logger.Warn("Run record count mismatch",
			zap.String("run", marker.RunID),
			zap.Int("expected", marker.Count),
			zap.Int("received", len(raws)),
		)
	}

	timeout := h.cfg.ProcessingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name := "empleos_" + marker.RunID
	span.SetAttributes(telemetry.String("run", name), telemetry.Int("records", len(raws)))

	report, err := h.processor.Process(ctx, name, raws)
	if err != nil {
		telemetry.RecordError(span, err)
		h.logger.Error("Failed to process run",
			zap.Error(err),
			zap.String("run", marker.RunID),
		)
		return
	}

	h.logger.Info("Successfully processed run",
		zap.String("run", marker.RunID),
		zap.Strings("platforms", marker.Platforms),
		zap.Int("valid", report.Valid),
		zap.Int("invalid", report.Invalid),
	)
}

func (h *Handler) janitor(ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			h.dropStale(ttl)
		}
	}
}

// dropStale discards runs that received nothing for longer than ttl and
// returns their ids.
func (h *Handler) dropStale(ttl time.Duration) []string {
	cutoff := h.now().Add(-ttl)

	h.mu.Lock()
	defer h.mu.Unlock()

	var dropped []string
	for id, run := range h.pending {
		if run.lastSeen.Before(cutoff) {
			dropped = append(dropped, id)
			delete(h.pending, id)
			h.logger.Warn("Dropping run without marker",
				zap.String("run", id),
				zap.Int("records", len(run.records)),
				zap.Time("last_seen", run.lastSeen),
			)
		}
	}
	return dropped
}

// Pending reports how many records are buffered for a run.
func (h *Handler) Pending(runID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if run, ok := h.pending[runID]; ok {
		return len(run.records)
	}
	return 0
}
