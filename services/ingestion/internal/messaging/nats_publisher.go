package messaging

import (
	"context"
	"time"

	"empleos/common/errors"
	shared "empleos/common/models"
	"empleos/common/telemetry"
	"empleos/services/ingestion/internal/config"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("empleos/ingestion/messaging")

// Publisher hands raw records of a run to the processing service.
type Publisher interface {
	PublishRecord(ctx context.Context, runID string, record shared.RawRecord) error
	PublishRunMarker(ctx context.Context, marker shared.RunMarker) error
	Close()
}

type conn interface {
	Publish(subject string, data []byte) error
	Flush() error
	Close()
}

type natsPublisher struct {
	conn    conn
	logger  *zap.Logger
	subject string
}

func NewPublisher(logger *zap.Logger, config *config.Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Name("ingestion-service"),
		nats.Timeout(config.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(config.NATSURL, opts...)
	if err != nil {
		return nil, errors.Unavailable("connecting to NATS", err)
	}

	return newPublisher(nc, logger, config.RawSubject), nil
}

func newPublisher(c conn, logger *zap.Logger, subject string) *natsPublisher {
	return &natsPublisher{
		conn:    c,
		logger:  logger,
		subject: subject,
	}
}

func (p *natsPublisher) PublishRecord(ctx context.Context, runID string, record shared.RawRecord) error {
	_, span := tracer.Start(ctx, "PublishRecord")
	defer span.End()

	data, err := shared.RawEnvelope{RunID: runID, Record: record}.MarshalBinary()
	if err != nil {
		telemetry.RecordError(span, err)
		return errors.Internal("marshaling raw record", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", p.subject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(p.subject, data); err != nil {
		telemetry.RecordError(span, err)
		p.logger.Error("failed to publish raw record",
			zap.String("run", runID),
			zap.String("url", record.URL),
			zap.Error(err))
		return errors.Unavailable("publishing to NATS", err)
	}

	return nil
}

// PublishRunMarker closes the run on the records' own subject, so consumers
// receive it after every record published before it.
func (p *natsPublisher) PublishRunMarker(ctx context.Context, marker shared.RunMarker) error {
	_, span := tracer.Start(ctx, "PublishRunMarker")
	defer span.End()

	data, err := shared.RawEnvelope{RunID: marker.RunID, Marker: &marker}.MarshalBinary()
	if err != nil {
		telemetry.RecordError(span, err)
		return errors.Internal("marshaling run marker", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", p.subject),
		telemetry.Int("run.count", marker.Count),
	)

	if err := p.conn.Publish(p.subject, data); err != nil {
		telemetry.RecordError(span, err)
		return errors.Unavailable("publishing run marker", err)
	}
	if err := p.conn.Flush(); err != nil {
		telemetry.RecordError(span, err)
		return errors.Unavailable("flushing NATS connection", err)
	}

	p.logger.Info("published run marker",
		zap.String("run", marker.RunID),
		zap.Int("count", marker.Count),
		zap.String("subject", p.subject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
