package telemetry

import (
	"context"
	"time"

	"empleos/common/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	tracer "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const serviceVersion = "0.3.0"

func String(key string, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

func Int(key string, value int) attribute.KeyValue {
	return attribute.Int(key, value)
}

// RecordError marks the span as failed.
func RecordError(span tracer.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// InitTracer installs a global tracer provider exporting to collectorURL over OTLP/gRPC.
// An empty collectorURL leaves the default no-op provider in place.
func InitTracer(ctx context.Context, serviceName string, collectorURL string, logger *zap.Logger) (func(), error) {
	if collectorURL == "" {
		logger.Info("Tracing disabled, no collector configured")
		return func() {}, nil
	}

	conn, err := grpc.DialContext(ctx, collectorURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, errors.Unavailable("failed to create gRPC connection to collector", err)
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, errors.Internal("failed to create trace exporter", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, errors.Internal("failed to create resource", err)
	}

	bsp := trace.NewBatchSpanProcessor(
		exporter,
		trace.WithBatchTimeout(time.Second*5),
	)

	tracerProvider := trace.NewTracerProvider(
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithResource(res),
		trace.WithSpanProcessor(bsp),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Info("Tracing enabled", zap.String("collector", collectorURL))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Error shutting down tracer provider", zap.Error(err))
		}
		if err := conn.Close(); err != nil {
			logger.Warn("Error closing gRPC connection", zap.Error(err))
		}
	}, nil
}

// GetTracer returns an OpenTelemetry tracer for the specified service name.
func GetTracer(serviceName string) tracer.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName)
}
