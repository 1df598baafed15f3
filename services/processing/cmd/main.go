package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"empleos/common/database"
	"empleos/common/database/schema/migrations"
	"empleos/common/telemetry"
	"empleos/services/processing/internal/config"
	"empleos/services/processing/internal/events"
	"empleos/services/processing/internal/processor"
	"empleos/services/processing/internal/repository"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const serviceName = "empleos-processing"

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newNATSConnection(cfg *config.Config, lc fx.Lifecycle) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("processing-service"),
		nats.RetryOnFailedConnect(true),
	}
	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return nc.Drain()
		},
	})
	return nc, nil
}

func newDatabase(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (*database.Database, error) {
	ctx := context.Background()
	db, err := database.New(ctx, database.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, migrations.All); err != nil {
		db.Close()
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

func newClickHouseConnection(db *database.Database) clickhouse.Conn {
	return db.Conn()
}

func newJobRepository(conn clickhouse.Conn, logger *zap.Logger) repository.JobRepository {
	return repository.NewClickHouseRepository(conn, logger)
}

func newStore(repo repository.JobRepository) processor.Store {
	return repo
}

func newProcessorOptions(cfg *config.Config) processor.Options {
	return processor.Options{
		DataDir:     cfg.DataDir,
		ITOnly:      cfg.ITOnly,
		Validate:    cfg.Validate,
		TopCities:   cfg.TopCities,
		MinimumWage: cfg.MinimumWage,
	}
}

func newRunProcessor(p *processor.JobProcessor) events.RunProcessor {
	return p
}

func newTracer() trace.Tracer {
	return telemetry.GetTracer("empleos/processing")
}

func initTelemetry(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) error {
	shutdown, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTLPEndpoint, logger)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdown()
			return nil
		},
	})
	return nil
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newNATSConnection,
			newDatabase,
			newClickHouseConnection,
			newJobRepository,
			newStore,
			newProcessorOptions,
			processor.NewJobProcessor,
			newRunProcessor,
			events.NewHandler,
			newTracer,
		),
		fx.Invoke(
			initTelemetry,
			func(handler *events.Handler, lc fx.Lifecycle) error {
				return handler.RegisterSubscriptions(lc)
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
