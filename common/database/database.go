package database

import (
	"context"
	"strings"
	"time"

	"empleos/common/database/schema"
	"empleos/common/errors"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Username        string
	Password        string
	Database        string
}

type Database struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

func New(ctx context.Context, opts Options, logger *zap.Logger) (*Database, error) {
	host := strings.Split(opts.DSN, "?")[0]

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{host},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout:     time.Second * 30,
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
	})
	if err != nil {
		return nil, errors.Internal("failed to create clickhouse connection", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, errors.Unavailable("failed to ping clickhouse", err)
	}

	logger.Info("Connected to ClickHouse",
		zap.String("addr", host),
		zap.String("database", opts.Database),
	)

	return &Database{
		conn:   conn,
		logger: logger,
	}, nil
}

// Migrate applies every migration not yet recorded in the migrations table, in order.
func (db *Database) Migrate(ctx context.Context, migrations []schema.Migration) error {
	migrator := schema.NewMigrator(db.conn, db.logger)

	if err := migrator.CreateMigrationsTable(ctx); err != nil {
		return err
	}

	applied, err := migrator.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if _, ok := applied[m.Version]; ok {
			db.logger.Debug("Migration already applied",
				zap.Int("version", m.Version),
				zap.String("description", m.Description),
			)
			continue
		}

		db.logger.Info("Applying migration",
			zap.Int("version", m.Version),
			zap.String("description", m.Description),
		)
		if err := migrator.ApplyMigration(ctx, m); err != nil {
			return err
		}
	}

	return nil
}

func (db *Database) Close() error {
	return db.conn.Close()
}

func (db *Database) Conn() clickhouse.Conn {
	return db.conn
}
