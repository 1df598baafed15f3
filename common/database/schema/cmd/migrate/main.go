package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"empleos/common/database"
	"empleos/common/database/schema/migrations"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	dsn := flag.String("dsn", envOr("CLICKHOUSE_DSN", "127.0.0.1:9000"), "ClickHouse address")
	dbName := flag.String("database", envOr("CLICKHOUSE_DATABASE", "empleos"), "ClickHouse database")
	user := flag.String("username", envOr("CLICKHOUSE_USERNAME", "default"), "ClickHouse user")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, database.Options{
		DSN:      *dsn,
		Username: *user,
		Password: os.Getenv("CLICKHOUSE_PASSWORD"),
		Database: *dbName,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to ClickHouse", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx, migrations.All); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	logger.Info("All migrations completed successfully")
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
