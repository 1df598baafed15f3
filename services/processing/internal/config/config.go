package config

import (
	"os"
	"strconv"
	"time"

	"empleos/common/errors"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	NATSURL         string        `yaml:"nats_url"`
	NATSConnTimeout time.Duration `yaml:"nats_conn_timeout"`
	RawSubject      string        `yaml:"raw_subject"`

	ClickHouseDSN          string        `yaml:"clickhouse_dsn"`
	ClickHouseMaxOpenConns int           `yaml:"clickhouse_max_open_conns"`
	ClickHouseMaxIdleConns int           `yaml:"clickhouse_max_idle_conns"`
	ClickHouseConnMaxLife  time.Duration `yaml:"clickhouse_conn_max_life"`
	ClickHouseUsername     string        `yaml:"clickhouse_username"`
	ClickHousePassword     string        `yaml:"clickhouse_password"`
	ClickHouseDatabase     string        `yaml:"clickhouse_database"`

	OTLPEndpoint string `yaml:"otlp_endpoint"`

	DataDir     string  `yaml:"data_dir"`
	MinimumWage float64 `yaml:"minimum_wage"`
	ITOnly      bool    `yaml:"it_only"`
	Validate    bool    `yaml:"validate"`
	TopCities   int     `yaml:"top_cities"`

	ProcessingTimeout time.Duration `yaml:"processing_timeout"`
	// PendingRunTTL drops buffered runs whose marker never arrives.
	PendingRunTTL     time.Duration `yaml:"pending_run_ttl"`
}

func defaults() *Config {
	return &Config{
		NATSURL:         "nats://localhost:4222",
		NATSConnTimeout: 10 * time.Second,
		RawSubject:      "jobs.raw",

		ClickHouseDSN:          "localhost:9000",
		ClickHouseMaxOpenConns: 10,
		ClickHouseMaxIdleConns: 5,
		ClickHouseConnMaxLife:  time.Hour,
		ClickHouseUsername:     "default",
		ClickHouseDatabase:     "empleos",

		DataDir:     "data",
		MinimumWage: 1423500,
		ITOnly:      true,
		Validate:    true,
		TopCities:   10,

		ProcessingTimeout: 5 * time.Minute,
		PendingRunTTL:     time.Hour,
	}
}

// LoadConfig reads .env, then the YAML file named by CONFIG_FILE, then
// environment overrides, in that order of increasing precedence.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.InvalidInput("failed to read config file "+path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.InvalidInput("failed to parse config file "+path, err)
		}
	}

	cfg.NATSURL = getEnvString("NATS_URL", cfg.NATSURL)
	cfg.NATSConnTimeout = getEnvDuration("NATS_CONN_TIMEOUT", cfg.NATSConnTimeout)
	cfg.RawSubject = getEnvString("RAW_SUBJECT", cfg.RawSubject)

	cfg.ClickHouseDSN = getEnvString("CLICKHOUSE_DSN", cfg.ClickHouseDSN)
	cfg.ClickHouseMaxOpenConns = getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", cfg.ClickHouseMaxOpenConns)
	cfg.ClickHouseMaxIdleConns = getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", cfg.ClickHouseMaxIdleConns)
	cfg.ClickHouseConnMaxLife = getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", cfg.ClickHouseConnMaxLife)
	cfg.ClickHouseUsername = getEnvString("CLICKHOUSE_USERNAME", cfg.ClickHouseUsername)
	cfg.ClickHousePassword = getEnvString("CLICKHOUSE_PASSWORD", cfg.ClickHousePassword)
	cfg.ClickHouseDatabase = getEnvString("CLICKHOUSE_DATABASE", cfg.ClickHouseDatabase)

	cfg.OTLPEndpoint = getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)

	cfg.DataDir = getEnvString("DATA_DIR", cfg.DataDir)
	cfg.MinimumWage = getEnvFloat("MINIMUM_WAGE", cfg.MinimumWage)
	cfg.ITOnly = getEnvBool("IT_ONLY", cfg.ITOnly)
	cfg.Validate = getEnvBool("VALIDATE", cfg.Validate)
	cfg.TopCities = getEnvInt("TOP_CITIES", cfg.TopCities)
	cfg.ProcessingTimeout = getEnvDuration("PROCESSING_TIMEOUT", cfg.ProcessingTimeout)
	cfg.PendingRunTTL = getEnvDuration("PENDING_RUN_TTL", cfg.PendingRunTTL)

	if cfg.DataDir == "" {
		return nil, errors.InvalidInput("DATA_DIR is required", nil)
	}
	if cfg.MinimumWage <= 0 {
		return nil, errors.InvalidInput("MINIMUM_WAGE must be positive", nil)
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
