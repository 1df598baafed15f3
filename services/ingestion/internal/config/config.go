package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"empleos/common/errors"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Platforms []string `yaml:"platforms"`
	Keyword   string   `yaml:"keyword"`
	MaxPages  int      `yaml:"max_pages"`
	// Interval between runs; zero runs once and exits.
	Interval time.Duration `yaml:"interval"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	RequestDelay   time.Duration `yaml:"request_delay"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"`
	UserAgent      string        `yaml:"user_agent"`

	NATSURL         string        `yaml:"nats_url"`
	NATSConnTimeout time.Duration `yaml:"nats_conn_timeout"`
	RawSubject      string        `yaml:"raw_subject"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`

	DataDir      string `yaml:"data_dir"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

func defaults() *Config {
	return &Config{
		Platforms: []string{"Computrabajo", "Elempleo", "Indeed", "Magneto365", "MasEmpleo"},
		Keyword:   "desarrollador",
		MaxPages:  5,

		RequestTimeout: 15 * time.Second,
		RequestDelay:   1500 * time.Millisecond,
		MaxRetries:     3,
		RetryBackoff:   2 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",

		NATSURL:         "nats://localhost:4222",
		NATSConnTimeout: 10 * time.Second,
		RawSubject:      "jobs.raw",

		RedisAddr: "localhost:6379",
		CacheTTL:  6 * time.Hour,

		DataDir: "data",
	}
}

// LoadConfig reads .env, then the YAML file named by CONFIG_FILE, then
// environment overrides.
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

	cfg.Platforms = getEnvList("PLATFORMS", cfg.Platforms)
	cfg.Keyword = getEnvString("KEYWORD", cfg.Keyword)
	cfg.MaxPages = getEnvInt("MAX_PAGES", cfg.MaxPages)
	cfg.Interval = getEnvDuration("INTERVAL", cfg.Interval)

	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.RequestDelay = getEnvDuration("REQUEST_DELAY", cfg.RequestDelay)
	cfg.MaxRetries = getEnvInt("MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryBackoff = getEnvDuration("RETRY_BACKOFF", cfg.RetryBackoff)
	cfg.UserAgent = getEnvString("USER_AGENT", cfg.UserAgent)

	cfg.NATSURL = getEnvString("NATS_URL", cfg.NATSURL)
	cfg.NATSConnTimeout = getEnvDuration("NATS_CONN_TIMEOUT", cfg.NATSConnTimeout)
	cfg.RawSubject = getEnvString("RAW_SUBJECT", cfg.RawSubject)

	cfg.RedisAddr = getEnvString("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnvString("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", cfg.CacheTTL)

	cfg.DataDir = getEnvString("DATA_DIR", cfg.DataDir)
	cfg.OTLPEndpoint = getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)

	if cfg.MaxPages < 1 {
		return nil, errors.InvalidInput("MAX_PAGES must be at least 1", nil)
	}
	if cfg.MaxRetries < 0 {
		return nil, errors.InvalidInput("MAX_RETRIES must not be negative", nil)
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
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
