package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"empleos/common/cache"
	"empleos/common/cache/memory"
	"empleos/common/cache/redis"
	"empleos/common/telemetry"
	"empleos/services/ingestion/internal/config"
	"empleos/services/ingestion/internal/extractors"
	"empleos/services/ingestion/internal/fetch"
	"empleos/services/ingestion/internal/messaging"
	"empleos/services/ingestion/internal/scheduler"
	"empleos/services/ingestion/internal/staging"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	platforms := flag.String("platforms", strings.Join(cfg.Platforms, ","), "comma separated job boards to scrape")
	flag.IntVar(&cfg.MaxPages, "max-pages", cfg.MaxPages, "search pages per board or municipality")
	flag.StringVar(&cfg.Keyword, "keyword", cfg.Keyword, "search keyword")
	flag.DurationVar(&cfg.Interval, "interval", cfg.Interval, "time between runs, 0 for a single run")
	offline := flag.Bool("offline", false, "stage records locally without publishing to NATS")
	flag.Parse()

	var exts []extractors.Extractor
	for _, name := range strings.Split(*platforms, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		ext, ok := extractors.ByName(name)
		if !ok {
			logger.Warn("unsupported platform, skipping", zap.String("platform", name))
			continue
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		logger.Fatal("no supported platforms selected")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.InitTracer(ctx, "empleos-ingestion", cfg.OTLPEndpoint, logger)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown()

	pageCache := newPageCache(cfg)
	defer pageCache.Close()

	fetcher := fetch.New(logger, fetch.Options{
		Timeout:    cfg.RequestTimeout,
		Delay:      cfg.RequestDelay,
		MaxRetries: cfg.MaxRetries,
		Backoff:    cfg.RetryBackoff,
		CacheTTL:   cfg.CacheTTL,
		UserAgent:  cfg.UserAgent,
	}, pageCache)

	var publisher messaging.Publisher
	if !*offline {
		publisher, err = messaging.NewPublisher(logger, cfg)
		if err != nil {
			logger.Fatal("failed to create NATS publisher", zap.Error(err))
		}
		defer publisher.Close()
	}

	logger.Info("starting ingestion service",
		zap.Int("platforms", len(exts)),
		zap.String("keyword", cfg.Keyword),
		zap.Int("max_pages", cfg.MaxPages),
		zap.Duration("request_delay", cfg.RequestDelay),
		zap.Bool("offline", *offline))

	jobScheduler := scheduler.NewJobScheduler(fetcher, exts, publisher, staging.New(cfg.DataDir), logger, cfg)
	if err := jobScheduler.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Error("job scheduler failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func newPageCache(cfg *config.Config) cache.Cache {
	opts := cache.DefaultOptions()
	opts.PageTTL = cfg.CacheTTL
	if cfg.RedisAddr == "" {
		return memory.New(opts)
	}
	opts.RedisAddr = cfg.RedisAddr
	opts.RedisPassword = cfg.RedisPassword
	opts.RedisDB = cfg.RedisDB
	return redis.New(opts)
}
