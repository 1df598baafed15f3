// Package fetch downloads listing pages politely: one request at a time under
// a rate limit, with retries on transient failures and a shared page cache.
package fetch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"empleos/common/cache"
	"empleos/common/errors"
	"empleos/common/telemetry"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var tracer = telemetry.GetTracer("empleos/ingestion/fetch")

const maxBodyBytes = 8 << 20

// Fetcher returns the body of a listing page.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type Options struct {
	Timeout    time.Duration
	Delay      time.Duration
	MaxRetries int
	Backoff    time.Duration
	CacheTTL   time.Duration
	UserAgent  string
}

type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   cache.Cache
	logger  *zap.Logger
	opts    Options
	retry   RetryConfig
}

// New builds a Client. c may be nil to disable page caching.
func New(logger *zap.Logger, opts Options, c cache.Cache) *Client {
	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}

	return &Client{
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		cache:   c,
		logger:  logger,
		opts:    opts,
		retry: RetryConfig{
			MaxRetries:  opts.MaxRetries,
			InitialWait: opts.Backoff,
			MaxWait:     time.Minute,
		},
	}
}

func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Client.Get")
	defer span.End()
	span.SetAttributes(telemetry.String("http.url", url))

	key := cache.PageKey(url)
	if c.cache != nil {
		var cached []byte
		err := c.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			span.SetAttributes(telemetry.String("cache.result", "hit"))
			c.logger.Debug("cache hit", zap.String("url", url))
			return cached, nil
		case stderrors.Is(err, cache.ErrNotFound):
			span.SetAttributes(telemetry.String("cache.result", "miss"))
		default:
			span.SetAttributes(telemetry.String("cache.result", "error"))
			c.logger.Warn("cache error", zap.String("url", url), zap.Error(err))
		}
	}

	onRetry := func(attempt int, wait time.Duration, err error) {
		c.logger.Warn("retrying request",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	body, err := retryDo(ctx, c.retry, onRetry, func() ([]byte, error) {
		return c.do(ctx, url)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, classify(url, err)
	}

	span.SetAttributes(telemetry.Int("http.response_size", len(body)))

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.opts.CacheTTL); err != nil {
			c.logger.Warn("failed to cache page", zap.String("url", url), zap.Error(err))
		}
	}

	return body, nil
}

func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.InvalidInput("creating request", err)
	}
	if c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-CO,es;q=0.9,en;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return body, nil
}

func classify(url string, err error) error {
	var se *statusError
	if stderrors.As(err, &se) {
		msg := fmt.Sprintf("unexpected status code %d for %s", se.StatusCode, url)
		switch {
		case se.StatusCode == http.StatusTooManyRequests:
			return errors.RateLimit(msg, err)
		case se.StatusCode == http.StatusNotFound:
			return errors.NotFound(msg, err)
		case se.StatusCode >= 500:
			return errors.Unavailable(msg, err)
		}
		return errors.Internal(msg, err)
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var de *errors.DomainError
	if stderrors.As(err, &de) {
		return err
	}
	return errors.Unavailable("fetching "+url, err)
}
