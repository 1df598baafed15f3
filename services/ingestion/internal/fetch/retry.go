package fetch

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"
)

type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
}

// statusError carries a non-200 response status out of a request attempt.
type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return http.StatusText(e.StatusCode)
}

// retryDo calls fn until it succeeds, fails with a non-retryable error or the
// retries run out. The wait doubles after every attempt up to MaxWait.
func retryDo[T any](ctx context.Context, rc RetryConfig, onRetry func(attempt int, wait time.Duration, err error), fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	wait := rc.InitialWait
	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == rc.MaxRetries {
			break
		}

		if onRetry != nil {
			onRetry(attempt+1, wait, err)
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		wait *= 2
		if rc.MaxWait > 0 && wait > rc.MaxWait {
			wait = rc.MaxWait
		}
	}
	return zero, lastErr
}

func isRetryable(err error) bool {
	var se *statusError
	if stderrors.As(err, &se) {
		return isRetryableStatus(se.StatusCode)
	}

	var opErr *net.OpError
	if stderrors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
