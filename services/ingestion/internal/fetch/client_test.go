package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"empleos/common/cache"
	"empleos/common/cache/memory"
	"empleos/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOptions() Options {
	return Options{
		Timeout:    2 * time.Second,
		MaxRetries: 2,
		Backoff:    time.Millisecond,
		CacheTTL:   time.Minute,
		UserAgent:  "empleos-test",
	}
}

func TestGetSendsHeadersAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "empleos-test", r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept-Language"), "es-CO")
		_, _ = w.Write([]byte("<html>ofertas</html>"))
	}))
	defer srv.Close()

	c := memory.New(cache.DefaultOptions())
	defer c.Close()
	client := New(zap.NewNop(), testOptions(), c)

	body, err := client.Get(context.Background(), srv.URL+"/empleos")
	require.NoError(t, err)
	assert.Equal(t, "<html>ofertas</html>", string(body))

	body, err = client.Get(context.Background(), srv.URL+"/empleos")
	require.NoError(t, err)
	assert.Equal(t, "<html>ofertas</html>", string(body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGetRetriesTransientStatus(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := New(zap.NewNop(), testOptions(), nil)

	body, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestGetGivesUpAfterMaxRetries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New(zap.NewNop(), testOptions(), nil)

	_, err := client.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeRateLimit, errors.TypeOf(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestGetDoesNotRetryNotFound(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := New(zap.NewNop(), testOptions(), nil)

	_, err := client.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeNotFound, errors.TypeOf(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGetHonoursCancelledContext(t *testing.T) {
	client := New(zap.NewNop(), testOptions(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "http://127.0.0.1:1/")
	assert.ErrorIs(t, err, context.Canceled)
}
