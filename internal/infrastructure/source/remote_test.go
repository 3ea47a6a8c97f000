package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRemote(url string, retries int, breaker resilience.CircuitBreakerConfig) *RemoteSource {
	return NewRemoteSource(RemoteConfig{
		URL:            url,
		Timeout:        2 * time.Second,
		MaxRetries:     retries,
		RetryBackoff:   time.Millisecond,
		CircuitBreaker: breaker,
	})
}

func TestRemoteSource_LoadRetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"lastUpdated":"ayer","matchdays":[]}`))
	}))
	defer srv.Close()

	src := newTestRemote(srv.URL, 2, resilience.CircuitBreakerConfig{})
	assert.Equal(t, "http", src.Name())
	assert.Nil(t, src.Breaker())

	doc, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ayer", doc.LastUpdated)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRemoteSource_LoadDoesNotRetryPermanentStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestRemote(srv.URL, 3, resilience.CircuitBreakerConfig{}).Load(context.Background())
	require.Error(t, err)
	assert.False(t, isTransient(err))
	assert.Contains(t, err.Error(), "status=404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoteSource_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := newTestRemote(srv.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		_, err := src.Load(context.Background())
		require.Error(t, err)
		assert.True(t, isTransient(err))
	}

	_, err := src.Load(context.Background())
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, resilience.CircuitStateOpen, src.Breaker().State())
	assert.Equal(t, int32(2), calls.Load())
}

func TestRemoteSource_LoadMalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := newTestRemote(srv.URL, 0, resilience.CircuitBreakerConfig{}).Load(context.Background())
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
}

func TestRemoteSource_LoadHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRemote("http://127.0.0.1:1", 2, resilience.CircuitBreakerConfig{}).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
