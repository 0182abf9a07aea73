package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows up to capacity then rejects", func(t *testing.T) {
		t.Parallel()

		limiter, err := New(Config{Capacity: 3, Refill: 1, Interval: time.Minute})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			result := limiter.Allow(context.Background(), "client")
			assert.True(t, result.Allowed, "request %d within capacity", i)
		}

		result := limiter.Allow(context.Background(), "client")
		assert.False(t, result.Allowed)
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("keys do not share buckets", func(t *testing.T) {
		t.Parallel()

		limiter, err := New(Config{Capacity: 1, Refill: 1, Interval: time.Minute})
		require.NoError(t, err)

		assert.True(t, limiter.Allow(context.Background(), "a").Allowed)
		assert.False(t, limiter.Allow(context.Background(), "a").Allowed)
		assert.True(t, limiter.Allow(context.Background(), "b").Allowed)
	})

	t.Run("refills over time", func(t *testing.T) {
		t.Parallel()

		limiter, err := New(Config{Capacity: 1, Refill: 1, Interval: time.Second})
		require.NoError(t, err)

		now := time.Now()
		limiter.now = func() time.Time { return now }

		require.True(t, limiter.Allow(context.Background(), "client").Allowed)
		require.False(t, limiter.Allow(context.Background(), "client").Allowed)

		now = now.Add(2 * time.Second)
		assert.True(t, limiter.Allow(context.Background(), "client").Allowed)
	})

	t.Run("reset clears the bucket", func(t *testing.T) {
		t.Parallel()

		limiter, err := New(Config{Capacity: 1, Refill: 1, Interval: time.Minute})
		require.NoError(t, err)

		require.True(t, limiter.Allow(context.Background(), "client").Allowed)
		require.False(t, limiter.Allow(context.Background(), "client").Allowed)

		limiter.Reset("client")
		assert.True(t, limiter.Allow(context.Background(), "client").Allowed)
	})

	t.Run("eviction drops idle buckets but keeps active ones", func(t *testing.T) {
		t.Parallel()

		limiter, err := New(Config{Capacity: 2, Refill: 1, Interval: time.Second}, WithCleanupInterval(0))
		require.NoError(t, err)

		now := time.Now()
		limiter.now = func() time.Time { return now }

		require.True(t, limiter.Allow(context.Background(), "idle").Allowed)

		// Full refill takes two seconds; the idle bucket is past it,
		// the active one is not.
		now = now.Add(3 * time.Second)
		require.True(t, limiter.Allow(context.Background(), "active").Allowed)
		limiter.removeStale()

		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		assert.NotContains(t, limiter.buckets, "idle")
		assert.Contains(t, limiter.buckets, "active")
	})

	t.Run("close stops cleanup and is idempotent", func(t *testing.T) {
		t.Parallel()

		limiter, err := New(Config{Capacity: 1, Refill: 1, Interval: time.Minute})
		require.NoError(t, err)

		limiter.Close()
		limiter.Close()
	})

	t.Run("rejects an invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := New(Config{Capacity: 0, Refill: 1, Interval: time.Minute})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	limiter, err := New(Config{Capacity: 1, Refill: 1, Interval: time.Minute})
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(limiter, ByClientIP)(next)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.0.2.10:51234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Too many requests")
}
