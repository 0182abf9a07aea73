// Package ratelimit is an in-memory token bucket limiter for guarding
// abuse-prone endpoints such as login.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrInvalidConfig = errors.New("ratelimit: capacity and refill interval must be positive")

// Config describes a bucket: Capacity tokens, refilled at
// Refill tokens per Interval.
type Config struct {
	Capacity int
	Refill   int
	Interval time.Duration
}

func (c Config) validate() error {
	if c.Capacity <= 0 || c.Refill <= 0 || c.Interval <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Result reports the outcome of a bucket check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long the caller should wait before retrying.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// Limiter tracks one token bucket per key.
type Limiter struct {
	cfg Config

	mu      sync.Mutex
	buckets map[string]*bucket

	now func() time.Time

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithCleanupInterval sets how often stale buckets are evicted.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) Option {
	return func(l *Limiter) {
		l.cleanupInterval = interval
	}
}

func New(cfg Config, opts ...Option) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	l := &Limiter{
		cfg:             cfg,
		buckets:         make(map[string]*bucket),
		now:             time.Now,
		cleanupInterval: 5 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.cleanupInterval > 0 {
		go l.cleanup()
	}
	return l, nil
}

// Allow consumes one token for key. The context is accepted for
// interface symmetry with store-backed limiters; the in-memory path
// never blocks.
func (l *Limiter) Allow(_ context.Context, key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Capacity), lastSeen: now}
		l.buckets[key] = b
	}

	// Refill proportionally to elapsed time, capped at capacity.
	elapsed := now.Sub(b.lastSeen)
	b.tokens += elapsed.Seconds() * float64(l.cfg.Refill) / l.cfg.Interval.Seconds()
	if b.tokens > float64(l.cfg.Capacity) {
		b.tokens = float64(l.cfg.Capacity)
	}
	b.lastSeen = now

	if b.tokens < 1 {
		deficit := 1 - b.tokens
		wait := time.Duration(deficit * float64(l.cfg.Interval) / float64(l.cfg.Refill))
		return Result{Allowed: false, Remaining: 0, ResetAt: now.Add(wait)}
	}

	b.tokens--
	return Result{Allowed: true, Remaining: int(b.tokens), ResetAt: now}
}

// Reset clears the bucket for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// cleanup runs periodically to evict stale buckets.
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.removeStale()
		case <-l.stopCleanup:
			return
		}
	}
}

// removeStale drops buckets idle long enough to be fully refilled; their
// state is indistinguishable from a fresh bucket, so keeping them only
// leaks memory.
func (l *Limiter) removeStale() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	fullRefill := time.Duration(float64(l.cfg.Interval) * float64(l.cfg.Capacity) / float64(l.cfg.Refill))

	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > fullRefill {
			delete(l.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (l *Limiter) Close() {
	select {
	case <-l.stopCleanup:
	default:
		close(l.stopCleanup)
	}
}
