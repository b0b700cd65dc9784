package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Policy decides what a failed refresh leaves in the cache.
type Policy int

const (
	// KeepEmpty replaces the snapshot with the zero value and treats it as fresh.
	KeepEmpty Policy = iota
	// KeepStale keeps serving the previous snapshot.
	KeepStale
)

// Refresh outcomes passed to the OnRefresh hook.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
	OutcomeStale  = "stale"
)

// ErrUnavailable is returned by a KeepStale cache that has never loaded.
var ErrUnavailable = errors.New("cache unavailable")

type Loader[T any] func(ctx context.Context) (T, error)

type Option func(*options)

type options struct {
	retry     time.Duration
	now       func() time.Time
	onRefresh func(name, outcome string)
}

// WithRetry sets how soon a KeepStale cache retries after a failure.
func WithRetry(d time.Duration) Option {
	return func(o *options) { o.retry = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// OnRefresh registers a hook called after every remote load.
func OnRefresh(fn func(name, outcome string)) Option {
	return func(o *options) { o.onRefresh = fn }
}

// TTL is a time-boxed snapshot with at most one load in flight.
type TTL[T any] struct {
	name   string
	ttl    time.Duration
	policy Policy
	load   Loader[T]
	opts   options

	mu       sync.RWMutex
	value    T
	loaded   bool
	expires  time.Time
	lastErr  error
	inflight singleflight.Group
}

func NewTTL[T any](name string, ttl time.Duration, policy Policy, load Loader[T], opts ...Option) *TTL[T] {
	o := options{retry: 10 * time.Second, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTL[T]{
		name:   name,
		ttl:    ttl,
		policy: policy,
		load:   load,
		opts:   o,
	}
}

func (c *TTL[T]) Name() string { return c.name }

// fresh reports the current snapshot when it has not expired.
func (c *TTL[T]) fresh() (T, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.opts.now().Before(c.expires) {
		return c.value, true, c.lastErr
	}
	var zero T
	return zero, false, nil
}

// Get returns the snapshot, refreshing it when expired.
func (c *TTL[T]) Get(ctx context.Context) (T, error) {
	if v, ok, err := c.fresh(); ok {
		return v, err
	}

	res, err, _ := c.inflight.Do(c.name, func() (any, error) {
		// Another caller may have refreshed while this one waited.
		if v, ok, err := c.fresh(); ok {
			return v, err
		}
		return c.refresh(context.WithoutCancel(ctx))
	})
	v, _ := res.(T)
	return v, err
}

func (c *TTL[T]) refresh(ctx context.Context) (T, error) {
	v, err := c.load(ctx)
	now := c.opts.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil {
		c.value, c.loaded, c.lastErr = v, true, nil
		c.expires = now.Add(c.ttl)
		c.report(OutcomeOK)
		return v, nil
	}

	slog.Warn("Cache refresh failed",
		slog.String("type", "sys"),
		slog.String("cache", c.name),
		slog.Any("error", err),
	)

	switch {
	case c.policy == KeepEmpty:
		var zero T
		c.value, c.loaded, c.lastErr = zero, true, nil
		c.expires = now.Add(c.ttl)
		c.report(OutcomeFailed)
		return zero, nil
	case c.loaded:
		c.lastErr = nil
		c.expires = now.Add(c.opts.retry)
		c.report(OutcomeStale)
		return c.value, nil
	default:
		c.lastErr = errors.Join(ErrUnavailable, err)
		c.expires = now.Add(c.opts.retry)
		c.report(OutcomeFailed)
		var zero T
		return zero, c.lastErr
	}
}

func (c *TTL[T]) report(outcome string) {
	if c.opts.onRefresh != nil {
		c.opts.onRefresh(c.name, outcome)
	}
}

// Invalidate forces the next Get to reload. The snapshot stays available
// as a stale fallback.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	c.expires = time.Time{}
	c.lastErr = nil
	c.mu.Unlock()
}

// Loaded reports whether any refresh has produced a snapshot.
func (c *TTL[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
