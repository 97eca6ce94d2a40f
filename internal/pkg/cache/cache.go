package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc produces a fresh value. It is called at most once per cache miss
// regardless of how many callers are waiting.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Cache is a TTL cache around a single expensive fetch. Concurrent Get calls
// during a miss collapse into one underlying fetch and all receive the same
// value or the same error. The cached cell is only ever replaced whole.
type Cache[T any] struct {
	ttl   time.Duration
	fetch FetchFunc[T]

	mu        sync.Mutex
	value     T
	fetchedAt time.Time
	has       bool

	group singleflight.Group

	// now is swappable in tests.
	now func() time.Time
}

// New creates a cache with the given TTL and fetch delegate.
func New[T any](ttl time.Duration, fetch FetchFunc[T]) *Cache[T] {
	return &Cache[T]{
		ttl:   ttl,
		fetch: fetch,
		now:   time.Now,
	}
}

// Get returns the cached value when it is still fresh. Otherwise it joins
// the in-flight fetch if one exists, or starts exactly one. A failed fetch
// leaves the previously cached value untouched and reports the error to
// every waiter.
func (c *Cache[T]) Get(ctx context.Context) (T, error) {
	c.mu.Lock()
	if c.has && c.now().Sub(c.fetchedAt) < c.ttl {
		v := c.value
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("fetch", func() (interface{}, error) {
		// The fetch is shared by every attached waiter, so it must outlive
		// the caller that happened to start it: a surface disconnecting
		// mid-fetch must not abort the result for the others.
		fetched, err := c.fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.value = fetched
		c.fetchedAt = c.now()
		c.has = true
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate drops the cached value. Calling it twice in a row is the same
// as calling it once. An in-flight fetch is not cancelled; it completes and
// stores its result for the next caller.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.fetchedAt = time.Time{}
	c.has = false
}

// Peek returns the last stored value and its fetch time without triggering
// a fetch, even when the value is past its TTL.
func (c *Cache[T]) Peek() (T, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.fetchedAt, c.has
}

// Seed stores a value directly, stamped at the given time. Used to hydrate
// the cache from durable storage on startup; TTL rules apply as usual.
func (c *Cache[T]) Seed(value T, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.fetchedAt = fetchedAt
	c.has = true
}
