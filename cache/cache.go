// Package cache provides a small keyed TTL cache with single-flight fetch
// deduplication. Provider clients share it so concurrent requests for the
// same upstream resource cost one network call.
package cache

import (
	"sync"
	"time"
)

// Clock returns the current time. Injected so tests can advance time without
// sleeping.
type Clock func() time.Time

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

type inflight[T any] struct {
	wg    sync.WaitGroup
	value T
	err   error
}

// Cache is a keyed TTL cache. The zero value is not usable; construct with New.
type Cache[T any] struct {
	ttl   time.Duration
	clock Clock

	mu      sync.Mutex
	entries map[string]entry[T]
	pending map[string]*inflight[T]
}

// New builds a cache with the given TTL. A nil clock defaults to time.Now.
func New[T any](ttl time.Duration, clock Clock) *Cache[T] {
	if clock == nil {
		clock = time.Now
	}
	return &Cache[T]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry[T]),
		pending: make(map[string]*inflight[T]),
	}
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.clock().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for the cache TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, expiresAt: c.clock().Add(c.ttl)}
}

// Do returns the cached value for key, or runs fetch to populate it. If a
// fetch for the same key is already in flight, callers wait on that fetch
// instead of starting their own. Errors are returned to every waiter and are
// never cached.
func (c *Cache[T]) Do(key string, fetch func() (T, error)) (T, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !c.clock().After(e.expiresAt) {
		c.mu.Unlock()
		return e.value, nil
	}
	if f, ok := c.pending[key]; ok {
		c.mu.Unlock()
		f.wg.Wait()
		return f.value, f.err
	}

	f := &inflight[T]{}
	f.wg.Add(1)
	c.pending[key] = f
	c.mu.Unlock()

	f.value, f.err = fetch()

	c.mu.Lock()
	delete(c.pending, key)
	if f.err == nil {
		c.entries[key] = entry[T]{value: f.value, expiresAt: c.clock().Add(c.ttl)}
	}
	c.mu.Unlock()

	f.wg.Done()
	return f.value, f.err
}
