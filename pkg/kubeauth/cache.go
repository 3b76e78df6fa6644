package kubeauth

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// defaultKeyInput stands in for the kubeconfig path when none is given.
const defaultKeyInput = "default"

// CacheKey derives the cache key for a resolution input. The path itself is
// never stored, only its hash.
func CacheKey(path string) string {
	if path == "" {
		path = defaultKeyInput
	}
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

// Cache maps cache keys to resolved bundles. Bundles are zeroized whenever
// they leave the cache.
//
// Each operation holds the lock for its own duration only. Concurrent misses
// for the same key may both resolve; the last Put wins.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Bundle

	clock   clock.PassiveClock
	log     logrus.FieldLogger
	metrics *cacheMetrics
}

// NewCache returns an empty cache. Only WithClock, WithLogger and
// WithRegisterer apply to it.
func NewCache(opts ...Option) *Cache {
	return newCache(newConfig(opts...))
}

func newCache(cfg *config) *Cache {
	return &Cache{
		entries: map[string]*Bundle{},
		clock:   cfg.clock,
		log:     cfg.log,
		metrics: newCacheMetrics(cfg.registerer, cfg.log),
	}
}

// Get returns the live bundle stored under key and refreshes its last access
// time. An expired bundle is cleaned up and evicted, and Get reports a miss.
func (c *Cache) Get(key string) (*Bundle, bool) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.entries[key]
	if !ok {
		c.metrics.misses.Inc()
		return nil, false
	}
	if b.isExpiredAt(now) {
		c.removeLocked(key, b)
		c.metrics.expirations.Inc()
		c.metrics.misses.Inc()
		c.log.WithField("key", shortKey(key)).Debug("kubeauth: cached bundle expired")
		return nil, false
	}

	b.touch(now)
	c.metrics.hits.Inc()
	return b, true
}

// Put stores b under key. A different bundle already stored there is cleaned
// up first.
func (c *Cache) Put(key string, b *Bundle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.entries[key]; ok && prev != b {
		prev.SecureCleanup()
		c.metrics.evictions.Inc()
	}
	c.entries[key] = b
}

// Evict removes and cleans up the bundle stored under key. It returns false if
// there was none.
func (c *Cache) Evict(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(key, b)
	return true
}

// Sweep removes every expired bundle and returns how many were dropped.
func (c *Cache) Sweep() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, b := range c.entries {
		if b.isExpiredAt(now) {
			c.removeLocked(key, b)
			c.metrics.expirations.Inc()
			n++
		}
	}
	return n
}

// Purge removes and cleans up every bundle.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, b := range c.entries {
		c.removeLocked(key, b)
	}
}

// Len is the number of stored bundles, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) removeLocked(key string, b *Bundle) {
	delete(c.entries, key)
	b.SecureCleanup()
	c.metrics.evictions.Inc()
}

// shortKey trims a cache key for log output.
func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
