// cache.go - In-memory cache for market-context suggestion lists

package storage

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dixra/hpp_smart_pricing/internal/pricing"
)

// OptionsSource loads suggestion lists from an external store
type OptionsSource interface {
	LoadContextOptions(ctx context.Context) (pricing.ContextOptions, error)
}

// failureRetry bounds how long the built-in fallback is served after a failed load
const failureRetry = 30 * time.Second

// OptionsCache serves suggestion lists, reloading from its source after ttl.
// With no source, or when the source fails, the built-in lists are served.
type OptionsCache struct {
	source    OptionsSource
	ttl       time.Duration
	cached    pricing.ContextOptions
	expiresAt time.Time
	loaded    bool
	now       func() time.Time
	mu        sync.RWMutex
}

// NewOptionsCache creates a cache. source may be nil.
func NewOptionsCache(source OptionsSource, ttl time.Duration) *OptionsCache {
	return &OptionsCache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *OptionsCache) fresh() bool {
	return c.loaded && c.now().Before(c.expiresAt)
}

// Get returns the current suggestion lists. The load is detached from ctx so that
// one disconnecting client does not leave the fallback cached for everyone.
func (c *OptionsCache) Get(ctx context.Context) pricing.ContextOptions {
	if c.source == nil {
		return pricing.DefaultContextOptions()
	}

	c.mu.RLock()
	if c.fresh() {
		opts := c.cached
		c.mu.RUnlock()
		return opts
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.fresh() {
		return c.cached
	}

	ttl := c.ttl
	opts, err := c.source.LoadContextOptions(context.WithoutCancel(ctx))
	if err != nil {
		log.Printf("⚠️  Failed to load context options, using built-in lists: %v", err)
		opts = pricing.ContextOptions{}
		if ttl > failureRetry {
			ttl = failureRetry
		}
	}

	c.cached = withDefaults(opts)
	c.expiresAt = c.now().Add(ttl)
	c.loaded = true
	return c.cached
}

// Invalidate forces the next Get to reload from the source
func (c *OptionsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

func withDefaults(opts pricing.ContextOptions) pricing.ContextOptions {
	defaults := pricing.DefaultContextOptions()
	if len(opts.BusinessTypes) == 0 {
		opts.BusinessTypes = defaults.BusinessTypes
	}
	if len(opts.AudienceTypes) == 0 {
		opts.AudienceTypes = defaults.AudienceTypes
	}
	if len(opts.Seasons) == 0 {
		opts.Seasons = defaults.Seasons
	}
	if len(opts.Qualities) == 0 {
		opts.Qualities = defaults.Qualities
	}
	return opts
}
