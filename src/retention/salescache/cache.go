// Package salescache caches the sales-statistics document, which changes
// rarely and is read on every cancellation.
package salescache

import (
	"context"
	"sync"

	"github.com/retainworks/retainbot/src/retention/types"
)

// Loader fetches the statistics document from wherever it lives.
type Loader func(ctx context.Context) (*types.SalesStats, error)

// Cache loads the document once on first use and serves it until
// Invalidate is called. Owned by whoever composes the core; there is no
// package-level instance.
type Cache struct {
	mu     sync.RWMutex
	loader Loader
	stats  *types.SalesStats
}

func New(loader Loader) *Cache {
	return &Cache{loader: loader}
}

// Stats returns the cached document, loading it on first call.
func (c *Cache) Stats(ctx context.Context) (*types.SalesStats, error) {
	c.mu.RLock()
	stats := c.stats
	c.mu.RUnlock()
	if stats != nil {
		return stats, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		loaded, err := c.loader(ctx)
		if err != nil {
			return nil, err
		}
		c.stats = loaded
	}
	return c.stats, nil
}

// StyleStats returns the stats slice for one style; unknown styles yield
// zero counts.
func (c *Cache) StyleStats(ctx context.Context, style string) (types.StyleStats, error) {
	stats, err := c.Stats(ctx)
	if err != nil {
		return types.StyleStats{}, err
	}
	return stats.ForStyle(style), nil
}

// Invalidate drops the cached document so the next read reloads it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.stats = nil
	c.mu.Unlock()
}
