package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"household/internal/cache"
	"household/internal/core"
	"household/internal/metrics"
)

const (
	DefaultTaxonomyCacheSize = 256
	DefaultTaxonomyCacheTTL  = time.Minute
)

// TaxonomyCache keeps each group's category lists in memory. Entries are
// dropped when the group is re-seeded or deleted.
type TaxonomyCache struct {
	main    *cache.LRUCache[[]core.MainCategory]
	sub     *cache.LRUCache[[]core.SubCategory]
	lookups *prometheus.CounterVec
}

// NewTaxonomyCache builds a cache of up to size groups per category level.
// m may be nil.
func NewTaxonomyCache(size int, ttl time.Duration, m *metrics.Metrics) *TaxonomyCache {
	c := &TaxonomyCache{
		main: cache.NewLRUCache[[]core.MainCategory](size, ttl),
		sub:  cache.NewLRUCache[[]core.SubCategory](size, ttl),
	}
	if m != nil {
		c.lookups = m.CacheLookups
	}
	return c
}

// Cleaners exposes the underlying caches for periodic expiry.
func (c *TaxonomyCache) Cleaners() []cache.Cleaner {
	return []cache.Cleaner{c.main, c.sub}
}

func (c *TaxonomyCache) mainCategories(groupID string) ([]core.MainCategory, bool) {
	v, ok := c.main.Get(groupID)
	c.observe("main_categories", ok)
	return v, ok
}

func (c *TaxonomyCache) subCategories(groupID string) ([]core.SubCategory, bool) {
	v, ok := c.sub.Get(groupID)
	c.observe("sub_categories", ok)
	return v, ok
}

func (c *TaxonomyCache) invalidate(groupID string) {
	c.main.Delete(groupID)
	c.sub.Delete(groupID)
}

func (c *TaxonomyCache) observe(name string, hit bool) {
	if c.lookups == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.lookups.WithLabelValues(name, result).Inc()
}
