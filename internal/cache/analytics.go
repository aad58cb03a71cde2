package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"eventful/internal/domain"
)

type analyticsCache struct {
	inner *gocache.Cache
}

// NewAnalyticsCache returns an AnalyticsCache with the given TTL. Entries are
// evicted on TTL expiry or explicit invalidation from write paths.
func NewAnalyticsCache(ttl time.Duration) domain.AnalyticsCache {
	return &analyticsCache{
		inner: gocache.New(ttl, 2*ttl),
	}
}

func key(kind, id string) string {
	return kind + "-" + id
}

func (c *analyticsCache) Get(kind, id string) (*domain.EventAnalytics, bool) {
	v, ok := c.inner.Get(key(kind, id))
	if !ok {
		return nil, false
	}
	data, ok := v.(*domain.EventAnalytics)
	return data, ok
}

func (c *analyticsCache) Set(kind, id string, data *domain.EventAnalytics) {
	c.inner.SetDefault(key(kind, id), data)
}

func (c *analyticsCache) Invalidate(kind, id string) {
	c.inner.Delete(key(kind, id))
}
