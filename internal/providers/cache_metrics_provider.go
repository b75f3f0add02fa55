package providers

import "profiled/internal/structures"

// ProfileQueryCache labels hit and miss counters of the profile query cache.
const ProfileQueryCache = "profile_query"

// countingCache reports every lookup on its inner cache as a hit or a miss
// under its own label.
type countingCache struct {
	name    string
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *countingCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(c.name)
	} else {
		c.metrics.IncCacheMisses(c.name)
	}
	return val, ok
}

func (c *countingCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// NewInstrumentedCacheProvider builds the profile query cache with hit and
// miss counting. A disabled cache is returned bare so it never reports misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !cacheEnabled(conf) {
		return inner
	}
	return &countingCache{name: ProfileQueryCache, inner: inner, metrics: metrics}
}
