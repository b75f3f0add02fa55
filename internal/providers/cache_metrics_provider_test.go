package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// lookupMetrics records cache lookups per label.
type lookupMetrics struct {
	hits   map[string]int
	misses map[string]int
}

func newLookupMetrics() *lookupMetrics {
	return &lookupMetrics{hits: map[string]int{}, misses: map[string]int{}}
}

func (m *lookupMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *lookupMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *lookupMetrics) IncCacheHits(cache string)                        { m.hits[cache]++ }
func (m *lookupMetrics) IncCacheMisses(cache string)                      { m.misses[cache]++ }
func (m *lookupMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *lookupMetrics) IncHistoryFetches(_ string)                       {}
func (m *lookupMetrics) IncProfilesIngested()                             {}
func (m *lookupMetrics) SetProfilesTotal(_ int)                           {}

type mapCache map[string][]byte

func (c mapCache) Get(key string) ([]byte, bool) {
	v, ok := c[key]
	return v, ok
}

func (c mapCache) Set(key string, value []byte) { c[key] = value }

func TestCountingCache_HitsAndMissesByLabel(t *testing.T) {
	metrics := newLookupMetrics()
	cache := &countingCache{name: ProfileQueryCache, inner: mapCache{"a": []byte("1")}, metrics: metrics}

	val, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), val)
	_, ok = cache.Get("b")
	assert.False(t, ok)
	cache.Get("a")
	cache.Get("c")

	assert.Equal(t, 2, metrics.hits[ProfileQueryCache])
	assert.Equal(t, 2, metrics.misses[ProfileQueryCache])
}

func TestCountingCache_SetDelegates(t *testing.T) {
	inner := mapCache{}
	cache := &countingCache{name: ProfileQueryCache, inner: inner, metrics: newLookupMetrics()}

	cache.Set("profiles:urn:a", []byte("[]"))

	assert.Equal(t, []byte("[]"), inner["profiles:urn:a"])
}

func TestInstrumentedCache_Enabled(t *testing.T) {
	metrics := newLookupMetrics()
	cache := NewInstrumentedCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{}, metrics)
	assert.IsType(t, &countingCache{}, cache)

	cache.Set("k", []byte("v"))
	cache.Get("k")
	cache.Get("missing")

	assert.Equal(t, 1, metrics.hits[ProfileQueryCache])
	assert.Equal(t, 1, metrics.misses[ProfileQueryCache])
}

func TestInstrumentedCache_UnusableConfigCountsNothing(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		size    int
	}{
		{"disabled", false, 10},
		{"zero size", true, 0},
		{"negative size", true, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := newLookupMetrics()
			cache := NewInstrumentedCacheProvider(cacheConfig(tt.enabled, tt.size, time.Minute), &cacheTestLogger{}, metrics)
			assert.IsType(t, &noopCache{}, cache)

			cache.Get("any")
			assert.Empty(t, metrics.misses)
			assert.Empty(t, metrics.hits)
		})
	}
}
