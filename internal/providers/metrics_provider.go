package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"profiled/internal/structures"
	"time"
)

// Outcomes reported by IncHistoryFetches.
const (
	FetchIssued    = "issued"
	FetchApplied   = "applied"
	FetchDiscarded = "discarded"
	FetchFailed    = "failed"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(cache string)
	IncCacheMisses(cache string)
	ObservePersistenceDuration(duration time.Duration)
	IncHistoryFetches(outcome string)
	IncProfilesIngested()
	SetProfilesTotal(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	historyFetches      *prometheus.CounterVec
	profilesIngested    prometheus.Counter
	profilesTotal       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

func (m *MetricsProvider) IncCacheMisses(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncHistoryFetches(outcome string) {
	m.historyFetches.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncProfilesIngested() {
	m.profilesIngested.Inc()
}

func (m *MetricsProvider) SetProfilesTotal(count int) {
	m.profilesTotal.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}
	return newMetricsProvider(prometheus.DefaultRegisterer)
}

func newMetricsProvider(reg prometheus.Registerer) *MetricsProvider {
	factory := promauto.With(reg)
	return &MetricsProvider{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profiled_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "profiled_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profiled_cache_hits_total",
			Help: "Total number of cache hits, by cache",
		}, []string{"cache"}),

		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profiled_cache_misses_total",
			Help: "Total number of cache misses, by cache",
		}, []string{"cache"}),

		persistenceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "profiled_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		historyFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profiled_history_fetches_total",
			Help: "Profile fetches issued by history views, by outcome",
		}, []string{"outcome"}),

		profilesIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "profiled_profiles_ingested_total",
			Help: "Total number of ingested dataset profiles",
		}),

		profilesTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "profiled_profiles",
			Help: "Number of stored dataset profiles",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncHistoryFetches(_ string)                       {}
func (n *noopMetrics) IncProfilesIngested()                             {}
func (n *noopMetrics) SetProfilesTotal(_ int)                           {}
