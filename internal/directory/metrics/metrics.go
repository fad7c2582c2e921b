package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for directory lookups.
type Metrics struct {
	LookupLatency *prometheus.HistogramVec
	LookupResults *prometheus.CounterVec
	CacheHits     *prometheus.CounterVec
}

// New registers the directory metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		LookupLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "veriname_directory_lookup_duration_seconds",
			Help:    "Duration of directory source lookups",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}),

		LookupResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veriname_directory_lookup_results_total",
			Help: "Directory lookup outcomes by source and result",
		}, []string{"source", "result"}), // result: "hit", "miss", "error"

		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veriname_directory_cache_total",
			Help: "Directory cache outcomes by source and result",
		}, []string{"source", "result"}), // result: "hit", "miss"
	}
}

// ObserveLookup records the duration of one source lookup.
func (m *Metrics) ObserveLookup(source string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementLookup records a lookup outcome.
func (m *Metrics) IncrementLookup(source, result string) {
	if m != nil {
		m.LookupResults.WithLabelValues(source, result).Inc()
	}
}

// IncrementCache records a cache outcome.
func (m *Metrics) IncrementCache(source, result string) {
	if m != nil {
		m.CacheHits.WithLabelValues(source, result).Inc()
	}
}
