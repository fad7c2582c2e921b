package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	// Final score distribution across all verifications
	ScoreDistribution prometheus.Histogram

	// Verification outcomes by risk tier
	TierOutcome *prometheus.CounterVec

	// Overall verification latency including directory lookups
	VerifyLatency prometheus.Histogram
}

// New creates a Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		ScoreDistribution: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "veriname_verify_score",
			Help:    "Distribution of final name-match scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),

		TierOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veriname_verify_tier_total",
			Help: "Total verification outcomes by risk tier",
		}, []string{"tier"}),

		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "veriname_verify_duration_seconds",
			Help:    "Duration of full verification including directory lookups",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// ObserveScore records a final score.
func (m *Metrics) ObserveScore(score int) {
	if m != nil {
		m.ScoreDistribution.Observe(float64(score))
	}
}

// IncrementTier records a risk tier outcome.
func (m *Metrics) IncrementTier(tier string) {
	if m != nil {
		m.TierOutcome.WithLabelValues(tier).Inc()
	}
}

// ObserveVerifyLatency records the total verification duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}
