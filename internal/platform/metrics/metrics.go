package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is
// valid and records nothing, so tests can pass nil instead of registering
// collectors against the default registry.
type Metrics struct {
	JourneysStarted   prometheus.Counter
	JourneysCompleted prometheus.Counter
	LookupDuration    prometheus.Histogram
	LookupNoResults   prometheus.Counter
	ProviderFailures  prometheus.Counter
	KeystoreFailures  prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on a specific registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		JourneysStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "addressfinder_journeys_started_total",
			Help: "Total number of address journeys initialised by calling services",
		}),
		JourneysCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "addressfinder_journeys_completed_total",
			Help: "Total number of journeys that reached a confirmed address",
		}),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "addressfinder_lookup_duration_seconds",
			Help:    "Latency of address-data provider lookups",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		LookupNoResults: factory.NewCounter(prometheus.CounterOpts{
			Name: "addressfinder_lookup_no_results_total",
			Help: "Total number of lookups that matched no candidates",
		}),
		ProviderFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "addressfinder_provider_failures_total",
			Help: "Total number of failed address-data provider calls",
		}),
		KeystoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "addressfinder_keystore_failures_total",
			Help: "Total number of failed journey keystore operations",
		}),
	}
}

// JourneyStarted increments the started counter.
func (m *Metrics) JourneyStarted() {
	if m == nil {
		return
	}
	m.JourneysStarted.Inc()
}

// JourneyCompleted increments the completed counter.
func (m *Metrics) JourneyCompleted() {
	if m == nil {
		return
	}
	m.JourneysCompleted.Inc()
}

// ObserveLookup records one provider lookup's duration.
func (m *Metrics) ObserveLookup(d time.Duration) {
	if m == nil {
		return
	}
	m.LookupDuration.Observe(d.Seconds())
}

// LookupEmpty increments the no-results counter.
func (m *Metrics) LookupEmpty() {
	if m == nil {
		return
	}
	m.LookupNoResults.Inc()
}

// ProviderFailure increments the provider failure counter.
func (m *Metrics) ProviderFailure() {
	if m == nil {
		return
	}
	m.ProviderFailures.Inc()
}

// KeystoreFailure increments the keystore failure counter.
func (m *Metrics) KeystoreFailure() {
	if m == nil {
		return
	}
	m.KeystoreFailures.Inc()
}
