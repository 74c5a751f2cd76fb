// Package metrics exposes Prometheus collectors for decay computations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DecayMetrics groups the collectors for curve computation and caching.
type DecayMetrics struct {
	registry *prometheus.Registry

	computationsTotal *prometheus.CounterVec
	computeDuration   *prometheus.HistogramVec
	samplesTotal      prometheus.Counter
	cacheLookupsTotal *prometheus.CounterVec
	exportsTotal      *prometheus.CounterVec
}

// NewDecayMetrics creates the collectors and registers them with registry.
func NewDecayMetrics(registry *prometheus.Registry) (*DecayMetrics, error) {
	m := &DecayMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DecayMetrics) initMetrics() {
	m.computationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decay_computations_total",
			Help: "Total number of decay curve computations",
		},
		[]string{"isotope", "status"}, // status: success, invalid
	)

	m.computeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "decay_compute_duration_seconds",
			Help: "Time taken to compute a decay curve",
			// 10µs .. ~10ms
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 10),
		},
		[]string{"isotope"},
	)

	m.samplesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "decay_samples_total",
			Help: "Total number of curve samples produced",
		},
	)

	m.cacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decay_cache_lookups_total",
			Help: "Curve cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	m.exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decay_exports_total",
			Help: "Curve exports by format",
		},
		[]string{"format"},
	)
}

// Describe implements prometheus.Collector.
func (m *DecayMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.computationsTotal.Describe(ch)
	m.computeDuration.Describe(ch)
	m.samplesTotal.Describe(ch)
	m.cacheLookupsTotal.Describe(ch)
	m.exportsTotal.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *DecayMetrics) Collect(ch chan<- prometheus.Metric) {
	m.computationsTotal.Collect(ch)
	m.computeDuration.Collect(ch)
	m.samplesTotal.Collect(ch)
	m.cacheLookupsTotal.Collect(ch)
	m.exportsTotal.Collect(ch)
}

func (m *DecayMetrics) RecordComputation(isotope string, samples int, seconds float64) {
	m.computationsTotal.WithLabelValues(isotope, "success").Inc()
	m.computeDuration.WithLabelValues(isotope).Observe(seconds)
	m.samplesTotal.Add(float64(samples))
}

func (m *DecayMetrics) RecordInvalid(isotope string) {
	if isotope == "" {
		isotope = "unknown"
	}
	m.computationsTotal.WithLabelValues(isotope, "invalid").Inc()
}

func (m *DecayMetrics) RecordCacheHit()  { m.cacheLookupsTotal.WithLabelValues("hit").Inc() }
func (m *DecayMetrics) RecordCacheMiss() { m.cacheLookupsTotal.WithLabelValues("miss").Inc() }

func (m *DecayMetrics) RecordExport(format string) {
	m.exportsTotal.WithLabelValues(format).Inc()
}
