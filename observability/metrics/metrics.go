// Package metrics exposes the prometheus counters and histograms
// cmd/orbitd registers for the three core contracts plus the admin façade,
// following the teacher's own namespaced CounterVec/HistogramVec registry
// idiom (observability.ModuleMetrics).
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ContractMetrics tracks per-call outcome, error, and latency counters for
// one Orbit contract (treasury, pegkeeper, bridgeoracle, admin).
type ContractMetrics struct {
	calls   *prometheus.CounterVec
	errors  *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var (
	once     sync.Once
	registry *ContractMetrics
)

// Registry returns the lazily-initialised, process-wide contract metrics
// registry, registering its collectors with the default prometheus
// registry exactly once.
func Registry() *ContractMetrics {
	once.Do(func() {
		registry = &ContractMetrics{
			calls: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "orbit",
				Subsystem: "contract",
				Name:      "calls_total",
				Help:      "Total contract method invocations, segmented by contract, method, and outcome.",
			}, []string{"contract", "method", "outcome"}),
			errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "orbit",
				Subsystem: "contract",
				Name:      "errors_total",
				Help:      "Total contract method errors, segmented by contract, method, and error code.",
			}, []string{"contract", "method", "code"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "orbit",
				Subsystem: "contract",
				Name:      "call_duration_seconds",
				Help:      "Latency distribution of contract method calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"contract", "method"}),
		}
		prometheus.MustRegister(registry.calls, registry.errors, registry.latency)
	})
	return registry
}

// Observe records the outcome of one contract method call. errCode is the
// empty string on success.
func (m *ContractMetrics) Observe(contract, method string, errCode string, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if errCode != "" {
		outcome = "error"
		m.errors.WithLabelValues(contract, method, errCode).Inc()
	}
	m.calls.WithLabelValues(contract, method, outcome).Inc()
	m.latency.WithLabelValues(contract, method).Observe(duration.Seconds())
}
