// Package metrics exposes Prometheus instrumentation for the
// interception pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters and histograms for interception flows.
// A nil *Metrics is valid and records nothing, so wiring stays optional.
type Metrics struct {
	interceptions prometheus.Counter
	redactions    *prometheus.CounterVec
	traceDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		interceptions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phantom",
			Subsystem: "interceptor",
			Name:      "interceptions_total",
			Help:      "Total document interceptions processed",
		}),
		redactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phantom",
			Subsystem: "interceptor",
			Name:      "redactions_total",
			Help:      "Total redactions applied, by pattern kind and severity",
		}, []string{"kind", "severity"}),
		traceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "phantom",
			Subsystem: "interceptor",
			Name:      "trace_duration_seconds",
			Help:      "Duration of interception traces",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.interceptions, m.redactions, m.traceDuration)
	return m
}

func (m *Metrics) ObserveInterception(durationSeconds float64) {
	if m == nil {
		return
	}
	m.interceptions.Inc()
	m.traceDuration.Observe(durationSeconds)
}

func (m *Metrics) ObserveRedaction(kind, severity string) {
	if m == nil {
		return
	}
	m.redactions.WithLabelValues(kind, severity).Inc()
}

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
