// Package metrics exposes the tracker's operational counters as Prometheus
// metrics.
//
// The Metrics object is explicitly constructed and passed in rather than
// registered globally, so several tracker instances (one per competition)
// can run in the same process with their own registries and tests never
// share fixtures.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters the tracker reports. Pure pass-through: no
// business logic lives here.
type Metrics struct {
	registry *prometheus.Registry

	PollAttempts      prometheus.Counter
	PollFailures      prometheus.Counter
	EventsDetected    prometheus.Counter
	EventsDispatched  prometheus.Counter
	EventsUndelivered prometheus.Counter
	TrackedMatches    prometheus.Gauge
}

// New creates a Metrics set on its own registry.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		PollAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_attempts_total",
			Help:      "Feed poll cycles attempted.",
		}),
		PollFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_failures_total",
			Help:      "Feed poll cycles that failed to fetch.",
		}),
		EventsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_detected_total",
			Help:      "Match events detected by snapshot diffing.",
		}),
		EventsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dispatched_total",
			Help:      "Match events delivered to the messaging channel.",
		}),
		EventsUndelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_undelivered_total",
			Help:      "Match events dropped after exhausting delivery retries.",
		}),
		TrackedMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_matches",
			Help:      "Matches currently held in the state store.",
		}),
	}

	reg.MustRegister(
		m.PollAttempts,
		m.PollFailures,
		m.EventsDetected,
		m.EventsDispatched,
		m.EventsUndelivered,
		m.TrackedMatches,
	)
	return m
}

// Handler returns an HTTP handler serving this instance's metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, used by tests to gather.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
