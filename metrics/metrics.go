// Package metrics counts listing traffic and fallbacks.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK     = "ok"
	OutcomeError  = "error"
	OutcomeCached = "cached"
)

// Metrics owns its registry so tests can build as many as they like.
type Metrics struct {
	registry         *prometheus.Registry
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	Fallbacks        *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.UpstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streamit_upstream_requests_total",
		Help: "Listing endpoint lookups by endpoint and outcome (ok, error, cached).",
	}, []string{"endpoint", "outcome"})
	m.UpstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "streamit_upstream_request_duration_seconds",
		Help:    "Time spent waiting on the listing endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	m.Fallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streamit_fallbacks_total",
		Help: "Sections served from mock data because the listing endpoint failed.",
	}, []string{"section"})

	m.registry.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.Fallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveUpstream(endpoint, outcome string, took time.Duration) {
	m.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	if outcome != OutcomeCached {
		m.UpstreamDuration.WithLabelValues(endpoint).Observe(took.Seconds())
	}
}

func (m *Metrics) Fallback(section string) {
	m.Fallbacks.WithLabelValues(section).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
