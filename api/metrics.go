package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for upstream requests.
const (
	OutcomeOK           = "ok"
	OutcomeUnauthorized = "unauthorized"
	OutcomeRejected     = "rejected"
	OutcomeUnreachable  = "unreachable"
)

// Metrics collects upstream request metrics. A nil *Metrics is a no-op, so
// instrumentation stays optional.
type Metrics struct {
	requests *prometheus.CounterVec
	status   *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewMetrics creates the collector and registers it on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dealerdash_upstream_requests_total",
			Help: "Upstream API requests by classified outcome",
		}, []string{"outcome"}),
		status: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dealerdash_upstream_status_total",
			Help: "Upstream API responses by HTTP status code",
		}, []string{"status_code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dealerdash_upstream_latency_seconds",
			Help:    "Upstream API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.requests, m.status, m.latency)
	return m
}

func (m *Metrics) recordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordStatus(statusCode int) {
	if m == nil {
		return
	}
	m.status.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (m *Metrics) recordLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.latency.Observe(d.Seconds())
}
