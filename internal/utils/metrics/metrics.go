package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Invite metrics
	InvitesIssuedTotal   *prometheus.CounterVec
	InvitesIgnoredTotal  prometheus.Counter
	InvitesAcceptedTotal *prometheus.CounterVec
	InvitesResentTotal   prometheus.Counter

	// Email dispatch metrics
	EmailDispatchTotal *prometheus.CounterVec
	EmailQueueDepth    prometheus.Gauge
}

// New creates a new Metrics instance with all metrics registered.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "teampulse"
	}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		InvitesIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invite",
				Name:      "issued_total",
				Help:      "Total number of invites created",
			},
			[]string{"kind"},
		),
		InvitesIgnoredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invite",
				Name:      "ignored_total",
				Help:      "Total number of invite emails skipped during bulk issuance",
			},
		),
		InvitesAcceptedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invite",
				Name:      "accepted_total",
				Help:      "Total number of invites accepted",
			},
			[]string{"kind"},
		),
		InvitesResentTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invite",
				Name:      "resent_total",
				Help:      "Total number of invite resends",
			},
		),

		EmailDispatchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "email",
				Name:      "dispatch_total",
				Help:      "Total number of email dispatch attempts",
			},
			[]string{"template", "status"}, // status: sent, failed, dropped
		),
		EmailQueueDepth: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "email",
				Name:      "queue_depth",
				Help:      "Current number of queued email dispatch jobs",
			},
		),
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordEmailDispatch records an email dispatch outcome.
func (m *Metrics) RecordEmailDispatch(template, status string) {
	m.EmailDispatchTotal.WithLabelValues(template, status).Inc()
}
