package observability

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records outgoing backend calls and edge server traffic.
type Metrics struct {
	clientRequests *prometheus.CounterVec
	clientDuration *prometheus.HistogramVec
	clientErrors   *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpErrors     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		clientRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concert_client_requests_total",
				Help: "Backend API requests issued by the client",
			},
			[]string{"route", "method", "status"},
		),
		clientDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concert_client_request_duration_seconds",
				Help:    "Latency of backend API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		clientErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concert_client_errors_total",
				Help: "Backend API requests that ended in an error",
			},
			[]string{"route", "method", "kind"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concert_edge_requests_total",
				Help: "Requests served by the edge server",
			},
			[]string{"method", "status"},
		),
		httpErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concert_edge_errors_total",
				Help: "Edge server requests that ended in an error envelope",
			},
			[]string{"method", "code"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.clientRequests, m.clientDuration, m.clientErrors, m.httpRequests, m.httpErrors)
	}
	return m
}

// RecordClientRequest counts a completed backend call. Status 0 means no
// response was received.
func (m *Metrics) RecordClientRequest(endpoint, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	route := RouteLabel(endpoint)
	m.clientRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.clientDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordClientError counts a failed backend call by kind.
func (m *Metrics) RecordClientError(endpoint, method, kind string) {
	if m == nil {
		return
	}
	m.clientErrors.WithLabelValues(RouteLabel(endpoint), method, kind).Inc()
}

// RecordRequest counts a request handled by the edge server.
func (m *Metrics) RecordRequest(method string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// RecordError counts an edge server error by its envelope code.
func (m *Metrics) RecordError(method, code string) {
	if m == nil {
		return
	}
	m.httpErrors.WithLabelValues(method, code).Inc()
}

// RouteLabel collapses numeric path segments and drops the query so that
// /events/12/seats?status=available becomes /events/:id/seats.
func RouteLabel(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	parts := strings.Split(endpoint, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if _, err := strconv.ParseInt(part, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
