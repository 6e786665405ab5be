// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Login results.
const (
	LoginSuccess     = "success"
	LoginInvalid     = "invalid_credentials"
	LoginUnavailable = "error"
)

// HTTPRequests counts handled requests by method, route template and status code.
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "growflow_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration observes request latency by method and route template.
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "growflow_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

var Registrations = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "growflow_registrations_total",
		Help: "Total number of successful registrations",
	},
)

var Logins = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "growflow_logins_total",
		Help: "Total number of login attempts by result",
	},
	[]string{"result"},
)

// TaskCompletions counts growth events, i.e. tasks flipped from not completed to completed.
var TaskCompletions = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "growflow_task_completions_total",
		Help: "Total number of task completions that grew a plant",
	},
)

// RegisterMetrics registers all collectors with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPRequestDuration)
	reg.MustRegister(Registrations)
	reg.MustRegister(Logins)
	reg.MustRegister(TaskCompletions)
}

func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordLogin(result string) {
	Logins.WithLabelValues(result).Inc()
}
