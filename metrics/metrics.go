package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Place lookups
var (
	// LookupsTotal counts façade lookups by category, answering source and status
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelscout_place_lookups_total",
			Help: "Place lookups by category, source and status",
		},
		[]string{"category", "source", "status"},
	)

	// FallbacksTotal counts lookups the primary provider could not answer
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelscout_place_fallbacks_total",
			Help: "Lookups that fell back to the search provider",
		},
		[]string{"category"},
	)
)

// Tools
var (
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelscout_tool_calls_total",
			Help: "Tool executions by tool and status",
		},
		[]string{"tool", "status"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travelscout_tool_call_duration_seconds",
			Help:    "Tool execution latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool"},
	)
)

// HTTP
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelscout_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travelscout_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Status values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// StatusOf maps an error to a status label
func StatusOf(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}

// RecordLookup records one façade outcome
func RecordLookup(category, source string, ok, fellBack bool) {
	status := StatusSuccess
	if !ok {
		status = StatusFailure
		source = "none"
	}
	LookupsTotal.WithLabelValues(category, source, status).Inc()
	if fellBack {
		FallbacksTotal.WithLabelValues(category).Inc()
	}
}

// RecordToolCall records one tool execution
func RecordToolCall(tool string, seconds float64, err error) {
	ToolCallsTotal.WithLabelValues(tool, StatusOf(err)).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(seconds)
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
