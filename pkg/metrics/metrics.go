// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "web_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// BackendCallDuration tracks calls made to the marketplace backend.
	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_call_duration_seconds",
			Help:    "Marketplace backend call duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	// LocationLookupsTotal tracks address API lookups by kind and outcome.
	LocationLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_lookups_total",
			Help: "Address API lookups",
		},
		[]string{"kind", "outcome"},
	)

	// CategoryGuessesTotal tracks category inference results.
	CategoryGuessesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "category_guesses_total",
			Help: "Category inference attempts",
		},
		[]string{"source", "outcome"},
	)

	// LLMRequestDuration tracks LLM completion duration.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "LLM completion duration",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"provider", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"provider", "direction"},
	)

	// NotificationPollsTotal tracks notification count refreshes.
	NotificationPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_polls_total",
			Help: "Notification count polls",
		},
		[]string{"outcome"},
	)

	// SSEConnectionsActive tracks active SSE connections.
	SSEConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connections_active",
			Help: "Number of active SSE connections",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordBackendCall records a marketplace backend call.
func RecordBackendCall(method, route, status string, duration float64) {
	BackendCallDuration.WithLabelValues(method, route, status).Observe(duration)
}

// RecordLocationLookup records an address API lookup.
func RecordLocationLookup(kind, outcome string) {
	LocationLookupsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordCategoryGuess records a category inference attempt.
func RecordCategoryGuess(source string, matched bool) {
	outcome := "miss"
	if matched {
		outcome = "match"
	}
	CategoryGuessesTotal.WithLabelValues(source, outcome).Inc()
}

// RecordLLMRequest records metrics for an LLM completion.
func RecordLLMRequest(provider, status string, duration float64, tokensIn, tokensOut int) {
	LLMRequestDuration.WithLabelValues(provider, status).Observe(duration)
	LLMTokensTotal.WithLabelValues(provider, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(provider, "out").Add(float64(tokensOut))
}

// RecordNotificationPoll records a notification poll outcome.
func RecordNotificationPoll(outcome string) {
	NotificationPollsTotal.WithLabelValues(outcome).Inc()
}

// IncrementSSEConnections increments the active SSE connection count.
func IncrementSSEConnections() {
	SSEConnectionsActive.Inc()
}

// DecrementSSEConnections decrements the active SSE connection count.
func DecrementSSEConnections() {
	SSEConnectionsActive.Dec()
}
