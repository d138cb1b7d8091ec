package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tracks outbound API calls per adapter and upstream operation.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adapter_upstream_requests_total",
			Help: "Total number of upstream API requests made (by adapter, method and status).",
		},
		[]string{"adapter", "method", "status"},
	)

	// Measures duration of upstream API requests.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adapter_upstream_request_duration_seconds",
			Help:    "Duration of upstream API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		[]string{"adapter", "method"},
	)

	// Counts re-authentication attempts triggered by 401 responses.
	ReauthTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adapter_upstream_reauth_total",
			Help: "Number of re-authentication attempts after an unauthorized response.",
		},
		[]string{"adapter", "outcome"},
	)

	// Counts tool invocations by outcome as seen by the MCP dispatch layer.
	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adapter_tool_invocations_total",
			Help: "Number of MCP tool invocations (by adapter, tool and outcome).",
		},
		[]string{"adapter", "tool", "outcome"},
	)

	// Measures tool handler latency end to end.
	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adapter_tool_duration_seconds",
			Help:    "Duration of MCP tool invocations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"adapter", "tool"},
	)
)

// ObserveUpstream records one upstream request outcome.
func ObserveUpstream(adapter, method, status string, start time.Time) {
	UpstreamRequestsTotal.WithLabelValues(adapter, method, status).Inc()
	UpstreamRequestDuration.WithLabelValues(adapter, method).Observe(time.Since(start).Seconds())
}

// ObserveTool records one tool invocation outcome.
func ObserveTool(adapter, tool, outcome string, start time.Time) {
	ToolInvocationsTotal.WithLabelValues(adapter, tool, outcome).Inc()
	ToolDuration.WithLabelValues(adapter, tool).Observe(time.Since(start).Seconds())
}
