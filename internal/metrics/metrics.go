// Package metrics exposes Prometheus collectors for the GraphQL server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fieldResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "study_graphql",
		Name:      "field_resolutions_total",
		Help:      "GraphQL resolver invocations by object, field and outcome.",
	}, []string{"object", "field", "outcome"})

	gatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "study_graphql",
		Name:      "movie_gateway_requests_total",
		Help:      "Upstream movie API calls by operation and outcome.",
	}, []string{"op", "outcome"})

	gatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "study_graphql",
		Name:      "movie_gateway_request_duration_seconds",
		Help:      "Upstream movie API latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	publishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "study_graphql",
		Name:      "event_publish_failures_total",
		Help:      "Tweet events that could not be handed to the broker.",
	}, []string{"event"})
)

// ObserveField records one resolver call. outcome is "ok" or "error".
func ObserveField(object, field, outcome string) {
	fieldResolutions.WithLabelValues(object, field, outcome).Inc()
}

// ObserveGateway records one upstream call.
func ObserveGateway(op, outcome string, took time.Duration) {
	gatewayRequests.WithLabelValues(op, outcome).Inc()
	gatewayLatency.WithLabelValues(op).Observe(took.Seconds())
}

// PublishFailed counts an event that was dropped.
func PublishFailed(event string) {
	publishFailures.WithLabelValues(event).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
