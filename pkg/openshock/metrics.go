package openshock

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "openshock_client",
			Name:      "requests_total",
			Help:      "API round trips by route template, method and status code (\"error\" for transport failures).",
		},
		[]string{"endpoint", "method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "openshock_client",
			Name:      "request_duration_seconds",
			Help:      "API round trip latency by route template and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)
)

func observeRequest(endpoint, method, code string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(endpoint, method, code).Inc()
	requestDuration.WithLabelValues(endpoint, method).Observe(elapsed.Seconds())
}
