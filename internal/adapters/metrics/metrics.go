package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "requests_total",
			Help:      "Total HTTP requests handled by the portal API",
		},
		[]string{"route", "method", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portal",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets: []float64{
				0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10,
			},
		},
		[]string{"route", "status"},
	)

	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "submissions_total",
			Help:      "Onboarding submission pipeline terminal states",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, submissionsTotal)
}

func IncRequest(route, method, status string) {
	requestsTotal.WithLabelValues(route, method, status).Inc()
}

func ObserveDuration(route, status string, seconds float64) {
	requestDuration.WithLabelValues(route, status).Observe(seconds)
}

// IncSubmission records one terminal pipeline state, e.g. "succeeded",
// "verification_failed", "backend_unavailable", "joined_existing".
func IncSubmission(result string) {
	submissionsTotal.WithLabelValues(result).Inc()
}
