package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time",
			Help:    "http response time.",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60},
		},
	)

	totalHttpRequestsFromApp = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_from_app", Help: "http requests by issuing app"},
		[]string{"app"},
	)

	totalHttpRequestsToUri = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_to_uri", Help: "http requests to uri"},
		[]string{"code", "uri", "method"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code, and method"},
		[]string{"code", "method"},
	)

	authDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "auth_decisions_total", Help: "middleware decisions by outcome"},
		[]string{"outcome"},
	)

	tokenRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "token_refresh_total", Help: "silent refresh attempts by result"},
		[]string{"result"},
	)

	tokensIssued = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tokens_issued_total", Help: "tokens minted via login"},
	)

	tokensDestroyed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tokens_destroyed_total", Help: "logouts via cookie invalidation"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsFromApp,
		totalHttpRequestsToUri,
		totalHttpRequests,
		authDecisions,
		tokenRefreshes,
		tokensIssued,
		tokensDestroyed,
	)
}
