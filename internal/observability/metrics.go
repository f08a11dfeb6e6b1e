// README: Prometheus metrics for matching runs and the HTTP layer.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "antar", Name: "match_runs_total",
		Help: "Total matching runs executed",
	})
	MatchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "antar", Name: "matches_created_total",
		Help: "Total match records created",
	})
	CandidatesEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "antar", Name: "match_candidates_evaluated_total",
		Help: "Total candidate trips evaluated by the matching engine",
	})
	MatchRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "antar", Name: "match_run_duration_seconds",
		Help:    "Matching run latency distribution",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "antar", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "antar",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
