// Package metrics registra as métricas Prometheus expostas em /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_status_transitions_total",
			Help: "Total number of lead status changes by origin and destination",
		},
		[]string{"from", "to"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	reportCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_lookups_total",
			Help: "Report cache lookups by report and result",
		},
		[]string{"report", "result"},
	)
)

// ObserveHTTPRequest usa o padrão da rota (ex.: /v1/leads/:id) como path para manter a cardinalidade baixa
func ObserveHTTPRequest(method, path, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func RecordStatusTransition(from, to string) {
	leadStatusTransitions.WithLabelValues(from, to).Inc()
}

func RecordLoginAttempt(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

func RecordCacheLookup(report string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	reportCacheLookups.WithLabelValues(report, result).Inc()
}
