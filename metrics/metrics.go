package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	Fetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "fetch_total", Help: "Number of document fetches by result."},
		[]string{"result"},
	)
	Replaces = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "replace_total", Help: "Number of document replaces by result."},
		[]string{"result"},
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "portfolio", Name: "store_duration_seconds", Help: "Latency of document store calls.", Buckets: prometheus.DefBuckets},
		[]string{"operation"},
	)
	RateLimitRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_rejected_total", Help: "Number of requests rejected by the rate limiter."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Fetches)
	reg.MustRegister(Replaces)
	reg.MustRegister(StoreLatency)
	reg.MustRegister(RateLimitRejected)
}
