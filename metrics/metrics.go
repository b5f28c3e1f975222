package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interview_prepper"

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	RequestCounter     *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	GenerationDuration *prometheus.HistogramVec
	GenerationFailures *prometheus.CounterVec
	ChallengesCreated  *prometheus.CounterVec
	QuotaRejections    *prometheus.CounterVec
}

// New registers the collectors on reg. Tests pass a fresh registry so that
// repeated construction does not panic on duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestCounter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GenerationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Language model call duration in seconds",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
			},
			[]string{"kind"},
		),
		GenerationFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_failures_total",
				Help:      "Failed language model calls",
			},
			[]string{"kind", "reason"},
		),
		ChallengesCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "challenges_created_total",
				Help:      "Challenges persisted",
			},
			[]string{"type"},
		),
		QuotaRejections: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quota_rejections_total",
				Help:      "Requests rejected because the daily quota was used up",
			},
			[]string{"type"},
		),
	}
}
