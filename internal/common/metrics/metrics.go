package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanclub_worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanclub_worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fanclub_worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fanclub_worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// SubscriptionEvents counts subscription lifecycle transitions by event
	// (subscribed, resubscribed, tier_changed, canceled).
	SubscriptionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanclub_subscription_events_total",
			Help: "Subscription lifecycle events",
		},
		[]string{"event"},
	)

	TierEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanclub_tier_events_total",
			Help: "Tier create/update/delete operations",
		},
		[]string{"action"},
	)

	ContentCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanclub_content_created_total",
			Help: "Exclusive content items created",
		},
		[]string{"type"},
	)

	AnalyticsCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanclub_analytics_cache_lookups_total",
			Help: "Analytics cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanclub_http_requests_total",
			Help: "HTTP API requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fanclub_http_request_duration_seconds",
			Help:    "HTTP API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)
