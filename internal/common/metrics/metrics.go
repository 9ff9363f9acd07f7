// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	UniversitiesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "universities_scored_total",
			Help: "Total number of university candidates scored",
		},
	)

	RecommendationsSelected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_selected_total",
			Help: "Total number of recommendations selected by admission label",
		},
		[]string{"label"},
	)

	MatchScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_score",
			Help:    "Distribution of computed match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	CollegeStatsCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "college_stats_cache_requests_total",
			Help: "College stats cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
