package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UsersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_users_registered_total",
			Help: "Total number of users registered",
		},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microblog_login_attempts_total",
			Help: "Total number of credential verifications by result",
		},
		[]string{"result"},
	)

	PostsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_posts_created_total",
			Help: "Total number of posts created",
		},
	)

	FollowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_follows_total",
			Help: "Total number of follow edges created",
		},
	)

	UnfollowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_unfollows_total",
			Help: "Total number of follow edges removed",
		},
	)

	FeedQueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "microblog_feed_query_duration_seconds",
			Help:    "Duration of feed queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"variant"},
	)

	ResetTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_reset_tokens_issued_total",
			Help: "Total number of password reset tokens issued",
		},
	)

	ResetTokensResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_reset_tokens_resolved_total",
			Help: "Total number of password reset tokens resolved to a user",
		},
	)

	ResetTokensRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_reset_tokens_rejected_total",
			Help: "Total number of password reset tokens rejected as expired or tampered",
		},
	)

	LastSeenUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_last_seen_updates_total",
			Help: "Total number of last_seen rows written",
		},
	)

	LastSeenDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_last_seen_dropped_total",
			Help: "Total number of last_seen updates dropped because the queue was full",
		},
	)

	DBPoolAcquiredConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_acquired_connections",
			Help: "Number of acquired database connections",
		},
	)

	DBPoolIdleConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Number of idle database connections",
		},
	)

	DBPoolMaxConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_max_connections",
			Help: "Maximum number of database connections",
		},
	)

	DBPoolTotalConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_total_connections",
			Help: "Total number of database connections",
		},
	)

	DBQueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of circuit breaker failures",
		},
		[]string{"name"},
	)
)
