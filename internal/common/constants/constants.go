package constants

import "time"

const (
	UsernameMinLength  = 3
	UsernameMaxLength  = 32
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	AboutMeMaxLength   = 140
	PostBodyMaxLength  = 140
	SecretKeyMinLength = 32

	BcryptCost = 12

	DefaultPostsPerPage = 10
	MaxPostsPerPage     = 100

	DefaultResetTokenTTL = 10 * time.Minute

	DefaultLastSeenInterval = time.Minute

	LastSeenQueueSize     = 100
	LastSeenBatchSize     = 100
	LastSeenFlushEvery    = 500 * time.Millisecond
	LastSeenUpdateTimeout = 3 * time.Second

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	DefaultRequestTimeout = 5 * time.Second

	DefaultCircuitBreakerThreshold = 500
	DefaultCircuitBreakerTimeout   = 15 * time.Second
	DefaultCircuitBreakerReset     = 10 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)
