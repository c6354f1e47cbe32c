package constants

import "time"

const (
	UsernameMinLength  = 3
	UsernameMaxLength  = 20
	PasswordMinLength  = 8
	PasswordMaxLength  = 60
	NoteContentMin     = 5
	JWTSecretMinLength = 32
	PasswordSymbols    = "~!@#$%^&*"
	BcryptCost         = 10

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	MongoConnectTimeout = 10 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "3001"
	DefaultTokenTTL       = time.Hour
	DefaultRequestTimeout = 5 * time.Second
	DefaultMongoDatabase  = "notes"
	TestMongoDatabase     = "notes_test"

	StoreBreakerThreshold  = 5
	StoreBreakerTimeout    = 3 * time.Second
	StoreBreakerResetAfter = 30 * time.Second

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitLoginRequestsPerSecond   = 1.0
	RateLimitLoginBurst               = 5
	RateLimitSignupRequestsPerSecond  = 0.5
	RateLimitSignupBurst              = 3
	RateLimitGeneralRequestsPerSecond = 20.0
	RateLimitGeneralBurst             = 40

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
