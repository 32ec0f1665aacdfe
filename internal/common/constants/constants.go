package constants

import "time"

type ContextKey string

const TraceIDKey ContextKey = "trace_id"

const (
	MaxMessageLength = 1000
	MaxNameLength    = 32

	MessagesPerPage = 20

	TokenBytes = 16

	DefaultMaxRequestSize = 1 << 20

	RelayCooldown = 5 * time.Second

	DiscordMaxFetchLimit = 100

	ServerReadHeaderTimeout = 5 * time.Second
	ServerReadTimeout       = 15 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 60 * time.Second

	RateLimitRequestsPerSecond = 10.0
	RateLimitBurst             = 20
	RateLimitCleanupInterval   = 5 * time.Minute
)
