// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package constants holds shared timeouts, limits and header names.

Categories:

  - Server Timing: read/write/idle timeouts for the HTTP server.
  - Rate Limiting: the global per-IP bucket and the per-user book update window.
  - Headers: names used by middleware.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "bnusa-api"
	AppVersion = "0.1.0"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed per IP.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often idle IP entries are removed.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long an IP must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// BookUpdateLimit is the number of book updates allowed per user per window.
	BookUpdateLimit = 20

	// BookUpdateWindow is the fixed window for BookUpdateLimit.
	BookUpdateWindow = 60 * time.Second

	// RedisPrefixBookUpdate namespaces book update counters in Redis.
	RedisPrefixBookUpdate = "ratelimit:book_update:"
)

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
)
