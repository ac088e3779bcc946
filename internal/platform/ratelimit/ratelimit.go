// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package ratelimit implements fixed-window request throttling keyed by caller.

Two backends share the [Limiter] contract:

  - [Memory]: process-local counters. Correct for a single instance.
  - [Redis]: counters in Redis, shared by every instance behind a load balancer.

A window opens on the first request for a key and resets lazily on the first
request after it expires.
*/
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a single [Limiter.Allow] call.
type Decision struct {
	// Allowed reports whether the request fits in the current window.
	Allowed bool
	// Remaining is the number of requests left in the window after this one.
	Remaining int
	// RetryAfter is how long until the window resets. Zero when Allowed.
	RetryAfter time.Duration
}

// Limiter counts requests per key inside a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
