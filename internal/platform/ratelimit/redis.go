// Copyright (c) 2026 Bnusa. All rights reserved.

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the counter and arms its expiry atomically.
// It returns {count, pttl}.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Redis is a fixed-window limiter whose counters live in Redis.
type Redis struct {
	client redis.Scripter
	prefix string
	limit  int
	window time.Duration
}

// NewRedis returns a limiter storing counters under prefix+key.
func NewRedis(client redis.Scripter, prefix string, limit int, windowSize time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, limit: limit, window: windowSize}
}

// Allow records one request for key.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	values, err := fixedWindowScript.Run(ctx, r.client, []string{r.prefix + key}, r.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: redis script failed: %w", err)
	}
	if len(values) != 2 {
		return Decision{}, fmt.Errorf("ratelimit: unexpected script reply %v", values)
	}

	count, ttl := int(values[0]), time.Duration(values[1])*time.Millisecond
	if count > r.limit {
		return Decision{Allowed: false, RetryAfter: ttl}, nil
	}

	return Decision{Allowed: true, Remaining: r.limit - count}, nil
}
