// Copyright (c) 2026 Bnusa. All rights reserved.

package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// Memory is an in-process fixed-window limiter guarded by a mutex.
type Memory struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	now       func() time.Time
	windows   map[string]*window
	lastSweep time.Time
}

// MemoryOption configures a [Memory] limiter.
type MemoryOption func(*Memory)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory returns a limiter allowing limit requests per key per window.
func NewMemory(limit int, windowSize time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		limit:   limit,
		window:  windowSize,
		now:     time.Now,
		windows: make(map[string]*window),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastSweep = m.now()
	return m
}

// Allow records one request for key.
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)

	current, ok := m.windows[key]
	if !ok || !now.Before(current.resetAt) {
		current = &window{resetAt: now.Add(m.window)}
		m.windows[key] = current
	}

	if current.count >= m.limit {
		return Decision{Allowed: false, RetryAfter: current.resetAt.Sub(now)}, nil
	}

	current.count++
	return Decision{Allowed: true, Remaining: m.limit - current.count}, nil
}

// sweep drops expired windows at most once per window length.
// Callers must hold m.mu.
func (m *Memory) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.window {
		return
	}
	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
		}
	}
	m.lastSweep = now
}

// Len reports how many keys are currently tracked.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
