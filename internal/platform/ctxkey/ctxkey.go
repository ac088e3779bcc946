// Copyright (c) 2026 Bnusa. All rights reserved.

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// The unexported key type prevents collisions with values stored by other
// packages under the same string.
package ctxkey

type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the authenticated caller ([sec.AuthClaims]).
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
