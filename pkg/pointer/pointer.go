// Copyright (c) 2026 Bnusa. All rights reserved.

// Package pointer has generic helpers for optional (PATCH-style) fields.
package pointer

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
