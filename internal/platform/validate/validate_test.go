// Copyright (c) 2026 Bnusa. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/internal/platform/validate"
)

func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Bnusa", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.NoError(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
		})
	}
}

func TestIsHTTPURL(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"https://bnusa.krd/books", true},
		{"http://example.com", true},
		{"ftp://example.com/file", false},
		{"javascript:alert(1)", false},
		{"not a url", false},
		{"", false},
		{"https://", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.valid, validate.IsHTTPURL(tt.raw))
		})
	}
}

func TestValidator_ChainAccumulates(t *testing.T) {
	err := (&validate.Validator{}).
		Required("title", "").
		MaxLen("genre", "abcdef", 3).
		OneOf("status", "paused", "ongoing", "finished").
		HTTPURL("coverImage", "nope").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}

func TestValidator_MinLen(t *testing.T) {
	v := &validate.Validator{}
	v.MinLen("content", "ئا", 2)
	assert.False(t, v.HasErrors())

	v.MinLen("content", "ئ", 2)
	assert.True(t, v.HasErrors())
}
