// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package apperr holds the single error type that services hand to the HTTP layer.

An [AppError] pairs a stable machine code with a message the client may see
and the status the transport should answer with. The wrapped cause only ever
reaches the logs.
*/
package apperr

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

// Machine-readable error codes.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is a classified failure.
//
// # Security
//
// Cause is not serialised; 5xx responses carry a generic message only.
type AppError struct {
	Code       string        `json:"code"`
	Message    string        `json:"error"`
	HTTPStatus int           `json:"-"`
	Cause      error         `json:"-"`
	Details    []FieldError  `json:"details,omitempty"`
	RetryAfter time.Duration `json:"-"`
}

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource, or one the caller may not see.
//
//	apperr.NotFound("Book") // "Book not found"
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

// Unauthorized reports a missing or rejected credential.
func Unauthorized(msg string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, msg)
}

// Forbidden reports an authenticated caller acting on something they do not own.
func Forbidden(msg string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, msg)
}

// Conflict covers duplicate rows and illegal state transitions.
func Conflict(msg string) *AppError {
	return newError(CodeConflict, http.StatusConflict, msg)
}

// ValidationError is a 400 with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	err := newError(CodeValidation, http.StatusBadRequest, msg)
	err.Details = details
	return err
}

// RateLimited is a 429. The wait is rounded up to whole seconds, minimum one.
func RateLimited(retryAfter time.Duration) *AppError {
	seconds := max(int(math.Ceil(retryAfter.Seconds())), 1)
	err := newError(CodeRateLimited, http.StatusTooManyRequests,
		fmt.Sprintf("Rate limit exceeded. Try again in %ds.", seconds))
	err.RetryAfter = time.Duration(seconds) * time.Second
	return err
}

// # Server Errors (5xx)

// Internal hides cause behind a generic 500 message.
func Internal(cause error) *AppError {
	err := newError(CodeInternal, http.StatusInternalServerError, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// # Helpers

// Is reports whether err carries an [*AppError] with the given code.
func Is(err error, code string) bool {
	appErr := As(err)
	return appErr != nil && appErr.Code == code
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
