// Copyright (c) 2026 Bnusa. All rights reserved.

// Package dberr translates pgx errors into [apperr.AppError] values.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yad-anakin/bnusa/internal/platform/apperr"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Wrap inspects a database error and classifies it.
//
//   - pgx.ErrNoRows becomes NotFound(resource).
//   - A unique violation becomes Conflict.
//   - Everything else becomes Internal, with action kept in the cause for logs.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	if IsUniqueViolation(err) {
		return apperr.Conflict(resource + " already exists")
	}

	return apperr.Internal(fmt.Errorf("postgres: %s: %w", action, err))
}

// IsUniqueViolation reports whether err is a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
