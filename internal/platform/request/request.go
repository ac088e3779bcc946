// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It wraps chi URL parameters, query parsing and body decoding so handlers
share one error vocabulary.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/internal/platform/ctxutil"
	"github.com/yad-anakin/bnusa/internal/platform/sec"
	"github.com/yad-anakin/bnusa/internal/platform/validate"
	"github.com/yad-anakin/bnusa/pkg/convert"
)

// maxBodyBytes bounds request bodies; chapter content is the largest payload.
const maxBodyBytes = 2 << 20

/*
DecodeJSON reads the request body and decodes it into target.

An empty body decodes as the zero value. Any other decode failure returns
validate.ErrInvalidJSON.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns the authenticated caller, or nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the caller.

Returns apperr.Unauthorized when the request is anonymous.
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// # Query Parameters

// QueryInt parses a query parameter as an int. Missing or malformed values
// yield fallback.
func QueryInt(request *http.Request, name string, fallback int) int {
	return convert.ToIntD(request.URL.Query().Get(name), fallback)
}

// QueryBool reports whether a flag query parameter is present and truthy.
// A bare "?flag" counts as true.
func QueryBool(request *http.Request, name string) bool {
	query := request.URL.Query()
	return query.Has(name) && convert.ToFlag(query.Get(name))
}

// QueryString returns a trimmed query parameter.
func QueryString(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

// HasQuery reports whether any of the names are present in the query string.
func HasQuery(request *http.Request, names ...string) bool {
	query := request.URL.Query()
	for _, name := range names {
		if query.Has(name) {
			return true
		}
	}
	return false
}
