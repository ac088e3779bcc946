// Copyright (c) 2026 Bnusa. All rights reserved.

// Package pagination parses list paging parameters and builds response metadata.
//
// Two styles are used by the API: page/limit for book lists and skip/limit
// for chapter and comment windows.
package pagination

import (
	"math"
	"net/http"

	"github.com/yad-anakin/bnusa/pkg/convert"
)

// MaxPage is the highest page number a request can ask for.
const MaxPage = 100_000

// Bounds configures defaults for one endpoint.
type Bounds struct {
	DefaultLimit int
	MaxLimit     int
}

// Page is a 1-indexed page request.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Window is a skip/limit request.
type Window struct {
	Skip  int
	Limit int
}

// Meta is the pagination block of page-based list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// NewMeta computes TotalPages and HasMore from total.
func NewMeta(page Page, total int) Meta {
	totalPages := 0
	if page.Limit > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}
	return Meta{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page.Page < totalPages,
	}
}

// clampLimit applies the endpoint default to non-positive values and caps the rest.
func (b Bounds) clampLimit(limit int) int {
	if limit < 1 {
		return b.DefaultLimit
	}
	if b.MaxLimit > 0 && limit > b.MaxLimit {
		return b.MaxLimit
	}
	return limit
}

// NewPage clamps raw page/limit values.
func (b Bounds) NewPage(page, limit int) Page {
	page = min(max(page, 1), MaxPage)
	return Page{Page: page, Limit: b.clampLimit(limit)}
}

// NewWindow clamps raw skip/limit values.
func (b Bounds) NewWindow(skip, limit int) Window {
	if skip < 0 {
		skip = 0
	}
	return Window{Skip: skip, Limit: b.clampLimit(limit)}
}

// PageFromRequest reads "page" and "limit" from the query string.
func (b Bounds) PageFromRequest(r *http.Request) Page {
	query := r.URL.Query()
	return b.NewPage(convert.ToIntD(query.Get("page"), 1), convert.ToIntD(query.Get("limit"), b.DefaultLimit))
}

// WindowFromRequest reads "skip" and "limit" from the query string.
func (b Bounds) WindowFromRequest(r *http.Request) Window {
	query := r.URL.Query()
	return b.NewWindow(convert.ToIntD(query.Get("skip"), 0), convert.ToIntD(query.Get("limit"), b.DefaultLimit))
}
