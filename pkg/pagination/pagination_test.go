// Copyright (c) 2026 Bnusa. All rights reserved.

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yad-anakin/bnusa/pkg/pagination"
)

var bookBounds = pagination.Bounds{DefaultLimit: 12, MaxLimit: 24}

func TestPageFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Page
	}{
		{"defaults", "", pagination.Page{Page: 1, Limit: 12}},
		{"explicit", "?page=3&limit=5", pagination.Page{Page: 3, Limit: 5}},
		{"capped", "?limit=500", pagination.Page{Page: 1, Limit: 24}},
		{"garbage", "?page=x&limit=-2", pagination.Page{Page: 1, Limit: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/books"+tt.query, nil)
			assert.Equal(t, tt.want, bookBounds.PageFromRequest(request))
		})
	}
}

func TestWindowFromRequest(t *testing.T) {
	bounds := pagination.Bounds{DefaultLimit: 3, MaxLimit: 50}

	request := httptest.NewRequest("GET", "/chapters?skip=6&limit=100", nil)
	assert.Equal(t, pagination.Window{Skip: 6, Limit: 50}, bounds.WindowFromRequest(request))

	request = httptest.NewRequest("GET", "/chapters?skip=-4", nil)
	assert.Equal(t, pagination.Window{Skip: 0, Limit: 3}, bounds.WindowFromRequest(request))
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Page{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasMore)
	assert.Equal(t, 20, pagination.Page{Page: 3, Limit: 10}.Offset())

	last := pagination.NewMeta(pagination.Page{Page: 3, Limit: 10}, 25)
	assert.False(t, last.HasMore)
}

func TestPageFromRequest_HugePage(t *testing.T) {
	request := httptest.NewRequest("GET", "/books?page=999999999999999999&limit=24", nil)
	page := bookBounds.PageFromRequest(request)

	assert.Equal(t, pagination.MaxPage, page.Page)
	assert.Equal(t, (pagination.MaxPage-1)*24, page.Offset())
}

func TestOffset_NeverWraps(t *testing.T) {
	page := pagination.Page{Page: math.MaxInt, Limit: 50}
	assert.Equal(t, math.MaxInt, page.Offset())
	assert.Zero(t, pagination.Page{Page: 5, Limit: 0}.Offset())
}
