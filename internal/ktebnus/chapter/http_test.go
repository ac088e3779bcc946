// Copyright (c) 2026 Bnusa. All rights reserved.

package chapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yad-anakin/bnusa/internal/platform/middleware"
	"github.com/yad-anakin/bnusa/internal/platform/sec"
)

type tokenTable map[string]*sec.AuthClaims

func (table tokenTable) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := table[token]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

var testTokens = tokenTable{
	"owner-token":    {UserID: owner},
	"stranger-token": {UserID: stranger},
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	service, _ := newTestService()

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(testTokens))
	NewHandler(service).RegisterRoutes(router)
	return router
}

func do(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeData(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

func createViaHTTP(t *testing.T, router http.Handler, slug, body string) Chapter {
	t.Helper()
	recorder := do(t, router, http.MethodPost, "/books/"+slug+"/chapters", "owner-token", body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var payload struct {
		Chapter Chapter `json:"chapter"`
		Message string  `json:"message"`
	}
	decodeData(t, recorder, &payload)
	assert.Equal(t, "Chapter created successfully", payload.Message)
	return payload.Chapter
}

func TestHTTP_CreateIgnoresClientOrder(t *testing.T) {
	router := newTestRouter(t)

	createViaHTTP(t, router, "live-book", `{"title":"One","content":"<p>a</p>","order":7}`)
	second := createViaHTTP(t, router, "live-book", `{"title":"Two","content":"<p>b</p>","order":1}`)

	assert.Equal(t, 2, second.Order)
	assert.True(t, second.IsDraft)
}

func TestHTTP_OwnerRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, http.MethodPost, "/books/live-book/chapters", "", `{"title":"x","content":"y"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = do(t, router, http.MethodGet, "/books/live-book/chapters", "stranger-token", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHTTP_OwnerListWindow(t *testing.T) {
	router := newTestRouter(t)
	for _, title := range []string{"A", "B", "C", "D"} {
		createViaHTTP(t, router, "live-book", `{"title":"`+title+`","content":"<p>text</p>"}`)
	}

	recorder := do(t, router, http.MethodGet, "/books/live-book/chapters?skip=2&limit=1", "owner-token", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Chapters []ListItem `json:"chapters"`
		HasMore  bool       `json:"hasMore"`
		Skip     int        `json:"skip"`
		Limit    int        `json:"limit"`
	}
	decodeData(t, recorder, &payload)
	require.Len(t, payload.Chapters, 1)
	assert.Equal(t, "C", payload.Chapters[0].Title)
	assert.True(t, payload.HasMore)
	assert.Equal(t, 2, payload.Skip)
	assert.Equal(t, 1, payload.Limit)
}

func TestHTTP_PublicListCaching(t *testing.T) {
	router := newTestRouter(t)
	createViaHTTP(t, router, "live-book", `{"title":"One","content":"<p>a</p>","isDraft":false}`)
	createViaHTTP(t, router, "live-book", `{"title":"Two","content":"<p>b</p>"}`)

	recorder := do(t, router, http.MethodGet, "/ktebnus/books/live-book/chapters", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "public, max-age=30", recorder.Header().Get("Cache-Control"))

	var payload struct {
		Chapters []ListItem `json:"chapters"`
		HasMore  bool       `json:"hasMore"`
	}
	decodeData(t, recorder, &payload)
	require.Len(t, payload.Chapters, 1)
	assert.Equal(t, "One", payload.Chapters[0].Title)

	recorder = do(t, router, http.MethodGet, "/ktebnus/books/live-book/chapters?limit=5", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Cache-Control"))
}

func TestHTTP_PublicChapterIsNeverCached(t *testing.T) {
	router := newTestRouter(t)
	chapter := createViaHTTP(t, router, "live-book", `{"title":"One","content":"<p>a</p>","isDraft":false}`)
	draft := createViaHTTP(t, router, "live-book", `{"title":"Two","content":"<p>b</p>"}`)

	recorder := do(t, router, http.MethodGet, "/ktebnus/books/live-book/chapters/"+chapter.ID, "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))

	var payload struct {
		Success bool          `json:"success"`
		Chapter PublicChapter `json:"chapter"`
	}
	decodeData(t, recorder, &payload)
	assert.True(t, payload.Success)
	assert.Equal(t, "live-book", payload.Chapter.Book.Slug)
	assert.NotContains(t, recorder.Body.String(), "owner@bnusa.krd")

	recorder = do(t, router, http.MethodGet, "/ktebnus/books/live-book/chapters/"+draft.ID, "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
