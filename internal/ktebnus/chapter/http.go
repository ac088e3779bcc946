// Copyright (c) 2026 Bnusa. All rights reserved.

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yad-anakin/bnusa/internal/platform/middleware"
	requestutil "github.com/yad-anakin/bnusa/internal/platform/request"
	"github.com/yad-anakin/bnusa/internal/platform/respond"
)

const (
	FieldChapter  = "chapter"
	FieldChapters = "chapters"
	FieldHasMore  = "hasMore"
	FieldSkip     = "skip"
	FieldLimit    = "limit"
	FieldMessage  = "message"
	FieldSuccess  = "success"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapters.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches owner chapter endpoints under /books/{slug} and
// reader endpoints under /ktebnus/books/{slug}.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/ktebnus/books/{slug}/chapters", handler.ListPublicChapters)
	api.Get("/ktebnus/books/{slug}/chapters/{chapterID}", handler.GetPublicChapter)

	api.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Post("/books/{slug}/chapters", handler.CreateChapter)
		owner.Get("/books/{slug}/chapters", handler.ListChapters)
		owner.Get("/books/{slug}/chapters/{chapterID}", handler.GetChapter)
		owner.Put("/books/{slug}/chapters/{chapterID}", handler.UpdateChapter)
		owner.Delete("/books/{slug}/chapters/{chapterID}", handler.DeleteChapter)
	})
}

// # Owner Endpoints

// createChapterRequest ignores any "order" sent by older clients.
type createChapterRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	IsDraft *bool  `json:"isDraft"`
}

/*
POST /api/v1/books/{slug}/chapters.

Response:
  - 201: {chapter, message}
  - 400: Missing title or content
  - 404: Book missing or owned by someone else
*/
func (handler *Handler) CreateChapter(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createChapterRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Create(request.Context(), requestutil.Param(request, "slug"), claims.UserID, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldChapter: chapter,
		FieldMessage: "Chapter created successfully",
	})
}

/*
GET /api/v1/books/{slug}/chapters.

Request:
  - skip: int
  - limit: int (default 3, max 50)

Response:
  - 200: {chapters, hasMore, skip, limit}
*/
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	window := ListBounds.WindowFromRequest(request)

	chapters, hasMore, err := handler.service.List(request.Context(), requestutil.Param(request, "slug"), claims.UserID, window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldChapters: chapters,
		FieldHasMore:  hasMore,
		FieldSkip:     window.Skip,
		FieldLimit:    window.Limit,
	})
}

// GET /api/v1/books/{slug}/chapters/{chapterID}.
func (handler *Handler) GetChapter(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Get(request.Context(),
		requestutil.Param(request, "slug"), claims.UserID, requestutil.Param(request, "chapterID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldChapter: chapter})
}

type updateChapterRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	IsDraft *bool   `json:"isDraft"`
}

/*
PUT /api/v1/books/{slug}/chapters/{chapterID}.

Response:
  - 200: {chapter, message}
  - 400: Empty title or content
  - 404: Book or chapter not found
*/
func (handler *Handler) UpdateChapter(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateChapterRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Update(request.Context(),
		requestutil.Param(request, "slug"), claims.UserID, requestutil.Param(request, "chapterID"), UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldChapter: chapter,
		FieldMessage: "Chapter updated successfully",
	})
}

// DELETE /api/v1/books/{slug}/chapters/{chapterID}.
func (handler *Handler) DeleteChapter(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.Delete(request.Context(),
		requestutil.Param(request, "slug"), claims.UserID, requestutil.Param(request, "chapterID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldMessage: "Chapter deleted successfully"})
}

// # Public Endpoints

/*
GET /api/v1/ktebnus/books/{slug}/chapters.

Description: Lists the published chapters of a published book. Without skip
or limit the whole list is returned and may be cached briefly.

Response:
  - 200: {chapters, hasMore}
  - 404: Book missing or not published
*/
func (handler *Handler) ListPublicChapters(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if !requestutil.HasQuery(request, "skip", "limit") {
		chapters, _, err := handler.service.ListPublic(request.Context(), slug, nil)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Cached(writer, respond.CachePublicShort, map[string]any{
			FieldChapters: chapters,
			FieldHasMore:  false,
		})
		return
	}

	window := ListBounds.WindowFromRequest(request)
	chapters, hasMore, err := handler.service.ListPublic(request.Context(), slug, &window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldChapters: chapters,
		FieldHasMore:  hasMore,
		FieldSkip:     window.Skip,
		FieldLimit:    window.Limit,
	})
}

/*
GET /api/v1/ktebnus/books/{slug}/chapters/{chapterID}.

Description: Returns a published chapter with its book's display fields.
Never cached, so author edits show up immediately.

Response:
  - 200: {success, chapter}
  - 404: Book unpublished, chapter missing or still a draft
*/
func (handler *Handler) GetPublicChapter(writer http.ResponseWriter, request *http.Request) {
	chapter, err := handler.service.GetPublic(request.Context(),
		requestutil.Param(request, "slug"), requestutil.Param(request, "chapterID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Cached(writer, respond.CacheNoStore, map[string]any{
		FieldSuccess: true,
		FieldChapter: chapter,
	})
}
