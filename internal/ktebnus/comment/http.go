// Copyright (c) 2026 Bnusa. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yad-anakin/bnusa/internal/platform/middleware"
	requestutil "github.com/yad-anakin/bnusa/internal/platform/request"
	"github.com/yad-anakin/bnusa/internal/platform/respond"
	"github.com/yad-anakin/bnusa/internal/platform/sec"
)

const (
	FieldComments   = "comments"
	FieldHasMore    = "hasMore"
	FieldPagination = "pagination"
	FieldMessage    = "message"
)

// # Handler Implementation

// Handler implements the HTTP layer for book comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the comment endpoints under /ktebnus/books/{slug}.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/ktebnus/books/{slug}/comments", handler.ListComments)
	api.Get("/ktebnus/books/{slug}/comments/{commentID}/replies", handler.ListReplies)

	api.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Post("/ktebnus/books/{slug}/comments", handler.CreateComment)
		member.Delete("/ktebnus/books/{slug}/comments/{commentID}", handler.DeleteComment)
	})
}

func authorFromClaims(claims *sec.AuthClaims) Author {
	return Author{
		UserID: claims.UserID,
		Name:   claims.Name(),
		Email:  claims.Email,
		Avatar: claims.PhotoURL,
	}
}

/*
GET /api/v1/ktebnus/books/{slug}/comments.

Request:
  - page: int
  - limit: int (default 10, max 50)

Response:
  - 200: {comments, hasMore, pagination}
  - 404: Book missing or not published
*/
func (handler *Handler) ListComments(writer http.ResponseWriter, request *http.Request) {
	page := ListBounds.PageFromRequest(request)

	threads, meta, err := handler.service.List(request.Context(), requestutil.Param(request, "slug"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldComments:   threads,
		FieldHasMore:    meta.HasMore,
		FieldPagination: meta,
	})
}

/*
GET /api/v1/ktebnus/books/{slug}/comments/{commentID}/replies.

Response:
  - 200: {comments, hasMore, pagination}, newest first
  - 404: Book or comment missing
*/
func (handler *Handler) ListReplies(writer http.ResponseWriter, request *http.Request) {
	page := ListBounds.PageFromRequest(request)

	replies, meta, err := handler.service.Replies(request.Context(),
		requestutil.Param(request, "slug"), requestutil.Param(request, "commentID"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldComments:   replies,
		FieldHasMore:    meta.HasMore,
		FieldPagination: meta,
	})
}

type createCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
}

/*
POST /api/v1/ktebnus/books/{slug}/comments.

Request Body:
  - content: string (1-1000 chars)
  - parentId: string (optional, the comment being answered)

Response:
  - 201: the new comment
  - 400: Content empty or too long
  - 404: Book not published or parent comment missing
*/
func (handler *Handler) CreateComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(),
		requestutil.Param(request, "slug"), authorFromClaims(claims), CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/ktebnus/books/{slug}/comments/{commentID}.

Description: Deletes the comment and all of its replies.

Response:
  - 200: {message}
  - 403: Caller is neither the commenter nor the book owner
  - 404: Comment missing
*/
func (handler *Handler) DeleteComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.Delete(request.Context(),
		requestutil.Param(request, "slug"), requestutil.Param(request, "commentID"), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldMessage: "Comment deleted successfully"})
}
