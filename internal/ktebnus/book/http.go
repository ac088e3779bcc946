// Copyright (c) 2026 Bnusa. All rights reserved.

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yad-anakin/bnusa/internal/platform/middleware"
	requestutil "github.com/yad-anakin/bnusa/internal/platform/request"
	"github.com/yad-anakin/bnusa/internal/platform/respond"
	"github.com/yad-anakin/bnusa/internal/platform/sec"
	"github.com/yad-anakin/bnusa/pkg/pagination"
	"github.com/yad-anakin/bnusa/pkg/slice"
)

const (
	FieldBook       = "book"
	FieldBooks      = "books"
	FieldTotal      = "total"
	FieldPage       = "page"
	FieldLimit      = "limit"
	FieldMessage    = "message"
	FieldPagination = "pagination"
	FieldFilters    = "filters"
)

// # Handler Implementation

// Handler implements the HTTP layer for books.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the owner (/books) and public (/ktebnus/books) endpoints.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/ktebnus/books", handler.ListPublicBooks)
	api.Get("/ktebnus/books/{slug}", handler.GetPublicBook)

	api.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Post("/books", handler.CreateBook)
		owner.Get("/books", handler.ListOwnBooks)
		owner.Get("/books/{slug}", handler.GetOwnBook)
		owner.Put("/books/{slug}", handler.UpdateBook)
		owner.Delete("/books/{slug}", handler.DeleteBook)
		owner.Post("/books/{slug}/publish", handler.PublishBook)
	})
}

// authorFromClaims snapshots the caller's profile for a new book.
func authorFromClaims(claims *sec.AuthClaims) Author {
	return Author{
		Name:     claims.Name(),
		Username: claims.Username(),
		Email:    claims.Email,
		Avatar:   claims.PhotoURL,
	}
}

// # Owner Endpoints

type createBookRequest struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Genre         string              `json:"genre"`
	Status        Status              `json:"status"`
	CoverImage    string              `json:"coverImage"`
	SpotifyLink   string              `json:"spotifyLink"`
	YoutubeLinks  []string            `json:"youtubeLinks"`
	ResourceLinks []ResourceLinkInput `json:"resourceLinks"`
}

/*
POST /api/v1/books.

Description: Creates a draft book owned by the caller.

Response:
  - 201: {book, message}
  - 400: Missing title, description or genre; invalid links
  - 401: Authentication required
*/
func (handler *Handler) CreateBook(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createBookRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), claims.UserID, authorFromClaims(claims), CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldBook:    book,
		FieldMessage: "Book created successfully",
	})
}

/*
GET /api/v1/books.

Request:
  - page, limit: int (limit capped at 24)
  - drafts, published: bool filters

Response:
  - 200: {books, total, page, limit}
*/
func (handler *Handler) ListOwnBooks(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := OwnerListBounds.PageFromRequest(request)
	filter := OwnerFilter{
		DraftsOnly:    requestutil.QueryBool(request, "drafts"),
		PublishedOnly: requestutil.QueryBool(request, "published"),
	}

	books, total, err := handler.service.ListOwned(request.Context(), claims.UserID, filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldBooks: books,
		FieldTotal: total,
		FieldPage:  page.Page,
		FieldLimit: page.Limit,
	})
}

/*
GET /api/v1/books/{slug}.

Response:
  - 200: {book, chapters}
  - 404: Book missing or owned by someone else
*/
func (handler *Handler) GetOwnBook(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, chapters, err := handler.service.GetOwned(request.Context(), requestutil.Param(request, "slug"), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldBook:     book,
		FieldChapters: chapters,
	})
}

type updateBookRequest struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	Genre         *string              `json:"genre"`
	Status        *Status              `json:"status"`
	CoverImage    *string              `json:"coverImage"`
	SpotifyLink   *string              `json:"spotifyLink"`
	YoutubeLinks  *[]string            `json:"youtubeLinks"`
	ResourceLinks *[]ResourceLinkInput `json:"resourceLinks"`
}

/*
PUT /api/v1/books/{slug}.

Description: Partially updates the caller's book. Limited to 20 calls per
minute per user.

Response:
  - 200: {book, message}
  - 400: Invalid field or link
  - 404: Book missing or owned by someone else
  - 429: Rate limit exceeded (Retry-After set)
*/
func (handler *Handler) UpdateBook(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateBookRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Update(request.Context(), requestutil.Param(request, "slug"), claims.UserID, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldBook:    book,
		FieldMessage: "Book updated successfully",
	})
}

/*
DELETE /api/v1/books/{slug}.

Response:
  - 200: {message}
  - 404: Book missing or owned by someone else
*/
func (handler *Handler) DeleteBook(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "slug"), claims.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldMessage: "Book deleted successfully"})
}

/*
POST /api/v1/books/{slug}/publish.

Description: Submits a draft with at least one chapter for review.

Response:
  - 200: {book, message}
  - 400: Book has no chapters
  - 409: Already published or pending review
*/
func (handler *Handler) PublishBook(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Publish(request.Context(), requestutil.Param(request, "slug"), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldBook:    book,
		FieldMessage: "Book submitted for review",
	})
}

// # Public Endpoints

/*
GET /api/v1/ktebnus/books/{slug}.

Description: Returns a published book and counts a view. Clients pass
?noInc=1 on refetches so a single visit is counted once.

Response:
  - 200: {book}
  - 404: Book missing or not published
*/
func (handler *Handler) GetPublicBook(writer http.ResponseWriter, request *http.Request) {
	countView := !requestutil.QueryBool(request, "noInc")

	book, err := handler.service.View(request.Context(), requestutil.Param(request, "slug"), countView)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldBook: book.Public()})
}

/*
GET /api/v1/ktebnus/books.

Request:
  - page, limit: int (limit capped at 24)
  - search: matches title, description or author name
  - genre: exact genre, case-insensitive
  - year: creation year

Response:
  - 200: {books, pagination, filters}
*/
func (handler *Handler) ListPublicBooks(writer http.ResponseWriter, request *http.Request) {
	page := PublicListBounds.PageFromRequest(request)
	filter := PublicFilter{
		Search: requestutil.QueryString(request, "search"),
		Genre:  requestutil.QueryString(request, "genre"),
		Year:   requestutil.QueryInt(request, "year", 0),
	}

	books, total, err := handler.service.ListPublished(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldBooks:      slice.Map(books, func(b *Book) PublicBook { return b.Public() }),
		FieldPagination: pagination.NewMeta(page, total),
		FieldFilters:    filter,
	})
}
