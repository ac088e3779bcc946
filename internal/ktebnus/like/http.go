// Copyright (c) 2026 Bnusa. All rights reserved.

package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yad-anakin/bnusa/internal/platform/middleware"
	requestutil "github.com/yad-anakin/bnusa/internal/platform/request"
	"github.com/yad-anakin/bnusa/internal/platform/respond"
)

// Handler implements the HTTP layer for book likes.
type Handler struct {
	service *Service
}

// NewHandler constructs a new like [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the like endpoints under /ktebnus/books/{slug}/like.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/ktebnus/books/{slug}/like", handler.GetLikes)

	api.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Post("/ktebnus/books/{slug}/like", handler.ToggleLike)
		member.Get("/ktebnus/books/{slug}/like/check", handler.CheckLike)
	})
}

/*
GET /api/v1/ktebnus/books/{slug}/like.

Description: Public like count. hasLiked is only true for an authenticated
caller who likes the book.

Response:
  - 200: {likes, hasLiked}
*/
func (handler *Handler) GetLikes(writer http.ResponseWriter, request *http.Request) {
	var userID string
	if claims := requestutil.Claims(request); claims != nil {
		userID = claims.UserID
	}

	status, err := handler.service.Status(request.Context(), requestutil.Param(request, "slug"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

// GET /api/v1/ktebnus/books/{slug}/like/check.
func (handler *Handler) CheckLike(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.Status(request.Context(), requestutil.Param(request, "slug"), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

type toggleRequest struct {
	Action Action `json:"action"`
}

/*
POST /api/v1/ktebnus/books/{slug}/like.

Request Body:
  - action: "like" | "unlike"

Response:
  - 200: {likes, hasLiked}
  - 400: Unknown action
  - 404: Book missing or not published
*/
func (handler *Handler) ToggleLike(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input toggleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.Toggle(request.Context(), requestutil.Param(request, "slug"), claims.UserID, input.Action)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}
