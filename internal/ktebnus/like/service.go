// Copyright (c) 2026 Bnusa. All rights reserved.

package like

import (
	"context"
	"log/slog"

	"github.com/yad-anakin/bnusa/internal/ktebnus/book"
	"github.com/yad-anakin/bnusa/internal/platform/validate"
)

const FieldAction = "action"

// BookFinder resolves published books by slug.
type BookFinder interface {
	FindPublished(context context.Context, slug string) (*book.Book, error)
}

// Service orchestrates likes on published books.
type Service struct {
	books  BookFinder
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a like [Service].
func NewService(books BookFinder, repo Repository, logger *slog.Logger) *Service {
	return &Service{
		books:  books,
		repo:   repo,
		logger: logger,
	}
}

/*
Status returns the like count of a published book. hasLiked is only
looked up when userID is non-empty.
*/
func (service *Service) Status(context context.Context, slug, userID string) (Status, error) {
	parent, err := service.books.FindPublished(context, slug)
	if err != nil {
		return Status{}, err
	}
	return service.status(context, parent.ID, userID)
}

/*
Toggle applies a like or unlike and returns the state read back afterwards.

Both directions are idempotent: liking twice keeps one like, unliking
without a like changes nothing.
*/
func (service *Service) Toggle(context context.Context, slug, userID string, action Action) (Status, error) {
	if !action.IsValid() {
		return Status{}, validate.FieldError(FieldAction, `Action must be "like" or "unlike"`)
	}

	parent, err := service.books.FindPublished(context, slug)
	if err != nil {
		return Status{}, err
	}

	if action == ActionLike {
		err = service.repo.Like(context, parent.ID, userID)
	} else {
		err = service.repo.Unlike(context, parent.ID, userID)
	}
	if err != nil {
		return Status{}, err
	}

	service.logger.Debug("book_like_toggled",
		slog.String("book_id", parent.ID),
		slog.String("action", string(action)),
	)

	return service.status(context, parent.ID, userID)
}

func (service *Service) status(context context.Context, bookID, userID string) (Status, error) {
	count, err := service.repo.Count(context, bookID)
	if err != nil {
		return Status{}, err
	}

	status := Status{Likes: count}
	if userID == "" {
		return status, nil
	}

	status.HasLiked, err = service.repo.Has(context, bookID, userID)
	if err != nil {
		return Status{}, err
	}
	return status, nil
}
