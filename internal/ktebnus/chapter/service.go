// Copyright (c) 2026 Bnusa. All rights reserved.

package chapter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yad-anakin/bnusa/internal/ktebnus/book"
	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/internal/platform/sanitize"
	"github.com/yad-anakin/bnusa/internal/platform/validate"
	"github.com/yad-anakin/bnusa/pkg/pagination"
	"github.com/yad-anakin/bnusa/pkg/uuid"
)

const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// ListBounds are the skip/limit bounds for chapter lists.
var ListBounds = pagination.Bounds{DefaultLimit: 3, MaxLimit: 50}

// BookFinder resolves the parent book of a chapter request.
type BookFinder interface {
	FindOwned(context context.Context, slug, userID string) (*book.Book, error)
	FindPublished(context context.Context, slug string) (*book.Book, error)
}

// CreateInput is the payload for [Service.Create]. Any client supplied
// position is ignored.
type CreateInput struct {
	Title   string
	Content string
	IsDraft *bool
}

// UpdateInput is a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title   *string
	Content *string
	IsDraft *bool
}

// # Service Layer

// Service orchestrates the business logic for chapters.
type Service struct {
	books  BookFinder
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a chapter [Service].
func NewService(books BookFinder, repo Repository, logger *slog.Logger) *Service {
	return &Service{
		books:  books,
		repo:   repo,
		logger: logger,
	}
}

// # Owner Operations

/*
Create appends a chapter to the caller's book.

New chapters are drafts unless IsDraft is explicitly false.
*/
func (service *Service) Create(context context.Context, slug, userID string, input CreateInput) (*Chapter, error) {
	parent, err := service.books.FindOwned(context, slug, userID)
	if err != nil {
		return nil, err
	}

	chapter := &Chapter{
		ID:      uuid.New(),
		BookID:  parent.ID,
		Title:   sanitize.PlainText(input.Title),
		Content: sanitize.HTML(input.Content),
		IsDraft: true,
	}
	if input.IsDraft != nil {
		chapter.IsDraft = *input.IsDraft
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title)
	validator.Custom(FieldContent, isBlank(chapter.Content), "This field is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if err := validateFields(chapter); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, chapter); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("book_id", parent.ID),
		slog.Int("order", chapter.Order),
	)

	return chapter, nil
}

// Get returns one chapter of the caller's book with full content.
func (service *Service) Get(context context.Context, slug, userID, chapterID string) (*Chapter, error) {
	parent, err := service.books.FindOwned(context, slug, userID)
	if err != nil {
		return nil, err
	}
	return service.find(context, parent.ID, chapterID)
}

/*
List returns a window of the caller's chapters as excerpts.

One extra row is requested to learn whether more chapters follow.
*/
func (service *Service) List(context context.Context, slug, userID string, window pagination.Window) ([]ListItem, bool, error) {
	parent, err := service.books.FindOwned(context, slug, userID)
	if err != nil {
		return nil, false, err
	}
	return service.listWindow(context, parent.ID, false, window)
}

// Update applies a partial update to one of the caller's chapters.
func (service *Service) Update(context context.Context, slug, userID, chapterID string, input UpdateInput) (*Chapter, error) {
	parent, err := service.books.FindOwned(context, slug, userID)
	if err != nil {
		return nil, err
	}

	chapter, err := service.find(context, parent.ID, chapterID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		chapter.Title = sanitize.PlainText(*input.Title)
		if chapter.Title == "" {
			return nil, validate.FieldError(FieldTitle, "Title cannot be empty")
		}
	}
	if input.Content != nil {
		chapter.Content = sanitize.HTML(*input.Content)
		if isBlank(chapter.Content) {
			return nil, validate.FieldError(FieldContent, "Content cannot be empty")
		}
	}
	if input.IsDraft != nil {
		chapter.IsDraft = *input.IsDraft
	}
	if err := validateFields(chapter); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, chapter); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_updated",
		slog.String("chapter_id", chapter.ID),
		slog.String("book_id", parent.ID),
	)

	return chapter, nil
}

// Delete removes one of the caller's chapters.
func (service *Service) Delete(context context.Context, slug, userID, chapterID string) error {
	parent, err := service.books.FindOwned(context, slug, userID)
	if err != nil {
		return err
	}
	if !uuid.Valid(chapterID) {
		return apperr.NotFound(resourceChapter)
	}

	if err := service.repo.Delete(context, parent.ID, chapterID); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted",
		slog.String("chapter_id", chapterID),
		slog.String("book_id", parent.ID),
	)

	return nil
}

// # Reader Operations

// GetPublic returns a non-draft chapter of a published book.
func (service *Service) GetPublic(context context.Context, slug, chapterID string) (*PublicChapter, error) {
	parent, err := service.books.FindPublished(context, slug)
	if err != nil {
		return nil, err
	}

	chapter, err := service.find(context, parent.ID, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter.IsDraft {
		return nil, apperr.NotFound(resourceChapter)
	}

	public := newPublicChapter(chapter, parent)
	return &public, nil
}

/*
ListPublic returns the non-draft chapters of a published book.

A nil window returns every chapter, for clients that predate pagination.
*/
func (service *Service) ListPublic(context context.Context, slug string, window *pagination.Window) ([]ListItem, bool, error) {
	parent, err := service.books.FindPublished(context, slug)
	if err != nil {
		return nil, false, err
	}

	if window == nil {
		chapters, err := service.repo.ListByBook(context, parent.ID, true, 0, 0)
		if err != nil {
			return nil, false, err
		}
		return items(chapters), false, nil
	}

	return service.listWindow(context, parent.ID, true, *window)
}

// # Internal Helpers

func (service *Service) find(context context.Context, bookID, chapterID string) (*Chapter, error) {
	if !uuid.Valid(chapterID) {
		return nil, apperr.NotFound(resourceChapter)
	}
	return service.repo.FindByID(context, bookID, chapterID)
}

func (service *Service) listWindow(context context.Context, bookID string, publishedOnly bool, window pagination.Window) ([]ListItem, bool, error) {
	chapters, err := service.repo.ListByBook(context, bookID, publishedOnly, window.Skip, window.Limit+1)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(chapters) > window.Limit
	if hasMore {
		chapters = chapters[:window.Limit]
	}
	return items(chapters), hasMore, nil
}

func items(chapters []*Chapter) []ListItem {
	result := make([]ListItem, 0, len(chapters))
	for _, chapter := range chapters {
		result = append(result, chapter.Item())
	}
	return result
}

func validateFields(chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.MaxLen(FieldTitle, chapter.Title, MaxTitleLen)
	validator.MaxLen(FieldContent, chapter.Content, MaxContentLen)
	return validator.Err()
}

// isBlank reports whether sanitised HTML has nothing a reader would see.
func isBlank(content string) bool {
	return sanitize.PlainText(content) == "" && !strings.Contains(content, "<img")
}

// excerpt strips markup and keeps the first [ExcerptLen] characters.
func excerpt(content string) string {
	return strings.TrimSpace(sanitize.Excerpt(content, ExcerptLen))
}
