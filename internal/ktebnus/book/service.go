// Copyright (c) 2026 Bnusa. All rights reserved.

package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/internal/platform/ratelimit"
	"github.com/yad-anakin/bnusa/internal/platform/sanitize"
	"github.com/yad-anakin/bnusa/internal/platform/validate"
	"github.com/yad-anakin/bnusa/pkg/pagination"
	"github.com/yad-anakin/bnusa/pkg/slug"
	"github.com/yad-anakin/bnusa/pkg/uuid"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldStatus      = "status"
	FieldCoverImage  = "coverImage"
	FieldChapters    = "chapters"
)

// Page size bounds for book lists.
var (
	OwnerListBounds  = pagination.Bounds{DefaultLimit: 12, MaxLimit: 24}
	PublicListBounds = pagination.Bounds{DefaultLimit: 12, MaxLimit: 24}
)

// # Inputs

// CreateInput is the payload for [Service.Create].
type CreateInput struct {
	Title         string
	Description   string
	Genre         string
	Status        Status
	CoverImage    string
	SpotifyLink   string
	YoutubeLinks  []string
	ResourceLinks []ResourceLinkInput
}

// UpdateInput is a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title         *string
	Description   *string
	Genre         *string
	Status        *Status
	CoverImage    *string
	SpotifyLink   *string
	YoutubeLinks  *[]string
	ResourceLinks *[]ResourceLinkInput
}

// # Service Layer

// Service orchestrates the business logic for books.
type Service struct {
	repo          Repository
	updateLimiter ratelimit.Limiter
	logger        *slog.Logger
}

// NewService constructs a [Service]. updateLimiter throttles [Service.Update] per user.
func NewService(repo Repository, updateLimiter ratelimit.Limiter, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		updateLimiter: updateLimiter,
		logger:        logger,
	}
}

// # Owner Operations

/*
Create registers a new draft book for userID.

The slug is derived from the title with a random suffix. Optional links go
through the same normalisation as [Service.Update].
*/
func (service *Service) Create(context context.Context, userID string, author Author, input CreateInput) (*Book, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	book := &Book{
		ID:            uuid.New(),
		UserID:        userID,
		Author:        author,
		Title:         sanitize.PlainText(input.Title),
		Description:   sanitize.Text(input.Description),
		Genre:         sanitize.PlainText(input.Genre),
		Status:        input.Status,
		CoverImage:    strings.TrimSpace(input.CoverImage),
		YoutubeLinks:  []string{},
		ResourceLinks: []ResourceLink{},
		IsDraft:       true,
	}
	if book.Status == "" {
		book.Status = StatusOngoing
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, book.Title)
	validator.Required(FieldDescription, book.Description)
	validator.Required(FieldGenre, book.Genre)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if err := validateFields(book); err != nil {
		return nil, err
	}

	var err error
	if book.SpotifyLink, err = normalizeSpotify(input.SpotifyLink); err != nil {
		return nil, err
	}
	if input.YoutubeLinks != nil {
		if book.YoutubeLinks, err = normalizeYouTube(input.YoutubeLinks); err != nil {
			return nil, err
		}
	}
	if input.ResourceLinks != nil {
		if book.ResourceLinks, err = normalizeResourceLinks(input.ResourceLinks); err != nil {
			return nil, err
		}
	}

	book.Slug = slug.Unique(book.Title)

	if err := service.repo.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("slug", book.Slug),
		slog.String("user_id", userID),
	)

	return book, nil
}

// FindOwned returns the caller's book. Other users' books read as NotFound.
func (service *Service) FindOwned(context context.Context, slug, userID string) (*Book, error) {
	return service.repo.FindByOwner(context, slug, userID)
}

// GetOwned returns the caller's book with its chapter outline.
func (service *Service) GetOwned(context context.Context, slug, userID string) (*Book, []ChapterSummary, error) {
	book, err := service.repo.FindByOwner(context, slug, userID)
	if err != nil {
		return nil, nil, err
	}

	chapters, err := service.repo.ListChapterOutline(context, book.ID)
	if err != nil {
		return nil, nil, err
	}

	return book, chapters, nil
}

// ListOwned returns one page of the caller's books.
func (service *Service) ListOwned(context context.Context, userID string, filter OwnerFilter, page pagination.Page) ([]*Book, int, error) {
	return service.repo.ListByOwner(context, userID, filter, page.Limit, page.Offset())
}

/*
Update applies a partial update to the caller's book.

The per-user rate limit is checked first, so throttled callers never touch
storage. A limiter failure lets the request through.
*/
func (service *Service) Update(context context.Context, slug, userID string, input UpdateInput) (*Book, error) {
	if err := service.checkUpdateRate(context, userID); err != nil {
		return nil, err
	}

	book, err := service.repo.FindByOwner(context, slug, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = sanitize.PlainText(*input.Title)
		if book.Title == "" {
			return nil, validate.FieldError(FieldTitle, "Title cannot be empty")
		}
	}
	if input.Description != nil {
		book.Description = sanitize.Text(*input.Description)
		if book.Description == "" {
			return nil, validate.FieldError(FieldDescription, "Description cannot be empty")
		}
	}
	if input.Genre != nil {
		book.Genre = sanitize.PlainText(*input.Genre)
		if book.Genre == "" {
			return nil, validate.FieldError(FieldGenre, "Genre cannot be empty")
		}
	}
	if input.Status != nil {
		book.Status = *input.Status
	}
	if input.CoverImage != nil {
		book.CoverImage = strings.TrimSpace(*input.CoverImage)
	}
	if err := validateFields(book); err != nil {
		return nil, err
	}

	if input.SpotifyLink != nil {
		if book.SpotifyLink, err = normalizeSpotify(*input.SpotifyLink); err != nil {
			return nil, err
		}
	}
	if input.YoutubeLinks != nil {
		if book.YoutubeLinks, err = normalizeYouTube(*input.YoutubeLinks); err != nil {
			return nil, err
		}
	}
	if input.ResourceLinks != nil {
		if book.ResourceLinks, err = normalizeResourceLinks(*input.ResourceLinks); err != nil {
			return nil, err
		}
	}

	if err := service.repo.Update(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_updated",
		slog.String("book_id", book.ID),
		slog.String("user_id", userID),
	)

	return book, nil
}

// Delete removes the caller's book and its chapters.
func (service *Service) Delete(context context.Context, slug, userID string) error {
	book, err := service.repo.FindByOwner(context, slug, userID)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, book.ID); err != nil {
		return err
	}

	service.logger.Info("book_deleted",
		slog.String("book_id", book.ID),
		slog.String("slug", book.Slug),
		slog.String("user_id", userID),
	)

	return nil
}

/*
Publish submits the caller's draft for review.

Fails with Conflict when the book is already published or pending, and with
a validation error when it has no chapters.
*/
func (service *Service) Publish(context context.Context, slug, userID string) (*Book, error) {
	book, err := service.repo.FindByOwner(context, slug, userID)
	if err != nil {
		return nil, err
	}

	if book.IsPublished {
		return nil, apperr.Conflict("Book is already published")
	}
	if book.IsPendingReview {
		return nil, apperr.Conflict("Book is already pending review")
	}

	count, err := service.repo.CountChapters(context, book.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, validate.FieldError(FieldChapters, "Add at least one chapter before publishing")
	}

	book, err = service.repo.MarkPendingReview(context, book.ID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_submitted_for_review",
		slog.String("book_id", book.ID),
		slog.String("user_id", userID),
		slog.Int("chapters", count),
	)

	return book, nil
}

// # Reader Operations

// View returns a published book, counting the view unless countView is false.
func (service *Service) View(context context.Context, slug string, countView bool) (*Book, error) {
	return service.repo.FindPublished(context, slug, countView)
}

// FindPublished returns a published book without counting a view.
func (service *Service) FindPublished(context context.Context, slug string) (*Book, error) {
	return service.repo.FindPublished(context, slug, false)
}

// FindBySlug returns a book in any state. Used for ownership checks on
// resources that outlive publication.
func (service *Service) FindBySlug(context context.Context, slug string) (*Book, error) {
	return service.repo.FindBySlug(context, slug)
}

// ListPublished returns one page of the public catalogue.
func (service *Service) ListPublished(context context.Context, filter PublicFilter, page pagination.Page) ([]*Book, int, error) {
	return service.repo.ListPublished(context, filter, page.Limit, page.Offset())
}

// # Internal Helpers

// validateFields checks the bounded fields shared by create and update.
func validateFields(book *Book) error {
	validator := &validate.Validator{}
	validator.MaxLen(FieldTitle, book.Title, MaxTitleLen)
	validator.MaxLen(FieldDescription, book.Description, MaxDescriptionLen)
	validator.MaxLen(FieldGenre, book.Genre, MaxGenreLen)
	validator.Custom(FieldStatus, !book.Status.IsValid(), "Must be one of: ongoing, finished")
	if book.CoverImage != "" {
		validator.HTTPURL(FieldCoverImage, book.CoverImage)
	}
	return validator.Err()
}

func (service *Service) checkUpdateRate(context context.Context, userID string) error {
	decision, err := service.updateLimiter.Allow(context, userID)
	if err != nil {
		service.logger.Warn("book_update_rate_limit_unavailable",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if !decision.Allowed {
		return apperr.RateLimited(decision.RetryAfter)
	}
	return nil
}
