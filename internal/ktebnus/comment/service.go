// Copyright (c) 2026 Bnusa. All rights reserved.

package comment

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yad-anakin/bnusa/internal/ktebnus/book"
	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/internal/platform/sanitize"
	"github.com/yad-anakin/bnusa/internal/platform/validate"
	"github.com/yad-anakin/bnusa/pkg/pagination"
	"github.com/yad-anakin/bnusa/pkg/pointer"
	"github.com/yad-anakin/bnusa/pkg/uuid"
)

const (
	FieldContent  = "content"
	FieldParentID = "parentId"

	// replyFetchers bounds concurrent reply lookups while building a page.
	replyFetchers = 4
)

// ListBounds are the page bounds for comment and reply lists.
var ListBounds = pagination.Bounds{DefaultLimit: 10, MaxLimit: 50}

// BookFinder resolves the book a comment request targets.
type BookFinder interface {
	FindPublished(context context.Context, slug string) (*book.Book, error)
	FindBySlug(context context.Context, slug string) (*book.Book, error)
}

// CreateInput is the payload for [Service.Create].
type CreateInput struct {
	Content  string
	ParentID *string
}

// # Service Layer

// Service orchestrates the business logic for book comments.
type Service struct {
	books  BookFinder
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a comment [Service].
func NewService(books BookFinder, repo Repository, logger *slog.Logger) *Service {
	return &Service{
		books:  books,
		repo:   repo,
		logger: logger,
	}
}

/*
Create posts a comment on a published book.

Content is trimmed and stripped of markup before the length rules apply. A
reply's parent must exist, belong to the same book and not be deleted.
*/
func (service *Service) Create(context context.Context, slug string, author Author, input CreateInput) (*Comment, error) {
	parent, err := service.books.FindPublished(context, slug)
	if err != nil {
		return nil, err
	}

	content := sanitize.Text(strings.TrimSpace(input.Content))

	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	validator.MaxLen(FieldContent, content, MaxContentLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:         uuid.New(),
		BookID:     parent.ID,
		UserID:     author.UserID,
		UserName:   author.Name,
		UserEmail:  author.Email,
		UserAvatar: author.Avatar,
		Content:    content,
	}

	if parentID := pointer.Val(input.ParentID); parentID != "" {
		replyTo, err := service.findParent(context, parent.ID, parentID)
		if err != nil {
			return nil, err
		}
		comment.ParentID = &replyTo.ID
		comment.ParentUserName = replyTo.UserName
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("book_id", parent.ID),
		slog.Bool("reply", comment.IsReply()),
	)

	return comment, nil
}

/*
List returns a page of top-level comments, newest first, each with its direct
replies oldest first.

Replies are fetched per comment in parallel. A failed lookup is logged and
leaves that comment's replies empty instead of failing the page.
*/
func (service *Service) List(context context.Context, slug string, page pagination.Page) ([]Thread, pagination.Meta, error) {
	parent, err := service.books.FindPublished(context, slug)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	comments, total, err := service.repo.ListTopLevel(context, parent.ID, page.Offset(), page.Limit)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	threads := make([]Thread, len(comments))
	group, groupContext := errgroup.WithContext(context)
	group.SetLimit(replyFetchers)

	for i, comment := range comments {
		i, comment := i, comment
		threads[i] =Thread{Comment: comment, Replies: []*Comment{}}
		group.Go(func() error {
			replies, _, err := service.repo.ListReplies(groupContext, comment.ID, false, 0, 0)
			if err != nil {
				service.logger.Warn("comment_replies_failed",
					slog.String("comment_id", comment.ID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			threads[i].Replies = replies
			return nil
		})
	}
	_ = group.Wait()

	return threads, pagination.NewMeta(page, total), nil
}

// Replies returns a page of a comment's direct replies, newest first.
func (service *Service) Replies(context context.Context, slug, commentID string, page pagination.Page) ([]*Comment, pagination.Meta, error) {
	parent, err := service.books.FindPublished(context, slug)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if _, err := service.findInBook(context, parent.ID, commentID, resourceComment); err != nil {
		return nil, pagination.Meta{}, err
	}

	replies, total, err := service.repo.ListReplies(context, commentID, true, page.Offset(), page.Limit)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return replies, pagination.NewMeta(page, total), nil
}

/*
Delete removes a comment together with every reply beneath it.

Only the comment's author or the book's owner may delete. Descendants are
collected breadth first, then removed in one statement.
*/
func (service *Service) Delete(context context.Context, slug, commentID, userID string) error {
	parent, err := service.books.FindBySlug(context, slug)
	if err != nil {
		return err
	}

	target, err := service.findInBook(context, parent.ID, commentID, resourceComment)
	if err != nil {
		return err
	}

	if target.UserID != userID && parent.UserID != userID {
		return apperr.Forbidden("You can only delete your own comments")
	}

	ids, err := service.subtree(context, target.ID)
	if err != nil {
		return err
	}

	deleted, err := service.repo.DeleteByIDs(context, ids)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.NotFound(resourceComment)
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", target.ID),
		slog.String("book_id", parent.ID),
		slog.Int64("deleted", deleted),
	)

	return nil
}

// # Internal Helpers

// subtree returns rootID followed by all of its descendants, level by level.
func (service *Service) subtree(context context.Context, rootID string) ([]string, error) {
	ids := []string{rootID}
	visited := map[string]struct{}{rootID: {}}

	for frontier := ids; len(frontier) > 0; {
		children, err := service.repo.ListChildIDs(context, frontier)
		if err != nil {
			return nil, err
		}

		var next []string
		for _, id := range children {
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			next = append(next, id)
		}
		ids = append(ids, next...)
		frontier = next
	}

	return ids, nil
}

func (service *Service) findParent(context context.Context, bookID, parentID string) (*Comment, error) {
	parent, err := service.findInBook(context, bookID, parentID, resourceParent)
	if err != nil {
		return nil, err
	}
	if parent.IsDeleted {
		return nil, apperr.NotFound(resourceParent)
	}
	return parent, nil
}

// findInBook loads a comment and hides comments of other books.
func (service *Service) findInBook(context context.Context, bookID, commentID, resource string) (*Comment, error) {
	if !uuid.Valid(commentID) {
		return nil, apperr.NotFound(resource)
	}

	comment, err := service.repo.FindByID(context, commentID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound(resource)
		}
		return nil, err
	}
	if comment.BookID != bookID {
		return nil, apperr.NotFound(resource)
	}
	return comment, nil
}
