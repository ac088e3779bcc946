// Copyright (c) 2026 Bnusa. All rights reserved.

package comment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/yad-anakin/bnusa/internal/ktebnus/book"
	"github.com/yad-anakin/bnusa/internal/platform/apperr"
)

type stubBooks map[string]*book.Book

func (books stubBooks) FindPublished(_ context.Context, slug string) (*book.Book, error) {
	if b, ok := books[slug]; ok && b.IsPublished {
		return b, nil
	}
	return nil, apperr.NotFound("Book")
}

func (books stubBooks) FindBySlug(_ context.Context, slug string) (*book.Book, error) {
	if b, ok := books[slug]; ok {
		return b, nil
	}
	return nil, apperr.NotFound("Book")
}

// memoryRepository is an in-memory [Repository]. Comments get strictly
// increasing timestamps so ordering is deterministic.
type memoryRepository struct {
	mu           sync.Mutex
	comments     map[string]*Comment
	clock        time.Time
	failReplies  bool
	childQueries int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		comments: make(map[string]*Comment),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (r *memoryRepository) Create(_ context.Context, comment *Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	comment.CreatedAt = r.clock
	comment.UpdatedAt = r.clock
	stored := *comment
	stored.ParentUserName = ""
	r.comments[comment.ID] = &stored
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, commentID string) (*Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[commentID]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound(resourceComment)
}

func (r *memoryRepository) ListTopLevel(_ context.Context, bookID string, offset, limit int) ([]*Comment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.filter(func(c *Comment) bool { return c.BookID == bookID && c.ParentID == nil }, true)
	return window(matched, offset, limit), len(matched), nil
}

func (r *memoryRepository) ListReplies(_ context.Context, parentID string, newestFirst bool, offset, limit int) ([]*Comment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReplies {
		return nil, 0, errors.New("replies unavailable")
	}
	matched := r.filter(func(c *Comment) bool { return c.ParentID != nil && *c.ParentID == parentID }, newestFirst)
	for _, reply := range matched {
		if parent, ok := r.comments[parentID]; ok {
			reply.ParentUserName = parent.UserName
		}
	}
	return window(matched, offset, limit), len(matched), nil
}

func (r *memoryRepository) ListChildIDs(_ context.Context, parentIDs []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.childQueries++
	var ids []string
	for _, c := range r.comments {
		if c.ParentID != nil && slices.Contains(parentIDs, *c.ParentID) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (r *memoryRepository) DeleteByIDs(_ context.Context, commentIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for _, id := range commentIDs {
		if _, ok := r.comments[id]; ok {
			delete(r.comments, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryRepository) filter(keep func(*Comment) bool, newestFirst bool) []*Comment {
	var matched []*Comment
	for _, c := range r.comments {
		if keep(c) {
			copied := *c
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if newestFirst {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.comments)
}

func (r *memoryRepository) has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.comments[id]
	return ok
}

func window(comments []*Comment, offset, limit int) []*Comment {
	if offset > len(comments) {
		offset = len(comments)
	}
	comments = comments[offset:]
	if limit > 0 && len(comments) > limit {
		comments = comments[:limit]
	}
	return comments
}
