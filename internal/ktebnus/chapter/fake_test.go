// Copyright (c) 2026 Bnusa. All rights reserved.

package chapter

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/yad-anakin/bnusa/internal/ktebnus/book"
	"github.com/yad-anakin/bnusa/internal/platform/apperr"
)

// stubBooks is a [BookFinder] over a fixed set of books keyed by slug.
type stubBooks map[string]*book.Book

func (books stubBooks) FindOwned(_ context.Context, slug, userID string) (*book.Book, error) {
	if b, ok := books[slug]; ok && b.UserID == userID {
		return b, nil
	}
	return nil, apperr.NotFound("Book")
}

func (books stubBooks) FindPublished(_ context.Context, slug string) (*book.Book, error) {
	if b, ok := books[slug]; ok && b.IsPublished {
		return b, nil
	}
	return nil, apperr.NotFound("Book")
}

// memoryRepository is an in-memory [Repository].
type memoryRepository struct {
	mu       sync.Mutex
	chapters map[string]*Chapter
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{chapters: make(map[string]*Chapter)}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (r *memoryRepository) Create(_ context.Context, chapter *Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := 0
	for _, c := range r.chapters {
		if c.BookID == chapter.BookID && c.Order > last {
			last = c.Order
		}
	}
	chapter.Order = last + 1
	chapter.CreatedAt = time.Now()
	chapter.UpdatedAt = chapter.CreatedAt
	stored := *chapter
	r.chapters[chapter.ID] = &stored
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, bookID, chapterID string) (*Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.chapters[chapterID]; ok && c.BookID == bookID {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound(resourceChapter)
}

func (r *memoryRepository) ListByBook(_ context.Context, bookID string, publishedOnly bool, skip, limit int) ([]*Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*Chapter
	for _, c := range r.chapters {
		if c.BookID == bookID && (!publishedOnly || !c.IsDraft) {
			copied := *c
			all = append(all, &copied)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Order < all[j].Order })
	if skip > len(all) {
		skip = len(all)
	}
	all = all[skip:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryRepository) Update(_ context.Context, chapter *Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chapters[chapter.ID]; !ok {
		return apperr.NotFound(resourceChapter)
	}
	chapter.UpdatedAt = time.Now()
	stored := *chapter
	r.chapters[chapter.ID] = &stored
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, bookID, chapterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.chapters[chapterID]; !ok || c.BookID != bookID {
		return apperr.NotFound(resourceChapter)
	}
	delete(r.chapters, chapterID)
	return nil
}
