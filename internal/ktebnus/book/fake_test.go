// Copyright (c) 2026 Bnusa. All rights reserved.

package book

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/yad-anakin/bnusa/internal/platform/apperr"
)

// memoryRepository is an in-memory [Repository] for service and handler tests.
type memoryRepository struct {
	mu       sync.Mutex
	books    map[string]*Book // by ID
	chapters map[string][]ChapterSummary
	updates  int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		books:    make(map[string]*Book),
		chapters: make(map[string][]ChapterSummary),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clone(b *Book) *Book {
	c := *b
	c.YoutubeLinks = append([]string{}, b.YoutubeLinks...)
	c.ResourceLinks = append([]ResourceLink{}, b.ResourceLinks...)
	return &c
}

func (r *memoryRepository) bySlug(slug string) *Book {
	for _, b := range r.books {
		if b.Slug == slug {
			return b
		}
	}
	return nil
}

func (r *memoryRepository) Create(_ context.Context, book *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bySlug(book.Slug) != nil {
		return apperr.Conflict(resourceBook + " already exists")
	}
	now := time.Now()
	book.CreatedAt, book.UpdatedAt = now, now
	r.books[book.ID] = clone(book)
	return nil
}

func (r *memoryRepository) FindByOwner(_ context.Context, slug, userID string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.bySlug(slug); b != nil && b.UserID == userID {
		return clone(b), nil
	}
	return nil, apperr.NotFound(resourceBook)
}

func (r *memoryRepository) FindBySlug(_ context.Context, slug string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.bySlug(slug); b != nil {
		return clone(b), nil
	}
	return nil, apperr.NotFound(resourceBook)
}

func (r *memoryRepository) FindPublished(_ context.Context, slug string, incrementViews bool) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bySlug(slug)
	if b == nil || !b.IsPublished {
		return nil, apperr.NotFound(resourceBook)
	}
	if incrementViews {
		b.Views++
	}
	return clone(b), nil
}

func (r *memoryRepository) list(match func(*Book) bool, limit, offset int) ([]*Book, int) {
	var all []*Book
	for _, b := range r.books {
		if match(b) {
			all = append(all, clone(b))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	return append([]*Book{}, all[offset:end]...), total
}

func (r *memoryRepository) ListByOwner(_ context.Context, userID string, filter OwnerFilter, limit, offset int) ([]*Book, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, total := r.list(func(b *Book) bool {
		return b.UserID == userID &&
			(!filter.DraftsOnly || b.IsDraft) &&
			(!filter.PublishedOnly || b.IsPublished)
	}, limit, offset)
	return books, total, nil
}

func (r *memoryRepository) ListPublished(_ context.Context, filter PublicFilter, limit, offset int) ([]*Book, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, total := r.list(func(b *Book) bool {
		return b.IsPublished && (filter.Genre == "" || b.Genre == filter.Genre)
	}, limit, offset)
	return books, total, nil
}

func (r *memoryRepository) Update(_ context.Context, book *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[book.ID]; !ok {
		return apperr.NotFound(resourceBook)
	}
	r.updates++
	book.UpdatedAt = time.Now()
	r.books[book.ID] = clone(book)
	return nil
}

func (r *memoryRepository) MarkPendingReview(_ context.Context, bookID string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[bookID]
	if !ok || b.IsPublished || b.IsPendingReview {
		return nil, apperr.Conflict("Book is already published or pending review")
	}
	b.IsDraft, b.IsPendingReview, b.IsPublished = false, true, false
	return clone(b), nil
}

func (r *memoryRepository) Delete(_ context.Context, bookID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[bookID]; !ok {
		return apperr.NotFound(resourceBook)
	}
	delete(r.books, bookID)
	delete(r.chapters, bookID)
	return nil
}

func (r *memoryRepository) CountChapters(_ context.Context, bookID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chapters[bookID]), nil
}

func (r *memoryRepository) ListChapterOutline(_ context.Context, bookID string) ([]ChapterSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ChapterSummary{}, r.chapters[bookID]...), nil
}

// addChapter seeds the chapter outline of a book.
func (r *memoryRepository) addChapter(bookID, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order := len(r.chapters[bookID]) + 1
	r.chapters[bookID] = append(r.chapters[bookID], ChapterSummary{ID: title, Title: title, Order: order, IsDraft: true})
}

// publish flips a book to published, as the review tooling would.
func (r *memoryRepository) publish(slug string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bySlug(slug)
	b.IsDraft, b.IsPendingReview, b.IsPublished = false, false, true
}

func (r *memoryRepository) views(slug string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bySlug(slug).Views
}
