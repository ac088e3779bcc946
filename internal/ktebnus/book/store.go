// Copyright (c) 2026 Bnusa. All rights reserved.

package book

import "context"

// # Book Data Access

// Repository defines the data access contract for books.
type Repository interface {

	/*
		Create persists a new book. ID and slug are assigned by the caller;
		timestamps are filled in from the database.

		Returns:
		  - error: Conflict on a duplicate slug, storage failures otherwise
	*/
	Create(context context.Context, book *Book) error

	/*
		FindByOwner returns the book with the given slug if userID owns it.

		Returns:
		  - error: NotFound when the slug does not exist or belongs to someone else
	*/
	FindByOwner(context context.Context, slug, userID string) (*Book, error)

	/*
		FindBySlug returns the book with the given slug in any state.
	*/
	FindBySlug(context context.Context, slug string) (*Book, error)

	/*
		FindPublished returns a published book. When incrementViews is set the
		view counter is bumped in the same statement and the new value returned.

		Returns:
		  - error: NotFound when missing or not published
	*/
	FindPublished(context context.Context, slug string, incrementViews bool) (*Book, error)

	/*
		ListByOwner returns one page of the user's books, newest first.

		Returns:
		  - []*Book: The page
		  - int: Total matching books
	*/
	ListByOwner(context context.Context, userID string, filter OwnerFilter, limit, offset int) ([]*Book, int, error)

	/*
		ListPublished returns one page of published books, newest first.
	*/
	ListPublished(context context.Context, filter PublicFilter, limit, offset int) ([]*Book, int, error)

	/*
		Update writes every mutable field of book and refreshes updatedAt.
	*/
	Update(context context.Context, book *Book) error

	/*
		MarkPendingReview moves a book from draft to pending review.

		The state check runs inside the UPDATE so two concurrent publish calls
		cannot both succeed.

		Returns:
		  - *Book: The book after the transition
		  - error: Conflict when the book is already published or pending
	*/
	MarkPendingReview(context context.Context, bookID string) (*Book, error)

	/*
		Delete removes the book and all of its chapters in one transaction.
		Comments and likes are left untouched.
	*/
	Delete(context context.Context, bookID string) error

	/*
		CountChapters returns the number of chapters of a book, drafts included.
	*/
	CountChapters(context context.Context, bookID string) (int, error)

	/*
		ListChapterOutline returns every chapter of a book ordered by position,
		without content.
	*/
	ListChapterOutline(context context.Context, bookID string) ([]ChapterSummary, error)
}
