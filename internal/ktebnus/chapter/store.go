// Copyright (c) 2026 Bnusa. All rights reserved.

package chapter

import "context"

// # Chapter Data Access

// Repository defines the data access contract for chapters.
type Repository interface {

	/*
		Create appends a chapter to its book. The position is computed in the
		INSERT as the book's highest position plus one; chapter.Order is
		ignored on input and set on return.
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		FindByID returns a chapter of the given book.

		Returns:
		  - error: NotFound when the chapter does not exist or belongs to another book
	*/
	FindByID(context context.Context, bookID, chapterID string) (*Chapter, error)

	/*
		ListByBook returns chapters ordered by position.

		Parameters:
		  - publishedOnly: skip drafts
		  - skip, limit: window; limit <= 0 returns everything after skip
	*/
	ListByBook(context context.Context, bookID string, publishedOnly bool, skip, limit int) ([]*Chapter, error)

	/*
		Update writes title, content and draft flag and refreshes updatedAt.
	*/
	Update(context context.Context, chapter *Chapter) error

	/*
		Delete removes one chapter. Sibling positions are not renumbered.
	*/
	Delete(context context.Context, bookID, chapterID string) error
}
