// Copyright (c) 2026 Bnusa. All rights reserved.

package comment

import "context"

// # Comment Data Access

// Repository defines the data access contract for book comments.
type Repository interface {

	/*
		Create persists a new comment or reply.
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID returns a single comment.

		Returns:
		  - error: NotFound when the comment does not exist
	*/
	FindByID(context context.Context, commentID string) (*Comment, error)

	/*
		ListTopLevel returns a page of a book's top-level comments, newest first.

		Returns:
		  - int: total number of top-level comments on the book
	*/
	ListTopLevel(context context.Context, bookID string, offset, limit int) ([]*Comment, int, error)

	/*
		ListReplies returns the direct replies of a comment, each annotated with
		the parent's author name.

		Parameters:
		  - newestFirst: false lists oldest first
		  - offset, limit: window; limit <= 0 returns every reply

		Returns:
		  - int: total number of direct replies
	*/
	ListReplies(context context.Context, parentID string, newestFirst bool, offset, limit int) ([]*Comment, int, error)

	/*
		ListChildIDs returns the IDs of every comment whose parent is one of
		parentIDs.
	*/
	ListChildIDs(context context.Context, parentIDs []string) ([]string, error)

	/*
		DeleteByIDs permanently removes the given comments in one statement and
		reports how many rows went away.
	*/
	DeleteByIDs(context context.Context, commentIDs []string) (int64, error)
}
