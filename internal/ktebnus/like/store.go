// Copyright (c) 2026 Bnusa. All rights reserved.

package like

import "context"

// # Like Data Access

// Repository defines the data access contract for book likes.
type Repository interface {

	/*
		Like records that userID likes bookID. Liking twice is a no-op.
	*/
	Like(context context.Context, bookID, userID string) error

	/*
		Unlike removes the like if there is one.
	*/
	Unlike(context context.Context, bookID, userID string) error

	// Count returns the number of likes on a book.
	Count(context context.Context, bookID string) (int, error)

	// Has reports whether userID currently likes bookID.
	Has(context context.Context, bookID, userID string) (bool, error)
}
