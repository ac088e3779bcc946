package schema

// BookLikeTable represents the 'book_likes' table.
type BookLikeTable struct {
	Table     string
	ID        string
	BookID    string
	UserID    string
	CreatedAt string
}

// BookLike is the schema definition for book_likes.
var BookLike = BookLikeTable{
	Table:     "book_likes",
	ID:        "id",
	BookID:    "bookid",
	UserID:    "userid",
	CreatedAt: "createdat",
}
