package schema

// BookCommentTable represents the 'book_comments' table.
type BookCommentTable struct {
	Table      string
	ID         string
	BookID     string
	UserID     string
	UserName   string
	UserEmail  string
	UserAvatar string
	Content    string
	ParentID   string
	IsDeleted  string
	DeletedAt  string
	CreatedAt  string
	UpdatedAt  string
}

// BookComment is the schema definition for book_comments.
var BookComment = BookCommentTable{
	Table:      "book_comments",
	ID:         "id",
	BookID:     "bookid",
	UserID:     "userid",
	UserName:   "username",
	UserEmail:  "useremail",
	UserAvatar: "useravatar",
	Content:    "content",
	ParentID:   "parentid",
	IsDeleted:  "isdeleted",
	DeletedAt:  "deletedat",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns every column in scan order.
func (t BookCommentTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.UserID, t.UserName, t.UserEmail, t.UserAvatar,
		t.Content, t.ParentID, t.IsDeleted, t.DeletedAt, t.CreatedAt, t.UpdatedAt,
	}
}
