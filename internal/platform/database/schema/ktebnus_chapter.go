package schema

// KtebnusChapterTable represents the 'ktebnuschapters' table.
type KtebnusChapterTable struct {
	Table     string
	ID        string
	BookID    string
	Title     string
	Content   string
	Order     string
	IsDraft   string
	CreatedAt string
	UpdatedAt string
}

// KtebnusChapter is the schema definition for ktebnuschapters.
var KtebnusChapter = KtebnusChapterTable{
	Table:     "ktebnuschapters",
	ID:        "id",
	BookID:    "bookid",
	Title:     "title",
	Content:   "content",
	Order:     "chapterorder",
	IsDraft:   "isdraft",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns every column in scan order.
func (t KtebnusChapterTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Title, t.Content, t.Order, t.IsDraft, t.CreatedAt, t.UpdatedAt}
}
