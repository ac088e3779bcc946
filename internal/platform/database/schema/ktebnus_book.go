package schema

// KtebnusBookTable represents the 'ktebnus' table.
type KtebnusBookTable struct {
	Table           string
	ID              string
	Slug            string
	UserID          string
	AuthorName      string
	AuthorUsername  string
	AuthorEmail     string
	AuthorAvatar    string
	Title           string
	Description     string
	Genre           string
	Status          string
	CoverImage      string
	SpotifyLink     string
	YoutubeLinks    string
	ResourceLinks   string
	IsDraft         string
	IsPendingReview string
	IsPublished     string
	Views           string
	CreatedAt       string
	UpdatedAt       string
}

// KtebnusBook is the schema definition for ktebnus.
var KtebnusBook = KtebnusBookTable{
	Table:           "ktebnus",
	ID:              "id",
	Slug:            "slug",
	UserID:          "userid",
	AuthorName:      "authorname",
	AuthorUsername:  "authorusername",
	AuthorEmail:     "authoremail",
	AuthorAvatar:    "authoravatar",
	Title:           "title",
	Description:     "description",
	Genre:           "genre",
	Status:          "status",
	CoverImage:      "coverimage",
	SpotifyLink:     "spotifylink",
	YoutubeLinks:    "youtubelinks",
	ResourceLinks:   "resourcelinks",
	IsDraft:         "isdraft",
	IsPendingReview: "ispendingreview",
	IsPublished:     "ispublished",
	Views:           "views",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns every column in scan order.
func (t KtebnusBookTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.UserID, t.AuthorName, t.AuthorUsername, t.AuthorEmail, t.AuthorAvatar,
		t.Title, t.Description, t.Genre, t.Status, t.CoverImage,
		t.SpotifyLink, t.YoutubeLinks, t.ResourceLinks,
		t.IsDraft, t.IsPendingReview, t.IsPublished, t.Views, t.CreatedAt, t.UpdatedAt,
	}
}
