// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package book implements the Kteb Nus book store: serialized writing projects
owned by one author and read publicly once a reviewer publishes them.

# Publication State

A book moves through three phases, tracked by three flags:

  - Draft: isDraft. Initial state.
  - PendingReview: isPendingReview. Entered through [Service.Publish] once the
    book has at least one chapter.
  - Published: isPublished. Set by the review tooling, never by this API.

No operation here moves a book backwards.
*/
package book

import "time"

// # Domain Enums

// Status is the writing status an author declares for a book.
type Status string

const (
	StatusOngoing  Status = "ongoing"
	StatusFinished Status = "finished"
)

// IsValid reports whether s is a recognised [Status].
func (s Status) IsValid() bool {
	return s == StatusOngoing || s == StatusFinished
}

// # Limits

const (
	MaxTitleLen        = 200
	MaxDescriptionLen  = 5000
	MaxGenreLen        = 100
	MaxYouTubeLinks    = 3
	MaxResourceLinks   = 5
	MaxResourceNameLen = 100
)

// # Core Entities

// Author is the owner's profile, copied onto the book when it is created.
// Later profile edits do not rewrite existing books.
type Author struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// ResourceLink is an external reference attached to a book.
type ResourceLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Book is the owner's full view of a serialized writing project.
type Book struct {
	ID              string         `json:"id"`
	Slug            string         `json:"slug"`
	UserID          string         `json:"userId"`
	Author          Author         `json:"author"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Genre           string         `json:"genre"`
	Status          Status         `json:"status"`
	CoverImage      string         `json:"coverImage"`
	SpotifyLink     string         `json:"spotifyLink"`
	YoutubeLinks    []string       `json:"youtubeLinks"`
	ResourceLinks   []ResourceLink `json:"resourceLinks"`
	IsDraft         bool           `json:"isDraft"`
	IsPendingReview bool           `json:"isPendingReview"`
	IsPublished     bool           `json:"isPublished"`
	Views           int64          `json:"views"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ChapterSummary is the chapter outline shown next to a book on its owner page.
type ChapterSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	IsDraft   bool      `json:"isDraft"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// # Public Projection

// PublicAuthor omits the author's email.
type PublicAuthor struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// PublicBook is what readers see. Workflow flags and the owner's email stay private.
type PublicBook struct {
	ID            string         `json:"id"`
	Slug          string         `json:"slug"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Genre         string         `json:"genre"`
	Status        Status         `json:"status"`
	CoverImage    string         `json:"coverImage"`
	SpotifyLink   string         `json:"spotifyLink"`
	YoutubeLinks  []string       `json:"youtubeLinks"`
	ResourceLinks []ResourceLink `json:"resourceLinks"`
	Author        PublicAuthor   `json:"author"`
	Views         int64          `json:"views"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Public builds the reader projection of b.
func (b *Book) Public() PublicBook {
	return PublicBook{
		ID:            b.ID,
		Slug:          b.Slug,
		Title:         b.Title,
		Description:   b.Description,
		Genre:         b.Genre,
		Status:        b.Status,
		CoverImage:    b.CoverImage,
		SpotifyLink:   b.SpotifyLink,
		YoutubeLinks:  b.YoutubeLinks,
		ResourceLinks: b.ResourceLinks,
		Author: PublicAuthor{
			Name:     b.Author.Name,
			Username: b.Author.Username,
			Avatar:   b.Author.Avatar,
		},
		Views:     b.Views,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// # Filter Criteria

// OwnerFilter narrows an author's own book list.
type OwnerFilter struct {
	DraftsOnly    bool
	PublishedOnly bool
}

// PublicFilter narrows the public catalogue.
type PublicFilter struct {
	Search string `json:"search"`
	Genre  string `json:"genre"`
	Year   int    `json:"year,omitempty"`
}
