// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package chapter manages the ordered chapters of a book.

Chapter positions are assigned by the server as the last position plus one
and never change; deleting a chapter leaves a gap. Owners reach chapters
through their book's slug, readers only see non-draft chapters of published
books.
*/
package chapter

import (
	"time"

	"github.com/yad-anakin/bnusa/internal/ktebnus/book"
)

const (
	MaxTitleLen   = 300
	MaxContentLen = 200_000
	ExcerptLen    = 160
)

// # Core Entities

// Chapter is one ordered unit of a book. Content is sanitised HTML.
type Chapter struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Order     int       `json:"order"`
	IsDraft   bool      `json:"isDraft"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListItem is a chapter in a list. Content is replaced by a text excerpt.
type ListItem struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Order     int       `json:"order"`
	IsDraft   bool      `json:"isDraft"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item builds the list projection of c.
func (c *Chapter) Item() ListItem {
	return ListItem{
		ID:        c.ID,
		BookID:    c.BookID,
		Title:     c.Title,
		Excerpt:   excerpt(c.Content),
		Order:     c.Order,
		IsDraft:   c.IsDraft,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// # Public Projection

// BookInfo is the slice of the parent book embedded in public chapters.
type BookInfo struct {
	ID         string            `json:"id"`
	Slug       string            `json:"slug"`
	Title      string            `json:"title"`
	CoverImage string            `json:"coverImage"`
	Author     book.PublicAuthor `json:"author"`
}

// PublicChapter is a chapter as readers receive it.
type PublicChapter struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Book      BookInfo  `json:"book"`
}

// newPublicChapter copies the parent book's display fields onto c.
func newPublicChapter(c *Chapter, parent *book.Book) PublicChapter {
	public := parent.Public()
	return PublicChapter{
		ID:        c.ID,
		Title:     c.Title,
		Content:   c.Content,
		Order:     c.Order,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Book: BookInfo{
			ID:         public.ID,
			Slug:       public.Slug,
			Title:      public.Title,
			CoverImage: public.CoverImage,
			Author:     public.Author,
		},
	}
}
