// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package comment implements threaded discussion on published books.

Comments form a tree through ParentID. Listing renders one level of replies
under each top-level comment; deleting a comment removes its whole subtree.
*/
package comment

import "time"

const (
	MaxContentLen = 1000

	resourceComment = "Comment"
	resourceParent  = "Parent comment"
)

// Author is the commenter's profile, copied onto the comment when it is written.
type Author struct {
	UserID string
	Name   string
	Email  string
	Avatar string
}

// # Core Entities

// Comment is a comment or reply on a book. Content is plain text.
// UserEmail is stored but never serialised; comment lists are public.
type Comment struct {
	ID         string  `json:"id"`
	BookID     string  `json:"bookId"`
	UserID     string  `json:"userId"`
	UserName   string  `json:"userName"`
	UserEmail  string  `json:"-"`
	UserAvatar string  `json:"userAvatar"`
	Content    string  `json:"content"`
	ParentID   *string `json:"parentId"`

	// ParentUserName is filled in for replies when they are listed.
	ParentUserName string `json:"parentUserName,omitempty"`

	// Unused; deletion is permanent.
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsReply reports whether c answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// Thread is a top-level comment with its direct replies, oldest first.
type Thread struct {
	*Comment
	Replies []*Comment `json:"replies"`
}
