// Copyright (c) 2026 Bnusa. All rights reserved.

// Package like keeps one like per reader per book and reports the totals.
package like

// Action is the toggle direction requested by a reader.
type Action string

const (
	ActionLike   Action = "like"
	ActionUnlike Action = "unlike"
)

// IsValid reports whether a is a known action.
func (a Action) IsValid() bool {
	return a == ActionLike || a == ActionUnlike
}

// Status is a book's like count together with the caller's own state.
type Status struct {
	Likes    int  `json:"likes"`
	HasLiked bool `json:"hasLiked"`
}
