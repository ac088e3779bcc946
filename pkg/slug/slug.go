// Copyright (c) 2026 Bnusa. All rights reserved.

// Package slug generates URL slugs for book titles.
//
// Titles are mostly Kurdish (Arabic script), so the base slug relies on
// gosimple/slug's transliteration and falls back to a fixed word when nothing
// survives it. A random numeric suffix makes slugs practically unique
// without a uniqueness lookup.
package slug

import (
	"fmt"
	"math/rand"
	"strings"

	gosimple "github.com/gosimple/slug"
	"golang.org/x/text/unicode/norm"
)

const (
	// fallback is used when a title transliterates to nothing.
	fallback = "book"
	// maxBaseLen keeps slugs readable in URLs.
	maxBaseLen = 80

	suffixMin = 1_000_000
	suffixMax = 9_999_999
)

// From converts an arbitrary Unicode string into a lowercase ASCII slug.
// It returns an empty string when nothing usable remains.
func From(s string) string {
	base := gosimple.Make(norm.NFC.String(strings.TrimSpace(s)))
	if len(base) > maxBaseLen {
		base = strings.TrimRight(base[:maxBaseLen], "-")
	}
	return base
}

// Unique returns From(title) followed by a random 7-digit suffix.
//
// Collisions are not checked; the unique index on the slug column is the
// last line of defence.
func Unique(title string) string {
	base := From(title)
	if base == "" {
		base = fallback
	}
	return fmt.Sprintf("%s-%d", base, suffixMin+rand.Intn(suffixMax-suffixMin+1))
}
