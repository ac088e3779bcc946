// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package sanitize cleans user supplied text before it is persisted.

Two policies are used:

  - HTML: chapter bodies written in the rich-text editor. Formatting tags
    survive; scripts, event handlers and unsafe URLs are removed.
  - Text: titles, descriptions and comments. All markup is stripped and the
    remainder is stored as plain, unescaped text.

Both bluemonday policies are built once and are safe for concurrent use.
*/
package sanitize

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const ellipsis = "..."

var (
	richPolicy   = newRichPolicy()
	plainPolicy  = bluemonday.StrictPolicy()
	spacedPolicy = newSpacedPolicy()
)

// newSpacedPolicy strips everything but keeps words from adjacent blocks apart.
func newSpacedPolicy() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	policy.AddSpaceWhenStrippingTag(true)
	return policy
}

func newRichPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("dir").Matching(bluemonday.Direction).Globally()
	policy.AllowAttrs("style").OnElements("span", "p")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// HTML sanitises rich chapter content.
func HTML(input string) string {
	return strings.TrimSpace(richPolicy.Sanitize(input))
}

// Text strips every tag from input. Line breaks survive; runs of spaces
// inside a line collapse to one.
func Text(input string) string {
	stripped := html.UnescapeString(plainPolicy.Sanitize(input))
	lines := strings.Split(strings.ReplaceAll(stripped, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// PlainText strips markup and returns unescaped text with whitespace collapsed.
func PlainText(input string) string {
	stripped := html.UnescapeString(spacedPolicy.Sanitize(input))
	return strings.Join(strings.Fields(stripped), " ")
}

// Truncate shortens s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// Excerpt returns the first max runes of the visible text of an HTML fragment,
// followed by an ellipsis when something was cut.
func Excerpt(content string, max int) string {
	text := PlainText(content)
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return strings.TrimSpace(Truncate(text, max)) + ellipsis
}
