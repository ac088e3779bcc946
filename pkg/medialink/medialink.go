// Copyright (c) 2026 Bnusa. All rights reserved.

// Package medialink canonicalises the Spotify and YouTube links authors
// attach to a book.
//
//	NormalizeSpotify("open.spotify.com/intl-en/track/abc?si=x") // https://open.spotify.com/track/abc
//	NormalizeYouTube("https://youtu.be/dQw4w9WgXcQ?t=3")        // https://www.youtube.com/watch?v=dQw4w9WgXcQ
package medialink

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yad-anakin/bnusa/pkg/slice"
)

var (
	// ErrInvalidSpotify is returned for anything that is not an open.spotify.com content link.
	ErrInvalidSpotify = errors.New("invalid Spotify link")
	// ErrInvalidYouTube is returned when no video ID can be extracted.
	ErrInvalidYouTube = errors.New("invalid YouTube link")
)

var spotifyPattern = regexp.MustCompile(
	`^(?:https?://)?open\.spotify\.com/(?:intl-[a-z]{2}(?:-[A-Za-z]{2})?/|embed/)?(track|playlist|album|artist|episode|show)/([A-Za-z0-9]+)`,
)

// Video IDs are 11 characters and must be followed by a separator or the end.
const videoID = `([A-Za-z0-9_-]{11})(?:[?&#/]|$)`

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.|music\.)?youtube\.com/watch\?(?:[^#]*&)?v=` + videoID),
	regexp.MustCompile(`^(?:https?://)?youtu\.be/` + videoID),
	regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/(?:shorts|embed)/` + videoID),
}

// NormalizeSpotify rewrites a Spotify link to https://open.spotify.com/{type}/{id}.
// Blank input clears the link and returns "".
func NormalizeSpotify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	match := spotifyPattern.FindStringSubmatch(raw)
	if match == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSpotify, raw)
	}
	return "https://open.spotify.com/" + match[1] + "/" + match[2], nil
}

// YouTubeID extracts the video ID from the watch, youtu.be, shorts and embed forms.
func YouTubeID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, pattern := range youtubePatterns {
		if match := pattern.FindStringSubmatch(raw); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// NormalizeYouTube rewrites a YouTube link to https://www.youtube.com/watch?v={id}.
func NormalizeYouTube(raw string) (string, error) {
	id, ok := YouTubeID(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidYouTube, strings.TrimSpace(raw))
	}
	return "https://www.youtube.com/watch?v=" + id, nil
}

// NormalizeYouTubeList drops blank entries, normalises the rest, removes
// duplicates in input order and keeps at most max links. A single invalid
// entry fails the whole list.
func NormalizeYouTubeList(raw []string, max int) ([]string, error) {
	entries := slice.Filter(raw, func(s string) bool { return strings.TrimSpace(s) != "" })

	normalized := make([]string, 0, len(entries))
	for _, entry := range entries {
		link, err := NormalizeYouTube(entry)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, link)
	}

	unique := slice.UniqueBy(normalized, func(s string) string { return s })
	return slice.Take(unique, max), nil
}
