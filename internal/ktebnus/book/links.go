// Copyright (c) 2026 Bnusa. All rights reserved.

package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/internal/platform/sanitize"
	"github.com/yad-anakin/bnusa/internal/platform/validate"
	"github.com/yad-anakin/bnusa/pkg/medialink"
	"github.com/yad-anakin/bnusa/pkg/slice"
)

const (
	FieldSpotifyLink   = "spotifyLink"
	FieldYoutubeLinks  = "youtubeLinks"
	FieldResourceLinks = "resourceLinks"
)

// ResourceLinkInput accepts either a bare URL string or a {name, url} object.
type ResourceLinkInput struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *ResourceLinkInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &in.URL)
	}

	type plain ResourceLinkInput
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*in = ResourceLinkInput(decoded)
	return nil
}

// normalizeSpotify wraps [medialink.NormalizeSpotify] in a field error.
func normalizeSpotify(raw string) (string, error) {
	link, err := medialink.NormalizeSpotify(raw)
	if err != nil {
		return "", validate.FieldError(FieldSpotifyLink,
			"Invalid Spotify link. Use an open.spotify.com track, playlist, album, artist, episode or show URL")
	}
	return link, nil
}

// normalizeYouTube wraps [medialink.NormalizeYouTubeList] in a field error.
func normalizeYouTube(raw []string) ([]string, error) {
	links, err := medialink.NormalizeYouTubeList(raw, MaxYouTubeLinks)
	if err != nil {
		if errors.Is(err, medialink.ErrInvalidYouTube) {
			return nil, validate.FieldError(FieldYoutubeLinks, "Invalid YouTube link: "+err.Error())
		}
		return nil, apperr.Internal(err)
	}
	return links, nil
}

// normalizeResourceLinks drops blank entries, validates every URL, removes
// case-insensitive URL duplicates and keeps at most [MaxResourceLinks].
// A missing name defaults to the URL.
func normalizeResourceLinks(raw []ResourceLinkInput) ([]ResourceLink, error) {
	links := make([]ResourceLink, 0, len(raw))
	for i, entry := range raw {
		url := strings.TrimSpace(entry.URL)
		if url == "" {
			continue
		}
		if !validate.IsHTTPURL(url) {
			return nil, validate.FieldError(FieldResourceLinks,
				fmt.Sprintf("Resource link %d must be a valid http or https URL", i+1))
		}

		name := sanitize.Truncate(sanitize.Text(entry.Name), MaxResourceNameLen)
		if name == "" {
			name = sanitize.Truncate(url, MaxResourceNameLen)
		}
		links = append(links, ResourceLink{Name: name, URL: url})
	}

	unique := slice.UniqueBy(links, func(link ResourceLink) string { return strings.ToLower(link.URL) })
	return slice.Take(unique, MaxResourceLinks), nil
}
