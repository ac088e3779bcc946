// Copyright (c) 2026 Bnusa. All rights reserved.

package chapter

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yad-anakin/bnusa/internal/ktebnus/book"
	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/pkg/pagination"
	"github.com/yad-anakin/bnusa/pkg/pointer"
	"github.com/yad-anakin/bnusa/pkg/uuid"
)

const (
	owner    = "user-owner"
	stranger = "user-stranger"
)

func testBooks() stubBooks {
	return stubBooks{
		"draft-book": {ID: uuid.New(), Slug: "draft-book", UserID: owner, Title: "Draft", IsDraft: true},
		"live-book": {
			ID: uuid.New(), Slug: "live-book", UserID: owner, Title: "Live", IsPublished: true,
			Author: book.Author{Name: "Owner", Email: "owner@bnusa.krd"},
		},
	}
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	return NewService(testBooks(), repo, discardLogger()), repo
}

func create(t *testing.T, service *Service, slug, title string, isDraft bool) *Chapter {
	t.Helper()
	chapter, err := service.Create(context.Background(), slug, owner, CreateInput{
		Title:   title,
		Content: "<p>" + title + " content</p>",
		IsDraft: pointer.To(isDraft),
	})
	require.NoError(t, err)
	return chapter
}

func TestCreate_AssignsSequentialOrder(t *testing.T) {
	service, _ := newTestService()

	for i := 1; i <= 5; i++ {
		chapter := create(t, service, "draft-book", fmt.Sprintf("Chapter %d", i), true)
		assert.Equal(t, i, chapter.Order)
	}
}

func TestCreate_DefaultsToDraftAndSanitizes(t *testing.T) {
	service, _ := newTestService()

	chapter, err := service.Create(context.Background(), "draft-book", owner, CreateInput{
		Title:   "<i>One</i>",
		Content: `<p onclick="steal()">Hello</p><script>alert(1)</script>`,
	})
	require.NoError(t, err)

	assert.True(t, chapter.IsDraft)
	assert.Equal(t, "One", chapter.Title)
	assert.NotContains(t, chapter.Content, "script")
	assert.NotContains(t, chapter.Content, "onclick")
}

func TestCreate_Validation(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), "draft-book", owner, CreateInput{Title: "x", Content: "<p> </p>"})
	assert.True(t, apperr.Is(err, "VALIDATION_ERROR"))

	_, err = service.Create(context.Background(), "draft-book", owner, CreateInput{Title: strings.Repeat("t", MaxTitleLen+1), Content: "ok"})
	assert.True(t, apperr.Is(err, "VALIDATION_ERROR"))
}

func TestOwnerOperations_RequireOwnership(t *testing.T) {
	service, _ := newTestService()
	chapter := create(t, service, "draft-book", "Mine", true)

	_, err := service.Create(context.Background(), "draft-book", stranger, CreateInput{Title: "x", Content: "y"})
	assert.True(t, apperr.Is(err, "NOT_FOUND"))

	_, err = service.Get(context.Background(), "draft-book", stranger, chapter.ID)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))

	err = service.Delete(context.Background(), "draft-book", stranger, chapter.ID)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}

func TestGet_ChapterOfAnotherBookIsNotFound(t *testing.T) {
	service, _ := newTestService()
	chapter := create(t, service, "live-book", "Elsewhere", false)

	_, err := service.Get(context.Background(), "draft-book", owner, chapter.ID)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))

	_, err = service.Get(context.Background(), "draft-book", owner, "not-a-uuid")
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}

func TestList_WindowAndExcerpt(t *testing.T) {
	service, _ := newTestService()
	for i := 1; i <= 4; i++ {
		create(t, service, "draft-book", fmt.Sprintf("C%d", i), true)
	}

	first, hasMore, err := service.List(context.Background(), "draft-book", owner, ListBounds.NewWindow(0, 0))
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.True(t, hasMore)
	assert.Equal(t, "C1 content", first[0].Excerpt)

	rest, hasMore, err := service.List(context.Background(), "draft-book", owner, pagination.Window{Skip: 3, Limit: 3})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.False(t, hasMore)
	assert.Equal(t, 4, rest[0].Order)
}

func TestList_LongExcerptIsTruncated(t *testing.T) {
	service, _ := newTestService()
	_, err := service.Create(context.Background(), "draft-book", owner, CreateInput{
		Title:   "Long",
		Content: "<p>" + strings.Repeat("ک", 500) + "</p>",
	})
	require.NoError(t, err)

	items, _, err := service.List(context.Background(), "draft-book", owner, ListBounds.NewWindow(0, 0))
	require.NoError(t, err)
	assert.Equal(t, ExcerptLen+3, len([]rune(items[0].Excerpt)))
	assert.True(t, strings.HasSuffix(items[0].Excerpt, "..."))
}

func TestUpdate_PartialFields(t *testing.T) {
	service, _ := newTestService()
	chapter := create(t, service, "draft-book", "Before", true)

	updated, err := service.Update(context.Background(), "draft-book", owner, chapter.ID, UpdateInput{
		Title:   pointer.To("After"),
		IsDraft: pointer.To(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.False(t, updated.IsDraft)
	assert.Equal(t, chapter.Content, updated.Content)
	assert.Equal(t, chapter.Order, updated.Order)

	_, err = service.Update(context.Background(), "draft-book", owner, chapter.ID, UpdateInput{Content: pointer.To("<script>x</script>")})
	assert.True(t, apperr.Is(err, "VALIDATION_ERROR"))
}

func TestDelete_LeavesGap(t *testing.T) {
	service, _ := newTestService()
	first := create(t, service, "draft-book", "One", true)
	create(t, service, "draft-book", "Two", true)

	require.NoError(t, service.Delete(context.Background(), "draft-book", owner, first.ID))
	third := create(t, service, "draft-book", "Three", true)
	assert.Equal(t, 3, third.Order)

	items, _, err := service.List(context.Background(), "draft-book", owner, ListBounds.NewWindow(0, 10))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Order)
	assert.Equal(t, 3, items[1].Order)

	err = service.Delete(context.Background(), "draft-book", owner, first.ID)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}

func TestGetPublic_Gating(t *testing.T) {
	service, _ := newTestService()
	draftBookChapter := create(t, service, "draft-book", "Hidden book", false)
	draftChapter := create(t, service, "live-book", "Hidden chapter", true)
	visible := create(t, service, "live-book", "Visible", false)

	_, err := service.GetPublic(context.Background(), "draft-book", draftBookChapter.ID)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))

	_, err = service.GetPublic(context.Background(), "live-book", draftChapter.ID)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))

	public, err := service.GetPublic(context.Background(), "live-book", visible.ID)
	require.NoError(t, err)
	assert.Equal(t, "Live", public.Book.Title)
	assert.Equal(t, "Owner", public.Book.Author.Name)
}

func TestListPublic_SkipsDraftsAndSupportsBothModes(t *testing.T) {
	service, _ := newTestService()
	create(t, service, "live-book", "One", false)
	create(t, service, "live-book", "Draft", true)
	create(t, service, "live-book", "Two", false)
	create(t, service, "live-book", "Three", false)

	all, hasMore, err := service.ListPublic(context.Background(), "live-book", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.False(t, hasMore)

	window := pagination.Window{Skip: 0, Limit: 2}
	page, hasMore, err := service.ListPublic(context.Background(), "live-book", &window)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.True(t, hasMore)

	_, _, err = service.ListPublic(context.Background(), "draft-book", nil)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}
