// Copyright (c) 2026 Bnusa. All rights reserved.

package comment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/pkg/pointer"
	"github.com/yad-anakin/bnusa/pkg/uuid"
)

var (
	bookOwner = Author{UserID: "user-owner", Name: "Owner"}
	reader    = Author{UserID: "user-reader", Name: "Reader"}
	other     = Author{UserID: "user-other", Name: "Other"}
)

func testBooks() stubBooks {
	return stubBooks{
		"live":  {ID: uuid.New(), Slug: "live", UserID: bookOwner.UserID, IsPublished: true},
		"other": {ID: uuid.New(), Slug: "other", UserID: bookOwner.UserID, IsPublished: true},
		"draft": {ID: uuid.New(), Slug: "draft", UserID: bookOwner.UserID, IsDraft: true},
	}
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	return NewService(testBooks(), repo, discardLogger()), repo
}

func post(t *testing.T, service *Service, author Author, content string, parent *Comment) *Comment {
	t.Helper()
	input := CreateInput{Content: content}
	if parent != nil {
		input.ParentID = pointer.To(parent.ID)
	}
	comment, err := service.Create(context.Background(), "live", author, input)
	require.NoError(t, err)
	return comment
}

func TestCreate_Validation(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"empty", "", "VALIDATION_ERROR"},
		{"whitespace only", "   \n  ", "VALIDATION_ERROR"},
		{"markup only", "<b></b>", "VALIDATION_ERROR"},
		{"too long", strings.Repeat("ب", MaxContentLen+1), "VALIDATION_ERROR"},
		{"at the limit", strings.Repeat("ب", MaxContentLen), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), "live", reader, CreateInput{Content: tt.content})
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperr.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestCreate_TrimsAndStripsMarkup(t *testing.T) {
	service, _ := newTestService()

	comment, err := service.Create(context.Background(), "live", reader, CreateInput{Content: "  <script>x</script><b>Great</b> book  "})
	require.NoError(t, err)
	assert.Equal(t, "Great book", comment.Content)
	assert.Equal(t, reader.UserID, comment.UserID)
	assert.Equal(t, "Reader", comment.UserName)
	assert.Nil(t, comment.ParentID)
}

func TestCreate_EmptyParentIDIsTopLevel(t *testing.T) {
	service, _ := newTestService()

	comment, err := service.Create(context.Background(), "live", reader, CreateInput{Content: "hi", ParentID: pointer.To("")})
	require.NoError(t, err)
	assert.False(t, comment.IsReply())
}

func TestCreate_RequiresPublishedBook(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), "draft", reader, CreateInput{Content: "hello"})
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}

func TestCreate_ParentRules(t *testing.T) {
	service, repo := newTestService()
	root := post(t, service, reader, "root", nil)

	reply, err := service.Create(context.Background(), "live", other, CreateInput{Content: "reply", ParentID: pointer.To(root.ID)})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *reply.ParentID)
	assert.Equal(t, "Reader", reply.ParentUserName)

	_, err = service.Create(context.Background(), "live", other, CreateInput{Content: "x", ParentID: pointer.To(uuid.New())})
	assert.True(t, apperr.Is(err, "NOT_FOUND"))

	_, err = service.Create(context.Background(), "other", other, CreateInput{Content: "x", ParentID: pointer.To(root.ID)})
	assert.True(t, apperr.Is(err, "NOT_FOUND"), "parent must belong to the same book")

	repo.comments[root.ID].IsDeleted = true
	_, err = service.Create(context.Background(), "live", other, CreateInput{Content: "x", ParentID: pointer.To(root.ID)})
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}

func TestList_NewestFirstWithOldestFirstReplies(t *testing.T) {
	service, _ := newTestService()
	first := post(t, service, reader, "first", nil)
	second := post(t, service, other, "second", nil)
	post(t, service, other, "reply one", first)
	post(t, service, bookOwner, "reply two", first)

	threads, meta, err := service.List(context.Background(), "live", ListBounds.NewPage(1, 0))
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, second.ID, threads[0].ID)
	assert.Empty(t, threads[0].Replies)
	assert.Equal(t, first.ID, threads[1].ID)
	require.Len(t, threads[1].Replies, 2)
	assert.Equal(t, "reply one", threads[1].Replies[0].Content)
	assert.Equal(t, "Reader", threads[1].Replies[0].ParentUserName)

	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 10, meta.Limit)
	assert.False(t, meta.HasMore)
}

func TestList_Pagination(t *testing.T) {
	service, _ := newTestService()
	for i := 0; i < 5; i++ {
		post(t, service, reader, "c", nil)
	}

	threads, meta, err := service.List(context.Background(), "live", ListBounds.NewPage(2, 2))
	require.NoError(t, err)
	assert.Len(t, threads, 2)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasMore)

	_, meta, err = service.List(context.Background(), "live", ListBounds.NewPage(1, 500))
	require.NoError(t, err)
	assert.Equal(t, 50, meta.Limit)
}

func TestList_ReplyFailureLeavesRepliesEmpty(t *testing.T) {
	service, repo := newTestService()
	root := post(t, service, reader, "root", nil)
	post(t, service, other, "reply", root)
	repo.failReplies = true

	threads, _, err := service.List(context.Background(), "live", ListBounds.NewPage(1, 0))
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Empty(t, threads[0].Replies)
}

func TestReplies_NewestFirst(t *testing.T) {
	service, _ := newTestService()
	root := post(t, service, reader, "root", nil)
	post(t, service, other, "older", root)
	post(t, service, other, "newer", root)

	replies, meta, err := service.Replies(context.Background(), "live", root.ID, ListBounds.NewPage(1, 0))
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "newer", replies[0].Content)
	assert.Equal(t, "Reader", replies[0].ParentUserName)
	assert.Equal(t, 2, meta.Total)

	_, _, err = service.Replies(context.Background(), "other", root.ID, ListBounds.NewPage(1, 0))
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}

// buildTree creates root -> {a, b}, a -> {a1}.
func buildTree(t *testing.T, service *Service) (root, a, b, a1 *Comment) {
	t.Helper()
	root = post(t, service, reader, "root", nil)
	a = post(t, service, other, "a", root)
	b = post(t, service, other, "b", root)
	a1 = post(t, service, reader, "a1", a)
	return root, a, b, a1
}

func TestDelete_CascadesToWholeSubtree(t *testing.T) {
	service, repo := newTestService()
	root, _, _, _ := buildTree(t, service)
	unrelated := post(t, service, other, "unrelated", nil)

	require.NoError(t, service.Delete(context.Background(), "live", root.ID, reader.UserID))

	assert.Equal(t, 1, repo.count())
	assert.True(t, repo.has(unrelated.ID))
}

func TestDelete_MiddleReplyKeepsSiblingsAndRoot(t *testing.T) {
	service, repo := newTestService()
	root, a, b, a1 := buildTree(t, service)

	require.NoError(t, service.Delete(context.Background(), "live", a.ID, other.UserID))

	assert.True(t, repo.has(root.ID))
	assert.True(t, repo.has(b.ID))
	assert.False(t, repo.has(a.ID))
	assert.False(t, repo.has(a1.ID))
}

func TestDelete_LeafIssuesSingleLevelWalk(t *testing.T) {
	service, repo := newTestService()
	_, _, b, _ := buildTree(t, service)

	require.NoError(t, service.Delete(context.Background(), "live", b.ID, other.UserID))
	assert.Equal(t, 1, repo.childQueries)
	assert.Equal(t, 3, repo.count())
}

func TestDelete_Permissions(t *testing.T) {
	service, repo := newTestService()
	root, a, _, _ := buildTree(t, service)

	err := service.Delete(context.Background(), "live", root.ID, other.UserID)
	assert.True(t, apperr.Is(err, "FORBIDDEN"))
	assert.Equal(t, 4, repo.count())

	require.NoError(t, service.Delete(context.Background(), "live", a.ID, bookOwner.UserID), "book owner moderates")

	err = service.Delete(context.Background(), "live", a.ID, other.UserID)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}

func TestDelete_CommentOfAnotherBook(t *testing.T) {
	service, _ := newTestService()
	root := post(t, service, reader, "root", nil)

	err := service.Delete(context.Background(), "other", root.ID, reader.UserID)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}

func TestDelete_WorksAfterUnpublish(t *testing.T) {
	books := testBooks()
	repo := newMemoryRepository()
	service := NewService(books, repo, discardLogger())
	root := post(t, service, reader, "root", nil)

	books["live"].IsPublished = false

	require.NoError(t, service.Delete(context.Background(), "live", root.ID, reader.UserID))
	assert.Zero(t, repo.count())
}
