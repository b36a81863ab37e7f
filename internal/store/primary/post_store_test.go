package primary

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"folio/internal/models"
	"folio/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*StoreImpl, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &StoreImpl{db: mock}, mock
}

var postRowColumns = []string{"id", "title", "slug", "body", "excerpt", "status", "category_id", "analysis", "created_at", "updated_at"}

func postRow(rows *pgxmock.Rows, id int64, title string, categoryID *int64, created time.Time) *pgxmock.Rows {
	return rows.AddRow(id, title, "slug-"+title, "body", (*string)(nil), models.PostStatusPublished,
		categoryID, json.RawMessage("{}"), created, created)
}

func TestCreatePost(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posts")).
		WithArgs("Hello", "hello", "<p>hi</p>", (*string)(nil), models.PostStatusDraft, (*int64)(nil), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	post := &models.Post{Title: "Hello", Slug: "hello", Body: "<p>hi</p>"}
	require.NoError(t, s.CreatePost(context.Background(), post))
	assert.Equal(t, int64(7), post.ID)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePost_DuplicateSlug(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posts")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.CreatePost(context.Background(), &models.Post{Title: "Hello", Slug: "hello"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestGetPost(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()
	cat := int64(3)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(postRow(pgxmock.NewRows(postRowColumns), 1, "golang", &cat, now))

	post, err := s.GetPost(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "golang", post.Title)
	require.NotNil(t, post.CategoryID)
	assert.Equal(t, int64(3), *post.CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPost_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetPost(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdatePost_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdatePost(context.Background(), &models.Post{ID: 5, Title: "x", Slug: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, s.DeletePost(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPosts_CategoryFilter(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()
	cat := int64(2)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE category_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3")).
		WithArgs(int64(2), 50, 0).
		WillReturnRows(postRow(pgxmock.NewRows(postRowColumns), 1, "a", &cat, now))

	posts, err := s.ListPosts(context.Background(), store.ListPostsParams{CategoryID: &cat})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPosts_SortAllowlist(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM posts ORDER BY title ASC, id ASC LIMIT $1 OFFSET $2")).
		WithArgs(10, 20).
		WillReturnRows(pgxmock.NewRows(postRowColumns))

	posts, err := s.ListPosts(context.Background(), store.ListPostsParams{Limit: 10, Offset: 20, SortBy: "title", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Empty(t, posts)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2")).
		WithArgs(50, 0).
		WillReturnRows(pgxmock.NewRows(postRowColumns))

	_, err = s.ListPosts(context.Background(), store.ListPostsParams{SortBy: "body; DROP TABLE posts"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUncategorizedPosts(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE category_id IS NULL ORDER BY created_at DESC, id DESC LIMIT $1")).
		WithArgs(2).
		WillReturnRows(postRow(postRow(pgxmock.NewRows(postRowColumns), 9, "newest", nil, now), 8, "older", nil, now.Add(-time.Hour)))

	posts, err := s.ListUncategorizedPosts(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(9), posts[0].ID)
	assert.Nil(t, posts[0].CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUncategorizedPosts_NoLimit(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`WHERE category_id IS NULL ORDER BY created_at DESC, id DESC$`).
		WillReturnRows(pgxmock.NewRows(postRowColumns))

	posts, err := s.ListUncategorizedPosts(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentPostsInCategory(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()
	cat := int64(4)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE category_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2")).
		WithArgs(int64(4), 10).
		WillReturnRows(postRow(pgxmock.NewRows(postRowColumns), 1, "a", &cat, now))

	posts, err := s.ListRecentPostsInCategory(context.Background(), 4, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignCategory(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET category_id = $1")).
		WithArgs(int64(3), pgxmock.AnyArg(), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	// Assigning the same category again still succeeds.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET category_id = $1")).
		WithArgs(int64(3), pgxmock.AnyArg(), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.AssignCategory(context.Background(), 1, 3))
	require.NoError(t, s.AssignCategory(context.Background(), 1, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignCategory_Errors(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET category_id = $1")).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET category_id = $1")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET category_id = $1")).
		WillReturnError(errors.New("connection reset"))

	assert.ErrorIs(t, s.AssignCategory(context.Background(), 1, 404), store.ErrForeignKeyViolation)
	assert.ErrorIs(t, s.AssignCategory(context.Background(), 404, 1), store.ErrNotFound)
	assert.ErrorContains(t, s.AssignCategory(context.Background(), 1, 1), "connection reset")
}

func TestUpdatePostAnalysis(t *testing.T) {
	s, mock := newMockStore(t)
	analysis := json.RawMessage(`{"type":"tutorial"}`)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET analysis = $1 WHERE id = $2")).
		WithArgs(analysis, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.UpdatePostAnalysis(context.Background(), 1, analysis))
	assert.NoError(t, mock.ExpectationsWereMet())
}
