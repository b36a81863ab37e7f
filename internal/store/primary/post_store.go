package primary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"folio/internal/models"
	"folio/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- Post Management ---

func (s *StoreImpl) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, slug, body, excerpt, status, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}

	err := s.db.QueryRow(ctx, query,
		post.Title, post.Slug, post.Body, post.Excerpt, post.Status, post.CategoryID, now, now,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return mapPostWriteError(err, post)
	}
	return nil
}

func (s *StoreImpl) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post := &models.Post{}
	if err := scanPost(s.db.QueryRow(ctx, query, id), post); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post by id %d: %w", id, err)
	}
	return post, nil
}

func (s *StoreImpl) UpdatePost(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $1, slug = $2, body = $3, excerpt = $4, status = $5, category_id = $6, updated_at = $7
		WHERE id = $8`

	now := time.Now()
	cmdTag, err := s.db.Exec(ctx, query,
		post.Title, post.Slug, post.Body, post.Excerpt, post.Status, post.CategoryID, now, post.ID,
	)
	if err != nil {
		return mapPostWriteError(err, post)
	}
	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	post.UpdatedAt = now
	return nil
}

func (s *StoreImpl) DeletePost(ctx context.Context, id int64) error {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

var validPostSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"id":         true,
}

func (s *StoreImpl) ListPosts(ctx context.Context, params store.ListPostsParams) ([]*models.Post, error) {
	limit, offset := params.Limit, params.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	sortBy := params.SortBy
	if !validPostSortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := strings.ToUpper(params.SortOrder)
	if sortOrder != "ASC" {
		sortOrder = "DESC"
	}

	var conditions []string
	var args []any
	if params.CategoryID != nil {
		args = append(args, *params.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + postColumns + ` FROM posts`)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d", sortBy, sortOrder, sortOrder, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return collectPosts(rows)
}

// ListUncategorizedPosts returns posts with no category, newest first.
func (s *StoreImpl) ListUncategorizedPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE category_id IS NULL ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list uncategorized posts: %w", err)
	}
	return collectPosts(rows)
}

func (s *StoreImpl) ListRecentPostsInCategory(ctx context.Context, categoryID int64, limit int) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE category_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := s.db.Query(ctx, query, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent posts for category %d: %w", categoryID, err)
	}
	return collectPosts(rows)
}

// AssignCategory sets the post's category. Re-assigning the same category is a no-op success.
func (s *StoreImpl) AssignCategory(ctx context.Context, postID, categoryID int64) error {
	query := `UPDATE posts SET category_id = $1, updated_at = $2 WHERE id = $3`
	cmdTag, err := s.db.Exec(ctx, query, categoryID, time.Now(), postID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("category ID %d does not exist: %w", categoryID, store.ErrForeignKeyViolation)
		}
		return fmt.Errorf("failed to assign category %d to post %d: %w", categoryID, postID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("post %d not found to assign category: %w", postID, store.ErrNotFound)
	}
	return nil
}

func (s *StoreImpl) UpdatePostAnalysis(ctx context.Context, postID int64, analysis json.RawMessage) error {
	cmdTag, err := s.db.Exec(ctx, `UPDATE posts SET analysis = $1 WHERE id = $2`, analysis, postID)
	if err != nil {
		return fmt.Errorf("failed to update analysis for post %d: %w", postID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("post %d not found to update analysis: %w", postID, store.ErrNotFound)
	}
	return nil
}

func mapPostWriteError(err error, post *models.Post) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("post with slug '%s' already exists: %w", post.Slug, store.ErrDuplicate)
		case "23503": // foreign_key_violation
			return fmt.Errorf("category for post '%s' does not exist: %w", post.Slug, store.ErrForeignKeyViolation)
		}
	}
	return fmt.Errorf("failed to write post: %w", err)
}

// Ensure StoreImpl satisfies the PostStore interface
var _ store.PostStore = (*StoreImpl)(nil)
