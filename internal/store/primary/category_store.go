package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folio/internal/models"
	"folio/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- Category Management ---

const categoryColumns = `id, name, slug, description, keywords, created_at, updated_at`

func scanCategory(row pgx.Row, c *models.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Keywords, &c.CreatedAt, &c.UpdatedAt)
}

func (s *StoreImpl) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, description, keywords, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := s.db.QueryRow(ctx, query,
		category.Name, category.Slug, category.Description, category.Keywords, now, now,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("category with name or slug already exists: %w", store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category := &models.Category{}
	if err := scanCategory(s.db.QueryRow(ctx, query, id), category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by id %d: %w", id, err)
	}
	return category, nil
}

func (s *StoreImpl) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	category := &models.Category{}
	if err := scanCategory(s.db.QueryRow(ctx, query, slug), category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by slug '%s': %w", slug, err)
	}
	return category, nil
}

// ListCategories returns the whole catalog ordered by id, which fixes the tie order of suggestions.
func (s *StoreImpl) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		category := &models.Category{}
		if err := scanCategory(rows, category); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (s *StoreImpl) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories SET name = $1, slug = $2, description = $3, keywords = $4, updated_at = $5
		WHERE id = $6`
	now := time.Now()
	cmdTag, err := s.db.Exec(ctx, query,
		category.Name, category.Slug, category.Description, category.Keywords, now, category.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("category with name or slug already exists: %w", store.ErrDuplicate)
		}
		return fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	category.UpdatedAt = now
	return nil
}

// DeleteCategory removes a category; posts in it become uncategorized (ON DELETE SET NULL).
func (s *StoreImpl) DeleteCategory(ctx context.Context, id int64) error {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Ensure StoreImpl satisfies the CategoryStore interface
var _ store.CategoryStore = (*StoreImpl)(nil)
