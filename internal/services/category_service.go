package services

import (
	"context"
	"fmt"
	"strings"

	"folio/internal/models"
	"folio/internal/store"
	"folio/internal/util"
)

type CategoryService struct {
	store store.CategoryStore
}

func NewCategoryService(cs store.CategoryStore) *CategoryService {
	return &CategoryService{store: cs}
}

type CategoryParams struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Keywords    *string `json:"keywords,omitempty"`
}

// optionalText trims s and maps blank values to nil.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *CategoryService) CreateCategory(ctx context.Context, params CategoryParams) (*models.Category, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", models.ErrValidation)
	}
	slug := util.Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: category name %q has no usable characters", models.ErrValidation, name)
	}

	category := &models.Category{
		Name:        name,
		Slug:        slug,
		Description: optionalText(params.Description),
		Keywords:    optionalText(params.Keywords),
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c, err := s.store.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get category '%s': %w", slug, err)
	}
	return c, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if cats == nil {
		return []*models.Category{}, nil
	}
	return cats, nil
}

// UpdateCategory replaces name, description and keywords. The slug follows the name.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, params CategoryParams) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", models.ErrValidation)
	}
	slug := util.Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: category name %q has no usable characters", models.ErrValidation, name)
	}
	category.Name = name
	category.Slug = slug
	category.Description = optionalText(params.Description)
	category.Keywords = optionalText(params.Keywords)

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}
