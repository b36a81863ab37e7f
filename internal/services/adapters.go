package services

import (
	"context"

	"folio/internal/models"
	"folio/internal/store"
	"folio/pkg/categorizer"
)

// Adapters exposing the stores through the categorizer collaborator interfaces.

func toDescriptor(c *models.Category) categorizer.CategoryDescriptor {
	return categorizer.CategoryDescriptor{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		KeywordHint: c.Keywords,
	}
}

func toContentItem(p *models.Post) categorizer.ContentItem {
	return categorizer.ContentItem{ID: p.ID, Title: p.Title, Body: p.Body}
}

func toContentItems(posts []*models.Post) []categorizer.ContentItem {
	items := make([]categorizer.ContentItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, toContentItem(p))
	}
	return items
}

type categoryProvider struct {
	store store.CategoryStore
}

func (a categoryProvider) ListCategories(ctx context.Context) ([]categorizer.CategoryDescriptor, error) {
	cats, err := a.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]categorizer.CategoryDescriptor, 0, len(cats))
	for _, c := range cats {
		out = append(out, toDescriptor(c))
	}
	return out, nil
}

func (a categoryProvider) GetCategory(ctx context.Context, id int64) (categorizer.CategoryDescriptor, error) {
	c, err := a.store.GetCategory(ctx, id)
	if err != nil {
		return categorizer.CategoryDescriptor{}, err
	}
	return toDescriptor(c), nil
}

type postProvider struct {
	store store.PostStore
}

func (a postProvider) ListUncategorized(ctx context.Context, limit int) ([]categorizer.ContentItem, error) {
	posts, err := a.store.ListUncategorizedPosts(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toContentItems(posts), nil
}

func (a postProvider) RecentInCategory(ctx context.Context, categoryID int64, limit int) ([]categorizer.ContentItem, error) {
	posts, err := a.store.ListRecentPostsInCategory(ctx, categoryID, limit)
	if err != nil {
		return nil, err
	}
	return toContentItems(posts), nil
}

func (a postProvider) AssignCategory(ctx context.Context, contentID, categoryID int64) error {
	return a.store.AssignCategory(ctx, contentID, categoryID)
}

var (
	_ categorizer.CategoryProvider = categoryProvider{}
	_ categorizer.ContentProvider  = postProvider{}
	_ categorizer.HistoryProvider  = postProvider{}
	_ categorizer.AssignmentSink   = postProvider{}
)
