package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"folio/internal/models"
	"folio/internal/store"
	"folio/internal/util"

	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"
)

const maxSlugAttempts = 5

type PostService struct {
	store  store.PostStore
	policy *bluemonday.Policy
}

func NewPostService(ps store.PostStore) *PostService {
	return &PostService{store: ps, policy: bluemonday.UGCPolicy()}
}

type CreatePostParams struct {
	Title      string  `json:"title"`
	Body       string  `json:"body"`
	Excerpt    *string `json:"excerpt,omitempty"`
	Status     string  `json:"status,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
}

// UpdatePostParams changes only the fields that are set.
type UpdatePostParams struct {
	Title      *string `json:"title,omitempty"`
	Body       *string `json:"body,omitempty"`
	Excerpt    *string `json:"excerpt,omitempty"`
	Status     *string `json:"status,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
}

type ListPostsParams = store.ListPostsParams

func validStatus(s string) bool {
	switch s {
	case models.PostStatusDraft, models.PostStatusPublished, models.PostStatusArchived:
		return true
	}
	return false
}

// sanitizeBody cleans the encoding and strips markup the UGC policy does not allow.
func (s *PostService) sanitizeBody(raw string) (string, error) {
	cleaned, err := util.CleanText([]byte(raw), "post body")
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return s.policy.Sanitize(cleaned), nil
}

// CreatePost validates and stores a new post. Title collisions get a numbered slug.
func (s *PostService) CreatePost(ctx context.Context, params CreatePostParams) (*models.Post, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	status := params.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, status)
	}
	body, err := s.sanitizeBody(params.Body)
	if err != nil {
		return nil, err
	}

	baseSlug := util.Slugify(title)
	if baseSlug == "" {
		baseSlug = "post"
	}

	post := &models.Post{
		Title:      title,
		Body:       body,
		Excerpt:    params.Excerpt,
		Status:     status,
		CategoryID: params.CategoryID,
	}
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		post.Slug = baseSlug
		if attempt > 1 {
			post.Slug = fmt.Sprintf("%s-%d", baseSlug, attempt)
		}
		err = s.store.CreatePost(ctx, post)
		if !errors.Is(err, store.ErrDuplicate) {
			break
		}
		log.WithField("slug", post.Slug).Debug("Slug taken, trying next")
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return post, nil
}

// UpdatePost applies params to an existing post. The slug is kept stable across title edits.
func (s *PostService) UpdatePost(ctx context.Context, id int64, params UpdatePostParams) (*models.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", models.ErrValidation)
		}
		post.Title = title
	}
	if params.Body != nil {
		body, err := s.sanitizeBody(*params.Body)
		if err != nil {
			return nil, err
		}
		post.Body = body
	}
	if params.Excerpt != nil {
		post.Excerpt = params.Excerpt
	}
	if params.Status != nil {
		if !validStatus(*params.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, *params.Status)
		}
		post.Status = *params.Status
	}
	if params.CategoryID != nil {
		post.CategoryID = params.CategoryID
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	if err := s.store.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}

func (s *PostService) ListPosts(ctx context.Context, params ListPostsParams) ([]*models.Post, error) {
	posts, err := s.store.ListPosts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		return []*models.Post{}, nil
	}
	return posts, nil
}

// ListUncategorized returns the posts an auto-categorization batch would see.
func (s *PostService) ListUncategorized(ctx context.Context, limit int) ([]*models.Post, error) {
	posts, err := s.store.ListUncategorizedPosts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list uncategorized posts: %w", err)
	}
	return posts, nil
}
