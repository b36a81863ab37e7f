package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"folio/internal/models"
	"folio/internal/store"
	"folio/pkg/categorizer"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// CategorizationOptions tunes the engine and the batch policy. Zero values use the package defaults.
type CategorizationOptions struct {
	VisibilityThreshold float64
	AutoAssignThreshold float64
	ReviewSuggestions   int
	HistorySize         int
}

type CategorizationService struct {
	posts      store.PostStore
	categories store.CategoryStore
	jobStore   store.JobStore
	jobClient  store.JobClient
	pipeline   *categorizer.Pipeline
}

type CategorizationServiceDeps struct {
	PostStore     store.PostStore
	CategoryStore store.CategoryStore
	JobStore      store.JobStore
	JobClient     store.JobClient // optional; nil disables async batches
	Options       CategorizationOptions
}

func NewCategorizationService(deps CategorizationServiceDeps) *CategorizationService {
	posts := postProvider{store: deps.PostStore}
	return &CategorizationService{
		posts:      deps.PostStore,
		categories: deps.CategoryStore,
		jobStore:   deps.JobStore,
		jobClient:  deps.JobClient,
		pipeline: &categorizer.Pipeline{
			Engine: categorizer.NewEngine(categorizer.Options{
				VisibilityThreshold: deps.Options.VisibilityThreshold,
				HistorySize:         deps.Options.HistorySize,
			}),
			Categories:        categoryProvider{store: deps.CategoryStore},
			Contents:          posts,
			History:           posts,
			Sink:              posts,
			Threshold:         deps.Options.AutoAssignThreshold,
			ReviewSuggestions: deps.Options.ReviewSuggestions,
		},
	}
}

// SuggestionResult is the ranked suggestion list for one post together with its analysis.
type SuggestionResult struct {
	PostID      int64                            `json:"post_id"`
	Suggestions []categorizer.CategorySuggestion `json:"suggestions"`
	Analysis    categorizer.ContentAnalysis      `json:"analysis"`
}

// SuggestForPost ranks the current catalog against a post. The analysis is
// saved on the post when possible; a failed save does not fail the call.
func (s *CategorizationService) SuggestForPost(ctx context.Context, postID int64) (*SuggestionResult, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", postID, err)
	}

	suggestions, analysis, err := s.pipeline.Suggest(ctx, toContentItem(post))
	if err != nil {
		return nil, fmt.Errorf("suggest categories for post %d: %w", postID, err)
	}

	if raw, err := json.Marshal(analysis); err != nil {
		log.WithError(err).WithField("post_id", postID).Warn("Failed to encode content analysis")
	} else if err := s.posts.UpdatePostAnalysis(ctx, postID, raw); err != nil {
		log.WithError(err).WithField("post_id", postID).Warn("Failed to save content analysis")
	}

	if suggestions == nil {
		suggestions = []categorizer.CategorySuggestion{}
	}
	return &SuggestionResult{PostID: postID, Suggestions: suggestions, Analysis: analysis}, nil
}

// AutoCategorize runs one batch over up to limit uncategorized posts, newest first.
func (s *CategorizationService) AutoCategorize(ctx context.Context, limit int) (categorizer.BatchResult, error) {
	result, err := s.pipeline.AutoCategorize(ctx, limit)
	if err != nil {
		return categorizer.BatchResult{}, fmt.Errorf("auto-categorize: %w", err)
	}
	return result, nil
}

// ApplyCategory records a manual decision, usually the approval of a review entry.
func (s *CategorizationService) ApplyCategory(ctx context.Context, postID, categoryID int64) error {
	if _, err := s.categories.GetCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("get category %d: %w", categoryID, err)
	}
	if err := s.posts.AssignCategory(ctx, postID, categoryID); err != nil {
		return fmt.Errorf("assign category %d to post %d: %w", categoryID, postID, err)
	}
	log.WithFields(log.Fields{"post_id": postID, "category_id": categoryID}).Info("Category applied")
	return nil
}

// EnqueueAutoCategorize schedules a batch on the worker and returns the job ID.
func (s *CategorizationService) EnqueueAutoCategorize(ctx context.Context, limit int) (uuid.UUID, error) {
	if s.jobClient == nil {
		return uuid.Nil, errors.New("background jobs are not configured")
	}
	return s.jobClient.EnqueueAutoCategorize(ctx, limit)
}

func (s *CategorizationService) GetJob(ctx context.Context, jobID uuid.UUID) (*models.BackgroundJob, error) {
	job, err := s.jobStore.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", jobID, err)
	}
	return job, nil
}

// JobResult decodes the BatchResult stored on a finished auto-categorization job.
// It returns nil while the job has no result yet.
func JobResult(job *models.BackgroundJob) (*categorizer.BatchResult, error) {
	if len(job.JobData) == 0 || string(job.JobData) == "null" {
		return nil, nil
	}
	var result categorizer.BatchResult
	if err := json.Unmarshal(job.JobData, &result); err != nil {
		return nil, fmt.Errorf("decode result of job %s: %w", job.JobID, err)
	}
	return &result, nil
}
