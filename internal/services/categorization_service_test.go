package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"folio/internal/models"
	"folio/internal/store"
	"folio/internal/store/mocks"
	"folio/pkg/categorizer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func golangCategory() *models.Category {
	return &models.Category{ID: 9, Name: "Golang Tutorial", Slug: "golang-tutorial", Description: strPtr("golang tutorial")}
}

func newTestCategorizationService(ps *mocks.PrimaryStore, jc store.JobClient) *CategorizationService {
	return NewCategorizationService(CategorizationServiceDeps{
		PostStore:     ps,
		CategoryStore: ps,
		JobStore:      ps,
		JobClient:     jc,
	})
}

func TestSuggestForPost(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	svc := newTestCategorizationService(ps, nil)

	ps.On("GetPost", mock.Anything, int64(1)).Return(&models.Post{ID: 1, Title: "Golang tutorial", Body: "golang tutorial"}, nil).Once()
	ps.On("ListCategories", mock.Anything).Return([]*models.Category{golangCategory()}, nil).Once()
	ps.On("ListRecentPostsInCategory", mock.Anything, int64(9), categorizer.DefaultHistorySize).Return([]*models.Post{}, nil)
	// A failed analysis write is logged, not returned.
	ps.On("UpdatePostAnalysis", mock.Anything, int64(1), mock.AnythingOfType("json.RawMessage")).Return(errors.New("read-only replica")).Once()

	res, err := svc.SuggestForPost(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, int64(9), res.Suggestions[0].CategoryID)
	assert.InDelta(t, 0.95, res.Suggestions[0].Confidence, 1e-9)
	assert.Equal(t, categorizer.TypeTutorial, res.Analysis.Type)
	ps.AssertExpectations(t)
}

func TestSuggestForPost_NotFound(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	svc := newTestCategorizationService(ps, nil)
	ps.On("GetPost", mock.Anything, int64(404)).Return(nil, store.ErrNotFound).Once()

	_, err := svc.SuggestForPost(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSuggestForPost_EmptyCatalog(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	svc := newTestCategorizationService(ps, nil)
	ps.On("GetPost", mock.Anything, int64(1)).Return(&models.Post{ID: 1, Title: "x"}, nil).Once()
	ps.On("ListCategories", mock.Anything).Return([]*models.Category{}, nil).Once()
	ps.On("UpdatePostAnalysis", mock.Anything, int64(1), mock.Anything).Return(nil).Once()

	res, err := svc.SuggestForPost(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, res.Suggestions)
	assert.Empty(t, res.Suggestions)
}

func TestAutoCategorize(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	svc := newTestCategorizationService(ps, nil)

	ps.On("ListCategories", mock.Anything).Return([]*models.Category{golangCategory()}, nil).Once()
	ps.On("ListUncategorizedPosts", mock.Anything, 50).Return([]*models.Post{
		{ID: 1, Title: "Golang tutorial", Body: "golang tutorial"},
		{ID: 2, Title: "Weekly thoughts", Body: "some words"},
		{ID: 3, Title: "Golang notes", Body: "golang notes"},
	}, nil).Once()
	ps.On("ListRecentPostsInCategory", mock.Anything, int64(9), categorizer.DefaultHistorySize).Return([]*models.Post{}, nil)
	ps.On("AssignCategory", mock.Anything, int64(1), int64(9)).Return(nil).Once()

	result, err := svc.AutoCategorize(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 1, result.Categorized)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, int64(3), result.Suggestions[0].ContentID)
	ps.AssertExpectations(t)
}

func TestAutoCategorize_CatalogError(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	svc := newTestCategorizationService(ps, nil)
	ps.On("ListCategories", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := svc.AutoCategorize(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	ps.AssertNotCalled(t, "ListUncategorizedPosts", mock.Anything, mock.Anything)
}

func TestApplyCategory(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	svc := newTestCategorizationService(ps, nil)
	ps.On("GetCategory", mock.Anything, int64(9)).Return(golangCategory(), nil).Once()
	ps.On("AssignCategory", mock.Anything, int64(3), int64(9)).Return(nil).Once()

	require.NoError(t, svc.ApplyCategory(context.Background(), 3, 9))
	ps.AssertExpectations(t)
}

func TestApplyCategory_UnknownCategory(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	svc := newTestCategorizationService(ps, nil)
	ps.On("GetCategory", mock.Anything, int64(77)).Return(nil, store.ErrNotFound).Once()

	err := svc.ApplyCategory(context.Background(), 3, 77)
	assert.ErrorIs(t, err, store.ErrNotFound)
	ps.AssertNotCalled(t, "AssignCategory", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnqueueAutoCategorize(t *testing.T) {
	ps := new(mocks.PrimaryStore)

	_, err := newTestCategorizationService(ps, nil).EnqueueAutoCategorize(context.Background(), 5)
	assert.Error(t, err)

	jc := new(mocks.JobClient)
	id := uuid.New()
	jc.On("EnqueueAutoCategorize", mock.Anything, 5).Return(id, nil).Once()

	got, err := newTestCategorizationService(ps, jc).EnqueueAutoCategorize(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	jc.AssertExpectations(t)
}

func TestJobResult(t *testing.T) {
	pending := &models.BackgroundJob{JobID: uuid.New(), Status: models.JobStatusEnqueued}
	res, err := JobResult(pending)
	require.NoError(t, err)
	assert.Nil(t, res)

	data, err := json.Marshal(categorizer.BatchResult{Processed: 3, Categorized: 1, Failed: 1, Suggestions: []categorizer.ReviewEntry{}})
	require.NoError(t, err)
	done := &models.BackgroundJob{JobID: uuid.New(), Status: models.JobStatusCompleted, JobData: data}
	res, err = JobResult(done)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.Processed)

	_, err = JobResult(&models.BackgroundJob{JobData: json.RawMessage(`{"processed":`)})
	assert.Error(t, err)
}
