// Package mocks provides testify mocks for the store interfaces.
package mocks

import (
	"context"
	"encoding/json"

	"folio/internal/models"
	"folio/internal/store"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"
)

// PrimaryStore mocks store.PostStore, store.CategoryStore and store.JobStore.
type PrimaryStore struct {
	mock.Mock
}

var (
	_ store.PostStore     = (*PrimaryStore)(nil)
	_ store.CategoryStore = (*PrimaryStore)(nil)
	_ store.JobStore      = (*PrimaryStore)(nil)
)

func (m *PrimaryStore) CreatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *PrimaryStore) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *PrimaryStore) UpdatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *PrimaryStore) DeletePost(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PrimaryStore) ListPosts(ctx context.Context, params store.ListPostsParams) ([]*models.Post, error) {
	args := m.Called(ctx, params)
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func (m *PrimaryStore) ListUncategorizedPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, limit)
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func (m *PrimaryStore) ListRecentPostsInCategory(ctx context.Context, categoryID int64, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, categoryID, limit)
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func (m *PrimaryStore) AssignCategory(ctx context.Context, postID, categoryID int64) error {
	return m.Called(ctx, postID, categoryID).Error(0)
}

func (m *PrimaryStore) UpdatePostAnalysis(ctx context.Context, postID int64, analysis json.RawMessage) error {
	return m.Called(ctx, postID, analysis).Error(0)
}

func (m *PrimaryStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *PrimaryStore) CreateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *PrimaryStore) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *PrimaryStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *PrimaryStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]*models.Category)
	return cats, args.Error(1)
}

func (m *PrimaryStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *PrimaryStore) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PrimaryStore) RecordJobEnqueue(ctx context.Context, params store.JobRecordParams) error {
	return m.Called(ctx, params).Error(0)
}

func (m *PrimaryStore) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error {
	return m.Called(ctx, jobID, status).Error(0)
}

func (m *PrimaryStore) UpdateJobData(ctx context.Context, jobID uuid.UUID, jobData json.RawMessage) error {
	return m.Called(ctx, jobID, jobData).Error(0)
}

func (m *PrimaryStore) GetJob(ctx context.Context, jobID uuid.UUID) (*models.BackgroundJob, error) {
	args := m.Called(ctx, jobID)
	job, _ := args.Get(0).(*models.BackgroundJob)
	return job, args.Error(1)
}

func (m *PrimaryStore) ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error) {
	args := m.Called(ctx, limit, offset)
	jobs, _ := args.Get(0).([]*models.BackgroundJob)
	return jobs, args.Error(1)
}

// JobClient mocks store.JobClient.
type JobClient struct {
	mock.Mock
}

var _ store.JobClient = (*JobClient)(nil)

func (m *JobClient) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func (m *JobClient) EnqueueAutoCategorize(ctx context.Context, limit int) (uuid.UUID, error) {
	args := m.Called(ctx, limit)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func (m *JobClient) Close() error {
	return m.Called().Error(0)
}
