package store

import (
	"context"
	"encoding/json"

	"folio/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// --- Job Client ---

type JobClient interface {
	// Enqueue records the job in the JobStore after a successful enqueue.
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	EnqueueAutoCategorize(ctx context.Context, limit int) (uuid.UUID, error)
	Close() error
}

// --- Post Store ---

// ListPostsParams filters and pages ListPosts.
type ListPostsParams struct {
	Limit      int
	Offset     int
	SortBy     string
	SortOrder  string
	CategoryID *int64
	Status     string
}

type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id int64) error
	ListPosts(ctx context.Context, params ListPostsParams) ([]*models.Post, error)
	// ListUncategorizedPosts returns posts without a category, newest first. limit <= 0 means no cap.
	ListUncategorizedPosts(ctx context.Context, limit int) ([]*models.Post, error)
	ListRecentPostsInCategory(ctx context.Context, categoryID int64, limit int) ([]*models.Post, error)
	AssignCategory(ctx context.Context, postID, categoryID int64) error
	UpdatePostAnalysis(ctx context.Context, postID int64, analysis json.RawMessage) error

	Ping(ctx context.Context) error
}

// --- Category Store ---

type CategoryStore interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// --- Job Store ---

// JobRecordParams holds parameters for recording a job event.
type JobRecordParams struct {
	JobID    uuid.UUID
	TaskType string
	Payload  []byte
	Queue    string
	Status   string
}

type JobStore interface {
	RecordJobEnqueue(ctx context.Context, params JobRecordParams) error
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error
	UpdateJobData(ctx context.Context, jobID uuid.UUID, jobData json.RawMessage) error
	GetJob(ctx context.Context, jobID uuid.UUID) (*models.BackgroundJob, error)
	ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error)
}
