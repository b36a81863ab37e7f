package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Post status values.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

type Post struct {
	ID         int64           `db:"id" json:"id"`
	Title      string          `db:"title" json:"title"`
	Slug       string          `db:"slug" json:"slug"`
	Body       string          `db:"body" json:"body"`
	Excerpt    *string         `db:"excerpt" json:"excerpt,omitempty"`
	Status     string          `db:"status" json:"status"`
	CategoryID *int64          `db:"category_id" json:"category_id,omitempty"` // nil while uncategorized
	Analysis   json.RawMessage `db:"analysis" json:"analysis,omitempty"`       // last ContentAnalysis, if any
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

type Category struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description,omitempty"`
	Keywords    *string   `db:"keywords" json:"keywords,omitempty"` // free-text keyword hint
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BackgroundJob mirrors the background_jobs table schema.
type BackgroundJob struct {
	ID        int64           `db:"id" json:"id"`
	JobID     uuid.UUID       `db:"job_id" json:"job_id"` // Asynq Task ID
	TaskType  string          `db:"task_type" json:"task_type"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	Queue     string          `db:"queue" json:"queue"`
	Status    string          `db:"status" json:"status"`
	JobData   json.RawMessage `db:"job_data" json:"job_data,omitempty"` // task result, e.g. a batch summary
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
