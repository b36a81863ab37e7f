package store

import (
	"context"
	"errors"
	"fmt"

	"folio/internal/models"
	"folio/internal/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// Enqueuer is the part of *asynq.Client the job client uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// AsynqJobClient enqueues tasks and records them to the JobStore.
type AsynqJobClient struct {
	client   Enqueuer
	jobStore JobStore
}

func NewAsynqJobClient(redisOpt asynq.RedisClientOpt, js JobStore) (*AsynqJobClient, error) {
	if js == nil {
		return nil, errors.New("JobStore cannot be nil for AsynqJobClient")
	}
	return NewAsynqJobClientWithEnqueuer(asynq.NewClient(redisOpt), js), nil
}

// NewAsynqJobClientWithEnqueuer builds a client around an existing enqueuer.
func NewAsynqJobClientWithEnqueuer(enq Enqueuer, js JobStore) *AsynqJobClient {
	return &AsynqJobClient{client: enq, jobStore: js}
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// Enqueue enqueues a task and records the event to the JobStore.
// Tasks get a UUID task ID unless one is given, so the record can key on it.
func (jc *AsynqJobClient) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if jc.client == nil {
		return nil, errors.New("AsynqJobClient internal client is not initialized")
	}
	opts = append([]asynq.Option{asynq.TaskID(uuid.NewString())}, opts...)

	info, err := jc.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		log.WithError(err).WithField("task_type", task.Type()).Error("Failed to enqueue task")
		return nil, err
	}
	log.WithFields(log.Fields{"task_type": task.Type(), "task_id": info.ID, "queue": info.Queue}).Debug("Enqueued task")

	jobUUID, err := uuid.Parse(info.ID)
	if err != nil {
		// The task is already enqueued; only the record is lost.
		log.WithError(err).WithField("task_id", info.ID).Error("Task ID is not a UUID, job will not be recorded")
		return info, nil
	}

	recordParams := JobRecordParams{
		JobID:    jobUUID,
		TaskType: task.Type(),
		Payload:  task.Payload(),
		Queue:    info.Queue,
		Status:   models.JobStatusEnqueued,
	}
	if err := jc.jobStore.RecordJobEnqueue(ctx, recordParams); err != nil {
		log.WithError(err).WithField("task_id", info.ID).Error("Failed to record job enqueue event")
	}

	return info, nil
}

// EnqueueAutoCategorize schedules an auto-categorization batch and returns its job ID.
func (jc *AsynqJobClient) EnqueueAutoCategorize(ctx context.Context, limit int) (uuid.UUID, error) {
	payload, err := tasks.NewAutoCategorizePayload(limit)
	if err != nil {
		return uuid.Nil, err
	}
	task := asynq.NewTask(tasks.TypeAutoCategorize, payload)
	info, err := jc.Enqueue(ctx, task, asynq.Queue(tasks.QueueCategorization), asynq.MaxRetry(1))
	if err != nil {
		return uuid.Nil, fmt.Errorf("enqueue auto-categorize job: %w", err)
	}
	jobID, err := uuid.Parse(info.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse task id %q: %w", info.ID, err)
	}
	return jobID, nil
}

// Ensure AsynqJobClient satisfies the JobClient interface
var _ JobClient = (*AsynqJobClient)(nil)
