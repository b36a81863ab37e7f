package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"folio/internal/models"
	"folio/internal/store"
	"folio/internal/tasks"
	"folio/pkg/categorizer"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// BatchRunner runs one auto-categorization batch.
type BatchRunner interface {
	AutoCategorize(ctx context.Context, limit int) (categorizer.BatchResult, error)
}

type AutoCategorizeDeps struct {
	Runner   BatchRunner
	JobStore store.JobStore
}

// RegisterHandlers wires every task type this worker serves into mux.
func RegisterHandlers(mux *asynq.ServeMux, deps AutoCategorizeDeps) {
	log.WithField("task_type", tasks.TypeAutoCategorize).Info("Registering task handler")
	mux.HandleFunc(tasks.TypeAutoCategorize, HandleAutoCategorize(deps))
}

// HandleAutoCategorize returns the handler for TypeAutoCategorize tasks.
func HandleAutoCategorize(deps AutoCategorizeDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		taskID, _ := asynq.GetTaskID(ctx)
		return processAutoCategorize(ctx, deps, taskID, t.Payload())
	}
}

// processAutoCategorize runs the batch and keeps the background_jobs row in
// step. Job bookkeeping failures are logged and never fail the task.
func processAutoCategorize(ctx context.Context, deps AutoCategorizeDeps, taskID string, payload []byte) error {
	logger := log.WithFields(log.Fields{"task_type": tasks.TypeAutoCategorize, "task_id": taskID})

	p, err := tasks.ParseAutoCategorizePayload(payload)
	if err != nil {
		logger.WithError(err).Error("Invalid task payload")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	jobID, err := uuid.Parse(taskID)
	tracked := err == nil
	if !tracked {
		logger.Warn("Task ID is not a UUID, job status will not be tracked")
	}
	setStatus := func(status string) {
		if !tracked {
			return
		}
		if err := deps.JobStore.UpdateJobStatus(ctx, jobID, status); err != nil {
			logger.WithError(err).WithField("status", status).Warn("Failed to update job status")
		}
	}

	setStatus(models.JobStatusRunning)
	logger.WithField("limit", p.Limit).Info("Starting auto-categorization batch")

	result, err := deps.Runner.AutoCategorize(ctx, p.Limit)
	if err != nil {
		setStatus(models.JobStatusFailed)
		logger.WithError(err).Error("Auto-categorization batch failed")
		return err
	}

	if tracked {
		data, err := json.Marshal(result)
		if err != nil {
			logger.WithError(err).Error("Failed to encode batch result")
		} else if err := deps.JobStore.UpdateJobData(ctx, jobID, data); err != nil {
			logger.WithError(err).Warn("Failed to store batch result")
		}
	}
	setStatus(models.JobStatusCompleted)

	logger.WithFields(log.Fields{
		"processed":   result.Processed,
		"categorized": result.Categorized,
		"failed":      result.Failed,
		"review":      len(result.Suggestions),
	}).Info("Auto-categorization batch finished")
	return nil
}
