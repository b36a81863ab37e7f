package store_test

import (
	"context"
	"errors"
	"testing"

	"folio/internal/models"
	"folio/internal/store"
	"folio/internal/store/mocks"
	"folio/internal/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	infoID string
	err    error
	tasks  []*asynq.Task
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	id := f.infoID
	queue := "default"
	for _, o := range opts {
		switch o.Type() {
		case asynq.TaskIDOpt:
			if id == "" {
				id = o.Value().(string)
			}
		case asynq.QueueOpt:
			queue = o.Value().(string)
		}
	}
	return &asynq.TaskInfo{ID: id, Queue: queue, Type: task.Type(), Payload: task.Payload()}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

func TestEnqueueAutoCategorize_RecordsJob(t *testing.T) {
	js := new(mocks.PrimaryStore)
	enq := &fakeEnqueuer{}
	jc := store.NewAsynqJobClientWithEnqueuer(enq, js)

	js.On("RecordJobEnqueue", mock.Anything, mock.MatchedBy(func(p store.JobRecordParams) bool {
		return p.TaskType == tasks.TypeAutoCategorize &&
			p.Queue == tasks.QueueCategorization &&
			p.Status == models.JobStatusEnqueued &&
			string(p.Payload) == `{"limit":25}`
	})).Return(nil).Once()

	jobID, err := jc.EnqueueAutoCategorize(context.Background(), 25)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, jobID)
	require.Len(t, enq.tasks, 1)
	js.AssertExpectations(t)
}

func TestEnqueue_RecordFailureDoesNotFailEnqueue(t *testing.T) {
	js := new(mocks.PrimaryStore)
	jc := store.NewAsynqJobClientWithEnqueuer(&fakeEnqueuer{}, js)
	js.On("RecordJobEnqueue", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	_, err := jc.EnqueueAutoCategorize(context.Background(), 0)
	assert.NoError(t, err)
	js.AssertExpectations(t)
}

func TestEnqueue_NonUUIDTaskIDSkipsRecord(t *testing.T) {
	js := new(mocks.PrimaryStore)
	jc := store.NewAsynqJobClientWithEnqueuer(&fakeEnqueuer{infoID: "not-a-uuid"}, js)

	info, err := jc.Enqueue(context.Background(), asynq.NewTask(tasks.TypeAutoCategorize, nil))
	require.NoError(t, err)
	assert.Equal(t, "not-a-uuid", info.ID)
	js.AssertNotCalled(t, "RecordJobEnqueue", mock.Anything, mock.Anything)
}

func TestEnqueue_ClientError(t *testing.T) {
	js := new(mocks.PrimaryStore)
	jc := store.NewAsynqJobClientWithEnqueuer(&fakeEnqueuer{err: errors.New("redis unavailable")}, js)

	_, err := jc.EnqueueAutoCategorize(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis unavailable")
	js.AssertNotCalled(t, "RecordJobEnqueue", mock.Anything, mock.Anything)
}
