package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer schedules a reminder for a post at its scheduled date.
type Enqueuer interface {
	EnqueuePostDue(ctx context.Context, payload PostDuePayload) error
}

type asynqEnqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) Enqueuer {
	return &asynqEnqueuer{client: client}
}

func (e *asynqEnqueuer) EnqueuePostDue(ctx context.Context, payload PostDuePayload) error {
	task, err := NewPostDueTask(payload)
	if err != nil {
		return err
	}

	opts := []asynq.Option{asynq.MaxRetry(3)}
	if payload.ScheduledDate.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(payload.ScheduledDate))
	}

	info, err := e.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return err
	}

	zap.L().Debug("post due task scheduled",
		zap.String("task_id", info.ID),
		zap.String("post_id", payload.PostID),
		zap.Time("process_at", info.NextProcessAt))
	return nil
}

func NewPostDueTask(payload PostDuePayload) (*asynq.Task, error) {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePostDue, taskPayload), nil
}
