package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

func (j *Queue) HandlePostDueTask(ctx context.Context, task *asynq.Task) error {
	var payload PostDuePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", TaskTypePostDue, err, asynq.SkipRetry)
	}

	return j.NotifyPostDue(ctx, payload)
}

// NotifyPostDue writes a post_due audit entry for the calendar owner. Posts
// that were deleted, moved to another date or left the scheduled state since
// the task was enqueued are ignored.
func (j *Queue) NotifyPostDue(ctx context.Context, payload PostDuePayload) error {
	post, err := j.pr.GetByID(ctx, payload.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		zap.L().Debug("post due for deleted post", zap.String("post_id", payload.PostID))
		return nil
	}
	if post.Status != models.PostStatusScheduled || !post.ScheduledDate.Equal(payload.ScheduledDate) {
		zap.L().Debug("post due is stale",
			zap.String("post_id", post.ID),
			zap.String("status", post.Status))
		return nil
	}

	calendar, err := j.cr.GetByID(ctx, post.CalendarID)
	if err != nil {
		return err
	}
	if calendar == nil {
		return nil
	}

	return j.al.Create(ctx, &models.AuditLog{
		UserID: calendar.UserID,
		Action: models.AuditPostDue,
		Details: map[string]any{
			"calendar_id":    calendar.ID,
			"post_id":        post.ID,
			"title":          post.Title,
			"channel":        post.Channel,
			"scheduled_date": post.ScheduledDate.Format(time.RFC3339),
		},
	})
}
