package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*queue.Queue, *mocks.MockCalendarPostRepository, *mocks.MockAuditLogRepository, time.Time) {
	t.Helper()
	ctx := context.Background()

	calendars := mocks.NewMockCalendarRepository(nil)
	posts := mocks.NewMockCalendarPostRepository(nil)
	audit := mocks.NewMockAuditLogRepository()

	_, err := calendars.Create(ctx, &models.Calendar{ID: "cal-1", UserID: "user-1", Name: "June"})
	require.NoError(t, err)

	due := time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)
	_, err = posts.Create(ctx, &models.CalendarPost{
		ID:            "post-1",
		CalendarID:    "cal-1",
		Title:         "Launch teaser",
		Channel:       "instagram",
		ScheduledDate: due,
		Status:        models.PostStatusScheduled,
	})
	require.NoError(t, err)

	return queue.NewQueue(posts, calendars, audit), posts, audit, due
}

func TestHandlePostDueTaskWritesAudit(t *testing.T) {
	q, _, audit, due := setup(t)

	task, err := queue.NewPostDueTask(queue.PostDuePayload{PostID: "post-1", ScheduledDate: due})
	require.NoError(t, err)
	assert.Equal(t, queue.TaskTypePostDue, task.Type())

	require.NoError(t, q.HandlePostDueTask(context.Background(), task))

	require.Len(t, audit.Entries, 1)
	entry := audit.Entries[0]
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, models.AuditPostDue, entry.Action)
	assert.Equal(t, "post-1", entry.Details["post_id"])
	assert.Equal(t, "cal-1", entry.Details["calendar_id"])
}

func TestNotifyPostDueSkipsStalePosts(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		q, posts, audit, due := setup(t)
		require.NoError(t, posts.Remove(ctx, []string{"post-1"}))
		require.NoError(t, q.NotifyPostDue(ctx, queue.PostDuePayload{PostID: "post-1", ScheduledDate: due}))
		assert.Empty(t, audit.Entries)
	})

	t.Run("moved", func(t *testing.T) {
		q, posts, audit, due := setup(t)
		require.NoError(t, posts.UpdateScheduledDate(ctx, "post-1", due.AddDate(0, 0, 2)))
		require.NoError(t, q.NotifyPostDue(ctx, queue.PostDuePayload{PostID: "post-1", ScheduledDate: due}))
		assert.Empty(t, audit.Entries)
	})

	t.Run("no longer scheduled", func(t *testing.T) {
		q, posts, audit, due := setup(t)
		require.NoError(t, posts.UpdateStatus(ctx, []string{"post-1"}, models.PostStatusPublished))
		require.NoError(t, q.NotifyPostDue(ctx, queue.PostDuePayload{PostID: "post-1", ScheduledDate: due}))
		assert.Empty(t, audit.Entries)
	})
}

func TestHandlePostDueTaskBadPayload(t *testing.T) {
	q, _, _, _ := setup(t)

	err := q.HandlePostDueTask(context.Background(), asynq.NewTask(queue.TaskTypePostDue, []byte("{")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
