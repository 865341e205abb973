package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recorder struct {
	mu   sync.Mutex
	seen []string
	fail map[string]bool
}

func (r *recorder) RecomputeStats(ctx context.Context, calendarID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, calendarID)
	if r.fail[calendarID] {
		return errors.New("boom")
	}
	return nil
}

func TestReconcileVisitsEveryCalendar(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	calendars := mocks.NewMockCalendarRepository(nil)
	for i := 0; i < 25; i++ {
		_, err := calendars.Create(ctx, &models.Calendar{ID: fmt.Sprintf("cal-%02d", i), UserID: "u"})
		require.NoError(t, err)
	}

	rec := &recorder{fail: map[string]bool{"cal-03": true, "cal-17": true}}
	done, err := NewStatsJob(calendars, rec).Reconcile(ctx)
	require.NoError(t, err)

	assert.Equal(t, 23, done)
	assert.Len(t, rec.seen, 25)
	assert.ElementsMatch(t, mustIDs(t, calendars), rec.seen)
}

func TestReconcileEmpty(t *testing.T) {
	done, err := NewStatsJob(mocks.NewMockCalendarRepository(nil), &recorder{}).Reconcile(context.Background())
	require.NoError(t, err)
	assert.Zero(t, done)
}

func mustIDs(t *testing.T, repo *mocks.MockCalendarRepository) []string {
	t.Helper()
	ids, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	return ids
}
