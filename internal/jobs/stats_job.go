package job

import (
	"context"

	"github.com/maheshrc27/marketing-planner/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const concurrencyLimit = 10

// StatsRecomputer rewrites the derived counters of one calendar.
type StatsRecomputer interface {
	RecomputeStats(ctx context.Context, calendarID string) error
}

type StatsJob struct {
	cr repository.CalendarRepository
	rs StatsRecomputer
}

func NewStatsJob(cr repository.CalendarRepository, rs StatsRecomputer) *StatsJob {
	return &StatsJob{
		cr: cr,
		rs: rs,
	}
}

// Run is the cron entry point.
func (j *StatsJob) Run() {
	if _, err := j.Reconcile(context.Background()); err != nil {
		zap.L().Error("stats reconciliation failed", zap.Error(err))
	}
}

// Reconcile recomputes every calendar and reports how many were repaired
// without error. A failing calendar is logged and does not stop the others.
func (j *StatsJob) Reconcile(ctx context.Context) (int, error) {
	ids, err := j.cr.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	results := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrencyLimit)

	for i, id := range ids {
		g.Go(func() error {
			if err := j.rs.RecomputeStats(gctx, id); err != nil {
				zap.L().Warn("unable to recompute calendar stats",
					zap.String("calendar_id", id),
					zap.Error(err))
				return nil
			}
			results[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	done := 0
	for _, ok := range results {
		if ok {
			done++
		}
	}
	zap.L().Info("calendar stats reconciled", zap.Int("calendars", len(ids)), zap.Int("updated", done))
	return done, nil
}
