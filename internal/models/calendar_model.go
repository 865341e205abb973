package models

import (
	"math"
	"time"
)

type Calendar struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	StrategyID     string    `db:"strategy_id" json:"strategy_id"`
	Name           string    `db:"name" json:"name"`
	Progress       int       `db:"progress" json:"progress"`
	PostsScheduled int       `db:"posts_scheduled" json:"posts_scheduled"`
	PostsPublished int       `db:"posts_published" json:"posts_published"`
	Status         string    `db:"status" json:"status"` // active, completed
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

const (
	CalendarStatusActive    = "active"
	CalendarStatusCompleted = "completed"
)

// Progress is round(published / total * 100), or 0 for an empty calendar.
func Progress(published, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(published) / float64(total) * 100))
}

// CalendarStats are the derived counters stored on a calendar row.
type CalendarStats struct {
	PostsScheduled int
	PostsPublished int
	Progress       int
	Status         string
}

// ComputeStats derives the calendar counters from its posts.
func ComputeStats(posts []*CalendarPost) CalendarStats {
	published := 0
	for _, p := range posts {
		if p.Status == PostStatusPublished {
			published++
		}
	}

	stats := CalendarStats{
		PostsScheduled: len(posts),
		PostsPublished: published,
		Progress:       Progress(published, len(posts)),
		Status:         CalendarStatusActive,
	}
	if stats.PostsScheduled > 0 && stats.PostsPublished == stats.PostsScheduled {
		stats.Status = CalendarStatusCompleted
	}
	return stats
}
