package transfer

import (
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
)

type CalendarCreate struct {
	StrategyID string               `json:"strategy_id"`
	OutlineID  string               `json:"outline_id"`
	Name       string               `json:"name"`
	StartDate  string               `json:"start_date"` // 2006-01-02
	Prefs      *planner.Preferences `json:"prefs"`
}

type PostCreate struct {
	Title          string            `json:"title"`
	Content        string            `json:"content"`
	PostType       string            `json:"post_type"`
	Channel        string            `json:"channel"`
	TargetAudience string            `json:"target_audience"`
	ScheduledDate  string            `json:"scheduled_date"` // RFC 3339 or 2006-01-02
	Status         string            `json:"status"`
	Engagement     models.Engagement `json:"engagement"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type BulkStatus struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type BulkDelete struct {
	IDs []string `json:"ids"`
}

type Swap struct {
	FirstID  string `json:"first_id"`
	SecondID string `json:"second_id"`
}
