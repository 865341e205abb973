package models

import "time"

type AuditLog struct {
	ID        string         `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"user_id"`
	Action    string         `db:"action" json:"action"`
	Details   map[string]any `db:"details" json:"details"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

const (
	AuditViewDashboard  = "view_dashboard"
	AuditDeleteStrategy = "delete_strategy"
	AuditDeleteOutline  = "delete_outline"
	AuditDeleteCalendar = "delete_calendar"
	AuditDeletePosts    = "delete_calendar_posts"
	AuditPostDue        = "post_due"
)
