package models

import "time"

// Settings holds a user's default scheduling preferences.
type Settings struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Frequency   string    `db:"frequency" json:"frequency"` // low, medium, high
	Channels    []string  `db:"channels" json:"channels"`
	PostingTime string    `db:"posting_time" json:"posting_time"` // 15:04
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

const (
	FrequencyLow    = "low"
	FrequencyMedium = "medium"
	FrequencyHigh   = "high"
)
