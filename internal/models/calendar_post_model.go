package models

import (
	"errors"
	"time"
)

type CalendarPost struct {
	ID             string     `db:"id" json:"id"`
	CalendarID     string     `db:"calendar_id" json:"calendar_id"`
	Title          string     `db:"title" json:"title"`
	Content        string     `db:"content" json:"content"`
	PostType       string     `db:"post_type" json:"post_type"`
	Channel        string     `db:"channel" json:"channel"`
	TargetAudience string     `db:"target_audience" json:"target_audience"`
	ScheduledDate  time.Time  `db:"scheduled_date" json:"scheduled_date"`
	Status         string     `db:"status" json:"status"` // draft, scheduled, published
	Engagement     Engagement `json:"engagement"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

func ValidPostStatus(status string) bool {
	switch status {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished:
		return true
	}
	return false
}

type Engagement struct {
	Likes    int `db:"likes" json:"likes"`
	Comments int `db:"comments" json:"comments"`
	Shares   int `db:"shares" json:"shares"`
	Saves    int `db:"saves" json:"saves"`
	Clicks   int `db:"clicks" json:"clicks"`
}

var ErrNegativeEngagement = errors.New("engagement counts must be non-negative")

func (e Engagement) Validate() error {
	if e.Likes < 0 || e.Comments < 0 || e.Shares < 0 || e.Saves < 0 || e.Clicks < 0 {
		return ErrNegativeEngagement
	}
	return nil
}

func (e Engagement) Add(o Engagement) Engagement {
	return Engagement{
		Likes:    e.Likes + o.Likes,
		Comments: e.Comments + o.Comments,
		Shares:   e.Shares + o.Shares,
		Saves:    e.Saves + o.Saves,
		Clicks:   e.Clicks + o.Clicks,
	}
}

type MediaAsset struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	FileURL   string    `db:"file_url" json:"file_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PostMedia struct {
	PostID       string    `db:"post_id" json:"post_id"`
	AssetID      string    `db:"asset_id" json:"asset_id"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
