package queue

import (
	"time"

	"github.com/maheshrc27/marketing-planner/internal/repository"
)

type Queue struct {
	pr repository.CalendarPostRepository
	cr repository.CalendarRepository
	al repository.AuditLogRepository
}

func NewQueue(
	pr repository.CalendarPostRepository,
	cr repository.CalendarRepository,
	al repository.AuditLogRepository) *Queue {
	return &Queue{
		pr: pr,
		cr: cr,
		al: al,
	}
}

const TaskTypePostDue = "calendar:post_due"

type PostDuePayload struct {
	PostID        string    `json:"post_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
}
