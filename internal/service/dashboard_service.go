package service

import (
	"context"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/repository"
)

const recentActivityLimit = 10

type CalendarProgress struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Progress       int    `json:"progress"`
	PostsScheduled int    `json:"posts_scheduled"`
	PostsPublished int    `json:"posts_published"`
	Status         string `json:"status"`
}

type Dashboard struct {
	Strategies     int                `json:"strategies"`
	Calendars      int                `json:"calendars"`
	PostsScheduled int                `json:"posts_scheduled"`
	PostsPublished int                `json:"posts_published"`
	Progress       int                `json:"progress"`
	CalendarStats  []CalendarProgress `json:"calendar_stats"`
	RecentActivity []*models.AuditLog `json:"recent_activity"`
}

type DashboardService interface {
	Get(ctx context.Context, userID string) (*Dashboard, error)
}

type dashboardService struct {
	sr repository.StrategyRepository
	cr repository.CalendarRepository
	al repository.AuditLogRepository
}

func NewDashboardService(
	sr repository.StrategyRepository,
	cr repository.CalendarRepository,
	al repository.AuditLogRepository) DashboardService {
	return &dashboardService{
		sr: sr,
		cr: cr,
		al: al,
	}
}

func (s *dashboardService) Get(ctx context.Context, userID string) (*Dashboard, error) {
	strategies, err := s.sr.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	calendars, err := s.cr.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Strategies:    len(strategies),
		Calendars:     len(calendars),
		CalendarStats: []CalendarProgress{},
	}
	for _, c := range calendars {
		d.PostsScheduled += c.PostsScheduled
		d.PostsPublished += c.PostsPublished
		d.CalendarStats = append(d.CalendarStats, CalendarProgress{
			ID:             c.ID,
			Name:           c.Name,
			Progress:       c.Progress,
			PostsScheduled: c.PostsScheduled,
			PostsPublished: c.PostsPublished,
			Status:         c.Status,
		})
	}
	d.Progress = models.Progress(d.PostsPublished, d.PostsScheduled)

	recordAudit(ctx, s.al, userID, models.AuditViewDashboard, map[string]any{
		"calendars": d.Calendars,
	})

	recent, err := s.al.ListByUserID(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	d.RecentActivity = recent
	return d, nil
}
