package service

import (
	"context"
	"testing"
	"time"

	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/stretchr/testify/require"
)

const owner = "user-1"

type fixture struct {
	log       *mocks.CallLog
	gw        *mocks.MockGateway
	strategy  *mocks.MockStrategyRepository
	outlines  *mocks.MockContentOutlineRepository
	calendars *mocks.MockCalendarRepository
	posts     *mocks.MockCalendarPostRepository
	settings  *mocks.MockSettingsRepository
	audit     *mocks.MockAuditLogRepository
	queue     *mocks.MockEnqueuer
	planner   *planner.Planner
}

func newFixture(responses ...mocks.Response) *fixture {
	log := &mocks.CallLog{}
	gw := mocks.NewMockGateway(responses...)
	return &fixture{
		log:       log,
		gw:        gw,
		strategy:  mocks.NewMockStrategyRepository(log),
		outlines:  mocks.NewMockContentOutlineRepository(log),
		calendars: mocks.NewMockCalendarRepository(log),
		posts:     mocks.NewMockCalendarPostRepository(log),
		settings:  mocks.NewMockSettingsRepository(),
		audit:     mocks.NewMockAuditLogRepository(),
		queue:     &mocks.MockEnqueuer{},
		planner:   planner.New(gw, planner.WithRetryDelay(0)),
	}
}

func (f *fixture) strategies() StrategyService {
	return NewStrategyService(f.planner, f.strategy, f.outlines, f.calendars, f.posts, f.audit)
}

func (f *fixture) outlineService() OutlineService {
	return NewOutlineService(f.planner, f.strategy, f.outlines, f.audit)
}

func (f *fixture) calendarService() CalendarService {
	return NewCalendarService(f.planner, f.strategy, f.outlines, f.calendars, f.posts, f.settings, f.audit, f.queue)
}

func sampleStrategy() *models.Strategy {
	return &models.Strategy{
		Name:                "Yoga studio",
		BusinessDescription: "Neighbourhood yoga studio",
		TargetAudience:      []string{"Busy parents", "Remote workers", "Students"},
		Objectives:          []string{"Book a trial class", "Share a desk stretch", "Bring a friend"},
		KeyMessages:         []string{"Save time", "Feel good", "Learn together"},
	}
}

func (f *fixture) seedStrategy(t *testing.T, id string) *models.Strategy {
	t.Helper()
	st := sampleStrategy()
	st.ID = id
	st.UserID = owner
	_, err := f.strategy.Create(context.Background(), st)
	require.NoError(t, err)
	return st
}

func (f *fixture) seedCalendar(t *testing.T, id, strategyID string, posts ...*models.CalendarPost) {
	t.Helper()
	ctx := context.Background()
	_, err := f.calendars.Create(ctx, &models.Calendar{ID: id, UserID: owner, StrategyID: strategyID, Name: id})
	require.NoError(t, err)
	for _, p := range posts {
		p.CalendarID = id
		_, err := f.posts.Create(ctx, p)
		require.NoError(t, err)
	}
}

func samplePosts(prefix string, statuses ...string) []*models.CalendarPost {
	var posts []*models.CalendarPost
	day := time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)
	for i, s := range statuses {
		posts = append(posts, &models.CalendarPost{
			ID:            prefix + "-" + string(rune('a'+i)),
			Title:         "post",
			Channel:       "instagram",
			ScheduledDate: day.AddDate(0, 0, i*5),
			Status:        s,
		})
	}
	return posts
}

func sampleWeeks() []models.Week {
	return []models.Week{
		{Week: 1, Theme: "Meet the studio", Posts: []models.PostPlan{
			{Type: "reel", Topic: "Studio tour", Audience: "Busy parents", ProposedCaption: "Come in"},
			{Type: "carousel", Topic: "Class types", Audience: "Remote workers"},
			{Type: "story", Topic: "Teacher intro", Audience: "Students"},
		}},
		{Week: 2, Theme: "Desk stretches", Posts: []models.PostPlan{
			{Type: "reel", Topic: "Neck stretch", Audience: "Remote workers"},
			{Type: "reel", Topic: "Wrist care", Audience: "Remote workers"},
			{Type: "story", Topic: "Poll", Audience: "Students"},
		}},
	}
}
