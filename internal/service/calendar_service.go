package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/maheshrc27/marketing-planner/internal/queue"
	"github.com/maheshrc27/marketing-planner/internal/repository"
	"go.uber.org/zap"
)

type CalendarRequest struct {
	StrategyID string
	OutlineID  string
	Name       string
	Start      time.Time
	// Prefs overrides the user's saved scheduling settings when set.
	Prefs *planner.Preferences
}

type CalendarDetail struct {
	Calendar *models.Calendar      `json:"calendar"`
	Posts    []*models.CalendarPost `json:"posts"`
	Source   string                `json:"source,omitempty"`
	HTML     string                `json:"html,omitempty"`
}

type EngagementSummary struct {
	CalendarID string                       `json:"calendar_id"`
	Totals     models.Engagement            `json:"totals"`
	ByChannel  map[string]models.Engagement `json:"by_channel"`
	Posts      int                          `json:"posts"`
}

type CalendarService interface {
	Create(ctx context.Context, caller planner.Caller, req CalendarRequest) (*CalendarDetail, error)
	List(ctx context.Context, userID string) ([]*models.Calendar, error)
	Get(ctx context.Context, userID, id string) (*CalendarDetail, error)
	Remove(ctx context.Context, userID, id string) error
	AddPost(ctx context.Context, userID, calendarID string, post *models.CalendarPost) (*models.CalendarPost, error)
	UpdateStatus(ctx context.Context, userID, postID, status string) error
	BulkUpdateStatus(ctx context.Context, userID string, postIDs []string, status string) error
	BulkRemove(ctx context.Context, userID string, postIDs []string) error
	Swap(ctx context.Context, userID, firstID, secondID string) error
	UpdateEngagement(ctx context.Context, userID, postID string, e models.Engagement) error
	Engagement(ctx context.Context, userID, calendarID string) (*EngagementSummary, error)
	RecomputeStats(ctx context.Context, calendarID string) error
}

type calendarService struct {
	p  *planner.Planner
	sr repository.StrategyRepository
	or repository.ContentOutlineRepository
	cr repository.CalendarRepository
	pr repository.CalendarPostRepository
	st repository.SettingsRepository
	al repository.AuditLogRepository
	q  queue.Enqueuer
}

func NewCalendarService(
	p *planner.Planner,
	sr repository.StrategyRepository,
	or repository.ContentOutlineRepository,
	cr repository.CalendarRepository,
	pr repository.CalendarPostRepository,
	st repository.SettingsRepository,
	al repository.AuditLogRepository,
	q queue.Enqueuer) CalendarService {
	return &calendarService{
		p:  p,
		sr: sr,
		or: or,
		cr: cr,
		pr: pr,
		st: st,
		al: al,
		q:  q,
	}
}

// Create slots an outline into a new calendar and stores one post per slot.
func (s *calendarService) Create(ctx context.Context, caller planner.Caller, req CalendarRequest) (*CalendarDetail, error) {
	strategy, err := ownedStrategy(ctx, s.sr, caller.UserID, req.StrategyID)
	if err != nil {
		return nil, err
	}
	caller.ProjectID = strategy.ID

	outline, err := s.outline(ctx, caller.UserID, strategy.ID, req.OutlineID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.preferences(ctx, caller.UserID, req.Prefs)
	if err != nil {
		return nil, err
	}

	start := req.Start
	if start.IsZero() {
		start = time.Now().UTC()
	}

	plan, err := s.p.BuildCalendar(ctx, caller, planner.CalendarInput{
		Weeks:    outline.Outline,
		Start:    start,
		Prefs:    prefs,
		Strategy: planner.MatrixOf(strategy),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("%s %s", strategy.Name, planner.GridStart(start).Format("2006-01-02"))
	}

	calendar := &models.Calendar{
		UserID:     caller.UserID,
		StrategyID: strategy.ID,
		Name:       name,
		Status:     models.CalendarStatusActive,
	}
	calendarID, err := s.cr.Create(ctx, calendar)
	if err != nil {
		return nil, fmt.Errorf("error creating calendar: %w", err)
	}

	for _, slot := range plan.Slots {
		post := &models.CalendarPost{
			CalendarID:     calendarID,
			Title:          slot.Post.Topic,
			Content:        slot.Post.ProposedCaption,
			PostType:       slot.Post.Type,
			Channel:        slot.Channel,
			TargetAudience: slot.Post.Audience,
			ScheduledDate:  slot.Date,
			Status:         models.PostStatusScheduled,
		}
		if _, err := s.pr.Create(ctx, post); err != nil {
			// rows already written stay; stats below reflect what was stored
			zap.L().Error("unable to store calendar post",
				zap.String("calendar_id", calendarID),
				zap.Int("week", slot.Week),
				zap.Error(err))
			return nil, errors.Join(fmt.Errorf("error creating calendar post: %w", err), s.RecomputeStats(ctx, calendarID))
		}
		s.remind(ctx, post)
	}

	if err := s.RecomputeStats(ctx, calendarID); err != nil {
		return nil, err
	}

	detail, err := s.detail(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	detail.Source = plan.Source
	detail.HTML = plan.HTML
	return detail, nil
}

func (s *calendarService) outline(ctx context.Context, userID, strategyID, outlineID string) (*models.ContentOutline, error) {
	var (
		o   *models.ContentOutline
		err error
	)
	if outlineID != "" {
		o, err = s.or.GetByID(ctx, outlineID)
	} else {
		o, err = s.or.GetLatestByStrategyID(ctx, strategyID)
	}
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("outline for strategy %s: %w", strategyID, ErrNotFound)
	}
	if o.UserID != userID || o.StrategyID != strategyID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *calendarService) preferences(ctx context.Context, userID string, override *planner.Preferences) (planner.Preferences, error) {
	if override != nil {
		return *override, nil
	}
	settings, _, err := s.st.GetByUserID(ctx, userID)
	if err != nil {
		return planner.Preferences{}, err
	}
	return planner.PreferencesFrom(settings), nil
}

func (s *calendarService) List(ctx context.Context, userID string) ([]*models.Calendar, error) {
	return s.cr.ListByUserID(ctx, userID)
}

func (s *calendarService) Get(ctx context.Context, userID, id string) (*CalendarDetail, error) {
	if _, err := s.ownedCalendar(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.detail(ctx, id)
}

func (s *calendarService) detail(ctx context.Context, id string) (*CalendarDetail, error) {
	calendar, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if calendar == nil {
		return nil, fmt.Errorf("calendar %s: %w", id, ErrNotFound)
	}
	posts, err := s.pr.ListByCalendarID(ctx, id)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.CalendarPost{}
	}
	return &CalendarDetail{Calendar: calendar, Posts: posts}, nil
}

func (s *calendarService) Remove(ctx context.Context, userID, id string) error {
	calendar, err := s.ownedCalendar(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.pr.RemoveByCalendarID(ctx, id); err != nil {
		return fmt.Errorf("error removing calendar posts: %w", err)
	}
	if err := s.cr.Remove(ctx, id); err != nil {
		return fmt.Errorf("error removing calendar: %w", err)
	}

	recordAudit(ctx, s.al, userID, models.AuditDeleteCalendar, map[string]any{
		"calendar_id": id,
		"strategy_id": calendar.StrategyID,
		"name":        calendar.Name,
	})
	return nil
}

func (s *calendarService) AddPost(ctx context.Context, userID, calendarID string, post *models.CalendarPost) (*models.CalendarPost, error) {
	if _, err := s.ownedCalendar(ctx, userID, calendarID); err != nil {
		return nil, err
	}
	if post == nil || strings.TrimSpace(post.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if !models.ValidPostStatus(post.Status) {
		return nil, ErrInvalidStatus
	}
	if err := post.Engagement.Validate(); err != nil {
		return nil, ErrInvalidEngagement
	}
	if post.ScheduledDate.IsZero() {
		return nil, fmt.Errorf("%w: scheduled_date is required", ErrInvalidInput)
	}

	post.ID = ""
	post.CalendarID = calendarID
	id, err := s.pr.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating calendar post: %w", err)
	}
	s.remind(ctx, post)

	if err := s.RecomputeStats(ctx, calendarID); err != nil {
		return nil, err
	}
	return s.pr.GetByID(ctx, id)
}

func (s *calendarService) UpdateStatus(ctx context.Context, userID, postID, status string) error {
	return s.BulkUpdateStatus(ctx, userID, []string{postID}, status)
}

func (s *calendarService) BulkUpdateStatus(ctx context.Context, userID string, postIDs []string, status string) error {
	if !models.ValidPostStatus(status) {
		return ErrInvalidStatus
	}
	posts, err := s.ownedPosts(ctx, userID, postIDs)
	if err != nil {
		return err
	}

	if err := s.pr.UpdateStatus(ctx, postIDs, status); err != nil {
		return fmt.Errorf("error updating post status: %w", err)
	}

	for _, p := range posts {
		if status == models.PostStatusScheduled && p.Status != models.PostStatusScheduled {
			p.Status = status
			s.remind(ctx, p)
		}
	}
	return s.recompute(ctx, posts)
}

func (s *calendarService) BulkRemove(ctx context.Context, userID string, postIDs []string) error {
	posts, err := s.ownedPosts(ctx, userID, postIDs)
	if err != nil {
		return err
	}

	if err := s.pr.Remove(ctx, postIDs); err != nil {
		return fmt.Errorf("error removing posts: %w", err)
	}

	recordAudit(ctx, s.al, userID, models.AuditDeletePosts, map[string]any{
		"post_ids": postIDs,
	})
	return s.recompute(ctx, posts)
}

// Swap exchanges the scheduled dates of two posts in the same calendar.
func (s *calendarService) Swap(ctx context.Context, userID, firstID, secondID string) error {
	if firstID == secondID {
		return fmt.Errorf("%w: cannot swap a post with itself", ErrInvalidInput)
	}
	posts, err := s.ownedPosts(ctx, userID, []string{firstID, secondID})
	if err != nil {
		return err
	}
	a, b := posts[0], posts[1]
	if a.ID != firstID {
		a, b = b, a
	}
	if a.CalendarID != b.CalendarID {
		return fmt.Errorf("%w: posts belong to different calendars", ErrInvalidInput)
	}

	if err := s.pr.UpdateScheduledDate(ctx, a.ID, b.ScheduledDate); err != nil {
		return fmt.Errorf("error moving post %s: %w", a.ID, err)
	}
	if err := s.pr.UpdateScheduledDate(ctx, b.ID, a.ScheduledDate); err != nil {
		return fmt.Errorf("error moving post %s: %w", b.ID, err)
	}

	a.ScheduledDate, b.ScheduledDate = b.ScheduledDate, a.ScheduledDate
	s.remind(ctx, a)
	s.remind(ctx, b)
	return nil
}

func (s *calendarService) UpdateEngagement(ctx context.Context, userID, postID string, e models.Engagement) error {
	if err := e.Validate(); err != nil {
		return ErrInvalidEngagement
	}
	if _, err := s.ownedPosts(ctx, userID, []string{postID}); err != nil {
		return err
	}
	if err := s.pr.UpdateEngagement(ctx, postID, e); err != nil {
		return fmt.Errorf("error updating engagement: %w", err)
	}
	return nil
}

func (s *calendarService) Engagement(ctx context.Context, userID, calendarID string) (*EngagementSummary, error) {
	if _, err := s.ownedCalendar(ctx, userID, calendarID); err != nil {
		return nil, err
	}
	posts, err := s.pr.ListByCalendarID(ctx, calendarID)
	if err != nil {
		return nil, err
	}

	summary := &EngagementSummary{
		CalendarID: calendarID,
		ByChannel:  map[string]models.Engagement{},
		Posts:      len(posts),
	}
	for _, p := range posts {
		summary.Totals = summary.Totals.Add(p.Engagement)
		summary.ByChannel[p.Channel] = summary.ByChannel[p.Channel].Add(p.Engagement)
	}
	return summary, nil
}

// RecomputeStats rewrites the derived counters of a calendar from its posts.
func (s *calendarService) RecomputeStats(ctx context.Context, calendarID string) error {
	posts, err := s.pr.ListByCalendarID(ctx, calendarID)
	if err != nil {
		return err
	}
	if err := s.cr.UpdateStats(ctx, calendarID, models.ComputeStats(posts)); err != nil {
		return fmt.Errorf("error updating calendar stats: %w", err)
	}
	return nil
}

func (s *calendarService) recompute(ctx context.Context, posts []*models.CalendarPost) error {
	seen := map[string]bool{}
	var errs []error
	for _, p := range posts {
		if seen[p.CalendarID] {
			continue
		}
		seen[p.CalendarID] = true
		if err := s.RecomputeStats(ctx, p.CalendarID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// remind enqueues a post due reminder for scheduled posts. Failures are
// logged only.
func (s *calendarService) remind(ctx context.Context, p *models.CalendarPost) {
	if s.q == nil || p.Status != models.PostStatusScheduled {
		return
	}
	err := s.q.EnqueuePostDue(ctx, queue.PostDuePayload{PostID: p.ID, ScheduledDate: p.ScheduledDate})
	if err != nil {
		zap.L().Warn("unable to enqueue post due reminder",
			zap.String("post_id", p.ID),
			zap.Error(err))
	}
}

func (s *calendarService) ownedCalendar(ctx context.Context, userID, id string) (*models.Calendar, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: calendar id is required", ErrInvalidInput)
	}
	calendar, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if calendar == nil {
		return nil, fmt.Errorf("calendar %s: %w", id, ErrNotFound)
	}
	if calendar.UserID != userID {
		return nil, ErrForbidden
	}
	return calendar, nil
}

// ownedPosts loads every post and checks that each one sits in a calendar
// owned by the user.
func (s *calendarService) ownedPosts(ctx context.Context, userID string, ids []string) ([]*models.CalendarPost, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no post ids given", ErrInvalidInput)
	}
	posts, err := s.pr.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	found := map[string]bool{}
	owners := map[string]bool{}
	for _, p := range posts {
		found[p.ID] = true
		if _, checked := owners[p.CalendarID]; checked {
			continue
		}
		calendar, err := s.cr.GetByID(ctx, p.CalendarID)
		if err != nil {
			return nil, err
		}
		owners[p.CalendarID] = calendar != nil && calendar.UserID == userID
	}

	for _, id := range ids {
		if !found[id] {
			return nil, fmt.Errorf("calendar post %s: %w", id, ErrNotFound)
		}
	}
	for _, ok := range owners {
		if !ok {
			return nil, ErrForbidden
		}
	}
	return posts, nil
}
