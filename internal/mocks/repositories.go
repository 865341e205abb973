package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/marketing-planner/internal/models"
)

// CallLog records repository calls across mocks so tests can assert order.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *CallLog) record(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *CallLog) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// Failures maps a method name to the error the mock should return.
type Failures map[string]error

func (f Failures) get(method string) error {
	if f == nil {
		return nil
	}
	return f[method]
}

// MockStrategyRepository is an in-memory StrategyRepository.
type MockStrategyRepository struct {
	mu         sync.Mutex
	Strategies map[string]*models.Strategy
	Errors     Failures
	Log        *CallLog
}

func NewMockStrategyRepository(log *CallLog) *MockStrategyRepository {
	return &MockStrategyRepository{Strategies: map[string]*models.Strategy{}, Errors: Failures{}, Log: log}
}

func (m *MockStrategyRepository) GetByID(ctx context.Context, id string) (*models.Strategy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("GetByID"); err != nil {
		return nil, err
	}
	s, ok := m.Strategies[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *MockStrategyRepository) Create(ctx context.Context, s *models.Strategy) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Create"); err != nil {
		return "", err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	m.Strategies[s.ID] = &cp
	return s.ID, nil
}

func (m *MockStrategyRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Strategy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Strategy
	for _, s := range m.Strategies {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockStrategyRepository) Update(ctx context.Context, s *models.Strategy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Update"); err != nil {
		return err
	}
	cp := *s
	m.Strategies[s.ID] = &cp
	return nil
}

func (m *MockStrategyRepository) Remove(ctx context.Context, id string) error {
	m.Log.record("strategy.Remove %s", id)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Remove"); err != nil {
		return err
	}
	delete(m.Strategies, id)
	return nil
}

// MockContentOutlineRepository is an in-memory ContentOutlineRepository.
type MockContentOutlineRepository struct {
	mu       sync.Mutex
	Outlines map[string]*models.ContentOutline
	Errors   Failures
	Log      *CallLog
	seq      int
}

func NewMockContentOutlineRepository(log *CallLog) *MockContentOutlineRepository {
	return &MockContentOutlineRepository{Outlines: map[string]*models.ContentOutline{}, Errors: Failures{}, Log: log}
}

func (m *MockContentOutlineRepository) GetByID(ctx context.Context, id string) (*models.ContentOutline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.Outlines[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *MockContentOutlineRepository) Create(ctx context.Context, o *models.ContentOutline) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Create"); err != nil {
		return "", err
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	// a strictly increasing clock keeps "latest" deterministic
	m.seq++
	o.CreatedAt = time.Unix(int64(m.seq), 0)
	o.UpdatedAt = o.CreatedAt
	cp := *o
	m.Outlines[o.ID] = &cp
	return o.ID, nil
}

func (m *MockContentOutlineRepository) GetLatestByStrategyID(ctx context.Context, strategyID string) (*models.ContentOutline, error) {
	list, _ := m.ListByStrategyID(ctx, strategyID)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (m *MockContentOutlineRepository) ListByStrategyID(ctx context.Context, strategyID string) ([]*models.ContentOutline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("ListByStrategyID"); err != nil {
		return nil, err
	}
	var out []*models.ContentOutline
	for _, o := range m.Outlines {
		if o.StrategyID == strategyID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockContentOutlineRepository) Remove(ctx context.Context, id string) error {
	m.Log.record("outline.Remove %s", id)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Remove"); err != nil {
		return err
	}
	delete(m.Outlines, id)
	return nil
}

// MockCalendarRepository is an in-memory CalendarRepository.
type MockCalendarRepository struct {
	mu        sync.Mutex
	Calendars map[string]*models.Calendar
	Errors    Failures
	Log       *CallLog
	seq       int
}

func NewMockCalendarRepository(log *CallLog) *MockCalendarRepository {
	return &MockCalendarRepository{Calendars: map[string]*models.Calendar{}, Errors: Failures{}, Log: log}
}

func (m *MockCalendarRepository) GetByID(ctx context.Context, id string) (*models.Calendar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Calendars[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *MockCalendarRepository) Create(ctx context.Context, c *models.Calendar) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Create"); err != nil {
		return "", err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.CalendarStatusActive
	}
	m.seq++
	c.CreatedAt = time.Unix(int64(m.seq), 0)
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.Calendars[c.ID] = &cp
	return c.ID, nil
}

func (m *MockCalendarRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Calendar, error) {
	return m.filter(func(c *models.Calendar) bool { return c.UserID == userID }), nil
}

func (m *MockCalendarRepository) ListByStrategyID(ctx context.Context, strategyID string) ([]*models.Calendar, error) {
	if err := m.Errors.get("ListByStrategyID"); err != nil {
		return nil, err
	}
	list := m.filter(func(c *models.Calendar) bool { return c.StrategyID == strategyID })
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (m *MockCalendarRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for _, c := range m.filter(func(*models.Calendar) bool { return true }) {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockCalendarRepository) filter(keep func(*models.Calendar) bool) []*models.Calendar {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Calendar
	for _, c := range m.Calendars {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *MockCalendarRepository) UpdateStats(ctx context.Context, id string, stats models.CalendarStats) error {
	m.Log.record("calendar.UpdateStats %s", id)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("UpdateStats"); err != nil {
		return err
	}
	c, ok := m.Calendars[id]
	if !ok {
		return nil
	}
	c.PostsScheduled = stats.PostsScheduled
	c.PostsPublished = stats.PostsPublished
	c.Progress = stats.Progress
	c.Status = stats.Status
	return nil
}

func (m *MockCalendarRepository) Remove(ctx context.Context, id string) error {
	m.Log.record("calendar.Remove %s", id)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Remove"); err != nil {
		return err
	}
	delete(m.Calendars, id)
	return nil
}

// MockCalendarPostRepository is an in-memory CalendarPostRepository.
type MockCalendarPostRepository struct {
	mu     sync.Mutex
	Posts  map[string]*models.CalendarPost
	Errors Failures
	Log    *CallLog
}

func NewMockCalendarPostRepository(log *CallLog) *MockCalendarPostRepository {
	return &MockCalendarPostRepository{Posts: map[string]*models.CalendarPost{}, Errors: Failures{}, Log: log}
}

func (m *MockCalendarPostRepository) GetByID(ctx context.Context, id string) (*models.CalendarPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *MockCalendarPostRepository) Create(ctx context.Context, p *models.CalendarPost) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Create"); err != nil {
		return "", err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.PostStatusDraft
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.Posts[p.ID] = &cp
	return p.ID, nil
}

func (m *MockCalendarPostRepository) ListByCalendarID(ctx context.Context, calendarID string) ([]*models.CalendarPost, error) {
	return m.filter(func(p *models.CalendarPost) bool { return p.CalendarID == calendarID }), nil
}

func (m *MockCalendarPostRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.CalendarPost, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return m.filter(func(p *models.CalendarPost) bool { return want[p.ID] }), nil
}

func (m *MockCalendarPostRepository) filter(keep func(*models.CalendarPost) bool) []*models.CalendarPost {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.CalendarPost
	for _, p := range m.Posts {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})
	return out
}

func (m *MockCalendarPostRepository) UpdateStatus(ctx context.Context, ids []string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("UpdateStatus"); err != nil {
		return err
	}
	for _, id := range ids {
		if p, ok := m.Posts[id]; ok {
			p.Status = status
		}
	}
	return nil
}

func (m *MockCalendarPostRepository) UpdateScheduledDate(ctx context.Context, id string, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("UpdateScheduledDate"); err != nil {
		return err
	}
	if p, ok := m.Posts[id]; ok {
		p.ScheduledDate = date
	}
	return nil
}

func (m *MockCalendarPostRepository) UpdateEngagement(ctx context.Context, id string, e models.Engagement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("UpdateEngagement"); err != nil {
		return err
	}
	if p, ok := m.Posts[id]; ok {
		p.Engagement = e
	}
	return nil
}

func (m *MockCalendarPostRepository) Remove(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Remove"); err != nil {
		return err
	}
	for _, id := range ids {
		delete(m.Posts, id)
	}
	return nil
}

func (m *MockCalendarPostRepository) RemoveByCalendarID(ctx context.Context, calendarID string) error {
	m.Log.record("posts.RemoveByCalendarID %s", calendarID)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("RemoveByCalendarID"); err != nil {
		return err
	}
	for id, p := range m.Posts {
		if p.CalendarID == calendarID {
			delete(m.Posts, id)
		}
	}
	return nil
}

// MockAuditLogRepository keeps entries in insertion order.
type MockAuditLogRepository struct {
	mu      sync.Mutex
	Entries []*models.AuditLog
	Errors  Failures
}

func NewMockAuditLogRepository() *MockAuditLogRepository {
	return &MockAuditLogRepository{Errors: Failures{}}
}

func (m *MockAuditLogRepository) Create(ctx context.Context, l *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errors.get("Create"); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now()
	m.Entries = append(m.Entries, l)
	return nil
}

func (m *MockAuditLogRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.AuditLog
	for i := len(m.Entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.Entries[i].UserID == userID {
			out = append(out, m.Entries[i])
		}
	}
	return out, nil
}

func (m *MockAuditLogRepository) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.Entries {
		out = append(out, e.Action)
	}
	return out
}

// MockSettingsRepository is an in-memory SettingsRepository.
type MockSettingsRepository struct {
	mu       sync.Mutex
	Settings map[string]*models.Settings
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{Settings: map[string]*models.Settings{}}
}

func (m *MockSettingsRepository) GetByUserID(ctx context.Context, userID string) (*models.Settings, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Settings[userID]
	if !ok {
		return nil, false, nil
	}
	cp := *s
	return &cp, true, nil
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, s *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	cp := *s
	m.Settings[s.UserID] = &cp
	return nil
}

// MockApiKeyRepository is an in-memory ApiKeyRepository.
type MockApiKeyRepository struct {
	mu   sync.Mutex
	Keys map[string]*models.ApiKey
}

func NewMockApiKeyRepository() *MockApiKeyRepository {
	return &MockApiKeyRepository{Keys: map[string]*models.ApiKey{}}
}

func (m *MockApiKeyRepository) GetByKey(ctx context.Context, apiKey string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range m.Keys {
		if k.ApiKey == apiKey {
			return k.UserID, true, nil
		}
	}
	return "", false, nil
}

func (m *MockApiKeyRepository) GetByUserID(ctx context.Context, userID string) ([]*models.ApiKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ApiKey
	for _, k := range m.Keys {
		if k.UserID == userID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m *MockApiKeyRepository) Create(ctx context.Context, apiKey *models.ApiKey) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if apiKey.ID == "" {
		apiKey.ID = uuid.NewString()
	}
	m.Keys[apiKey.ID] = apiKey
	return apiKey.ID, nil
}

func (m *MockApiKeyRepository) CheckByUserID(ctx context.Context, keyID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.Keys[keyID]
	return ok && k.UserID == userID, nil
}

func (m *MockApiKeyRepository) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Keys, id)
	return nil
}

// MockUserRepository is an in-memory UserRepository.
type MockUserRepository struct {
	mu    sync.Mutex
	Users map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: map[string]*models.User{}}
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	return u, ok, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return nil, false, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	m.Users[user.ID] = user
	return user.ID, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.ID] = user
	return nil
}

// MockMediaAssetRepository is an in-memory MediaAssetRepository.
type MockMediaAssetRepository struct {
	mu     sync.Mutex
	Assets map[string]*models.MediaAsset
}

func NewMockMediaAssetRepository() *MockMediaAssetRepository {
	return &MockMediaAssetRepository{Assets: map[string]*models.MediaAsset{}}
}

func (m *MockMediaAssetRepository) Create(ctx context.Context, ma *models.MediaAsset) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ma.ID == "" {
		ma.ID = uuid.NewString()
	}
	m.Assets[ma.ID] = ma
	return ma.ID, nil
}

func (m *MockMediaAssetRepository) GetByID(ctx context.Context, id string) (*models.MediaAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Assets[id], nil
}

func (m *MockMediaAssetRepository) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Assets, id)
	return nil
}

// MockPostMediaRepository is an in-memory PostMediaRepository.
type MockPostMediaRepository struct {
	mu    sync.Mutex
	Links []*models.PostMedia
}

func NewMockPostMediaRepository() *MockPostMediaRepository {
	return &MockPostMediaRepository{}
}

func (m *MockPostMediaRepository) Create(ctx context.Context, pm *models.PostMedia) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Links = append(m.Links, pm)
	return nil
}

func (m *MockPostMediaRepository) ListByPostID(ctx context.Context, postID string) ([]*models.PostMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.PostMedia
	for _, l := range m.Links {
		if l.PostID == postID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (m *MockPostMediaRepository) RemoveByPostID(ctx context.Context, postID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Links[:0]
	for _, l := range m.Links {
		if l.PostID != postID {
			kept = append(kept, l)
		}
	}
	m.Links = kept
	return nil
}
