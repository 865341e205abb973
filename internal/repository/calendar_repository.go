package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

type CalendarRepository interface {
	GetByID(ctx context.Context, id string) (*models.Calendar, error)
	Create(ctx context.Context, c *models.Calendar) (string, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Calendar, error)
	ListByStrategyID(ctx context.Context, strategyID string) ([]*models.Calendar, error)
	ListIDs(ctx context.Context) ([]string, error)
	UpdateStats(ctx context.Context, id string, stats models.CalendarStats) error
	Remove(ctx context.Context, id string) error
}

type calendarRepository struct {
	db *sql.DB
}

func NewCalendarRepository(db *sql.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

const calendarColumns = `id, user_id, strategy_id, name, progress, posts_scheduled, posts_published, status, created_at, updated_at`

func (r *calendarRepository) Create(ctx context.Context, c *models.Calendar) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.CalendarStatusActive
	}

	query := `
		INSERT INTO calendars (id, user_id, strategy_id, name, progress, posts_scheduled, posts_published, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.StrategyID, c.Name, c.Progress, c.PostsScheduled, c.PostsPublished, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		zap.L().Error("create calendar", zap.Error(err))
		return "", err
	}
	return c.ID, nil
}

func (r *calendarRepository) GetByID(ctx context.Context, id string) (*models.Calendar, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendars WHERE id = $1`
	c, err := scanCalendar(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("get calendar", zap.String("calendar_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (r *calendarRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Calendar, error) {
	return r.list(ctx, `SELECT `+calendarColumns+` FROM calendars WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *calendarRepository) ListByStrategyID(ctx context.Context, strategyID string) ([]*models.Calendar, error) {
	return r.list(ctx, `SELECT `+calendarColumns+` FROM calendars WHERE strategy_id = $1 ORDER BY created_at`, strategyID)
}

func (r *calendarRepository) list(ctx context.Context, query string, arg string) ([]*models.Calendar, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		zap.L().Error("list calendars", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var calendars []*models.Calendar
	for rows.Next() {
		c, err := scanCalendar(rows)
		if err != nil {
			zap.L().Error("scan calendar", zap.Error(err))
			return nil, err
		}
		calendars = append(calendars, c)
	}
	return calendars, rows.Err()
}

func (r *calendarRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM calendars`)
	if err != nil {
		zap.L().Error("list calendar ids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *calendarRepository) UpdateStats(ctx context.Context, id string, stats models.CalendarStats) error {
	query := `
		UPDATE calendars
		SET posts_scheduled = $1,
			posts_published = $2,
			progress = $3,
			status = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query, stats.PostsScheduled, stats.PostsPublished, stats.Progress, stats.Status, time.Now(), id)
	if err != nil {
		zap.L().Error("update calendar stats", zap.String("calendar_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *calendarRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calendars WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("remove calendar", zap.String("calendar_id", id), zap.Error(err))
		return err
	}
	return nil
}

func scanCalendar(row scanner) (*models.Calendar, error) {
	var c models.Calendar
	err := row.Scan(&c.ID, &c.UserID, &c.StrategyID, &c.Name, &c.Progress,
		&c.PostsScheduled, &c.PostsPublished, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
