package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

type CalendarPostRepository interface {
	GetByID(ctx context.Context, id string) (*models.CalendarPost, error)
	Create(ctx context.Context, p *models.CalendarPost) (string, error)
	ListByCalendarID(ctx context.Context, calendarID string) ([]*models.CalendarPost, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.CalendarPost, error)
	UpdateStatus(ctx context.Context, ids []string, status string) error
	UpdateScheduledDate(ctx context.Context, id string, date time.Time) error
	UpdateEngagement(ctx context.Context, id string, e models.Engagement) error
	Remove(ctx context.Context, ids []string) error
	RemoveByCalendarID(ctx context.Context, calendarID string) error
}

type calendarPostRepository struct {
	db *sql.DB
}

func NewCalendarPostRepository(db *sql.DB) CalendarPostRepository {
	return &calendarPostRepository{db: db}
}

const calendarPostColumns = `id, calendar_id, title, content, post_type, channel, target_audience, scheduled_date, status,
	likes, comments, shares, saves, clicks, created_at, updated_at`

func (r *calendarPostRepository) Create(ctx context.Context, p *models.CalendarPost) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.PostStatusDraft
	}

	query := `
		INSERT INTO calendar_posts (id, calendar_id, title, content, post_type, channel, target_audience, scheduled_date, status,
			likes, comments, shares, saves, clicks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`
	e := p.Engagement
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.CalendarID, p.Title, p.Content, p.PostType, p.Channel, p.TargetAudience, p.ScheduledDate, p.Status,
		e.Likes, e.Comments, e.Shares, e.Saves, e.Clicks,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		zap.L().Error("create calendar post", zap.String("calendar_id", p.CalendarID), zap.Error(err))
		return "", err
	}
	return p.ID, nil
}

func (r *calendarPostRepository) GetByID(ctx context.Context, id string) (*models.CalendarPost, error) {
	query := `SELECT ` + calendarPostColumns + ` FROM calendar_posts WHERE id = $1`
	p, err := scanCalendarPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("get calendar post", zap.String("post_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *calendarPostRepository) ListByCalendarID(ctx context.Context, calendarID string) ([]*models.CalendarPost, error) {
	query := `SELECT ` + calendarPostColumns + ` FROM calendar_posts WHERE calendar_id = $1 ORDER BY scheduled_date`
	return r.list(ctx, query, calendarID)
}

func (r *calendarPostRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.CalendarPost, error) {
	query := `SELECT ` + calendarPostColumns + ` FROM calendar_posts WHERE id = ANY($1) ORDER BY scheduled_date`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *calendarPostRepository) list(ctx context.Context, query string, arg any) ([]*models.CalendarPost, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		zap.L().Error("list calendar posts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var posts []*models.CalendarPost
	for rows.Next() {
		p, err := scanCalendarPost(rows)
		if err != nil {
			zap.L().Error("scan calendar post", zap.Error(err))
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// UpdateStatus sets the status of every listed post in one statement.
func (r *calendarPostRepository) UpdateStatus(ctx context.Context, ids []string, status string) error {
	query := `UPDATE calendar_posts SET status = $1, updated_at = $2 WHERE id = ANY($3)`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), pq.Array(ids))
	if err != nil {
		zap.L().Error("update calendar post status", zap.Strings("post_ids", ids), zap.Error(err))
		return err
	}
	return nil
}

func (r *calendarPostRepository) UpdateScheduledDate(ctx context.Context, id string, date time.Time) error {
	query := `UPDATE calendar_posts SET scheduled_date = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, date, time.Now(), id)
	if err != nil {
		zap.L().Error("update calendar post date", zap.String("post_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *calendarPostRepository) UpdateEngagement(ctx context.Context, id string, e models.Engagement) error {
	query := `
		UPDATE calendar_posts
		SET likes = $1,
			comments = $2,
			shares = $3,
			saves = $4,
			clicks = $5,
			updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query, e.Likes, e.Comments, e.Shares, e.Saves, e.Clicks, time.Now(), id)
	if err != nil {
		zap.L().Error("update engagement", zap.String("post_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *calendarPostRepository) Remove(ctx context.Context, ids []string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calendar_posts WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		zap.L().Error("remove calendar posts", zap.Strings("post_ids", ids), zap.Error(err))
		return err
	}
	return nil
}

func (r *calendarPostRepository) RemoveByCalendarID(ctx context.Context, calendarID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calendar_posts WHERE calendar_id = $1`, calendarID)
	if err != nil {
		zap.L().Error("remove calendar posts", zap.String("calendar_id", calendarID), zap.Error(err))
		return err
	}
	return nil
}

func scanCalendarPost(row scanner) (*models.CalendarPost, error) {
	var p models.CalendarPost
	e := &p.Engagement
	err := row.Scan(&p.ID, &p.CalendarID, &p.Title, &p.Content, &p.PostType, &p.Channel, &p.TargetAudience,
		&p.ScheduledDate, &p.Status, &e.Likes, &e.Comments, &e.Shares, &e.Saves, &e.Clicks, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
