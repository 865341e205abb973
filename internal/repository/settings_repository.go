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

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Settings, bool, error)
	Upsert(ctx context.Context, s *models.Settings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID string) (*models.Settings, bool, error) {
	query := `SELECT id, user_id, frequency, channels, posting_time, created_at, updated_at FROM settings WHERE user_id = $1`
	row := r.db.QueryRowContext(ctx, query, userID)

	var s models.Settings
	err := row.Scan(&s.ID, &s.UserID, &s.Frequency, pq.Array(&s.Channels), &s.PostingTime, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		zap.L().Error("get settings", zap.String("user_id", userID), zap.Error(err))
		return nil, false, err
	}

	return &s, true, nil
}

// Upsert keeps one settings row per user.
func (r *settingsRepository) Upsert(ctx context.Context, s *models.Settings) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query := `
		INSERT INTO settings (id, user_id, frequency, channels, posting_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET frequency = EXCLUDED.frequency,
			channels = EXCLUDED.channels,
			posting_time = EXCLUDED.posting_time,
			updated_at = $6
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, s.ID, s.UserID, s.Frequency, pq.Array(s.Channels), s.PostingTime, time.Now()).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		zap.L().Error("upsert settings", zap.String("user_id", s.UserID), zap.Error(err))
		return err
	}

	return nil
}
