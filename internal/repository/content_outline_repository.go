package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

type ContentOutlineRepository interface {
	GetByID(ctx context.Context, id string) (*models.ContentOutline, error)
	Create(ctx context.Context, o *models.ContentOutline) (string, error)
	GetLatestByStrategyID(ctx context.Context, strategyID string) (*models.ContentOutline, error)
	ListByStrategyID(ctx context.Context, strategyID string) ([]*models.ContentOutline, error)
	Remove(ctx context.Context, id string) error
}

type contentOutlineRepository struct {
	db *sql.DB
}

func NewContentOutlineRepository(db *sql.DB) ContentOutlineRepository {
	return &contentOutlineRepository{db: db}
}

const outlineColumns = `id, user_id, strategy_id, outline, created_at, updated_at`

func (r *contentOutlineRepository) Create(ctx context.Context, o *models.ContentOutline) (string, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	weeks, err := json.Marshal(o.Outline)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO content_outlines (id, user_id, strategy_id, outline)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query, o.ID, o.UserID, o.StrategyID, weeks).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		zap.L().Error("create outline", zap.String("strategy_id", o.StrategyID), zap.Error(err))
		return "", err
	}
	return o.ID, nil
}

func (r *contentOutlineRepository) GetByID(ctx context.Context, id string) (*models.ContentOutline, error) {
	query := `SELECT ` + outlineColumns + ` FROM content_outlines WHERE id = $1`
	o, err := scanOutline(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("get outline", zap.String("outline_id", id), zap.Error(err))
		return nil, err
	}
	return o, nil
}

// GetLatestByStrategyID returns the current outline, the most recently
// created one.
func (r *contentOutlineRepository) GetLatestByStrategyID(ctx context.Context, strategyID string) (*models.ContentOutline, error) {
	query := `SELECT ` + outlineColumns + ` FROM content_outlines WHERE strategy_id = $1 ORDER BY created_at DESC LIMIT 1`
	o, err := scanOutline(r.db.QueryRowContext(ctx, query, strategyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("get latest outline", zap.String("strategy_id", strategyID), zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (r *contentOutlineRepository) ListByStrategyID(ctx context.Context, strategyID string) ([]*models.ContentOutline, error) {
	query := `SELECT ` + outlineColumns + ` FROM content_outlines WHERE strategy_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, strategyID)
	if err != nil {
		zap.L().Error("list outlines", zap.String("strategy_id", strategyID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var outlines []*models.ContentOutline
	for rows.Next() {
		o, err := scanOutline(rows)
		if err != nil {
			zap.L().Error("scan outline", zap.Error(err))
			return nil, err
		}
		outlines = append(outlines, o)
	}
	return outlines, rows.Err()
}

func (r *contentOutlineRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM content_outlines WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("remove outline", zap.String("outline_id", id), zap.Error(err))
		return err
	}
	return nil
}

func scanOutline(row scanner) (*models.ContentOutline, error) {
	var o models.ContentOutline
	var weeks []byte
	if err := row.Scan(&o.ID, &o.UserID, &o.StrategyID, &weeks, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(weeks, &o.Outline); err != nil {
		return nil, err
	}
	return &o, nil
}
