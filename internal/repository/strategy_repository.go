package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

type StrategyRepository interface {
	GetByID(ctx context.Context, id string) (*models.Strategy, error)
	Create(ctx context.Context, s *models.Strategy) (string, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Strategy, error)
	Update(ctx context.Context, s *models.Strategy) error
	Remove(ctx context.Context, id string) error
}

type strategyRepository struct {
	db *sql.DB
}

func NewStrategyRepository(db *sql.DB) StrategyRepository {
	return &strategyRepository{db: db}
}

const strategyColumns = `id, user_id, name, business_description, target_audience, objectives, key_messages, enhanced_strategy, created_at, updated_at`

func (r *strategyRepository) Create(ctx context.Context, s *models.Strategy) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	enhanced, err := marshalNullable(s.Enhanced)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO strategies (id, user_id, name, business_description, target_audience, objectives, key_messages, enhanced_strategy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		s.ID, s.UserID, s.Name, s.BusinessDescription,
		pq.Array(s.TargetAudience), pq.Array(s.Objectives), pq.Array(s.KeyMessages), enhanced,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		zap.L().Error("create strategy", zap.Error(err))
		return "", err
	}
	return s.ID, nil
}

func (r *strategyRepository) GetByID(ctx context.Context, id string) (*models.Strategy, error) {
	query := `SELECT ` + strategyColumns + ` FROM strategies WHERE id = $1`
	s, err := scanStrategy(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("get strategy", zap.String("strategy_id", id), zap.Error(err))
		return nil, err
	}
	return s, nil
}

func (r *strategyRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Strategy, error) {
	query := `SELECT ` + strategyColumns + ` FROM strategies WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		zap.L().Error("list strategies", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var strategies []*models.Strategy
	for rows.Next() {
		s, err := scanStrategy(rows)
		if err != nil {
			zap.L().Error("scan strategy", zap.Error(err))
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, rows.Err()
}

// Update replaces every editable field of the strategy.
func (r *strategyRepository) Update(ctx context.Context, s *models.Strategy) error {
	enhanced, err := marshalNullable(s.Enhanced)
	if err != nil {
		return err
	}

	query := `
		UPDATE strategies
		SET name = $1,
			business_description = $2,
			target_audience = $3,
			objectives = $4,
			key_messages = $5,
			enhanced_strategy = $6,
			updated_at = $7
		WHERE id = $8
	`
	s.UpdatedAt = time.Now()
	_, err = r.db.ExecContext(ctx, query,
		s.Name, s.BusinessDescription,
		pq.Array(s.TargetAudience), pq.Array(s.Objectives), pq.Array(s.KeyMessages),
		enhanced, s.UpdatedAt, s.ID,
	)
	if err != nil {
		zap.L().Error("update strategy", zap.String("strategy_id", s.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *strategyRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM strategies WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("remove strategy", zap.String("strategy_id", id), zap.Error(err))
		return err
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStrategy(row scanner) (*models.Strategy, error) {
	var s models.Strategy
	var enhanced []byte
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.BusinessDescription,
		pq.Array(&s.TargetAudience), pq.Array(&s.Objectives), pq.Array(&s.KeyMessages),
		&enhanced, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(enhanced) > 0 {
		var e models.EnhancedStrategy
		if err := json.Unmarshal(enhanced, &e); err != nil {
			return nil, err
		}
		s.Enhanced = &e
	}
	return &s, nil
}

// marshalNullable encodes v as JSON, or SQL NULL when v is a nil pointer.
func marshalNullable(v *models.EnhancedStrategy) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
