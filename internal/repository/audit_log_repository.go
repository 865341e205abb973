package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

// AuditLogRepository is append-only.
type AuditLogRepository interface {
	Create(ctx context.Context, l *models.AuditLog) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]*models.AuditLog, error)
}

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, l *models.AuditLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	details := l.Details
	if details == nil {
		details = map[string]any{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_logs (id, user_id, action, details)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, l.ID, l.UserID, l.Action, payload).Scan(&l.CreatedAt); err != nil {
		zap.L().Error("create audit log", zap.String("action", l.Action), zap.Error(err))
		return err
	}
	return nil
}

func (r *auditLogRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*models.AuditLog, error) {
	query := `SELECT id, user_id, action, details, created_at FROM audit_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("list audit logs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		var details []byte
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &details, &l.CreatedAt); err != nil {
			zap.L().Error("scan audit log", zap.Error(err))
			return nil, err
		}
		if err := json.Unmarshal(details, &l.Details); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
