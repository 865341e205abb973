package service

import (
	"context"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/repository"
	"go.uber.org/zap"
)

// recordAudit appends an audit entry. A failed insert is logged and never
// fails the action being audited.
func recordAudit(ctx context.Context, al repository.AuditLogRepository, userID, action string, details map[string]any) {
	err := al.Create(ctx, &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		zap.L().Warn("unable to write audit log",
			zap.String("user_id", userID),
			zap.String("action", action),
			zap.Error(err))
	}
}
