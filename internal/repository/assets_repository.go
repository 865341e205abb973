package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

type MediaAssetRepository interface {
	Create(ctx context.Context, ma *models.MediaAsset) (string, error)
	GetByID(ctx context.Context, id string) (*models.MediaAsset, error)
	Remove(ctx context.Context, id string) error
}

type mediaAssetRepository struct {
	db *sql.DB
}

func NewMediaAssetRepository(db *sql.DB) MediaAssetRepository {
	return &mediaAssetRepository{db: db}
}

func (r *mediaAssetRepository) Create(ctx context.Context, ma *models.MediaAsset) (string, error) {
	if ma.ID == "" {
		ma.ID = uuid.NewString()
	}
	query := `
		INSERT INTO media_assets (id, user_id, file_name, file_type, file_size, file_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, ma.ID, ma.UserID, ma.FileName, ma.FileType, ma.FileSize, ma.FileURL).Scan(&ma.CreatedAt)
	if err != nil {
		zap.L().Error("create media asset", zap.Error(err))
		return "", err
	}

	return ma.ID, nil
}

func (r *mediaAssetRepository) GetByID(ctx context.Context, id string) (*models.MediaAsset, error) {
	query := `
		SELECT id, user_id, file_name, file_type, file_size, file_url, created_at
		FROM media_assets
		WHERE id = $1
	`

	var ma models.MediaAsset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ma.ID,
		&ma.UserID,
		&ma.FileName,
		&ma.FileType,
		&ma.FileSize,
		&ma.FileURL,
		&ma.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("get media asset", zap.String("asset_id", id), zap.Error(err))
		return nil, err
	}

	return &ma, nil
}

func (r *mediaAssetRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM media_assets WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("remove media asset", zap.String("asset_id", id), zap.Error(err))
		return err
	}
	return nil
}
