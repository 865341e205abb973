package repository

import (
	"context"
	"database/sql"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"go.uber.org/zap"
)

// PostMediaRepository links media assets to calendar posts.
type PostMediaRepository interface {
	Create(ctx context.Context, pm *models.PostMedia) error
	ListByPostID(ctx context.Context, postID string) ([]*models.PostMedia, error)
	RemoveByPostID(ctx context.Context, postID string) error
}

type postMediaRepository struct {
	db *sql.DB
}

func NewPostMediaRepository(db *sql.DB) PostMediaRepository {
	return &postMediaRepository{db: db}
}

func (r *postMediaRepository) Create(ctx context.Context, pm *models.PostMedia) error {
	query := `
		INSERT INTO calendar_post_media (post_id, asset_id, display_order)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, pm.PostID, pm.AssetID, pm.DisplayOrder).Scan(&pm.CreatedAt); err != nil {
		zap.L().Error("link post media", zap.String("post_id", pm.PostID), zap.Error(err))
		return err
	}

	return nil
}

func (r *postMediaRepository) ListByPostID(ctx context.Context, postID string) ([]*models.PostMedia, error) {
	query := `
		SELECT post_id, asset_id, display_order, created_at
		FROM calendar_post_media
		WHERE post_id = $1
		ORDER BY display_order
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		zap.L().Error("list post media", zap.String("post_id", postID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var postMedias []*models.PostMedia
	for rows.Next() {
		var pm models.PostMedia
		if err := rows.Scan(&pm.PostID, &pm.AssetID, &pm.DisplayOrder, &pm.CreatedAt); err != nil {
			zap.L().Error("scan post media", zap.Error(err))
			return nil, err
		}
		postMedias = append(postMedias, &pm)
	}

	if err = rows.Err(); err != nil {
		zap.L().Error("list post media", zap.Error(err))
		return nil, err
	}

	return postMedias, nil
}

func (r *postMediaRepository) RemoveByPostID(ctx context.Context, postID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calendar_post_media WHERE post_id = $1`, postID)
	if err != nil {
		zap.L().Error("remove post media", zap.String("post_id", postID), zap.Error(err))
		return err
	}
	return nil
}
