package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/manypost/manypost/internal/models"
)

type VideoRepository interface {
	Create(ctx context.Context, v *models.Video) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Video, error)
	CheckByUserID(ctx context.Context, videoID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type videoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, v *models.Video) (int64, error) {
	query := `
		INSERT INTO videos (user_id, file_name, file_size, mime_type, storage_url, storage_key, thumbnail_url, upload_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, v.UserID, v.FileName, v.FileSize, v.MimeType,
		v.StorageURL, v.StorageKey, v.ThumbnailURL, v.UploadStatus).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	query := `
		SELECT id, user_id, file_name, file_size, mime_type, storage_url, storage_key, thumbnail_url, upload_status, uploaded_at
		FROM videos WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var v models.Video
	err := row.Scan(&v.ID, &v.UserID, &v.FileName, &v.FileSize, &v.MimeType,
		&v.StorageURL, &v.StorageKey, &v.ThumbnailURL, &v.UploadStatus, &v.UploadedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &v, nil
}

func (r *videoRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Video, error) {
	query := `
		SELECT id, user_id, file_name, file_size, mime_type, storage_url, storage_key, thumbnail_url, upload_status, uploaded_at
		FROM videos WHERE user_id = $1 ORDER BY uploaded_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		var v models.Video
		err := rows.Scan(&v.ID, &v.UserID, &v.FileName, &v.FileSize, &v.MimeType,
			&v.StorageURL, &v.StorageKey, &v.ThumbnailURL, &v.UploadStatus, &v.UploadedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		videos = append(videos, &v)
	}
	return videos, nil
}

func (r *videoRepository) CheckByUserID(ctx context.Context, videoID, userID int64) (bool, error) {
	query := "SELECT 1 FROM videos WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, videoID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *videoRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM videos WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
