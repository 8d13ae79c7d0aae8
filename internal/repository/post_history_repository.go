package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/manypost/manypost/internal/models"
)

type PostHistoryRepository interface {
	Create(ctx context.Context, ph *models.PostHistory) (int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.PostHistory, error)
	ListSuccessful(ctx context.Context, userID int64, platform string) ([]*models.PostHistory, error)
}

type postHistoryRepository struct {
	db *sql.DB
}

func NewPostHistoryRepository(db *sql.DB) PostHistoryRepository {
	return &postHistoryRepository{db: db}
}

func (r *postHistoryRepository) Create(ctx context.Context, ph *models.PostHistory) (int64, error) {
	query := `
		INSERT INTO post_history (
			user_id, scheduled_post_id, integration_id, video_id, platform,
			platform_post_id, platform_post_url, title, status, error_message, posted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		ph.UserID, ph.ScheduledPostID, ph.IntegrationID, ph.VideoID, ph.Platform,
		ph.PlatformPostID, ph.PlatformPostURL, ph.Title, ph.Status, ph.ErrorMessage, ph.PostedAt,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postHistoryRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.PostHistory, error) {
	query := `
		SELECT id, user_id, scheduled_post_id, integration_id, video_id, platform,
			platform_post_id, platform_post_url, title, status, error_message, posted_at
		FROM post_history WHERE user_id = $1 ORDER BY posted_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

// ListSuccessful returns published rows for stats syncing; userID 0 means
// every user.
func (r *postHistoryRepository) ListSuccessful(ctx context.Context, userID int64, platform string) ([]*models.PostHistory, error) {
	query := `
		SELECT id, user_id, scheduled_post_id, integration_id, video_id, platform,
			platform_post_id, platform_post_url, title, status, error_message, posted_at
		FROM post_history WHERE status = $1 AND platform = $2
	`
	args := []interface{}{models.HistoryStatusSuccess, platform}

	if userID != 0 {
		query += ` AND user_id = $3`
		args = append(args, userID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

func scanHistoryRows(rows *sql.Rows) ([]*models.PostHistory, error) {
	var phs []*models.PostHistory
	for rows.Next() {
		var ph models.PostHistory
		err := rows.Scan(&ph.ID, &ph.UserID, &ph.ScheduledPostID, &ph.IntegrationID, &ph.VideoID,
			&ph.Platform, &ph.PlatformPostID, &ph.PlatformPostURL, &ph.Title, &ph.Status,
			&ph.ErrorMessage, &ph.PostedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		phs = append(phs, &ph)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return phs, nil
}
