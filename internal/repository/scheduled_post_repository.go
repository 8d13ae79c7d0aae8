package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/manypost/manypost/internal/models"
)

type ScheduledPostRepository interface {
	Create(ctx context.Context, p *models.ScheduledPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error)
	GetWithRelations(ctx context.Context, id int64) (*models.ScheduledPost, *models.Integration, *models.Video, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.ScheduledPost, error)
	ListDue(ctx context.Context, now time.Time) ([]int64, error)
	ClaimForProcessing(ctx context.Context, id int64) (bool, error)
	UpdateStatus(ctx context.Context, status string, postID int64) error
	Cancel(ctx context.Context, postID, userID int64) (bool, error)
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

const scheduledPostColumns = `id, user_id, integration_id, video_id, platform, scheduled_time, status,
	title, description, tags, category, privacy_status, video_type, made_for_kids, notify_subscribers,
	created_at, updated_at`

func scanScheduledPost(row interface{ Scan(...any) error }, p *models.ScheduledPost) error {
	return row.Scan(&p.ID, &p.UserID, &p.IntegrationID, &p.VideoID, &p.Platform, &p.ScheduledTime,
		&p.Status, &p.Title, &p.Description, &p.Tags, &p.Category, &p.PrivacyStatus, &p.VideoType,
		&p.MadeForKids, &p.NotifySubscribers, &p.CreatedAt, &p.UpdatedAt)
}

func (r *scheduledPostRepository) Create(ctx context.Context, p *models.ScheduledPost) (int64, error) {
	query := `
		INSERT INTO scheduled_posts (
			user_id, integration_id, video_id, platform, scheduled_time, status,
			title, description, tags, category, privacy_status, video_type,
			made_for_kids, notify_subscribers
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.IntegrationID, p.VideoID, p.Platform, p.ScheduledTime, p.Status,
		p.Title, p.Description, p.Tags, p.Category, p.PrivacyStatus, p.VideoType,
		p.MadeForKids, p.NotifySubscribers,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *scheduledPostRepository) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var p models.ScheduledPost
	err := scanScheduledPost(row, &p)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &p, nil
}

// GetWithRelations resolves a post together with its integration and video in
// one round trip. Returns all nils when the post does not exist.
func (r *scheduledPostRepository) GetWithRelations(ctx context.Context, id int64) (*models.ScheduledPost, *models.Integration, *models.Video, error) {
	query := `
		SELECT
			p.id, p.user_id, p.integration_id, p.video_id, p.platform, p.scheduled_time, p.status,
			p.title, p.description, p.tags, p.category, p.privacy_status, p.video_type,
			p.made_for_kids, p.notify_subscribers, p.created_at, p.updated_at,
			i.id, i.user_id, i.platform, i.channel_id, i.access_token, i.refresh_token, i.token_expires_at,
			v.id, v.user_id, v.file_name, v.mime_type, v.storage_url, v.storage_key, v.upload_status
		FROM scheduled_posts p
		JOIN integrations i ON i.id = p.integration_id
		JOIN videos v ON v.id = p.video_id
		WHERE p.id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var p models.ScheduledPost
	var in models.Integration
	var v models.Video
	err := row.Scan(
		&p.ID, &p.UserID, &p.IntegrationID, &p.VideoID, &p.Platform, &p.ScheduledTime, &p.Status,
		&p.Title, &p.Description, &p.Tags, &p.Category, &p.PrivacyStatus, &p.VideoType,
		&p.MadeForKids, &p.NotifySubscribers, &p.CreatedAt, &p.UpdatedAt,
		&in.ID, &in.UserID, &in.Platform, &in.ChannelID, &in.AccessToken, &in.RefreshToken, &in.TokenExpiresAt,
		&v.ID, &v.UserID, &v.FileName, &v.MimeType, &v.StorageURL, &v.StorageKey, &v.UploadStatus,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil, nil
		}
		slog.Info(err.Error())
		return nil, nil, nil, err
	}

	return &p, &in, &v, nil
}

func (r *scheduledPostRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE user_id = $1 ORDER BY scheduled_time ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		var p models.ScheduledPost
		if err := scanScheduledPost(rows, &p); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, nil
}

func (r *scheduledPostRepository) ListDue(ctx context.Context, now time.Time) ([]int64, error) {
	query := `SELECT id FROM scheduled_posts WHERE status = $1 AND scheduled_time <= $2 ORDER BY scheduled_time ASC`
	rows, err := r.db.QueryContext(ctx, query, models.PostStatusPending, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return ids, nil
}

// ClaimForProcessing is the single admission gate for publishing: the
// conditional update succeeds for exactly one of any set of concurrent
// callers, so the same post is never uploaded twice.
func (r *scheduledPostRepository) ClaimForProcessing(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE scheduled_posts
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status IN ($3, $4)
	`
	result, err := r.db.ExecContext(ctx, query, id, models.PostStatusProcessing,
		models.PostStatusPending, models.PostStatusFailed)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	return affected == 1, nil
}

func (r *scheduledPostRepository) UpdateStatus(ctx context.Context, status string, postID int64) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// Cancel only moves pending or failed posts; a post mid-upload or already
// terminal is left alone and the caller gets false.
func (r *scheduledPostRepository) Cancel(ctx context.Context, postID, userID int64) (bool, error) {
	query := `
		UPDATE scheduled_posts
		SET status = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2 AND status IN ($4, $5)
	`
	result, err := r.db.ExecContext(ctx, query, postID, userID, models.PostStatusCancelled,
		models.PostStatusPending, models.PostStatusFailed)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	return affected == 1, nil
}

func (r *scheduledPostRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := "SELECT 1 FROM scheduled_posts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *scheduledPostRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM scheduled_posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
