package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/manypost/manypost/internal/models"
)

type DraftRepository interface {
	Create(ctx context.Context, d *models.Draft) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Draft, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Draft, error)
	Update(ctx context.Context, d *models.Draft) error
	CheckByUserID(ctx context.Context, draftID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type draftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) DraftRepository {
	return &draftRepository{db: db}
}

const draftColumns = `id, user_id, integration_id, video_id, platform, title, description, tags,
	category, privacy_status, video_type, made_for_kids, notify_subscribers, created_at, updated_at`

func scanDraft(row interface{ Scan(...any) error }, d *models.Draft) error {
	return row.Scan(&d.ID, &d.UserID, &d.IntegrationID, &d.VideoID, &d.Platform, &d.Title,
		&d.Description, &d.Tags, &d.Category, &d.PrivacyStatus, &d.VideoType, &d.MadeForKids,
		&d.NotifySubscribers, &d.CreatedAt, &d.UpdatedAt)
}

func (r *draftRepository) Create(ctx context.Context, d *models.Draft) (int64, error) {
	query := `
		INSERT INTO drafts (
			user_id, integration_id, video_id, platform, title, description, tags,
			category, privacy_status, video_type, made_for_kids, notify_subscribers
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		d.UserID, d.IntegrationID, d.VideoID, d.Platform, d.Title, d.Description, d.Tags,
		d.Category, d.PrivacyStatus, d.VideoType, d.MadeForKids, d.NotifySubscribers,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *draftRepository) GetByID(ctx context.Context, id int64) (*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var d models.Draft
	err := scanDraft(row, &d)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &d, nil
}

func (r *draftRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE user_id = $1 ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var drafts []*models.Draft
	for rows.Next() {
		var d models.Draft
		if err := scanDraft(rows, &d); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		drafts = append(drafts, &d)
	}
	return drafts, nil
}

func (r *draftRepository) Update(ctx context.Context, d *models.Draft) error {
	query := `
		UPDATE drafts
		SET integration_id = $2,
			video_id = $3,
			platform = $4,
			title = $5,
			description = $6,
			tags = $7,
			category = $8,
			privacy_status = $9,
			video_type = $10,
			made_for_kids = $11,
			notify_subscribers = $12,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.IntegrationID, d.VideoID, d.Platform,
		d.Title, d.Description, d.Tags, d.Category, d.PrivacyStatus, d.VideoType,
		d.MadeForKids, d.NotifySubscribers)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *draftRepository) CheckByUserID(ctx context.Context, draftID, userID int64) (bool, error) {
	query := "SELECT 1 FROM drafts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, draftID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *draftRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM drafts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
