package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/manypost/manypost/internal/models"
)

type IntegrationRepository interface {
	Upsert(ctx context.Context, in *models.Integration) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Integration, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Integration, error)
	ListExpiring(ctx context.Context, initialTime, finalTime time.Time) ([]*models.Integration, error)
	CheckByUserID(ctx context.Context, integrationID, userID int64) (bool, error)
	SetToken(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error
	Remove(ctx context.Context, id int64) error
}

type integrationRepository struct {
	db *sql.DB
}

func NewIntegrationRepository(db *sql.DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

// Upsert keeps at most one row per (user, platform, channel). A reconnect
// overwrites the tokens and reactivates the row; an empty refresh token keeps
// the stored one, since the provider only reissues it on fresh consent.
func (r *integrationRepository) Upsert(ctx context.Context, in *models.Integration) (int64, error) {
	query := `
		INSERT INTO integrations (
			user_id,
			platform,
			channel_id,
			channel_name,
			profile_image_url,
			access_token,
			refresh_token,
			token_expires_at,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		ON CONFLICT (user_id, platform, channel_id) DO UPDATE SET
			channel_name = EXCLUDED.channel_name,
			profile_image_url = EXCLUDED.profile_image_url,
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(NULLIF(EXCLUDED.refresh_token, ''), integrations.refresh_token),
			token_expires_at = EXCLUDED.token_expires_at,
			is_active = TRUE,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		in.UserID,
		in.Platform,
		in.ChannelID,
		in.ChannelName,
		in.ProfileImageURL,
		in.AccessToken,
		in.RefreshToken,
		in.TokenExpiresAt,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *integrationRepository) GetByID(ctx context.Context, id int64) (*models.Integration, error) {
	query := `
		SELECT id, user_id, platform, channel_id, channel_name, profile_image_url,
			access_token, refresh_token, token_expires_at, is_active, connected_at, updated_at
		FROM integrations WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var in models.Integration
	err := row.Scan(&in.ID, &in.UserID, &in.Platform, &in.ChannelID, &in.ChannelName,
		&in.ProfileImageURL, &in.AccessToken, &in.RefreshToken, &in.TokenExpiresAt,
		&in.IsActive, &in.ConnectedAt, &in.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &in, nil
}

func (r *integrationRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Integration, error) {
	query := `
		SELECT id, platform, channel_id, channel_name, profile_image_url, is_active, connected_at
		FROM integrations WHERE user_id = $1 AND is_active = TRUE
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var integrations []*models.Integration
	for rows.Next() {
		var in models.Integration
		err := rows.Scan(&in.ID, &in.Platform, &in.ChannelID, &in.ChannelName,
			&in.ProfileImageURL, &in.IsActive, &in.ConnectedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		integrations = append(integrations, &in)
	}
	return integrations, nil
}

func (r *integrationRepository) ListExpiring(ctx context.Context, initialTime, finalTime time.Time) ([]*models.Integration, error) {
	query := `
		SELECT id, user_id, platform, access_token, refresh_token, token_expires_at
		FROM integrations
		WHERE is_active = TRUE
			AND ((token_expires_at BETWEEN $1 AND $2) OR (token_expires_at < $1))
	`
	rows, err := r.db.QueryContext(ctx, query, initialTime, finalTime)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var integrations []*models.Integration
	for rows.Next() {
		var in models.Integration
		err := rows.Scan(&in.ID, &in.UserID, &in.Platform, &in.AccessToken, &in.RefreshToken, &in.TokenExpiresAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		integrations = append(integrations, &in)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return integrations, nil
}

func (r *integrationRepository) CheckByUserID(ctx context.Context, integrationID, userID int64) (bool, error) {
	query := "SELECT 1 FROM integrations WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, integrationID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

// SetToken is last-writer-wins: concurrent refreshers both derive a valid
// token, so no optimistic check is needed. An empty refresh token keeps the
// stored one.
func (r *integrationRepository) SetToken(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error {
	query := `
		UPDATE integrations
		SET access_token = $2,
			refresh_token = COALESCE(NULLIF($3, ''), refresh_token),
			token_expires_at = $4,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, accessToken, refreshToken, expiresAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *integrationRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM integrations WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
