package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/manypost/manypost/internal/models"
)

type VideoStatRepository interface {
	Create(ctx context.Context, vs *models.VideoStat) (int64, error)
	ListLatestByUserID(ctx context.Context, userID int64) ([]*models.VideoStat, error)
}

type videoStatRepository struct {
	db *sql.DB
}

func NewVideoStatRepository(db *sql.DB) VideoStatRepository {
	return &videoStatRepository{db: db}
}

func (r *videoStatRepository) Create(ctx context.Context, vs *models.VideoStat) (int64, error) {
	query := `
		INSERT INTO video_stats (user_id, post_history_id, platform_post_id, view_count, like_count, comment_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, vs.UserID, vs.PostHistoryID, vs.PlatformPostID,
		vs.ViewCount, vs.LikeCount, vs.CommentCount).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

// ListLatestByUserID returns the most recent snapshot per published post.
func (r *videoStatRepository) ListLatestByUserID(ctx context.Context, userID int64) ([]*models.VideoStat, error) {
	query := `
		SELECT DISTINCT ON (post_history_id)
			id, user_id, post_history_id, platform_post_id, view_count, like_count, comment_count, fetched_at
		FROM video_stats
		WHERE user_id = $1
		ORDER BY post_history_id, fetched_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var stats []*models.VideoStat
	for rows.Next() {
		var vs models.VideoStat
		err := rows.Scan(&vs.ID, &vs.UserID, &vs.PostHistoryID, &vs.PlatformPostID,
			&vs.ViewCount, &vs.LikeCount, &vs.CommentCount, &vs.FetchedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		stats = append(stats, &vs)
	}
	return stats, nil
}
