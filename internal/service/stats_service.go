package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

type StatsService interface {
	Sync(ctx context.Context, userID int64) (int, error)
}

type statsService struct {
	ph      repository.PostHistoryRepository
	ir      repository.IntegrationRepository
	vs      repository.VideoStatRepository
	ts      TokenService
	apiBase string // empty means the real YouTube API
}

func NewStatsService(
	ph repository.PostHistoryRepository,
	ir repository.IntegrationRepository,
	vs repository.VideoStatRepository,
	ts TokenService) StatsService {
	return &statsService{
		ph: ph,
		ir: ir,
		vs: vs,
		ts: ts,
	}
}

// Sync appends a fresh counter snapshot for every successfully published
// post. userID 0 covers all users. A post whose integration or token is
// unavailable is skipped, never failing the batch.
func (s *statsService) Sync(ctx context.Context, userID int64) (int, error) {
	posts, err := s.ph.ListSuccessful(ctx, userID, models.PlatformYoutube)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, post := range posts {
		if err := s.syncOne(ctx, post); err != nil {
			slog.Info(err.Error())
			continue
		}
		synced++
	}

	return synced, nil
}

func (s *statsService) syncOne(ctx context.Context, post *models.PostHistory) error {
	integration, err := s.ir.GetByID(ctx, post.IntegrationID)
	if err != nil {
		return err
	}
	if integration == nil {
		return fmt.Errorf("integration %d: %w", post.IntegrationID, models.ErrNotFound)
	}

	accessToken, err := s.ts.EnsureValid(ctx, integration)
	if err != nil {
		return err
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if s.apiBase != "" {
		opts = append(opts, option.WithEndpoint(s.apiBase))
	}

	yt, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return err
	}

	resp, err := yt.Videos.List([]string{"statistics"}).Id(post.PlatformPostID).Do()
	if err != nil {
		return err
	}
	if len(resp.Items) == 0 || resp.Items[0].Statistics == nil {
		return fmt.Errorf("video %s: no statistics returned", post.PlatformPostID)
	}

	stats := resp.Items[0].Statistics
	_, err = s.vs.Create(ctx, &models.VideoStat{
		UserID:         post.UserID,
		PostHistoryID:  post.ID,
		PlatformPostID: post.PlatformPostID,
		ViewCount:      int64(stats.ViewCount),
		LikeCount:      int64(stats.LikeCount),
		CommentCount:   int64(stats.CommentCount),
	})
	return err
}
