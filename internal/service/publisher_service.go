package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/internal/transfer"
)

const (
	maxTitleLength = 100
	shortsTag      = "#Shorts"
)

type PublisherService interface {
	Publish(ctx context.Context, scheduledPostID int64) (*transfer.PublishResult, error)
}

type publisherService struct {
	sp       repository.ScheduledPostRepository
	ph       repository.PostHistoryRepository
	ts       TokenService
	uploader *YoutubeUploader
	client   *http.Client
}

func NewPublisherService(
	sp repository.ScheduledPostRepository,
	ph repository.PostHistoryRepository,
	ts TokenService,
	uploader *YoutubeUploader) PublisherService {
	return &publisherService{
		sp:       sp,
		ph:       ph,
		ts:       ts,
		uploader: uploader,
		client:   http.DefaultClient,
	}
}

// Publish drives one scheduled post to a terminal state. Once the admission
// claim succeeds the invocation always ends in posted or failed, with exactly
// one history row describing the outcome.
func (s *publisherService) Publish(ctx context.Context, scheduledPostID int64) (*transfer.PublishResult, error) {
	post, integration, video, err := s.sp.GetWithRelations(ctx, scheduledPostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("scheduled post %d: %w", scheduledPostID, models.ErrNotFound)
	}

	claimed, err := s.sp.ClaimForProcessing(ctx, scheduledPostID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, fmt.Errorf("scheduled post %d: %w", scheduledPostID, models.ErrNotPublishable)
	}

	videoID, watchURL, err := s.upload(ctx, post, integration, video)
	if err != nil {
		s.recordOutcome(ctx, post, "", "", err)
		return nil, err
	}

	s.recordOutcome(ctx, post, videoID, watchURL, nil)

	return &transfer.PublishResult{
		Success:  true,
		VideoID:  videoID,
		VideoURL: watchURL,
	}, nil
}

func (s *publisherService) upload(ctx context.Context, post *models.ScheduledPost, integration *models.Integration, video *models.Video) (string, string, error) {
	accessToken, err := s.ts.EnsureValid(ctx, integration)
	if err != nil {
		return "", "", err
	}

	data, err := s.fetchVideo(ctx, video.StorageURL)
	if err != nil {
		return "", "", err
	}
	if !filetype.IsVideo(data) {
		return "", "", errors.New("fetched object is not a video")
	}

	meta := VideoMetadata{
		Title:             PublishTitle(post.Title, post.VideoType),
		Description:       post.Description,
		Tags:              post.Tags,
		CategoryID:        post.Category,
		PrivacyStatus:     post.PrivacyStatus,
		MadeForKids:       post.MadeForKids,
		NotifySubscribers: post.NotifySubscribers,
	}

	return s.uploader.Upload(ctx, accessToken, data, meta)
}

func (s *publisherService) fetchVideo(ctx context.Context, storageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, storageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected response status %d", models.ErrStorage, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	return data, nil
}

// recordOutcome moves the post to its terminal status and appends the
// matching history row. Bookkeeping failures are logged, not surfaced: the
// upload outcome already happened.
func (s *publisherService) recordOutcome(ctx context.Context, post *models.ScheduledPost, videoID, watchURL string, uploadErr error) {
	status := models.PostStatusPosted
	history := models.PostHistory{
		UserID:          post.UserID,
		ScheduledPostID: post.ID,
		IntegrationID:   post.IntegrationID,
		VideoID:         post.VideoID,
		Platform:        post.Platform,
		PlatformPostID:  videoID,
		PlatformPostURL: watchURL,
		Title:           post.Title,
		Status:          models.HistoryStatusSuccess,
		PostedAt:        time.Now(),
	}

	if uploadErr != nil {
		status = models.PostStatusFailed
		history.Status = models.HistoryStatusFailed
		history.ErrorMessage = uploadErr.Error()
	}

	if err := s.sp.UpdateStatus(ctx, status, post.ID); err != nil {
		slog.Info(err.Error())
	}
	if _, err := s.ph.Create(ctx, &history); err != nil {
		slog.Info(err.Error())
	}
}

// PublishTitle applies the platform title rules: short-form posts carry a
// single #Shorts tag and the result never exceeds the title budget.
// Truncation happens before suffixing so the tag always survives.
func PublishTitle(title, videoType string) string {
	if videoType != models.VideoTypeShort || strings.Contains(title, shortsTag) {
		return truncateRunes(title, maxTitleLength)
	}

	suffix := " " + shortsTag
	return truncateRunes(title, maxTitleLength-len(suffix)) + suffix
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
