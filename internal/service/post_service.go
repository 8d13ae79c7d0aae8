package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/internal/transfer"
)

type PostService interface {
	Schedule(ctx context.Context, userID int64, t transfer.SchedulePostRequest) (int64, time.Duration, error)
	List(ctx context.Context, userID int64) ([]*models.ScheduledPost, error)
	PostInfo(ctx context.Context, userID, postID int64) (*models.ScheduledPost, error)
	Cancel(ctx context.Context, userID, postID int64) error
}

type postService struct {
	sp repository.ScheduledPostRepository
	ir repository.IntegrationRepository
	vr repository.VideoRepository
}

func NewPostService(
	sp repository.ScheduledPostRepository,
	ir repository.IntegrationRepository,
	vr repository.VideoRepository) PostService {
	return &postService{
		sp: sp,
		ir: ir,
		vr: vr,
	}
}

// Schedule validates ownership of the referenced integration and video and
// creates the pending post. The returned delay is how long until the post is
// due, floored at zero for past times.
func (s *postService) Schedule(ctx context.Context, userID int64, t transfer.SchedulePostRequest) (int64, time.Duration, error) {
	if t.Title == "" {
		return 0, 0, errors.New("title is required")
	}

	scheduledTime, err := time.Parse(time.RFC3339, t.ScheduledTime)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid scheduled_time: %v", err)
	}

	integration, err := s.ir.GetByID(ctx, t.IntegrationID)
	if err != nil {
		return 0, 0, err
	}
	if integration == nil || integration.UserID != userID {
		return 0, 0, fmt.Errorf("integration %d: %w", t.IntegrationID, models.ErrNotFound)
	}

	video, err := s.vr.GetByID(ctx, t.VideoID)
	if err != nil {
		return 0, 0, err
	}
	if video == nil || video.UserID != userID {
		return 0, 0, fmt.Errorf("video %d: %w", t.VideoID, models.ErrNotFound)
	}
	if video.UploadStatus != models.UploadStatusCompleted {
		return 0, 0, fmt.Errorf("video %d is not uploaded yet: %w", t.VideoID, models.ErrInvalidState)
	}

	privacyStatus := t.PrivacyStatus
	if privacyStatus == "" {
		privacyStatus = models.PrivacyPublic
	}
	videoType := t.VideoType
	if videoType == "" {
		videoType = models.VideoTypeNormal
	}
	notifySubscribers := true
	if t.NotifySubscribers != nil {
		notifySubscribers = *t.NotifySubscribers
	}

	id, err := s.sp.Create(ctx, &models.ScheduledPost{
		UserID:            userID,
		IntegrationID:     t.IntegrationID,
		VideoID:           t.VideoID,
		Platform:          integration.Platform,
		ScheduledTime:     scheduledTime,
		Status:            models.PostStatusPending,
		Title:             t.Title,
		Description:       t.Description,
		Tags:              t.Tags,
		Category:          t.Category,
		PrivacyStatus:     privacyStatus,
		VideoType:         videoType,
		MadeForKids:       t.MadeForKids,
		NotifySubscribers: notifySubscribers,
	})
	if err != nil {
		return 0, 0, err
	}

	delay := time.Until(scheduledTime)
	if delay < 0 {
		delay = 0
	}

	return id, delay, nil
}

func (s *postService) List(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	if userID == 0 {
		err := errors.New("UserID is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	return s.sp.ListByUserID(ctx, userID)
}

func (s *postService) PostInfo(ctx context.Context, userID, postID int64) (*models.ScheduledPost, error) {
	post, err := s.sp.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.UserID != userID {
		return nil, fmt.Errorf("scheduled post %d: %w", postID, models.ErrNotFound)
	}

	return post, nil
}

// Cancel withdraws a post that has not started publishing. Posts that are
// processing or already terminal stay untouched.
func (s *postService) Cancel(ctx context.Context, userID, postID int64) error {
	cancelled, err := s.sp.Cancel(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !cancelled {
		return fmt.Errorf("scheduled post %d: %w", postID, models.ErrNotPublishable)
	}

	return nil
}
