package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/internal/transfer"
)

type DraftService interface {
	Create(ctx context.Context, userID int64, t transfer.DraftRequest) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.Draft, error)
	Update(ctx context.Context, userID, draftID int64, t transfer.DraftRequest) error
	Remove(ctx context.Context, userID, draftID int64) error
	Promote(ctx context.Context, userID int64, t transfer.PromoteDraftRequest) (int64, time.Duration, error)
}

type draftService struct {
	dr repository.DraftRepository
	ps PostService
}

func NewDraftService(dr repository.DraftRepository, ps PostService) DraftService {
	return &draftService{
		dr: dr,
		ps: ps,
	}
}

func (s *draftService) Create(ctx context.Context, userID int64, t transfer.DraftRequest) (int64, error) {
	return s.dr.Create(ctx, &models.Draft{
		UserID:            userID,
		IntegrationID:     t.IntegrationID,
		VideoID:           t.VideoID,
		Platform:          t.Platform,
		Title:             t.Title,
		Description:       t.Description,
		Tags:              t.Tags,
		Category:          t.Category,
		PrivacyStatus:     t.PrivacyStatus,
		VideoType:         t.VideoType,
		MadeForKids:       t.MadeForKids,
		NotifySubscribers: t.NotifySubscribers,
	})
}

func (s *draftService) List(ctx context.Context, userID int64) ([]*models.Draft, error) {
	return s.dr.ListByUserID(ctx, userID)
}

// Update merges the request into the stored draft: nil fields keep their
// current value, set fields overwrite.
func (s *draftService) Update(ctx context.Context, userID, draftID int64, t transfer.DraftRequest) error {
	draft, err := s.ownedDraft(ctx, userID, draftID)
	if err != nil {
		return err
	}

	if t.IntegrationID != nil {
		draft.IntegrationID = t.IntegrationID
	}
	if t.VideoID != nil {
		draft.VideoID = t.VideoID
	}
	if t.Platform != nil {
		draft.Platform = t.Platform
	}
	if t.Title != nil {
		draft.Title = t.Title
	}
	if t.Description != nil {
		draft.Description = t.Description
	}
	if t.Tags != nil {
		draft.Tags = t.Tags
	}
	if t.Category != nil {
		draft.Category = t.Category
	}
	if t.PrivacyStatus != nil {
		draft.PrivacyStatus = t.PrivacyStatus
	}
	if t.VideoType != nil {
		draft.VideoType = t.VideoType
	}
	if t.MadeForKids != nil {
		draft.MadeForKids = t.MadeForKids
	}
	if t.NotifySubscribers != nil {
		draft.NotifySubscribers = t.NotifySubscribers
	}

	return s.dr.Update(ctx, draft)
}

func (s *draftService) Remove(ctx context.Context, userID, draftID int64) error {
	if _, err := s.ownedDraft(ctx, userID, draftID); err != nil {
		return err
	}
	return s.dr.Remove(ctx, draftID)
}

// Promote turns a draft into a scheduled post. The draft must carry an
// integration, a video and a title; everything else falls back to the same
// defaults a direct schedule would get. The draft row is removed only after
// the post is created.
func (s *draftService) Promote(ctx context.Context, userID int64, t transfer.PromoteDraftRequest) (int64, time.Duration, error) {
	draft, err := s.ownedDraft(ctx, userID, t.DraftID)
	if err != nil {
		return 0, 0, err
	}

	if draft.IntegrationID == nil || draft.VideoID == nil || draft.Title == nil || *draft.Title == "" {
		return 0, 0, fmt.Errorf("draft %d is missing integration, video or title: %w", t.DraftID, models.ErrInvalidState)
	}

	req := transfer.SchedulePostRequest{
		IntegrationID:     *draft.IntegrationID,
		VideoID:           *draft.VideoID,
		ScheduledTime:     t.ScheduledTime,
		Title:             *draft.Title,
		Tags:              draft.Tags,
		NotifySubscribers: draft.NotifySubscribers,
	}
	if draft.Description != nil {
		req.Description = *draft.Description
	}
	if draft.Category != nil {
		req.Category = *draft.Category
	}
	if draft.PrivacyStatus != nil {
		req.PrivacyStatus = *draft.PrivacyStatus
	}
	if draft.VideoType != nil {
		req.VideoType = *draft.VideoType
	}
	if draft.MadeForKids != nil {
		req.MadeForKids = *draft.MadeForKids
	}

	postID, delay, err := s.ps.Schedule(ctx, userID, req)
	if err != nil {
		return 0, 0, err
	}

	if err := s.dr.Remove(ctx, t.DraftID); err != nil {
		slog.Info(err.Error())
	}

	return postID, delay, nil
}

func (s *draftService) ownedDraft(ctx context.Context, userID, draftID int64) (*models.Draft, error) {
	isValid, err := s.dr.CheckByUserID(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		return nil, fmt.Errorf("draft %d: %w", draftID, models.ErrNotFound)
	}

	draft, err := s.dr.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, fmt.Errorf("draft %d: %w", draftID, models.ErrNotFound)
	}

	return draft, nil
}
