package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/internal/transfer"
)

type VideoService interface {
	CreateUploadURL(ctx context.Context, userID int64, t transfer.UploadURLRequest) (*transfer.UploadURLResponse, error)
	Register(ctx context.Context, userID int64, t transfer.RegisterVideoRequest) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.Video, error)
	Remove(ctx context.Context, userID, videoID int64) error
}

type videoService struct {
	vr repository.VideoRepository
	r2 *R2Service
}

func NewVideoService(vr repository.VideoRepository, r2 *R2Service) VideoService {
	return &videoService{
		vr: vr,
		r2: r2,
	}
}

// CreateUploadURL hands the browser a presigned URL so the file goes straight
// to object storage without passing through the backend.
func (s *videoService) CreateUploadURL(ctx context.Context, userID int64, t transfer.UploadURLRequest) (*transfer.UploadURLResponse, error) {
	if t.FileName == "" {
		return nil, errors.New("file_name is required")
	}
	if !strings.HasPrefix(t.ContentType, "video/") {
		return nil, fmt.Errorf("unsupported content type %q", t.ContentType)
	}

	key := s.r2.ObjectKey(userID, t.FileName)
	signedURL, err := s.r2.PresignUpload(ctx, key, t.ContentType)
	if err != nil {
		return nil, err
	}

	return &transfer.UploadURLResponse{
		SignedURL: signedURL,
		Key:       key,
		PublicURL: s.r2.PublicURL(key),
	}, nil
}

// Register records a finished direct upload so the video becomes schedulable.
func (s *videoService) Register(ctx context.Context, userID int64, t transfer.RegisterVideoRequest) (int64, error) {
	if t.FileName == "" || t.StorageKey == "" {
		return 0, errors.New("file_name and storage_key are required")
	}

	return s.vr.Create(ctx, &models.Video{
		UserID:       userID,
		FileName:     t.FileName,
		FileSize:     t.FileSize,
		MimeType:     t.MimeType,
		StorageURL:   s.r2.PublicURL(t.StorageKey),
		StorageKey:   t.StorageKey,
		ThumbnailURL: t.ThumbnailURL,
		UploadStatus: models.UploadStatusCompleted,
	})
}

func (s *videoService) List(ctx context.Context, userID int64) ([]*models.Video, error) {
	if userID == 0 {
		err := errors.New("UserID is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	return s.vr.ListByUserID(ctx, userID)
}

// Remove deletes the row and the stored object. Storage cleanup is
// best-effort: an orphaned object costs pennies, a dangling row confuses the
// UI.
func (s *videoService) Remove(ctx context.Context, userID, videoID int64) error {
	isValid, err := s.vr.CheckByUserID(ctx, videoID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		return fmt.Errorf("video %d: %w", videoID, models.ErrNotFound)
	}

	video, err := s.vr.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video != nil && video.StorageKey != "" {
		if err := s.r2.DeleteObject(ctx, video.StorageKey); err != nil {
			slog.Info(err.Error())
		}
	}

	return s.vr.Remove(ctx, videoID)
}
