package service

import (
	"context"

	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
)

type HistoryService interface {
	List(ctx context.Context, userID int64) ([]*models.PostHistory, error)
	LatestStats(ctx context.Context, userID int64) ([]*models.VideoStat, error)
}

type historyService struct {
	ph repository.PostHistoryRepository
	vs repository.VideoStatRepository
}

func NewHistoryService(ph repository.PostHistoryRepository, vs repository.VideoStatRepository) HistoryService {
	return &historyService{
		ph: ph,
		vs: vs,
	}
}

func (s *historyService) List(ctx context.Context, userID int64) ([]*models.PostHistory, error) {
	return s.ph.ListByUserID(ctx, userID)
}

func (s *historyService) LatestStats(ctx context.Context, userID int64) ([]*models.VideoStat, error) {
	return s.vs.ListLatestByUserID(ctx, userID)
}
