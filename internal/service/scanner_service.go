package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/internal/transfer"
)

type ScannerService interface {
	Scan(ctx context.Context) ([]transfer.ScanResult, error)
}

type scannerService struct {
	sp  repository.ScheduledPostRepository
	pub PublisherService
}

func NewScannerService(sp repository.ScheduledPostRepository, pub PublisherService) ScannerService {
	return &scannerService{
		sp:  sp,
		pub: pub,
	}
}

// Scan publishes every pending post whose scheduled time has arrived. One
// post's failure never aborts the batch; each post gets its own result.
func (s *scannerService) Scan(ctx context.Context) ([]transfer.ScanResult, error) {
	ids, err := s.sp.ListDue(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	results := make([]transfer.ScanResult, 0, len(ids))
	for _, id := range ids {
		result, err := s.pub.Publish(ctx, id)
		if err != nil {
			slog.Info(err.Error())
			results = append(results, transfer.ScanResult{
				PostID: id,
				Error:  err.Error(),
			})
			continue
		}
		results = append(results, transfer.ScanResult{
			PostID:  id,
			Success: true,
			Result:  result,
		})
	}

	return results, nil
}
