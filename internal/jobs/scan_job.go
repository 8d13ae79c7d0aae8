package job

import (
	"context"
	"log/slog"

	"github.com/manypost/manypost/internal/service"
)

// ScanJob is the safety net behind the delayed-task queue: any pending post
// past its scheduled time gets published even if its queue task was lost.
type ScanJob struct {
	scanner service.ScannerService
}

func NewScanJob(scanner service.ScannerService) *ScanJob {
	return &ScanJob{scanner: scanner}
}

func (c *ScanJob) ScanDuePosts() {
	results, err := c.scanner.Scan(context.Background())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	if len(results) > 0 {
		slog.Info("Scan processed due posts", "count", len(results))
	}
}
