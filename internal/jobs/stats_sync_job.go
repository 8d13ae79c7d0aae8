package job

import (
	"context"
	"log/slog"

	"github.com/manypost/manypost/internal/service"
)

type StatsSyncJob struct {
	stats service.StatsService
}

func NewStatsSyncJob(stats service.StatsService) *StatsSyncJob {
	return &StatsSyncJob{stats: stats}
}

func (c *StatsSyncJob) SyncStats() {
	synced, err := c.stats.Sync(context.Background(), 0)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	slog.Info("Video stats synced", "count", synced)
}
