package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/internal/service"
)

type TokenRefreshJob struct {
	ir repository.IntegrationRepository
	ts service.TokenService
}

func NewTokenRefreshJob(ir repository.IntegrationRepository, ts service.TokenService) *TokenRefreshJob {
	return &TokenRefreshJob{
		ir: ir,
		ts: ts,
	}
}

// RefreshTokens proactively refreshes integrations expiring within the next
// half hour so scheduled uploads never start with a stale token.
func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	integrations, err := c.ir.ListExpiring(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, in := range integrations {
		if in.Platform != models.PlatformYoutube {
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(in *models.Integration) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if _, err := c.ts.RefreshIntegration(ctx, in); err != nil {
				slog.Info("Unable to refresh token for integration", "id", in.ID)
			}
		}(in)
	}

	wg.Wait()
}
