package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/manypost/manypost/internal/service"
	"github.com/manypost/manypost/internal/transfer"
)

type PublisherHandler struct {
	pub     service.PublisherService
	scanner service.ScannerService
	stats   service.StatsService
}

func NewPublisherHandler(pub service.PublisherService, scanner service.ScannerService, stats service.StatsService) *PublisherHandler {
	return &PublisherHandler{
		pub:     pub,
		scanner: scanner,
		stats:   stats,
	}
}

// Publish pushes a single scheduled post out immediately, regardless of its
// scheduled time.
func (h *PublisherHandler) Publish(c *fiber.Ctx) error {
	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	result, err := h.pub.Publish(c.Context(), req.ScheduledPostID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PublisherHandler) Scan(c *fiber.Ctx) error {
	results, err := h.scanner.Scan(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(transfer.ScanResponse{
		Success:   true,
		Processed: len(results),
		Results:   results,
	})
}

func (h *PublisherHandler) SyncStats(c *fiber.Ctx) error {
	userID := GetUserID(c)

	synced, err := h.stats.Sync(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(transfer.SyncStatsResponse{
		Success: true,
		Synced:  synced,
	})
}
