package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/manypost/manypost/internal/service"
)

type HistoryHandler struct {
	s service.HistoryService
}

func NewHistoryHandler(service service.HistoryService) *HistoryHandler {
	return &HistoryHandler{s: service}
}

func (h *HistoryHandler) ListHistory(c *fiber.Ctx) error {
	userID := GetUserID(c)

	history, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list post history",
		})
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

func (h *HistoryHandler) ListStats(c *fiber.Ctx) error {
	userID := GetUserID(c)

	stats, err := h.s.LatestStats(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list video stats",
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
