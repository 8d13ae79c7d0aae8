package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/manypost/manypost/internal/service"
	"github.com/manypost/manypost/internal/transfer"
)

type VideoHandler struct {
	s service.VideoService
}

func NewVideoHandler(service service.VideoService) *VideoHandler {
	return &VideoHandler{s: service}
}

func (h *VideoHandler) CreateUploadURL(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	resp, err := h.s.CreateUploadURL(c.Context(), userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *VideoHandler) RegisterVideo(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.RegisterVideoRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	id, err := h.s.Register(c.Context(), userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": id,
	})
}

func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	userID := GetUserID(c)

	videos, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list videos",
		})
	}

	return c.Status(fiber.StatusOK).JSON(videos)
}

func (h *VideoHandler) RemoveVideo(c *fiber.Ctx) error {
	userID := GetUserID(c)
	videoID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), userID, int64(videoID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove video",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
