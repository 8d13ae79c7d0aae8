package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/manypost/manypost/internal/queue"
	"github.com/manypost/manypost/internal/service"
	"github.com/manypost/manypost/internal/transfer"
)

type DraftHandler struct {
	s           service.DraftService
	AsynqClient *asynq.Client
}

func NewDraftHandler(service service.DraftService, asynqClient *asynq.Client) *DraftHandler {
	return &DraftHandler{s: service, AsynqClient: asynqClient}
}

func (h *DraftHandler) CreateDraft(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.DraftRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	id, err := h.s.Create(c.Context(), userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to create draft",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": id,
	})
}

func (h *DraftHandler) ListDrafts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	drafts, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list drafts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(drafts)
}

func (h *DraftHandler) UpdateDraft(c *fiber.Ctx) error {
	userID := GetUserID(c)
	draftID := c.QueryInt("id", 0)

	var req transfer.DraftRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	err := h.s.Update(c.Context(), userID, int64(draftID), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update draft",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *DraftHandler) RemoveDraft(c *fiber.Ctx) error {
	userID := GetUserID(c)
	draftID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), userID, int64(draftID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to remove draft",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

// PromoteDraft schedules the draft's post and queues it the same way a
// directly scheduled post is queued.
func (h *DraftHandler) PromoteDraft(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.PromoteDraftRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	postID, delay, err := h.s.Promote(c.Context(), userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err = queue.EnqueuePost(h.AsynqClient, queue.SchedulePostPayload{PostID: postID}, delay)
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"error": "Error scheduling post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":      postID,
		"message": "Draft scheduled successfully",
	})
}
