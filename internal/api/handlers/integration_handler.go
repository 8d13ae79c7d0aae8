package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	config "github.com/manypost/manypost/configs"
	"github.com/manypost/manypost/internal/service"
	"github.com/manypost/manypost/pkg/utils"
)

type IntegrationHandler struct {
	s   service.IntegrationService
	cfg config.Config
}

func NewIntegrationHandler(cfg config.Config, service service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{s: service, cfg: cfg}
}

// Connect starts the OAuth flow for the authenticated user. The frontend
// opens the returned URL itself so it can do so in a popup.
func (h *IntegrationHandler) Connect(c *fiber.Ctx) error {
	userID := GetUserID(c)

	authURL, err := h.s.AuthURL(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to start YouTube connection",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"auth_url": authURL,
	})
}

// AddIntegration is the browser-navigation variant of Connect: it reads the
// session cookie directly and redirects straight to the provider.
func (h *IntegrationHandler) AddIntegration(c *fiber.Ctx) error {
	claims, err := utils.ValidateToken(h.cfg.SecretKey, c.Cookies(h.cfg.CookieName))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	authURL, err := h.s.AuthURL(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to start YouTube connection",
		})
	}

	return c.Redirect(authURL)
}

// CallbackHandler is hit by the provider redirect; the user identity comes
// from the signed state, not from a session.
func (h *IntegrationHandler) CallbackHandler(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	channelName, err := h.s.Callback(c.Context(), code, state)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to connect YouTube channel",
		})
	}

	redirectURL := fmt.Sprintf("%s/integrations?success=youtube&channel=%s",
		h.cfg.FrontendURL, url.QueryEscape(channelName))
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (h *IntegrationHandler) ListIntegrations(c *fiber.Ctx) error {
	userID := GetUserID(c)

	integrations, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch integrations",
		})
	}

	return c.Status(fiber.StatusOK).JSON(integrations)
}

func (h *IntegrationHandler) Disconnect(c *fiber.Ctx) error {
	userID := GetUserID(c)
	integrationID := c.QueryInt("id", 0)

	err := h.s.Disconnect(c.Context(), userID, int64(integrationID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to disconnect integration",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
