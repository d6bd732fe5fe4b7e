package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/elysian-softech/account-service/internal/oauth"
)

type OAuthHandler struct {
	flow *oauth.Flow
}

func NewOAuthHandler(flow *oauth.Flow) *OAuthHandler {
	return &OAuthHandler{flow: flow}
}

// Authorize redirects the browser to the provider's consent screen.
func (h *OAuthHandler) Authorize(c *fiber.Ctx) error {
	return c.Redirect(h.flow.AuthorizeURL(), fiber.StatusFound)
}

// Callback completes the code exchange and sends the browser to the
// frontend welcome page.
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	result, err := h.flow.Callback(c.Context(), c.Query("code"))

	if err != nil {
		if errors.Is(err, oauth.ErrMissingCode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Authorization code not provided"})
		}
		if errors.Is(err, oauth.ErrIdentityFetch) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Failed to fetch user info"})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	return c.Redirect(result.RedirectURL, fiber.StatusFound)
}
