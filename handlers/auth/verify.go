package auth

import (
	"time"

	"github.com/cmspro/cmspro-api/utils/middleware"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// VerifyToken confirms that the presented access token is still valid.
// Reaching the handler at all means the auth middleware accepted it.
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	return response.Success(c, fiber.Map{
		"valid": true,
		"user":  toUserResponse(user),
	})
}

// GetCSRFToken issues a CSRF token for browser clients that talk to the
// API with cookies. The token is returned in the body and mirrored in a
// cookie so the client can send it back in the X-CSRFToken header.
func (h *AuthHandler) GetCSRFToken(c *fiber.Ctx) error {
	token := uuid.New().String()

	c.Cookie(&fiber.Cookie{
		Name:     "csrftoken",
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		SameSite: "Lax",
	})

	return response.Success(c, fiber.Map{
		"csrftoken": token,
	})
}
