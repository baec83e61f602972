package auth

import (
	"github.com/cmspro/cmspro-api/model"
	authutil "github.com/cmspro/cmspro-api/utils/auth"
	"github.com/cmspro/cmspro-api/utils/middleware"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name string `json:"name,omitempty"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// GetProfile retrieves the current user's profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, toUserResponse(&user))
}

// UpdateProfile updates the current user's profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if err := h.db.Save(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, toUserResponse(&user))
}

// ChangePassword handles password change for authenticated users
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Old password and new password are required")
	}

	if !authutil.IsPasswordValid(req.NewPassword) {
		return response.BadRequest(c, "Password must be at least 8 characters long")
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.Unauthorized(c, "User not found")
	}

	if err := authutil.VerifyPassword(user.PasswordHash, req.OldPassword); err != nil {
		return response.BadRequest(c, "Current password is incorrect")
	}

	hashedPassword, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	// Bumping token_version invalidates every outstanding token.
	if err := h.db.Model(&user).Updates(map[string]interface{}{
		"password_hash": hashedPassword,
		"token_version": user.TokenVersion + 1,
	}).Error; err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}

	return response.Success(c, fiber.Map{
		"message": "Password changed successfully. Please login again with your new password",
	})
}
