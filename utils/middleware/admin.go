package middleware

import (
	"github.com/cmspro/cmspro-api/database"
	"github.com/cmspro/cmspro-api/model"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireAdmin middleware ensures the user has admin role
func RequireAdmin(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get user from context (set by AuthMiddleware.Required)
		userID, ok := GetUserID(c)
		if !ok || userID == 0 {
			return response.Unauthorized(c, "Authentication required")
		}

		db, ok := store.GetDB().(*gorm.DB)
		if !ok {
			return response.InternalServerError(c, "Database connection error")
		}

		var user model.User
		if err := db.First(&user, userID).Error; err != nil {
			return response.Unauthorized(c, "User not found")
		}

		if user.Role != "admin" {
			return response.Forbidden(c, "Admin access required")
		}

		c.Locals("adminUser", user)

		return c.Next()
	}
}
