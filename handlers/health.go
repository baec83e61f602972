package handlers

import (
	"github.com/cmspro/cmspro-api/database"
	"github.com/cmspro/cmspro-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// HandlePing reports service liveness and database reachability.
func HandlePing(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.ServiceUnavailable(c, "Database unreachable")
		}
		return response.Success(c, fiber.Map{"status": "ok"})
	}
}
