package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"waypoint/config"
)

// RequireServiceKey guards the trusted service endpoints. These routes carry
// no caller-role check at all; possession of the service key is the trust
// boundary, mirroring how a service-role credential bypasses row policies.
func RequireServiceKey(c *fiber.Ctx) error {
	if !config.HasServiceKey() {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "Service role not configured",
		})
	}

	provided := c.Get("X-Service-Key")
	expected := config.AppConfig.ServiceRoleKey
	if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid service key",
		})
	}

	return c.Next()
}
