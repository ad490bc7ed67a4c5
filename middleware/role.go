package middleware

import (
	"github.com/gofiber/fiber/v2"

	"waypoint/database"
	"waypoint/lms"
)

// RequireRoles resolves the caller's identity and rejects the request unless
// the session carries one of the given roles. The resolved session is stored
// in Locals("session") for the handler; handlers performing writes still
// re-check authorization themselves.
func RequireRoles(roles ...lms.RoleSlug) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		session := lms.NewResolver(database.Database.Db).Resolve(userID)
		if session == nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
		}

		for _, role := range roles {
			if session.Effective == role || session.Has(role) {
				c.Locals("session", session)
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
