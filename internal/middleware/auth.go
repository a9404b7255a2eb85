package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nabhon/smoif-shop/internal/config"
	"github.com/nabhon/smoif-shop/internal/utils"
)

const adminContextKey = "currentAdmin"

// AdminPrincipal is the verified identity attached to admin requests.
type AdminPrincipal struct {
	ID       uuid.UUID
	Username string
}

// AuthMiddleware validates bearer JWTs and loads the admin principal into the
// request context. Missing, malformed, invalid, and expired tokens all yield
// a 401.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		adminID, username, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(adminContextKey, AdminPrincipal{ID: adminID, Username: username})
		return c.Next()
	}
}

// GetCurrentAdmin extracts the authenticated admin from context.
func GetCurrentAdmin(c *fiber.Ctx) (AdminPrincipal, bool) {
	value := c.Locals(adminContextKey)
	if value == nil {
		return AdminPrincipal{}, false
	}

	if principal, ok := value.(AdminPrincipal); ok {
		return principal, true
	}

	return AdminPrincipal{}, false
}
