package middleware

import (
	"strings"

	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/jwt"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from Authorization header
		var accessToken string
		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		// 2. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 3. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 4. Set user info in context
		actor := domain.AuthenticatedUser{
			ID:   claims.UserID,
			Name: claims.Name,
			Role: domain.Role(claims.Role),
		}
		c.Locals("actor", actor)
		c.Locals("userID", actor.ID)
		c.Locals("userName", actor.Name)
		c.Locals("role", string(actor.Role))

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the Admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleAdmin))
}

// ManagerOrAdmin middleware allows Manager or Admin roles
func ManagerOrAdmin() fiber.Handler {
	return RoleMiddleware(string(domain.RoleManager), string(domain.RoleAdmin))
}

// StaffOnly middleware allows any floor role (Staff, Manager, Admin)
func StaffOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals("actor").(domain.AuthenticatedUser)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !actor.Role.IsStaff() {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}
