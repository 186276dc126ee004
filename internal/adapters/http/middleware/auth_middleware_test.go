package middleware

import (
	"net/http/httptest"
	"testing"

	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:          "middleware-test-secret",
			AccessTokenMins: 5,
		},
	}
}

func TestAuthMiddlewareRequiresToken(t *testing.T) {
	app := fiber.New()
	app.Use(AuthMiddleware(authTestConfig()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.StatusCode)
	}
}

func TestAuthMiddlewareSetsActor(t *testing.T) {
	cfg := authTestConfig()
	token, err := jwt.GenerateAccessToken(7, "Asha", "Manager", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var actor domain.AuthenticatedUser
	app := fiber.New()
	app.Use(AuthMiddleware(cfg))
	app.Get("/", func(c *fiber.Ctx) error {
		actor, _ = c.Locals("actor").(domain.AuthenticatedUser)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with a valid token, got %d", resp.StatusCode)
	}

	if actor.ID != 7 || actor.Name != "Asha" || actor.Role != domain.RoleManager {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestStaffOnlyBlocksCustomerRole(t *testing.T) {
	newApp := func(role domain.Role) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("actor", domain.AuthenticatedUser{ID: 2, Name: "Guest", Role: role})
			return c.Next()
		})
		app.Use(StaffOnly())
		app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
		return app
	}

	resp, err := newApp(domain.RoleUser).Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for a customer account, got %d", resp.StatusCode)
	}

	resp, err = newApp(domain.RoleStaff).Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for a staff account, got %d", resp.StatusCode)
	}
}
