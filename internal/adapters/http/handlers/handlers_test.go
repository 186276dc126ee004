package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/core/services"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:          "handler-test-secret",
			AccessTokenMins: 60,
		},
		Billing: config.BillingConfig{
			TaxRate:        8.5,
			ServiceFeeRate: 5,
		},
	}
}

func userWithRole(role domain.Role) *models.User {
	return &models.User{
		ID:          1,
		Name:        "Test User",
		Role:        string(role),
		Permissions: domain.DefaultPermissions(role),
		IsActive:    true,
	}
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response) response.Response {
	t.Helper()
	var env response.Response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestRegisterMissingFieldsReturnsFieldErrors(t *testing.T) {
	app := fiber.New()
	cfg := testConfig()
	h := NewAuthHandler(services.NewAuthService(&mockUserRepo{}, cfg), cfg)
	app.Post("/auth/register", h.Register)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/auth/register", fiber.Map{}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Success {
		t.Fatal("expected success=false")
	}
	if env.Error != "validation failed" {
		t.Fatalf("expected validation error marker, got %q", env.Error)
	}
	if len(env.Errors) != 5 {
		t.Fatalf("expected 5 field errors, got %d", len(env.Errors))
	}
}

func TestRegisterDuplicateEmailReturnsBadRequest(t *testing.T) {
	userRepo := &mockUserRepo{
		existsEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	app := fiber.New()
	cfg := testConfig()
	h := NewAuthHandler(services.NewAuthService(userRepo, cfg), cfg)
	app.Post("/auth/register", h.Register)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/auth/register", RegisterRequest{
		Name:     "Rahul",
		Username: "rahul",
		Email:    "rahul@example.com",
		Password: "letters123",
		Role:     "Staff",
	}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Error != "Username or email already exists" {
		t.Fatalf("unexpected error message %q", env.Error)
	}
}

func TestGetTableNotFound(t *testing.T) {
	app := fiber.New()
	h := NewTableHandler(services.NewTableService(&mockTableRepo{}, &mockSessionRepo{}))
	app.Get("/tables/:id", h.GetByID)

	resp, err := app.Test(jsonRequest(fiber.MethodGet, "/tables/42", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Error != "Table not found" {
		t.Fatalf("unexpected error message %q", env.Error)
	}
}

func TestStartSessionOnOccupiedTableReturnsBadRequest(t *testing.T) {
	tableRepo := &mockTableRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Table, error) {
			return &models.Table{ID: id, TableNumber: "PS5-01", Status: models.TableStatusOccupied}, nil
		},
	}
	app := fiber.New()
	svc := services.NewSessionService(&mockSessionRepo{}, tableRepo, &mockOrderRepo{}, testConfig())
	h := NewSessionHandler(svc)
	app.Post("/sessions", h.Start)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/sessions", services.StartSessionInput{TableID: 3}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for occupied table, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Error != "Table is not available" {
		t.Fatalf("unexpected error message %q", env.Error)
	}
}

func TestCreateReservationSlotExhaustedReturnsConflict(t *testing.T) {
	resRepo := &mockReservationRepo{
		createAssigningFn: func(ctx context.Context, res *models.Reservation) error {
			return domain.ErrNoTablesAvailable
		},
	}
	app := fiber.New()
	h := NewReservationHandler(services.NewReservationService(resRepo, &mockTableRepo{}))
	app.Post("/reservations", h.Create)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/reservations", services.CreateReservationInput{
		CustomerName:  "Priya",
		CustomerPhone: "9876500000",
		TableType:     "ps5",
		Date:          "2026-09-01",
		Time:          "19:00",
		PartySize:     2,
	}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 when no table fits the slot, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Error != "No tables available for the requested slot" {
		t.Fatalf("unexpected error message %q", env.Error)
	}
}

func billingHandlerFixture(user *models.User, sessionRepo *mockSessionRepo) *BillingHandler {
	userRepo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return user, nil
		},
	}
	cfg := testConfig()
	orderRepo := &mockOrderRepo{}
	tableRepo := &mockTableRepo{}
	sessionSvc := services.NewSessionService(sessionRepo, tableRepo, orderRepo, cfg)
	orderSvc := services.NewOrderService(orderRepo, tableRepo, &mockMenuRepo{}, nil, cfg)
	return NewBillingHandler(services.NewBillingService(sessionRepo, orderRepo, userRepo, sessionSvc, orderSvc))
}

func TestDiscountSessionForbiddenWithoutBillPermission(t *testing.T) {
	app := fiber.New()
	h := billingHandlerFixture(userWithRole(domain.RoleStaff), &mockSessionRepo{})
	app.Post("/sessions/:ref/discount", h.DiscountSession)

	pct := 5.0
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/sessions/4/discount", services.DiscountInput{Percent: &pct}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for staff bill discount, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Error != "You are not allowed to discount session bills" {
		t.Fatalf("unexpected error message %q", env.Error)
	}
}

func TestPaySessionAlreadyPaidReturnsBadRequest(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Session, error) {
			return &models.Session{
				ID:            id,
				SessionID:     "SES-20260825-001",
				Status:        models.SessionStatusCompleted,
				PaymentStatus: models.PaymentStatusPaid,
			}, nil
		},
	}
	app := fiber.New()
	h := billingHandlerFixture(userWithRole(domain.RoleAdmin), sessionRepo)
	app.Post("/sessions/:ref/pay", h.PaySession)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/sessions/9/pay", services.PayInput{Method: "cash"}))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for a settled session, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Error != "Session is already paid" {
		t.Fatalf("unexpected error message %q", env.Error)
	}
}
