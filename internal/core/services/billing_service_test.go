package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/core/domain"
)

func userWithRole(role domain.Role) *models.User {
	return &models.User{
		ID:          1,
		Name:        "Asha",
		Role:        string(role),
		IsActive:    true,
		Permissions: domain.DefaultPermissions(role),
	}
}

func userRepoReturning(user *models.User) *mockUserRepo {
	return &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return user, nil
		},
	}
}

func completedSession() *models.Session {
	return &models.Session{
		ID:            4,
		SessionID:     "SES-20260314-0004",
		TableID:       2,
		Status:        models.SessionStatusCompleted,
		PaymentStatus: models.PaymentStatusPending,
		Subtotal:      400,
		Tax:           34,
		ServiceFee:    20,
		Total:         454,
	}
}

func billingFixture(user *models.User, session *models.Session) (*BillingService, *mockSessionRepo, *mockOrderRepo) {
	sessionRepo := &mockSessionRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Session, error) {
			return session, nil
		},
	}
	orderRepo := &mockOrderRepo{}
	tableRepo := &mockTableRepo{}
	cfg := billingConfig()
	sessionSvc := NewSessionService(sessionRepo, tableRepo, orderRepo, cfg)
	orderSvc := NewOrderService(orderRepo, tableRepo, &mockMenuRepo{}, nil, cfg)
	svc := NewBillingService(sessionRepo, orderRepo, userRepoReturning(user), sessionSvc, orderSvc)
	return svc, sessionRepo, orderRepo
}

func TestSessionDiscountRequiresBillPermission(t *testing.T) {
	svc, _, _ := billingFixture(userWithRole(domain.RoleStaff), completedSession())

	pct := 5.0
	_, err := svc.ApplySessionDiscount(context.Background(), 1, "4", &DiscountInput{Percent: &pct})
	if !errors.Is(err, domain.ErrDiscountNotAllowed) {
		t.Fatalf("expected ErrDiscountNotAllowed, got %v", err)
	}
}

func TestSessionDiscountCapEnforced(t *testing.T) {
	svc, _, _ := billingFixture(userWithRole(domain.RoleManager), completedSession())

	pct := 30.0
	_, err := svc.ApplySessionDiscount(context.Background(), 1, "4", &DiscountInput{Percent: &pct})
	if !errors.Is(err, domain.ErrDiscountTooLarge) {
		t.Fatalf("expected ErrDiscountTooLarge, got %v", err)
	}
}

func TestSessionDiscountRecomputesCompletedTotal(t *testing.T) {
	session := completedSession()
	svc, sessionRepo, _ := billingFixture(userWithRole(domain.RoleAdmin), session)

	var updates map[string]interface{}
	sessionRepo.updateFieldsFn = func(ctx context.Context, id uint, fields map[string]interface{}) error {
		updates = fields
		return nil
	}

	pct := 10.0
	if _, err := svc.ApplySessionDiscount(context.Background(), 1, "4", &DiscountInput{Percent: &pct}); err != nil {
		t.Fatalf("discount: %v", err)
	}

	if updates["discount"] != 40.00 {
		t.Errorf("discount update = %v, want 40.00", updates["discount"])
	}
	if updates["total"] != 414.00 {
		t.Errorf("total update = %v, want 414.00", updates["total"])
	}
}

func TestSessionDiscountRejectsBothInputsOrNeither(t *testing.T) {
	svc, _, _ := billingFixture(userWithRole(domain.RoleAdmin), completedSession())
	ctx := context.Background()

	if _, err := svc.ApplySessionDiscount(ctx, 1, "4", &DiscountInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty input, got %v", err)
	}

	pct, amt := 5.0, 20.0
	_, err := svc.ApplySessionDiscount(ctx, 1, "4", &DiscountInput{Percent: &pct, Amount: &amt})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for both inputs, got %v", err)
	}
}

func TestOrderDiscountUsesItemPermission(t *testing.T) {
	order := &models.Order{
		ID:            8,
		OrderID:       "ORD-20260314-0008",
		Status:        models.OrderStatusServed,
		PaymentStatus: models.PaymentStatusPending,
		Subtotal:      200,
		Tax:           17,
		Total:         217,
	}
	svc, _, orderRepo := billingFixture(userWithRole(domain.RoleStaff), completedSession())
	orderRepo.getByIDFn = func(ctx context.Context, id uint) (*models.Order, error) {
		return order, nil
	}

	var updates map[string]interface{}
	orderRepo.updateFieldsFn = func(ctx context.Context, id uint, fields map[string]interface{}) error {
		updates = fields
		return nil
	}

	// Staff item-discount ceiling is 5 percent
	pct := 5.0
	if _, err := svc.ApplyOrderDiscount(context.Background(), 1, "8", &DiscountInput{Percent: &pct}); err != nil {
		t.Fatalf("discount: %v", err)
	}
	if updates["discount"] != 10.00 {
		t.Errorf("discount update = %v, want 10.00", updates["discount"])
	}
	if updates["total"] != 207.00 {
		t.Errorf("total update = %v, want 207.00", updates["total"])
	}

	over := 10.0
	_, err := svc.ApplyOrderDiscount(context.Background(), 1, "8", &DiscountInput{Percent: &over})
	if !errors.Is(err, domain.ErrDiscountTooLarge) {
		t.Fatalf("expected ErrDiscountTooLarge, got %v", err)
	}
}

func TestPaySessionRejectsAlreadyPaid(t *testing.T) {
	session := completedSession()
	session.PaymentStatus = models.PaymentStatusPaid
	svc, _, _ := billingFixture(userWithRole(domain.RoleAdmin), session)

	_, err := svc.PaySession(context.Background(), 1, "4", &PayInput{Method: models.PaymentMethodCash})
	if !errors.Is(err, domain.ErrSessionAlreadyPaid) {
		t.Fatalf("expected ErrSessionAlreadyPaid, got %v", err)
	}
}

func TestPaySessionRequiresAcceptPayment(t *testing.T) {
	svc, _, _ := billingFixture(userWithRole(domain.RoleUser), completedSession())

	_, err := svc.PaySession(context.Background(), 1, "4", &PayInput{Method: models.PaymentMethodCash})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPaySessionRejectsUnknownMethod(t *testing.T) {
	svc, _, _ := billingFixture(userWithRole(domain.RoleAdmin), completedSession())

	_, err := svc.PaySession(context.Background(), 1, "4", &PayInput{Method: "barter"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPaySessionEndsActiveSessionInline(t *testing.T) {
	session := &models.Session{
		ID:            6,
		SessionID:     "SES-20260314-0006",
		TableID:       3,
		StartTime:     time.Now().Add(-30 * time.Minute),
		HourlyRate:    100,
		Status:        models.SessionStatusActive,
		PaymentStatus: models.PaymentStatusPending,
	}
	svc, sessionRepo, orderRepo := billingFixture(userWithRole(domain.RoleAdmin), session)

	var updateCalls []map[string]interface{}
	sessionRepo.updateFieldsFn = func(ctx context.Context, id uint, fields map[string]interface{}) error {
		updateCalls = append(updateCalls, fields)
		return nil
	}

	markedMethod := ""
	orderRepo.markPaidFn = func(ctx context.Context, tableID uint, from, to time.Time, method string) error {
		markedMethod = method
		return nil
	}

	if _, err := svc.PaySession(context.Background(), 1, "6", &PayInput{Method: models.PaymentMethodUPI}); err != nil {
		t.Fatalf("pay: %v", err)
	}

	ended, paid := false, false
	for _, call := range updateCalls {
		if call["status"] == models.SessionStatusCompleted {
			ended = true
		}
		if call["payment_status"] == models.PaymentStatusPaid {
			paid = true
		}
	}
	if !ended {
		t.Error("active session was not ended before payment")
	}
	if !paid {
		t.Error("session was not marked paid")
	}
	if markedMethod != models.PaymentMethodUPI {
		t.Errorf("orders marked with method %q, want upi", markedMethod)
	}
}

func TestReceiptRecomputesLiveForActiveSession(t *testing.T) {
	session := &models.Session{
		ID:         7,
		TableID:    2,
		StartTime:  time.Now().Add(-59*time.Minute - 30*time.Second),
		HourlyRate: 100,
		Status:     models.SessionStatusActive,
	}
	svc, _, orderRepo := billingFixture(userWithRole(domain.RoleAdmin), session)
	orderRepo.inWindowFn = func(ctx context.Context, tableID uint, from, to time.Time) ([]models.Order, error) {
		return []models.Order{{Total: 50}}, nil
	}

	receipt, err := svc.GetReceipt(context.Background(), "7")
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}

	// 60 min at 100/h plus 50 of orders: subtotal 150, tax 12.75, fee 7.50
	if receipt.Bill.Subtotal != 150.00 {
		t.Errorf("subtotal = %.2f, want 150.00", receipt.Bill.Subtotal)
	}
	if receipt.Bill.Total != 170.25 {
		t.Errorf("total = %.2f, want 170.25", receipt.Bill.Total)
	}
	if len(receipt.Orders) != 1 {
		t.Errorf("orders = %d, want 1", len(receipt.Orders))
	}
}

func TestReceiptUsesPersistedAmountsWhenSettled(t *testing.T) {
	session := completedSession()
	now := time.Now()
	session.EndTime = &now
	svc, _, _ := billingFixture(userWithRole(domain.RoleAdmin), session)

	receipt, err := svc.GetReceipt(context.Background(), "4")
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if receipt.Bill.Total != 454 {
		t.Errorf("total = %.2f, want 454 from stored amounts", receipt.Bill.Total)
	}
}
