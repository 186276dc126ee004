package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/domain"
)

func billingConfig() *config.Config {
	return &config.Config{
		Billing: config.BillingConfig{TaxRate: 8.5, ServiceFeeRate: 5},
	}
}

func TestQuoteAtBillMath(t *testing.T) {
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	session := &models.Session{
		ID:         1,
		TableID:    4,
		StartTime:  start,
		HourlyRate: 100,
		Status:     models.SessionStatusActive,
	}
	orderRepo := &mockOrderRepo{
		inWindowFn: func(ctx context.Context, tableID uint, from, to time.Time) ([]models.Order, error) {
			if tableID != 4 {
				t.Fatalf("expected table 4, got %d", tableID)
			}
			return []models.Order{{Total: 217.00}, {Total: 54.38}}, nil
		},
	}
	svc := NewSessionService(&mockSessionRepo{}, &mockTableRepo{}, orderRepo, billingConfig())

	bill, err := svc.QuoteAt(context.Background(), session, start.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	if bill.DurationMin != 90 {
		t.Errorf("duration = %d, want 90", bill.DurationMin)
	}
	if bill.SessionCost != 150.00 {
		t.Errorf("session cost = %.2f, want 150.00", bill.SessionCost)
	}
	if bill.TotalOrderCost != 271.38 {
		t.Errorf("order cost = %.2f, want 271.38", bill.TotalOrderCost)
	}
	if bill.Subtotal != 421.38 {
		t.Errorf("subtotal = %.2f, want 421.38", bill.Subtotal)
	}
	if bill.Tax != 35.82 {
		t.Errorf("tax = %.2f, want 35.82", bill.Tax)
	}
	if bill.ServiceFee != 21.07 {
		t.Errorf("service fee = %.2f, want 21.07", bill.ServiceFee)
	}
	if bill.Total != 478.27 {
		t.Errorf("total = %.2f, want 478.27", bill.Total)
	}
}

func TestQuoteAtCeilsPartialMinutes(t *testing.T) {
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	session := &models.Session{StartTime: start, HourlyRate: 60}
	svc := NewSessionService(&mockSessionRepo{}, &mockTableRepo{}, &mockOrderRepo{}, billingConfig())

	bill, err := svc.QuoteAt(context.Background(), session, start.Add(60*time.Minute+30*time.Second))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if bill.DurationMin != 61 {
		t.Errorf("duration = %d, want 61", bill.DurationMin)
	}
	if bill.SessionCost != 61.00 {
		t.Errorf("session cost = %.2f, want 61.00", bill.SessionCost)
	}
}

func TestQuoteAtDiscountFloorsAtZero(t *testing.T) {
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	session := &models.Session{StartTime: start, HourlyRate: 100, Discount: 10000}
	svc := NewSessionService(&mockSessionRepo{}, &mockTableRepo{}, &mockOrderRepo{}, billingConfig())

	bill, err := svc.QuoteAt(context.Background(), session, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if bill.Total != 0 {
		t.Errorf("total = %.2f, want 0", bill.Total)
	}
}

func TestStartSessionRejectsNonAvailableTable(t *testing.T) {
	tableRepo := &mockTableRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Table, error) {
			return &models.Table{ID: id, Status: models.TableStatusOccupied}, nil
		},
	}
	svc := NewSessionService(&mockSessionRepo{}, tableRepo, &mockOrderRepo{}, billingConfig())

	_, err := svc.StartSession(context.Background(), 1, &StartSessionInput{TableID: 3})
	if !errors.Is(err, domain.ErrTableNotAvailable) {
		t.Fatalf("expected ErrTableNotAvailable, got %v", err)
	}
}

func TestStartSessionFlipsTableAndCopiesRate(t *testing.T) {
	plugID := "plug-07"
	var created *models.Session
	var tableUpdates map[string]interface{}

	tableRepo := &mockTableRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Table, error) {
			return &models.Table{
				ID:          id,
				TableNumber: "PS5-1",
				Status:      models.TableStatusAvailable,
				HourlyRate:  120,
				PlugID:      &plugID,
			}, nil
		},
		updateFieldsFn: func(ctx context.Context, id uint, updates map[string]interface{}) error {
			tableUpdates = updates
			return nil
		},
	}
	sessionRepo := &mockSessionRepo{
		createFn: func(ctx context.Context, session *models.Session) error {
			session.ID = 11
			created = session
			return nil
		},
		getByIDFn: func(ctx context.Context, id uint) (*models.Session, error) {
			return created, nil
		},
	}
	svc := NewSessionService(sessionRepo, tableRepo, &mockOrderRepo{}, billingConfig())

	session, err := svc.StartSession(context.Background(), 5, &StartSessionInput{TableID: 3, CustomerName: "Ravi"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if session.Status != models.SessionStatusActive {
		t.Errorf("status = %s, want active", session.Status)
	}
	if session.HourlyRate != 120 {
		t.Errorf("hourly rate = %.2f, want 120", session.HourlyRate)
	}
	if !strings.HasPrefix(session.SessionID, "SES-") {
		t.Errorf("session id %q missing SES- prefix", session.SessionID)
	}
	if tableUpdates["status"] != models.TableStatusOccupied {
		t.Errorf("table status update = %v, want occupied", tableUpdates["status"])
	}
	if tableUpdates["plug_status"] != models.PlugStatusOn {
		t.Errorf("plug status update = %v, want on", tableUpdates["plug_status"])
	}
}

func TestEndSessionPersistsBillAndFreesTable(t *testing.T) {
	// 119.5 minutes ago so the live clock lands on a 120 minute ceiling
	start := time.Now().Add(-119*time.Minute - 30*time.Second)
	session := &models.Session{
		ID:         9,
		TableID:    2,
		StartTime:  start,
		HourlyRate: 100,
		Status:     models.SessionStatusActive,
	}

	var sessionUpdates map[string]interface{}
	var tableUpdates map[string]interface{}

	sessionRepo := &mockSessionRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Session, error) {
			return session, nil
		},
		updateFieldsFn: func(ctx context.Context, id uint, updates map[string]interface{}) error {
			sessionUpdates = updates
			return nil
		},
	}
	tableRepo := &mockTableRepo{
		updateFieldsFn: func(ctx context.Context, id uint, updates map[string]interface{}) error {
			tableUpdates = updates
			return nil
		},
	}
	orderRepo := &mockOrderRepo{
		inWindowFn: func(ctx context.Context, tableID uint, from, to time.Time) ([]models.Order, error) {
			return []models.Order{{Total: 100.00}}, nil
		},
	}
	svc := NewSessionService(sessionRepo, tableRepo, orderRepo, billingConfig())

	if _, err := svc.EndSession(context.Background(), "9"); err != nil {
		t.Fatalf("end: %v", err)
	}

	if sessionUpdates["status"] != models.SessionStatusCompleted {
		t.Errorf("status update = %v, want completed", sessionUpdates["status"])
	}
	if sessionUpdates["duration_min"] != 120 {
		t.Errorf("duration update = %v, want 120", sessionUpdates["duration_min"])
	}
	if sessionUpdates["session_cost"] != 200.00 {
		t.Errorf("session cost update = %v, want 200.00", sessionUpdates["session_cost"])
	}
	if sessionUpdates["subtotal"] != 300.00 {
		t.Errorf("subtotal update = %v, want 300.00", sessionUpdates["subtotal"])
	}
	if sessionUpdates["tax"] != 25.50 {
		t.Errorf("tax update = %v, want 25.50", sessionUpdates["tax"])
	}
	if sessionUpdates["service_fee"] != 15.00 {
		t.Errorf("service fee update = %v, want 15.00", sessionUpdates["service_fee"])
	}
	if sessionUpdates["total"] != 340.50 {
		t.Errorf("total update = %v, want 340.50", sessionUpdates["total"])
	}
	if tableUpdates["status"] != models.TableStatusAvailable {
		t.Errorf("table status update = %v, want available", tableUpdates["status"])
	}
	if tableUpdates["plug_status"] != models.PlugStatusOff {
		t.Errorf("plug status update = %v, want off", tableUpdates["plug_status"])
	}
}

func TestEndSessionRejectsTerminalStatus(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Session, error) {
			return &models.Session{ID: id, Status: models.SessionStatusCompleted}, nil
		},
	}
	svc := NewSessionService(sessionRepo, &mockTableRepo{}, &mockOrderRepo{}, billingConfig())

	_, err := svc.EndSession(context.Background(), "3")
	if !errors.Is(err, domain.ErrInvalidSessionStatus) {
		t.Fatalf("expected ErrInvalidSessionStatus, got %v", err)
	}
}

func TestPauseResumeRoundTrip(t *testing.T) {
	session := &models.Session{ID: 1, Status: models.SessionStatusActive}
	sessionRepo := &mockSessionRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Session, error) {
			return session, nil
		},
		updateFieldsFn: func(ctx context.Context, id uint, updates map[string]interface{}) error {
			session.Status = updates["status"].(string)
			return nil
		},
	}
	svc := NewSessionService(sessionRepo, &mockTableRepo{}, &mockOrderRepo{}, billingConfig())
	ctx := context.Background()

	if _, err := svc.PauseSession(ctx, "1"); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if session.Status != models.SessionStatusPaused {
		t.Fatalf("status = %s, want paused", session.Status)
	}
	if _, err := svc.ResumeSession(ctx, "1"); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if session.Status != models.SessionStatusActive {
		t.Fatalf("status = %s, want active", session.Status)
	}

	// Resuming an already active session is not a transition
	if _, err := svc.ResumeSession(ctx, "1"); !errors.Is(err, domain.ErrInvalidSessionStatus) {
		t.Fatalf("expected ErrInvalidSessionStatus, got %v", err)
	}
}

func TestExtendSessionAppendsEntry(t *testing.T) {
	var added *models.SessionExtension
	sessionRepo := &mockSessionRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Session, error) {
			return &models.Session{ID: id, Status: models.SessionStatusActive}, nil
		},
		addExtensionFn: func(ctx context.Context, ext *models.SessionExtension) error {
			added = ext
			return nil
		},
	}
	svc := NewSessionService(sessionRepo, &mockTableRepo{}, &mockOrderRepo{}, billingConfig())

	if _, err := svc.ExtendSession(context.Background(), "6", &ExtendSessionInput{Amount: 50, Reason: "birthday slot"}); err != nil {
		t.Fatalf("extend: %v", err)
	}
	if added == nil {
		t.Fatal("extension was not recorded")
	}
	if added.SessionRef != 6 || added.Amount != 50 {
		t.Errorf("extension = %+v, want session 6 amount 50", added)
	}
}
