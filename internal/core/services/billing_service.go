package services

import (
	"context"
	"errors"
	"log"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/money"

	"gorm.io/gorm"
)

// BillingService handles discounts, settlement and receipts. Discount
// rights come from the acting user's permission bundle, not the role
// name, so a future per-user override keeps working.
type BillingService struct {
	sessionRepo repositories.SessionRepository
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	sessionSvc  *SessionService
	orderSvc    *OrderService
}

// NewBillingService creates a new billing service
func NewBillingService(
	sessionRepo repositories.SessionRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	sessionSvc *SessionService,
	orderSvc *OrderService,
) *BillingService {
	return &BillingService{
		sessionRepo: sessionRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		sessionSvc:  sessionSvc,
		orderSvc:    orderSvc,
	}
}

// DiscountInput carries exactly one of a percentage or a fixed amount
type DiscountInput struct {
	Percent *float64 `json:"percent"`
	Amount  *float64 `json:"amount"`
}

// PayInput represents payment input
type PayInput struct {
	Method string `json:"method"`
}

// Receipt is the printable settlement projection for a session
type Receipt struct {
	Session *models.Session `json:"session"`
	Orders  []models.Order  `json:"orders"`
	Bill    *BillBreakdown  `json:"bill"`
}

// ApplySessionDiscount stores a discount on a session. On a completed
// session the stored totals are recomputed immediately; on a running one
// the discount is deducted when the session ends.
func (s *BillingService) ApplySessionDiscount(ctx context.Context, actingUserID uint, ref string, input *DiscountInput) (*models.Session, error) {
	perms, err := s.permissionsFor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !perms.Billing.BillDiscount {
		return nil, domain.ErrDiscountNotAllowed
	}

	session, err := s.sessionSvc.GetSession(ctx, ref)
	if err != nil {
		return nil, err
	}
	if session.PaymentStatus == models.PaymentStatusPaid {
		return nil, domain.ErrSessionAlreadyPaid
	}
	if session.Status == models.SessionStatusCancelled {
		return nil, domain.ErrInvalidSessionStatus
	}

	// Base the discount on the settled subtotal, or on a live quote
	// when the session is still running
	subtotal := session.Subtotal
	if session.Status == models.SessionStatusActive || session.Status == models.SessionStatusPaused {
		bill, err := s.sessionSvc.QuoteAt(ctx, session, time.Now())
		if err != nil {
			return nil, err
		}
		subtotal = bill.Subtotal
	}

	value, err := discountValue(subtotal, input, perms.Billing.MaxDiscountPercent)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"discount": value,
	}
	if session.Status == models.SessionStatusCompleted {
		updates["total"] = money.Floor0(money.Sum(session.Subtotal, session.Tax, session.ServiceFee, -value))
	}
	if err := s.sessionRepo.UpdateFields(ctx, session.ID, updates); err != nil {
		return nil, err
	}

	log.Printf("💸 Discount %.2f applied to session %s by user %d", value, session.SessionID, actingUserID)
	return s.sessionRepo.GetByID(ctx, session.ID)
}

// ApplyOrderDiscount stores a discount on an unpaid order and recomputes
// its total
func (s *BillingService) ApplyOrderDiscount(ctx context.Context, actingUserID uint, ref string, input *DiscountInput) (*models.Order, error) {
	perms, err := s.permissionsFor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !perms.Billing.ItemDiscount {
		return nil, domain.ErrDiscountNotAllowed
	}

	order, err := s.orderSvc.GetOrder(ctx, ref)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, domain.ErrOrderAlreadyPaid
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, domain.ErrInvalidOrderStatus
	}

	value, err := discountValue(order.Subtotal, input, perms.Billing.MaxDiscountPercent)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateFields(ctx, order.ID, map[string]interface{}{
		"discount": value,
		"total":    money.Floor0(money.Sum(order.Subtotal, order.Tax, -value)),
	}); err != nil {
		return nil, err
	}

	log.Printf("💸 Discount %.2f applied to order %s by user %d", value, order.OrderID, actingUserID)
	return s.orderSvc.GetOrder(ctx, ref)
}

// PaySession settles a session. A still-running session is ended first,
// then the session and every order in its window are marked paid.
func (s *BillingService) PaySession(ctx context.Context, actingUserID uint, ref string, input *PayInput) (*models.Session, error) {
	perms, err := s.permissionsFor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !perms.Billing.AcceptPayment {
		return nil, domain.ErrForbidden
	}
	if !models.ValidPaymentMethod(input.Method) {
		return nil, domain.ErrInvalidInput
	}

	session, err := s.sessionSvc.GetSession(ctx, ref)
	if err != nil {
		return nil, err
	}
	if session.PaymentStatus == models.PaymentStatusPaid {
		return nil, domain.ErrSessionAlreadyPaid
	}
	if session.Status == models.SessionStatusCancelled {
		return nil, domain.ErrInvalidSessionStatus
	}

	// End the clock first so the bill is final
	if session.Status == models.SessionStatusActive || session.Status == models.SessionStatusPaused {
		session, err = s.sessionSvc.EndSession(ctx, ref)
		if err != nil {
			return nil, err
		}
	}

	if err := s.sessionRepo.UpdateFields(ctx, session.ID, map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"payment_method": input.Method,
	}); err != nil {
		return nil, err
	}

	windowEnd := time.Now()
	if session.EndTime != nil {
		windowEnd = *session.EndTime
	}
	if err := s.orderRepo.MarkPaidInWindow(ctx, session.TableID, session.StartTime, windowEnd, input.Method); err != nil {
		return nil, err
	}

	log.Printf("💰 Session %s paid via %s (total %.2f)", session.SessionID, input.Method, session.Total)
	return s.sessionRepo.GetByID(ctx, session.ID)
}

// GetReceipt builds the receipt projection. For a running session the
// bill is a live recomputation and nothing is persisted.
func (s *BillingService) GetReceipt(ctx context.Context, ref string) (*Receipt, error) {
	session, err := s.sessionSvc.GetSession(ctx, ref)
	if err != nil {
		return nil, err
	}

	windowEnd := time.Now()
	live := session.Status == models.SessionStatusActive || session.Status == models.SessionStatusPaused
	if !live && session.EndTime != nil {
		windowEnd = *session.EndTime
	}

	orders, err := s.orderRepo.InWindow(ctx, session.TableID, session.StartTime, windowEnd)
	if err != nil {
		return nil, err
	}

	var bill *BillBreakdown
	if live {
		bill, err = s.sessionSvc.QuoteAt(ctx, session, windowEnd)
		if err != nil {
			return nil, err
		}
	} else {
		bill = &BillBreakdown{
			DurationMin:    session.DurationMin,
			SessionCost:    session.SessionCost,
			TotalOrderCost: session.TotalOrderCost,
			Subtotal:       session.Subtotal,
			Tax:            session.Tax,
			ServiceFee:     session.ServiceFee,
			Discount:       session.Discount,
			Total:          session.Total,
		}
	}

	return &Receipt{
		Session: session,
		Orders:  orders,
		Bill:    bill,
	}, nil
}

func (s *BillingService) permissionsFor(ctx context.Context, userID uint) (*domain.Permissions, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return &user.Permissions, nil
}

// discountValue resolves a percent-or-fixed discount against a subtotal
// and enforces the caller's percentage ceiling
func discountValue(subtotal float64, input *DiscountInput, maxPercent float64) (float64, error) {
	switch {
	case input.Percent != nil && input.Amount == nil:
		pct := *input.Percent
		if pct <= 0 {
			return 0, domain.ErrInvalidInput
		}
		if pct > maxPercent {
			return 0, domain.ErrDiscountTooLarge
		}
		return money.Percent(subtotal, pct), nil
	case input.Amount != nil && input.Percent == nil:
		amount := *input.Amount
		if amount <= 0 {
			return 0, domain.ErrInvalidInput
		}
		if subtotal > 0 && amount > money.Percent(subtotal, maxPercent) {
			return 0, domain.ErrDiscountTooLarge
		}
		return money.Round2(amount), nil
	default:
		return 0, domain.ErrInvalidInput
	}
}
