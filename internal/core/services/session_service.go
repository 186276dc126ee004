package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/idgen"
	"arcadia-pos/internal/pkg/money"

	"gorm.io/gorm"
)

// SessionService handles gaming session lifecycle and cost computation
type SessionService struct {
	sessionRepo repositories.SessionRepository
	tableRepo   repositories.TableRepository
	orderRepo   repositories.OrderRepository
	cfg         *config.Config
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repositories.SessionRepository,
	tableRepo repositories.TableRepository,
	orderRepo repositories.OrderRepository,
	cfg *config.Config,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		tableRepo:   tableRepo,
		orderRepo:   orderRepo,
		cfg:         cfg,
	}
}

// StartSessionInput represents session start input
type StartSessionInput struct {
	TableID       uint   `json:"table_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// ExtendSessionInput represents a session extension entry
type ExtendSessionInput struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// BillBreakdown is the settlement math for one session at a point in
// time. Paused stretches are not deducted.
type BillBreakdown struct {
	DurationMin    int     `json:"duration_minutes"`
	SessionCost    float64 `json:"session_cost"`
	TotalOrderCost float64 `json:"total_order_cost"`
	Subtotal       float64 `json:"subtotal"`
	Tax            float64 `json:"tax"`
	ServiceFee     float64 `json:"service_fee"`
	Discount       float64 `json:"discount"`
	Total          float64 `json:"total"`
}

// StartSession opens a session on an available table, copies the
// table's hourly rate, and flips the table to occupied with the plug on
func (s *SessionService) StartSession(ctx context.Context, userID uint, input *StartSessionInput) (*models.Session, error) {
	// 1. Table must exist and be free
	table, err := s.tableRepo.GetByID(ctx, input.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	if table.Status != models.TableStatusAvailable {
		return nil, domain.ErrTableNotAvailable
	}

	// 2. Generate the external id
	sessionID, err := s.nextSessionID(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Create the session with the rate frozen at start
	session := &models.Session{
		SessionID:     sessionID,
		TableID:       table.ID,
		TableNumber:   table.TableNumber,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		StartTime:     time.Now(),
		Status:        models.SessionStatusActive,
		HourlyRate:    table.HourlyRate,
		PaymentStatus: models.PaymentStatusPending,
		CreatedBy:     userID,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	// 4. Occupy the table
	updates := map[string]interface{}{
		"status": models.TableStatusOccupied,
	}
	if table.PlugID != nil {
		updates["plug_status"] = models.PlugStatusOn
	}
	if err := s.tableRepo.UpdateFields(ctx, table.ID, updates); err != nil {
		return nil, err
	}

	log.Printf("🎮 Session %s started on table %s", session.SessionID, table.TableNumber)
	return s.sessionRepo.GetByID(ctx, session.ID)
}

// ListSessions lists sessions matching the filter
func (s *SessionService) ListSessions(ctx context.Context, filter repositories.SessionFilter) ([]models.Session, int64, error) {
	return s.sessionRepo.List(ctx, filter)
}

// GetSession resolves a session by its external id (SES-...) or numeric id
func (s *SessionService) GetSession(ctx context.Context, ref string) (*models.Session, error) {
	var session *models.Session
	var err error

	if strings.HasPrefix(ref, idgen.SessionPrefix+"-") {
		session, err = s.sessionRepo.GetBySessionID(ctx, ref)
	} else {
		id, parseErr := strconv.ParseUint(ref, 10, 32)
		if parseErr != nil {
			return nil, domain.ErrSessionNotFound
		}
		session, err = s.sessionRepo.GetByID(ctx, uint(id))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// PauseSession pauses an active session. The clock keeps running.
func (s *SessionService) PauseSession(ctx context.Context, ref string) (*models.Session, error) {
	return s.moveStatus(ctx, ref, models.SessionStatusPaused)
}

// ResumeSession resumes a paused session
func (s *SessionService) ResumeSession(ctx context.Context, ref string) (*models.Session, error) {
	return s.moveStatus(ctx, ref, models.SessionStatusActive)
}

// ExtendSession records an extension entry against the session. The
// entry is informational and does not change the billed amounts.
func (s *SessionService) ExtendSession(ctx context.Context, ref string, input *ExtendSessionInput) (*models.Session, error) {
	session, err := s.GetSession(ctx, ref)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusActive && session.Status != models.SessionStatusPaused {
		return nil, domain.ErrInvalidSessionStatus
	}
	if input.Amount < 0 {
		return nil, domain.ErrInvalidInput
	}

	ext := &models.SessionExtension{
		SessionRef: session.ID,
		Amount:     input.Amount,
		Reason:     input.Reason,
	}
	if err := s.sessionRepo.AddExtension(ctx, ext); err != nil {
		return nil, err
	}

	return s.sessionRepo.GetByID(ctx, session.ID)
}

// EndSession settles a running session: computes the bill, persists the
// amounts, and frees the table
func (s *SessionService) EndSession(ctx context.Context, ref string) (*models.Session, error) {
	session, err := s.GetSession(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !canTransition(sessionTransitions, session.Status, models.SessionStatusCompleted) {
		return nil, domain.ErrInvalidSessionStatus
	}

	endTime := time.Now()
	bill, err := s.QuoteAt(ctx, session, endTime)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.UpdateFields(ctx, session.ID, map[string]interface{}{
		"status":           models.SessionStatusCompleted,
		"end_time":         endTime,
		"duration_min":     bill.DurationMin,
		"session_cost":     bill.SessionCost,
		"total_order_cost": bill.TotalOrderCost,
		"subtotal":         bill.Subtotal,
		"tax":              bill.Tax,
		"service_fee":      bill.ServiceFee,
		"total":            bill.Total,
	}); err != nil {
		return nil, err
	}

	if err := s.freeTable(ctx, session.TableID); err != nil {
		return nil, err
	}

	log.Printf("✅ Session %s ended: %d min, total %.2f", session.SessionID, bill.DurationMin, bill.Total)
	return s.sessionRepo.GetByID(ctx, session.ID)
}

// CancelSession aborts a session without billing and frees the table
func (s *SessionService) CancelSession(ctx context.Context, ref string) (*models.Session, error) {
	session, err := s.GetSession(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !canTransition(sessionTransitions, session.Status, models.SessionStatusCancelled) {
		return nil, domain.ErrInvalidSessionStatus
	}

	if err := s.sessionRepo.UpdateFields(ctx, session.ID, map[string]interface{}{
		"status":   models.SessionStatusCancelled,
		"end_time": time.Now(),
	}); err != nil {
		return nil, err
	}

	if err := s.freeTable(ctx, session.TableID); err != nil {
		return nil, err
	}

	log.Printf("⚠️ Session %s cancelled", session.SessionID)
	return s.sessionRepo.GetByID(ctx, session.ID)
}

// QuoteAt computes the bill for a session as if it ended at the given
// time. Orders placed on the table inside the session window count
// toward the bill unless cancelled; an existing discount is deducted
// and the total never goes below zero.
func (s *SessionService) QuoteAt(ctx context.Context, session *models.Session, at time.Time) (*BillBreakdown, error) {
	durationMin := 0
	if at.After(session.StartTime) {
		durationMin = int(math.Ceil(at.Sub(session.StartTime).Minutes()))
	}
	sessionCost := money.HourlyCost(durationMin, session.HourlyRate)

	orders, err := s.orderRepo.InWindow(ctx, session.TableID, session.StartTime, at)
	if err != nil {
		return nil, err
	}
	orderTotals := make([]float64, 0, len(orders))
	for _, order := range orders {
		orderTotals = append(orderTotals, order.Total)
	}
	totalOrderCost := money.Sum(orderTotals...)

	subtotal := money.Sum(sessionCost, totalOrderCost)
	tax := money.Percent(subtotal, s.cfg.Billing.TaxRate)
	serviceFee := money.Percent(subtotal, s.cfg.Billing.ServiceFeeRate)
	total := money.Floor0(money.Sum(subtotal, tax, serviceFee, -session.Discount))

	return &BillBreakdown{
		DurationMin:    durationMin,
		SessionCost:    sessionCost,
		TotalOrderCost: totalOrderCost,
		Subtotal:       subtotal,
		Tax:            tax,
		ServiceFee:     serviceFee,
		Discount:       session.Discount,
		Total:          total,
	}, nil
}

func (s *SessionService) moveStatus(ctx context.Context, ref, newStatus string) (*models.Session, error) {
	session, err := s.GetSession(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !canTransition(sessionTransitions, session.Status, newStatus) {
		return nil, domain.ErrInvalidSessionStatus
	}

	if err := s.sessionRepo.UpdateFields(ctx, session.ID, map[string]interface{}{
		"status": newStatus,
	}); err != nil {
		return nil, err
	}

	return s.sessionRepo.GetByID(ctx, session.ID)
}

func (s *SessionService) freeTable(ctx context.Context, tableID uint) error {
	return s.tableRepo.UpdateFields(ctx, tableID, map[string]interface{}{
		"status":      models.TableStatusAvailable,
		"plug_status": models.PlugStatusOff,
	})
}

func (s *SessionService) nextSessionID(ctx context.Context) (string, error) {
	now := time.Now()
	count, err := s.sessionRepo.CountByPattern(ctx, idgen.DayPattern(idgen.SessionPrefix, now))
	if err != nil {
		return "", err
	}
	return idgen.Format(idgen.SessionPrefix, now, int(count)+1), nil
}
