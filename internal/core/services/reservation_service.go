package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/idgen"

	"gorm.io/gorm"
)

// ReservationService handles table reservations
type ReservationService struct {
	reservationRepo repositories.ReservationRepository
	tableRepo       repositories.TableRepository
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservationRepo repositories.ReservationRepository,
	tableRepo repositories.TableRepository,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
	}
}

// CreateReservationInput represents reservation creation input
type CreateReservationInput struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	TableType     string `json:"table_type"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	DurationMin   int    `json:"duration_minutes"`
	PartySize     int    `json:"party_size"`
	Notes         string `json:"notes"`
}

// CreateReservation books a slot. Table assignment happens inside the
// repository transaction so concurrent bookings cannot take the same
// table for one slot.
func (s *ReservationService) CreateReservation(ctx context.Context, userID uint, input *CreateReservationInput) (*models.Reservation, error) {
	// 1. Validate the slot
	if input.CustomerName == "" || input.CustomerPhone == "" {
		return nil, domain.ErrInvalidInput
	}
	if !models.ValidTableType(input.TableType) {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if input.PartySize < 1 {
		return nil, domain.ErrInvalidInput
	}
	durationMin := input.DurationMin
	if durationMin <= 0 {
		durationMin = 60
	}

	// 2. Generate the external id
	reservationID, err := s.nextReservationID(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Create with table assignment in one transaction
	res := &models.Reservation{
		ReservationID:   reservationID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerEmail:   input.CustomerEmail,
		TableType:       input.TableType,
		Date:            date,
		Time:            input.Time,
		DurationMin:     durationMin,
		PartySize:       input.PartySize,
		Status:          models.ReservationStatusConfirmed,
		SpecialRequests: input.Notes,
		CreatedBy:       &userID,
	}
	if err := s.reservationRepo.CreateAssigning(ctx, res); err != nil {
		return nil, err
	}

	log.Printf("📅 Reservation %s created for %s %s (%s)", res.ReservationID, input.Date, input.Time, input.TableType)
	return s.reservationRepo.GetByID(ctx, res.ID)
}

// ListReservations lists reservations matching the filter
func (s *ReservationService) ListReservations(ctx context.Context, filter repositories.ReservationFilter) ([]models.Reservation, int64, error) {
	return s.reservationRepo.List(ctx, filter)
}

// GetReservation resolves a reservation by its external id (RES-...) or
// numeric id
func (s *ReservationService) GetReservation(ctx context.Context, ref string) (*models.Reservation, error) {
	var res *models.Reservation
	var err error

	if strings.HasPrefix(ref, idgen.ReservationPrefix+"-") {
		res, err = s.reservationRepo.GetByReservationID(ctx, ref)
	} else {
		id, parseErr := strconv.ParseUint(ref, 10, 32)
		if parseErr != nil {
			return nil, domain.ErrReservationNotFound
		}
		res, err = s.reservationRepo.GetByID(ctx, uint(id))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// UpdateStatus moves a reservation along its status machine and keeps
// the assigned table in step: arrival holds the table, any terminal
// status releases it
func (s *ReservationService) UpdateStatus(ctx context.Context, ref, newStatus string) (*models.Reservation, error) {
	res, err := s.GetReservation(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.applyStatus(ctx, res, newStatus)
}

// MarkNoShows flips every confirmed reservation for a date before the
// given day to no_show, releasing tables through the normal status path.
// Returns the number of reservations swept.
func (s *ReservationService) MarkNoShows(ctx context.Context, day time.Time) (int, error) {
	stale, err := s.reservationRepo.ConfirmedBefore(ctx, day)
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range stale {
		if _, err := s.applyStatus(ctx, &stale[i], models.ReservationStatusNoShow); err != nil {
			log.Printf("⚠️ No-show sweep failed for %s: %v", stale[i].ReservationID, err)
			continue
		}
		swept++
	}
	return swept, nil
}

func (s *ReservationService) applyStatus(ctx context.Context, res *models.Reservation, newStatus string) (*models.Reservation, error) {
	if !canTransition(reservationTransitions, res.Status, newStatus) {
		return nil, domain.ErrInvalidReservationStatus
	}

	if err := s.reservationRepo.UpdateFields(ctx, res.ID, map[string]interface{}{
		"status": newStatus,
	}); err != nil {
		return nil, err
	}

	if res.TableID != nil {
		var tableStatus string
		switch newStatus {
		case models.ReservationStatusArrived:
			tableStatus = models.TableStatusReserved
		case models.ReservationStatusCancelled, models.ReservationStatusCompleted, models.ReservationStatusNoShow:
			tableStatus = models.TableStatusAvailable
		}
		if tableStatus != "" {
			if err := s.tableRepo.UpdateFields(ctx, *res.TableID, map[string]interface{}{
				"status": tableStatus,
			}); err != nil {
				return nil, err
			}
		}
	}

	log.Printf("📅 Reservation %s: %s", res.ReservationID, newStatus)
	return s.reservationRepo.GetByID(ctx, res.ID)
}

func (s *ReservationService) nextReservationID(ctx context.Context) (string, error) {
	now := time.Now()
	count, err := s.reservationRepo.CountByPattern(ctx, idgen.DayPattern(idgen.ReservationPrefix, now))
	if err != nil {
		return "", err
	}
	return idgen.Format(idgen.ReservationPrefix, now, int(count)+1), nil
}
