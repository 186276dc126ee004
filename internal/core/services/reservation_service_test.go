package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/core/domain"
)

func validReservationInput() *CreateReservationInput {
	return &CreateReservationInput{
		CustomerName:  "Meera",
		CustomerPhone: "9876501234",
		TableType:     "ps5",
		Date:          "2026-03-20",
		Time:          "19:30",
		PartySize:     2,
	}
}

func TestCreateReservationValidatesSlot(t *testing.T) {
	svc := NewReservationService(&mockReservationRepo{}, &mockTableRepo{})
	ctx := context.Background()

	bad := validReservationInput()
	bad.Date = "20-03-2026"
	if _, err := svc.CreateReservation(ctx, 1, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}

	bad = validReservationInput()
	bad.TableType = "bowling"
	if _, err := svc.CreateReservation(ctx, 1, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad table type, got %v", err)
	}

	bad = validReservationInput()
	bad.Time = "7pm"
	if _, err := svc.CreateReservation(ctx, 1, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad time, got %v", err)
	}
}

func TestCreateReservationAssignsThroughRepo(t *testing.T) {
	var created *models.Reservation
	repo := &mockReservationRepo{
		createAssigningFn: func(ctx context.Context, res *models.Reservation) error {
			res.ID = 13
			tableID := uint(5)
			res.TableID = &tableID
			created = res
			return nil
		},
		getByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return created, nil
		},
	}
	svc := NewReservationService(repo, &mockTableRepo{})

	res, err := svc.CreateReservation(context.Background(), 1, validReservationInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if res.Status != models.ReservationStatusConfirmed {
		t.Errorf("status = %s, want confirmed", res.Status)
	}
	if !strings.HasPrefix(res.ReservationID, "RES-") {
		t.Errorf("reservation id %q missing RES- prefix", res.ReservationID)
	}
	if res.TableID == nil || *res.TableID != 5 {
		t.Errorf("table id = %v, want 5 from repo assignment", res.TableID)
	}
	if res.DurationMin != 60 {
		t.Errorf("duration = %d, want default 60", res.DurationMin)
	}
}

func TestCreateReservationPropagatesNoTables(t *testing.T) {
	repo := &mockReservationRepo{
		createAssigningFn: func(ctx context.Context, res *models.Reservation) error {
			return domain.ErrNoTablesAvailable
		},
	}
	svc := NewReservationService(repo, &mockTableRepo{})

	_, err := svc.CreateReservation(context.Background(), 1, validReservationInput())
	if !errors.Is(err, domain.ErrNoTablesAvailable) {
		t.Fatalf("expected ErrNoTablesAvailable, got %v", err)
	}
}

func statusFixture(status string, tableID uint) (*ReservationService, *map[string]interface{}) {
	res := &models.Reservation{
		ID:            2,
		ReservationID: "RES-20260314-0002",
		Status:        status,
		TableID:       &tableID,
	}
	repo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return res, nil
		},
	}
	var tableUpdates map[string]interface{}
	tableRepo := &mockTableRepo{
		updateFieldsFn: func(ctx context.Context, id uint, updates map[string]interface{}) error {
			tableUpdates = updates
			return nil
		},
	}
	return NewReservationService(repo, tableRepo), &tableUpdates
}

func TestArrivalHoldsTable(t *testing.T) {
	svc, tableUpdates := statusFixture(models.ReservationStatusConfirmed, 5)

	if _, err := svc.UpdateStatus(context.Background(), "2", models.ReservationStatusArrived); err != nil {
		t.Fatalf("update: %v", err)
	}
	if *tableUpdates == nil || (*tableUpdates)["status"] != models.TableStatusReserved {
		t.Fatalf("table update = %v, want reserved", *tableUpdates)
	}
}

func TestNoShowFreesTable(t *testing.T) {
	svc, tableUpdates := statusFixture(models.ReservationStatusConfirmed, 5)

	if _, err := svc.UpdateStatus(context.Background(), "2", models.ReservationStatusNoShow); err != nil {
		t.Fatalf("update: %v", err)
	}
	if *tableUpdates == nil || (*tableUpdates)["status"] != models.TableStatusAvailable {
		t.Fatalf("table update = %v, want available", *tableUpdates)
	}
}

func TestReservationRejectsIllegalTransition(t *testing.T) {
	svc, _ := statusFixture(models.ReservationStatusCompleted, 5)

	_, err := svc.UpdateStatus(context.Background(), "2", models.ReservationStatusArrived)
	if !errors.Is(err, domain.ErrInvalidReservationStatus) {
		t.Fatalf("expected ErrInvalidReservationStatus, got %v", err)
	}
}

func TestMarkNoShowsSweepsConfirmed(t *testing.T) {
	tableA, tableB := uint(1), uint(2)
	stale := []models.Reservation{
		{ID: 1, ReservationID: "RES-20260310-0001", Status: models.ReservationStatusConfirmed, TableID: &tableA},
		{ID: 2, ReservationID: "RES-20260311-0001", Status: models.ReservationStatusConfirmed, TableID: &tableB},
	}
	repo := &mockReservationRepo{
		confirmedBeforeFn: func(ctx context.Context, day time.Time) ([]models.Reservation, error) {
			return stale, nil
		},
		getByIDFn: func(ctx context.Context, id uint) (*models.Reservation, error) {
			return &stale[id-1], nil
		},
	}
	freed := 0
	tableRepo := &mockTableRepo{
		updateFieldsFn: func(ctx context.Context, id uint, updates map[string]interface{}) error {
			if updates["status"] == models.TableStatusAvailable {
				freed++
			}
			return nil
		},
	}
	svc := NewReservationService(repo, tableRepo)

	swept, err := svc.MarkNoShows(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept != 2 {
		t.Errorf("swept = %d, want 2", swept)
	}
	if freed != 2 {
		t.Errorf("tables freed = %d, want 2", freed)
	}
}
