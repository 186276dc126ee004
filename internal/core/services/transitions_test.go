package services

import (
	"testing"

	"arcadia-pos/internal/adapters/persistence/models"
)

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusConfirmed, models.OrderStatusPreparing, true},
		{models.OrderStatusConfirmed, models.OrderStatusReady, true},
		{models.OrderStatusPreparing, models.OrderStatusReady, true},
		{models.OrderStatusReady, models.OrderStatusServed, true},
		{models.OrderStatusServed, models.OrderStatusPending, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
		{models.OrderStatusReady, models.OrderStatusCancelled, false},
		{models.OrderStatusPending, models.OrderStatusPending, false},
	}
	for _, tc := range cases {
		if got := canTransition(orderTransitions, tc.from, tc.to); got != tc.want {
			t.Errorf("order %s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestSessionTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.SessionStatusActive, models.SessionStatusPaused, true},
		{models.SessionStatusPaused, models.SessionStatusActive, true},
		{models.SessionStatusActive, models.SessionStatusCompleted, true},
		{models.SessionStatusPaused, models.SessionStatusCompleted, true},
		{models.SessionStatusActive, models.SessionStatusCancelled, true},
		{models.SessionStatusCompleted, models.SessionStatusActive, false},
		{models.SessionStatusCancelled, models.SessionStatusActive, false},
	}
	for _, tc := range cases {
		if got := canTransition(sessionTransitions, tc.from, tc.to); got != tc.want {
			t.Errorf("session %s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestReservationTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.ReservationStatusConfirmed, models.ReservationStatusArrived, true},
		{models.ReservationStatusConfirmed, models.ReservationStatusNoShow, true},
		{models.ReservationStatusArrived, models.ReservationStatusCompleted, true},
		{models.ReservationStatusArrived, models.ReservationStatusNoShow, false},
		{models.ReservationStatusNoShow, models.ReservationStatusArrived, false},
		{models.ReservationStatusCompleted, models.ReservationStatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := canTransition(reservationTransitions, tc.from, tc.to); got != tc.want {
			t.Errorf("reservation %s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestItemTransitionsForwardOnly(t *testing.T) {
	if !canTransition(itemTransitions, models.ItemStatusPending, models.ItemStatusReady) {
		t.Error("pending -> ready must be allowed")
	}
	if canTransition(itemTransitions, models.ItemStatusReady, models.ItemStatusPending) {
		t.Error("ready -> pending must be rejected")
	}
	if canTransition(itemTransitions, models.ItemStatusServed, models.ItemStatusReady) {
		t.Error("served is terminal")
	}
}
