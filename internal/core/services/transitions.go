package services

import "arcadia-pos/internal/adapters/persistence/models"

// Allowed status transitions. Every status mutation is checked against
// one of these tables before it is written; an illegal move is a state
// conflict, not a silent overwrite.

var orderTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusPreparing, models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusPreparing, models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusServed},
	models.OrderStatusServed:    {},
	models.OrderStatusCancelled: {},
}

var itemTransitions = map[string][]string{
	models.ItemStatusPending:   {models.ItemStatusPreparing, models.ItemStatusReady},
	models.ItemStatusPreparing: {models.ItemStatusReady},
	models.ItemStatusReady:     {models.ItemStatusServed},
	models.ItemStatusServed:    {},
}

var sessionTransitions = map[string][]string{
	models.SessionStatusActive:    {models.SessionStatusPaused, models.SessionStatusCompleted, models.SessionStatusCancelled},
	models.SessionStatusPaused:    {models.SessionStatusActive, models.SessionStatusCompleted, models.SessionStatusCancelled},
	models.SessionStatusCompleted: {},
	models.SessionStatusCancelled: {},
}

var reservationTransitions = map[string][]string{
	models.ReservationStatusConfirmed: {models.ReservationStatusArrived, models.ReservationStatusCancelled, models.ReservationStatusNoShow},
	models.ReservationStatusArrived:   {models.ReservationStatusCompleted, models.ReservationStatusCancelled},
	models.ReservationStatusCancelled: {},
	models.ReservationStatusCompleted: {},
	models.ReservationStatusNoShow:    {},
}

// canTransition reports whether from -> to is allowed by the given
// transition table. Staying on the same status is not a transition.
func canTransition(table map[string][]string, from, to string) bool {
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
