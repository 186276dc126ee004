package services

import (
	"context"
	"sort"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"
)

// KOTService builds the kitchen order ticket queue: today's in-flight
// orders split per target printer
type KOTService struct {
	orderRepo repositories.OrderRepository
}

// NewKOTService creates a new KOT service
func NewKOTService(orderRepo repositories.OrderRepository) *KOTService {
	return &KOTService{orderRepo: orderRepo}
}

// KOTTicket is one order's slice of a printer queue
type KOTTicket struct {
	OrderID             string             `json:"order_id"`
	TableNumber         string             `json:"table_number"`
	ServiceType         string             `json:"service_type"`
	Status              string             `json:"status"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	Items               []models.OrderItem `json:"items"`
}

// PrinterQueue groups tickets for one printer
type PrinterQueue struct {
	Printer string      `json:"printer"`
	Tickets []KOTTicket `json:"tickets"`
}

// Queue returns today's confirmed and preparing orders, their unfinished
// items grouped by target printer. Printers come back in name order,
// tickets oldest first.
func (s *KOTService) Queue(ctx context.Context) ([]PrinterQueue, error) {
	orders, err := s.orderRepo.InFlightForDay(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	queues := make(map[string][]KOTTicket)
	for _, order := range orders {
		for printer, items := range pendingByPrinter(order.Items) {
			queues[printer] = append(queues[printer], KOTTicket{
				OrderID:             order.OrderID,
				TableNumber:         order.TableNumber,
				ServiceType:         order.ServiceType,
				Status:              order.Status,
				SpecialInstructions: order.SpecialInstructions,
				CreatedAt:           order.CreatedAt,
				Items:               items,
			})
		}
	}

	printers := make([]string, 0, len(queues))
	for printer := range queues {
		printers = append(printers, printer)
	}
	sort.Strings(printers)

	result := make([]PrinterQueue, 0, len(printers))
	for _, printer := range printers {
		result = append(result, PrinterQueue{
			Printer: printer,
			Tickets: queues[printer],
		})
	}
	return result, nil
}

// pendingByPrinter keeps only items the kitchen still has to act on
func pendingByPrinter(items []models.OrderItem) map[string][]models.OrderItem {
	grouped := make(map[string][]models.OrderItem)
	for _, item := range items {
		if item.Status != models.ItemStatusPending && item.Status != models.ItemStatusPreparing {
			continue
		}
		grouped[item.Printer] = append(grouped[item.Printer], item)
	}
	return grouped
}
