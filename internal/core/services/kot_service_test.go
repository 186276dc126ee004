package services

import (
	"context"
	"testing"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
)

func TestQueueGroupsItemsByPrinter(t *testing.T) {
	orders := []models.Order{
		{
			ID:          1,
			OrderID:     "ORD-20260314-0001",
			TableNumber: "T1",
			Status:      models.OrderStatusConfirmed,
			Items: []models.OrderItem{
				{ID: 1, Name: "Paneer Tikka", Printer: "kitchen", Status: models.ItemStatusPending},
				{ID: 2, Name: "Cold Coffee", Printer: "bar", Status: models.ItemStatusPending},
				{ID: 3, Name: "Garlic Naan", Printer: "kitchen", Status: models.ItemStatusReady},
			},
		},
		{
			ID:          2,
			OrderID:     "ORD-20260314-0002",
			TableNumber: "T3",
			Status:      models.OrderStatusPreparing,
			Items: []models.OrderItem{
				{ID: 4, Name: "Veg Biryani", Printer: "kitchen", Status: models.ItemStatusPreparing},
			},
		},
	}
	repo := &mockOrderRepo{
		inFlightFn: func(ctx context.Context, day time.Time) ([]models.Order, error) {
			return orders, nil
		},
	}
	svc := NewKOTService(repo)

	queues, err := svc.Queue(context.Background())
	if err != nil {
		t.Fatalf("queue: %v", err)
	}

	if len(queues) != 2 {
		t.Fatalf("printers = %d, want 2", len(queues))
	}
	if queues[0].Printer != "bar" || queues[1].Printer != "kitchen" {
		t.Fatalf("printer order = [%s %s], want [bar kitchen]", queues[0].Printer, queues[1].Printer)
	}

	if len(queues[0].Tickets) != 1 {
		t.Errorf("bar tickets = %d, want 1", len(queues[0].Tickets))
	}
	if len(queues[1].Tickets) != 2 {
		t.Fatalf("kitchen tickets = %d, want 2", len(queues[1].Tickets))
	}

	// The ready naan must not come back to the kitchen
	firstKitchen := queues[1].Tickets[0]
	if len(firstKitchen.Items) != 1 || firstKitchen.Items[0].Name != "Paneer Tikka" {
		t.Errorf("kitchen ticket items = %+v, want only the pending tikka", firstKitchen.Items)
	}
}

func TestQueueEmptyWhenNothingInFlight(t *testing.T) {
	svc := NewKOTService(&mockOrderRepo{})

	queues, err := svc.Queue(context.Background())
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queues) != 0 {
		t.Fatalf("queues = %d, want 0", len(queues))
	}
}
