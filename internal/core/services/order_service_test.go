package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/idgen"

	"gorm.io/gorm"
)

func testMenu() map[uint]*models.MenuItem {
	return map[uint]*models.MenuItem{
		1: {ID: 1, Name: "Paneer Tikka", Price: 3.35, Printer: "kitchen", IsAvailable: true},
		2: {ID: 2, Name: "Cold Coffee", Price: 120.00, Printer: "bar", IsAvailable: true},
		3: {ID: 3, Name: "Seasonal Special", Price: 99.00, Printer: "kitchen", IsAvailable: false},
	}
}

func menuRepoFor(items map[uint]*models.MenuItem) *mockMenuRepo {
	return &mockMenuRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.MenuItem, error) {
			if item, ok := items[id]; ok {
				return item, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func availableTableRepo() *mockTableRepo {
	return &mockTableRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Table, error) {
			return &models.Table{ID: id, TableNumber: "T1", Status: models.TableStatusAvailable}, nil
		},
	}
}

func TestCreateOrderComputesTotalsAndSnapshots(t *testing.T) {
	var persisted *models.Order
	orderRepo := &mockOrderRepo{
		countFn: func(ctx context.Context, pattern string) (int64, error) {
			return 4, nil
		},
		createWithItemsFn: func(ctx context.Context, order *models.Order) error {
			order.ID = 21
			persisted = order
			return nil
		},
	}
	svc := NewOrderService(orderRepo, availableTableRepo(), menuRepoFor(testMenu()), nil, billingConfig())

	tableID := uint(7)
	order, err := svc.CreateOrder(context.Background(), 5, &CreateOrderInput{
		TableID:      &tableID,
		CustomerName: "Ravi",
		ServiceType:  models.ServiceTypeTable,
		Items: []OrderLineInput{
			{MenuItemID: 1, Quantity: 3},
			{MenuItemID: 2, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if persisted == nil {
		t.Fatal("order was not persisted")
	}

	if order.Subtotal != 130.05 {
		t.Errorf("subtotal = %.2f, want 130.05", order.Subtotal)
	}
	if order.Tax != 11.05 {
		t.Errorf("tax = %.2f, want 11.05", order.Tax)
	}
	if order.Total != 141.10 {
		t.Errorf("total = %.2f, want 141.10", order.Total)
	}
	if order.TableNumber != "T1" {
		t.Errorf("table number = %q, want T1", order.TableNumber)
	}

	wantID := idgen.Format(idgen.OrderPrefix, time.Now(), 5)
	if order.OrderID != wantID {
		t.Errorf("order id = %q, want %q", order.OrderID, wantID)
	}

	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}
	first := order.Items[0]
	if first.Name != "Paneer Tikka" || first.Price != 3.35 || first.Printer != "kitchen" {
		t.Errorf("line snapshot = %+v, want menu values copied", first)
	}
	if first.Status != models.ItemStatusPending {
		t.Errorf("item status = %s, want pending", first.Status)
	}
}

func TestCreateOrderUnavailableItemRejectsWholeOrder(t *testing.T) {
	persisted := false
	orderRepo := &mockOrderRepo{
		createWithItemsFn: func(ctx context.Context, order *models.Order) error {
			persisted = true
			return nil
		},
	}
	svc := NewOrderService(orderRepo, availableTableRepo(), menuRepoFor(testMenu()), nil, billingConfig())

	tableID := uint(7)
	_, err := svc.CreateOrder(context.Background(), 5, &CreateOrderInput{
		TableID:     &tableID,
		ServiceType: models.ServiceTypeTable,
		Items: []OrderLineInput{
			{MenuItemID: 1, Quantity: 1},
			{MenuItemID: 3, Quantity: 1},
		},
	})
	if !errors.Is(err, domain.ErrMenuItemUnavailable) {
		t.Fatalf("expected ErrMenuItemUnavailable, got %v", err)
	}
	if persisted {
		t.Fatal("rejected order must not be persisted")
	}
}

func TestCreateOrderRejectsEmptyAndMissingTable(t *testing.T) {
	svc := NewOrderService(&mockOrderRepo{}, availableTableRepo(), menuRepoFor(testMenu()), nil, billingConfig())
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 5, &CreateOrderInput{ServiceType: models.ServiceTypeTable})
	if !errors.Is(err, domain.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}

	_, err = svc.CreateOrder(ctx, 5, &CreateOrderInput{
		ServiceType: models.ServiceTypeTable,
		Items:       []OrderLineInput{{MenuItemID: 1, Quantity: 1}},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for table order without table, got %v", err)
	}
}

func TestCreateOrderParcelNeedsNoTable(t *testing.T) {
	orderRepo := &mockOrderRepo{
		createWithItemsFn: func(ctx context.Context, order *models.Order) error {
			order.ID = 1
			return nil
		},
	}
	svc := NewOrderService(orderRepo, &mockTableRepo{}, menuRepoFor(testMenu()), nil, billingConfig())

	order, err := svc.CreateOrder(context.Background(), 5, &CreateOrderInput{
		ServiceType: models.ServiceTypeParcel,
		Items:       []OrderLineInput{{MenuItemID: 2, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.TableID != nil {
		t.Errorf("parcel order should carry no table, got %v", *order.TableID)
	}
	if order.Total != 260.40 {
		t.Errorf("total = %.2f, want 260.40", order.Total)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	orderRepo := &mockOrderRepo{
		getByOrderIDFn: func(ctx context.Context, orderID string) (*models.Order, error) {
			return &models.Order{ID: 1, OrderID: orderID, Status: models.OrderStatusServed}, nil
		},
	}
	svc := NewOrderService(orderRepo, &mockTableRepo{}, &mockMenuRepo{}, nil, billingConfig())

	_, err := svc.UpdateStatus(context.Background(), "ORD-20260314-0001", models.OrderStatusPreparing)
	if !errors.Is(err, domain.ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
}

func cascadeFixture(itemsAfterUpdate []models.OrderItem) (*mockOrderRepo, *map[string]interface{}) {
	order := &models.Order{
		ID:      3,
		OrderID: "ORD-20260314-0003",
		Status:  models.OrderStatusPreparing,
		Items:   itemsAfterUpdate,
	}
	var orderUpdates map[string]interface{}
	repo := &mockOrderRepo{
		getByOrderIDFn: func(ctx context.Context, orderID string) (*models.Order, error) {
			return order, nil
		},
		getItemFn: func(ctx context.Context, orderRef, itemID uint) (*models.OrderItem, error) {
			return &models.OrderItem{ID: itemID, OrderRef: orderRef, Status: models.ItemStatusPreparing, Printer: "kitchen"}, nil
		},
		itemsByOrderFn: func(ctx context.Context, orderRef uint) ([]models.OrderItem, error) {
			return itemsAfterUpdate, nil
		},
		updateFieldsFn: func(ctx context.Context, id uint, updates map[string]interface{}) error {
			orderUpdates = updates
			return nil
		},
	}
	return repo, &orderUpdates
}

func TestLastReadyItemCascadesOrderReady(t *testing.T) {
	repo, orderUpdates := cascadeFixture([]models.OrderItem{
		{ID: 1, Status: models.ItemStatusReady, Printer: "kitchen"},
		{ID: 2, Status: models.ItemStatusReady, Printer: "bar"},
	})
	notifier := &mockNotifier{}
	svc := NewOrderService(repo, &mockTableRepo{}, &mockMenuRepo{}, notifier, billingConfig())

	if _, err := svc.UpdateItemStatus(context.Background(), "ORD-20260314-0003", 1, models.ItemStatusReady); err != nil {
		t.Fatalf("update item: %v", err)
	}

	if *orderUpdates == nil || (*orderUpdates)["status"] != models.OrderStatusReady {
		t.Fatalf("order status update = %v, want ready", *orderUpdates)
	}

	sawOrderReady := false
	for _, ev := range notifier.events {
		if ev.event == "order_ready" {
			sawOrderReady = true
		}
	}
	if !sawOrderReady {
		t.Error("order_ready event was not broadcast")
	}
}

func TestNonLastReadyItemDoesNotCascade(t *testing.T) {
	repo, orderUpdates := cascadeFixture([]models.OrderItem{
		{ID: 1, Status: models.ItemStatusReady, Printer: "kitchen"},
		{ID: 2, Status: models.ItemStatusPending, Printer: "bar"},
	})
	svc := NewOrderService(repo, &mockTableRepo{}, &mockMenuRepo{}, &mockNotifier{}, billingConfig())

	if _, err := svc.UpdateItemStatus(context.Background(), "ORD-20260314-0003", 1, models.ItemStatusReady); err != nil {
		t.Fatalf("update item: %v", err)
	}
	if *orderUpdates != nil {
		t.Fatalf("order must not change while items remain, got %v", *orderUpdates)
	}
}

func TestPrintKOTStampsAndConfirms(t *testing.T) {
	order := &models.Order{
		ID:      2,
		OrderID: "ORD-20260314-0002",
		Status:  models.OrderStatusPending,
		Items: []models.OrderItem{
			{ID: 1, Status: models.ItemStatusPending, Printer: "kitchen"},
			{ID: 2, Status: models.ItemStatusPending, Printer: "bar"},
		},
	}
	var updates map[string]interface{}
	repo := &mockOrderRepo{
		getByOrderIDFn: func(ctx context.Context, orderID string) (*models.Order, error) {
			return order, nil
		},
		updateFieldsFn: func(ctx context.Context, id uint, fields map[string]interface{}) error {
			updates = fields
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewOrderService(repo, &mockTableRepo{}, &mockMenuRepo{}, notifier, billingConfig())

	if _, err := svc.PrintKOT(context.Background(), "ORD-20260314-0002"); err != nil {
		t.Fatalf("print: %v", err)
	}

	if updates["kot_printed"] != true {
		t.Errorf("kot_printed update = %v, want true", updates["kot_printed"])
	}
	if updates["status"] != models.OrderStatusConfirmed {
		t.Errorf("status update = %v, want confirmed", updates["status"])
	}
	if len(notifier.events) != 2 {
		t.Fatalf("events = %d, want one per printer", len(notifier.events))
	}
	printers := map[string]bool{}
	for _, ev := range notifier.events {
		if ev.event != "kot_printed" {
			t.Errorf("event = %s, want kot_printed", ev.event)
		}
		printers[ev.printer] = true
	}
	if !printers["kitchen"] || !printers["bar"] {
		t.Errorf("printers notified = %v, want kitchen and bar", printers)
	}
}
