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
	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/idgen"
	"arcadia-pos/internal/pkg/money"

	"gorm.io/gorm"
)

// KitchenNotifier pushes kitchen events to live listeners. An empty
// printer name addresses every listener.
type KitchenNotifier interface {
	Notify(printer, event string, payload interface{})
}

// OrderService handles the order pipeline business logic
type OrderService struct {
	orderRepo repositories.OrderRepository
	tableRepo repositories.TableRepository
	menuRepo  repositories.MenuRepository
	notifier  KitchenNotifier
	cfg       *config.Config
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repositories.OrderRepository,
	tableRepo repositories.TableRepository,
	menuRepo repositories.MenuRepository,
	notifier KitchenNotifier,
	cfg *config.Config,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		tableRepo: tableRepo,
		menuRepo:  menuRepo,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// OrderLineInput is one requested order line
type OrderLineInput struct {
	MenuItemID          uint   `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

// CreateOrderInput represents order creation input
type CreateOrderInput struct {
	TableID             *uint            `json:"table_id"`
	CustomerName        string           `json:"customer_name"`
	CustomerPhone       string           `json:"customer_phone"`
	ServiceType         string           `json:"service_type"`
	OrderType           string           `json:"order_type"`
	SpecialInstructions string           `json:"special_instructions"`
	Items               []OrderLineInput `json:"items"`
}

// CreateOrder validates every line against the live menu, snapshots the
// prices, and persists the order with its items in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, input *CreateOrderInput) (*models.Order, error) {
	// 1. Validate shape
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	serviceType := input.ServiceType
	if serviceType == "" {
		serviceType = models.ServiceTypeTable
	}
	if !models.ValidServiceType(serviceType) {
		return nil, domain.ErrInvalidInput
	}
	orderType := input.OrderType
	if orderType == "" {
		orderType = models.OrderTypeFood
	}

	// 2. Resolve the table when required
	var tableID *uint
	tableNumber := ""
	if serviceType == models.ServiceTypeTable {
		if input.TableID == nil {
			return nil, domain.ErrInvalidInput
		}
		table, err := s.tableRepo.GetByID(ctx, *input.TableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrTableNotFound
			}
			return nil, err
		}
		tableID = &table.ID
		tableNumber = table.TableNumber
	}

	// 3. Build lines from the live menu; any bad line rejects the whole
	// order before anything is written
	items := make([]models.OrderItem, 0, len(input.Items))
	lineTotals := make([]float64, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		menuItem, err := s.menuRepo.GetByID(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrMenuItemNotFound
			}
			return nil, err
		}
		if !menuItem.IsAvailable {
			return nil, domain.ErrMenuItemUnavailable
		}

		items = append(items, models.OrderItem{
			MenuItemID:          menuItem.ID,
			Name:                menuItem.Name,
			Price:               menuItem.Price,
			Quantity:            line.Quantity,
			Status:              models.ItemStatusPending,
			Printer:             menuItem.Printer,
			SpecialInstructions: line.SpecialInstructions,
		})
		lineTotals = append(lineTotals, money.Line(menuItem.Price, line.Quantity))
	}

	// 4. Totals
	subtotal := money.Sum(lineTotals...)
	tax := money.Percent(subtotal, s.cfg.Billing.TaxRate)
	total := money.Sum(subtotal, tax)

	// 5. Generate the external id
	orderID, err := s.nextOrderID(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderID:             orderID,
		TableID:             tableID,
		TableNumber:         tableNumber,
		CustomerName:        input.CustomerName,
		CustomerPhone:       input.CustomerPhone,
		ServiceType:         serviceType,
		OrderType:           orderType,
		Status:              models.OrderStatusPending,
		Subtotal:            subtotal,
		Tax:                 tax,
		Total:               total,
		PaymentStatus:       models.PaymentStatusPending,
		SpecialInstructions: input.SpecialInstructions,
		CreatedBy:           userID,
		Items:               items,
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("✅ Order created: %s (%d items, total %.2f)", order.OrderID, len(order.Items), order.Total)
	return order, nil
}

// ListOrders lists orders matching the filter
func (s *OrderService) ListOrders(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(ctx, filter)
}

// GetOrder resolves an order by its external id (ORD-...) or numeric id
func (s *OrderService) GetOrder(ctx context.Context, ref string) (*models.Order, error) {
	var order *models.Order
	var err error

	if strings.HasPrefix(ref, idgen.OrderPrefix+"-") {
		order, err = s.orderRepo.GetByOrderID(ctx, ref)
	} else {
		id, parseErr := strconv.ParseUint(ref, 10, 32)
		if parseErr != nil {
			return nil, domain.ErrOrderNotFound
		}
		order, err = s.orderRepo.GetByID(ctx, uint(id))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves an order along its status machine
func (s *OrderService) UpdateStatus(ctx context.Context, ref, newStatus string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, ref)
	if err != nil {
		return nil, err
	}

	if !canTransition(orderTransitions, order.Status, newStatus) {
		return nil, domain.ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateFields(ctx, order.ID, map[string]interface{}{
		"status": newStatus,
	}); err != nil {
		return nil, err
	}

	log.Printf("📦 Order %s: %s -> %s", order.OrderID, order.Status, newStatus)

	if newStatus == models.OrderStatusCancelled {
		s.notify("", "order_cancelled", map[string]interface{}{
			"order_id": order.OrderID,
		})
	}

	return s.GetOrder(ctx, ref)
}

// CancelOrder is the delete operation: orders are never removed, they
// are cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, ref string) (*models.Order, error) {
	return s.UpdateStatus(ctx, ref, models.OrderStatusCancelled)
}

// PrintKOT marks the kitchen ticket printed and pushes the grouped lines
// to each target printer's live feed. Availability is not re-checked.
func (s *OrderService) PrintKOT(ctx context.Context, ref string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, ref)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, domain.ErrInvalidOrderStatus
	}

	now := time.Now()
	updates := map[string]interface{}{
		"kot_printed":    true,
		"kot_printed_at": now,
	}
	if order.Status == models.OrderStatusPending {
		updates["status"] = models.OrderStatusConfirmed
	}
	if err := s.orderRepo.UpdateFields(ctx, order.ID, updates); err != nil {
		return nil, err
	}

	for printer, lines := range groupByPrinter(order.Items) {
		s.notify(printer, "kot_printed", map[string]interface{}{
			"order_id":     order.OrderID,
			"table_number": order.TableNumber,
			"items":        lines,
		})
	}

	log.Printf("🖨️ KOT printed for order %s", order.OrderID)
	return s.GetOrder(ctx, ref)
}

// UpdateItemStatus moves one line along its status machine. When the
// change leaves every item ready, the parent order flips to ready; the
// check is a full re-scan of the siblings, not an incremental counter.
func (s *OrderService) UpdateItemStatus(ctx context.Context, ref string, itemID uint, newStatus string) (*models.Order, error) {
	if !models.ValidItemStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	order, err := s.GetOrder(ctx, ref)
	if err != nil {
		return nil, err
	}

	item, err := s.orderRepo.GetItem(ctx, order.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderItemNotFound
		}
		return nil, err
	}

	if !canTransition(itemTransitions, item.Status, newStatus) {
		return nil, domain.ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateItemFields(ctx, item.ID, map[string]interface{}{
		"status": newStatus,
	}); err != nil {
		return nil, err
	}

	s.notify(item.Printer, "item_status", map[string]interface{}{
		"order_id": order.OrderID,
		"item_id":  item.ID,
		"name":     item.Name,
		"status":   newStatus,
	})

	if newStatus == models.ItemStatusReady {
		if err := s.cascadeOrderReady(ctx, order); err != nil {
			return nil, err
		}
	}

	return s.GetOrder(ctx, ref)
}

// cascadeOrderReady flips the order to ready once every item is ready
func (s *OrderService) cascadeOrderReady(ctx context.Context, order *models.Order) error {
	items, err := s.orderRepo.ItemsByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.Status != models.ItemStatusReady && it.Status != models.ItemStatusServed {
			return nil
		}
	}

	if !canTransition(orderTransitions, order.Status, models.OrderStatusReady) {
		return nil
	}

	if err := s.orderRepo.UpdateFields(ctx, order.ID, map[string]interface{}{
		"status": models.OrderStatusReady,
	}); err != nil {
		return err
	}

	s.notify("", "order_ready", map[string]interface{}{
		"order_id":     order.OrderID,
		"table_number": order.TableNumber,
	})

	log.Printf("🍽️ Order %s is ready", order.OrderID)
	return nil
}

func (s *OrderService) notify(printer, event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(printer, event, payload)
}

func (s *OrderService) nextOrderID(ctx context.Context) (string, error) {
	now := time.Now()
	count, err := s.orderRepo.CountByPattern(ctx, idgen.DayPattern(idgen.OrderPrefix, now))
	if err != nil {
		return "", err
	}
	return idgen.Format(idgen.OrderPrefix, now, int(count)+1), nil
}

func groupByPrinter(items []models.OrderItem) map[string][]models.OrderItem {
	grouped := make(map[string][]models.OrderItem)
	for _, item := range items {
		grouped[item.Printer] = append(grouped[item.Printer], item)
	}
	return grouped
}
