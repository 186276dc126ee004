package repositories

import (
	"context"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// orderRepository implements OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems persists an order and its items in one transaction, so
// a failure mid-insert leaves no partial order behind.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// GetByID gets an order by primary key with its items
func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderID gets an order by its customer-facing id with its items
func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List lists orders matching the filter with pagination
func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.TableID != 0 {
		query = query.Where("table_id = ?", filter.TableID)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at < ?", *filter.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateFields updates selected order columns
func (r *orderRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// GetItem gets one item belonging to an order
func (r *orderRepository) GetItem(ctx context.Context, orderRef, itemID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND order_ref = ?", itemID, orderRef).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemsByOrder returns all items of an order
func (r *orderRepository) ItemsByOrder(ctx context.Context, orderRef uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_ref = ?", orderRef).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// UpdateItemFields updates selected order item columns
func (r *orderRepository) UpdateItemFields(ctx context.Context, itemID uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("id = ?", itemID).Updates(updates).Error
}

// CountByPattern counts orders whose external id matches a LIKE pattern,
// used to derive the next per-day sequence number.
func (r *orderRepository) CountByPattern(ctx context.Context, pattern string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Unscoped().
		Where("order_id LIKE ?", pattern).
		Count(&count).Error
	return count, err
}

// InWindow returns the non-cancelled orders placed on a table within the
// given time window.
func (r *orderRepository) InWindow(ctx context.Context, tableID uint, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("table_id = ? AND created_at >= ? AND created_at <= ? AND status <> ?",
			tableID, from, to, models.OrderStatusCancelled).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

// MarkPaidInWindow marks every non-cancelled order in the window paid
func (r *orderRepository) MarkPaidInWindow(ctx context.Context, tableID uint, from, to time.Time, method string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("table_id = ? AND created_at >= ? AND created_at <= ? AND status <> ?",
			tableID, from, to, models.OrderStatusCancelled).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"payment_method": method,
		}).Error
}

// InFlightForDay returns today's orders still moving through the kitchen,
// with items, for the KOT queue.
func (r *orderRepository) InFlightForDay(ctx context.Context, day time.Time) ([]models.Order, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("created_at >= ? AND created_at < ? AND status IN ?",
			start, end, []string{models.OrderStatusConfirmed, models.OrderStatusPreparing}).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}
