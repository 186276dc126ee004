package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Orders
// ============================================================

// Order status
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusCancelled = "cancelled"
)

// Order item status
const (
	ItemStatusPending   = "pending"
	ItemStatusPreparing = "preparing"
	ItemStatusReady     = "ready"
	ItemStatusServed    = "served"
)

// Payment status
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Payment methods
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
)

// Service types
const (
	ServiceTypeTable    = "table"
	ServiceTypeParcel   = "parcel"
	ServiceTypeDelivery = "delivery"
)

// Order types
const (
	OrderTypeFood     = "food"
	OrderTypeBeverage = "beverage"
	OrderTypeMixed    = "mixed"
)

// ValidServiceType reports whether t is an accepted service type
func ValidServiceType(t string) bool {
	switch t {
	case ServiceTypeTable, ServiceTypeParcel, ServiceTypeDelivery:
		return true
	}
	return false
}

// ValidItemStatus reports whether s is an accepted order item status
func ValidItemStatus(s string) bool {
	switch s {
	case ItemStatusPending, ItemStatusPreparing, ItemStatusReady, ItemStatusServed:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI:
		return true
	}
	return false
}

// Order represents orders table. OrderID is the customer-facing id
// (ORD-YYYYMMDD-NNNN), generated once and never changed.
type Order struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	OrderID             string         `gorm:"uniqueIndex;size:30;not null" json:"order_id"`
	TableID             *uint          `gorm:"index" json:"table_id"`
	TableNumber         string         `gorm:"size:20" json:"table_number"`
	CustomerName        string         `gorm:"size:100" json:"customer_name"`
	CustomerPhone       string         `gorm:"size:20" json:"customer_phone"`
	ServiceType         string         `gorm:"size:20;default:'table'" json:"service_type"`
	OrderType           string         `gorm:"size:20;default:'food'" json:"order_type"`
	Status              string         `gorm:"size:20;default:'pending';index" json:"status"`
	Subtotal            float64        `gorm:"type:decimal(10,2);default:0" json:"subtotal"`
	Tax                 float64        `gorm:"type:decimal(10,2);default:0" json:"tax"`
	Discount            float64        `gorm:"type:decimal(10,2);default:0" json:"discount"`
	Total               float64        `gorm:"type:decimal(10,2);default:0" json:"total"`
	PaymentStatus       string         `gorm:"size:20;default:'pending';index" json:"payment_status"`
	PaymentMethod       string         `gorm:"size:20" json:"payment_method"`
	KOTPrinted          bool           `gorm:"default:false" json:"kot_printed"`
	KOTPrintedAt        *time.Time     `json:"kot_printed_at"`
	SpecialInstructions string         `gorm:"type:text" json:"special_instructions"`
	CreatedBy           uint           `gorm:"not null" json:"created_by"`
	CreatedAt           time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Table   *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Creator *User       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:OrderRef;references:ID" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem represents order_items table. Name, price and printer are
// snapshotted from the menu item at order time.
type OrderItem struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	OrderRef            uint      `gorm:"column:order_ref;not null;index" json:"order_ref"`
	MenuItemID          uint      `gorm:"not null" json:"menu_item_id"`
	Name                string    `gorm:"size:150;not null" json:"name"`
	Price               float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity            int       `gorm:"not null;default:1" json:"quantity"`
	Status              string    `gorm:"size:20;default:'pending';index" json:"status"`
	Printer             string    `gorm:"size:50;default:'kitchen'" json:"printer"`
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
