package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"arcadia-pos/internal/core/domain"
)

// ============================================================
// Users & Staff
// ============================================================

// User represents users table
type User struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Name        string             `gorm:"size:100;not null" json:"name"`
	Username    string             `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email       string             `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password    string             `gorm:"size:255;not null" json:"-"`
	Phone       string             `gorm:"size:20" json:"phone"`
	Role        string             `gorm:"size:20;default:'User'" json:"role"`
	Permissions domain.Permissions `gorm:"type:json" json:"permissions"`
	IsActive    bool               `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time         `json:"last_login_at"`
	CreatedAt   time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Role        string             `json:"role"`
	Permissions domain.Permissions `json:"permissions"`
	IsActive    bool               `json:"is_active"`
	LastLoginAt *time.Time         `json:"last_login_at"`
	CreatedAt   time.Time          `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		Permissions: u.Permissions,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ============================================================
// Tables
// ============================================================

// Table status
const (
	TableStatusAvailable   = "available"
	TableStatusOccupied    = "occupied"
	TableStatusReserved    = "reserved"
	TableStatusMaintenance = "maintenance"
)

// Smart plug status
const (
	PlugStatusOn  = "on"
	PlugStatusOff = "off"
)

// TableTypes lists the accepted table types
var TableTypes = []string{"standard", "vip", "ps5", "ps4", "pool", "snooker", "dining"}

// ValidTableType reports whether t is an accepted table type
func ValidTableType(t string) bool {
	for _, v := range TableTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidTableStatus reports whether s is an accepted table status
func ValidTableStatus(s string) bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusMaintenance:
		return true
	}
	return false
}

// Table represents tables table. The current session is derived by query,
// never stored on the row, so session and table state cannot drift apart.
type Table struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TableNumber string         `gorm:"uniqueIndex;size:20;not null" json:"table_number"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Type        string         `gorm:"size:20;not null;default:'standard'" json:"type"`
	Location    string         `gorm:"size:100" json:"location"`
	Capacity    int            `gorm:"default:4" json:"capacity"`
	HourlyRate  float64        `gorm:"type:decimal(10,2);default:0" json:"hourly_rate"`
	Status      string         `gorm:"size:20;default:'available';index" json:"status"`
	PlugID      *string        `gorm:"size:50" json:"plug_id"`
	PlugStatus  string         `gorm:"size:10;default:'off'" json:"plug_status"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Table) TableName() string {
	return "tables"
}

// TableSessionSummary is the projected view of a table's running session
type TableSessionSummary struct {
	SessionID     string    `json:"session_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	StartTime     time.Time `json:"start_time"`
	Status        string    `json:"status"`
}

// TableResponse DTO
type TableResponse struct {
	ID             uint                 `json:"id"`
	TableNumber    string               `json:"table_number"`
	Name           string               `json:"name"`
	Type           string               `json:"type"`
	Location       string               `json:"location"`
	Capacity       int                  `json:"capacity"`
	HourlyRate     float64              `json:"hourly_rate"`
	Status         string               `json:"status"`
	PlugID         *string              `json:"plug_id"`
	PlugStatus     string               `json:"plug_status"`
	IsActive       bool                 `json:"is_active"`
	CurrentSession *TableSessionSummary `json:"current_session,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func (t *Table) ToResponse() *TableResponse {
	return &TableResponse{
		ID:          t.ID,
		TableNumber: t.TableNumber,
		Name:        t.Name,
		Type:        t.Type,
		Location:    t.Location,
		Capacity:    t.Capacity,
		HourlyRate:  t.HourlyRate,
		Status:      t.Status,
		PlugID:      t.PlugID,
		PlugStatus:  t.PlugStatus,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ============================================================
// Menu
// ============================================================

// MenuVariant is one selectable variation of a menu item
type MenuVariant struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// VariantList stores variants as a JSON column
type VariantList []MenuVariant

// Value implements driver.Valuer
func (v VariantList) Value() (driver.Value, error) {
	if v == nil {
		return json.Marshal(VariantList{})
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner
func (v *VariantList) Scan(value interface{}) error {
	if value == nil {
		*v = VariantList{}
		return nil
	}
	var raw []byte
	switch src := value.(type) {
	case []byte:
		raw = src
	case string:
		raw = []byte(src)
	default:
		return fmt.Errorf("variants: unsupported column type %T", value)
	}
	if len(raw) == 0 {
		*v = VariantList{}
		return nil
	}
	return json.Unmarshal(raw, v)
}

// MenuItem represents menu_items table. Hard-deleted on removal: order
// items snapshot name and price, so no dangling reference survives.
type MenuItem struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Name            string      `gorm:"size:150;not null" json:"name"`
	Category        string      `gorm:"size:50;not null;index" json:"category"`
	Subcategory     string      `gorm:"size:50" json:"subcategory"`
	Price           float64     `gorm:"type:decimal(10,2);not null" json:"price"`
	Printer         string      `gorm:"size:50;default:'kitchen'" json:"printer"`
	IsAvailable     bool        `gorm:"default:true" json:"is_available"`
	Variants        VariantList `gorm:"type:json" json:"variants"`
	IsVeg           bool        `gorm:"default:false" json:"is_veg"`
	SpiceLevel      string      `gorm:"size:20" json:"spice_level"`
	PrepTimeMinutes int         `gorm:"default:15" json:"prep_time_minutes"`
	IsPopular       bool        `gorm:"default:false" json:"is_popular"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// ============================================================
// Devices & Printers
// ============================================================

// Device status
const (
	DeviceStatusOn      = "on"
	DeviceStatusOff     = "off"
	DeviceStatusUnknown = "unknown"
)

// DeviceTypes lists the accepted device types
var DeviceTypes = []string{"smart_plug", "display", "controller", "console"}

// ValidDeviceType reports whether t is an accepted device type
func ValidDeviceType(t string) bool {
	for _, v := range DeviceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Device represents devices table
type Device struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	DeviceID   string         `gorm:"uniqueIndex;size:50;not null" json:"device_id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Type       string         `gorm:"size:20;not null" json:"type"`
	TableID    *uint          `gorm:"index" json:"table_id"`
	Status     string         `gorm:"size:10;default:'unknown'" json:"status"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	LastSeenAt *time.Time     `json:"last_seen_at"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Table *Table `gorm:"foreignKey:TableID" json:"table,omitempty"`
}

func (Device) TableName() string {
	return "devices"
}

// Printer status
const (
	PrinterStatusOnline  = "online"
	PrinterStatusOffline = "offline"
)

// PrinterTypes lists the accepted printer types
var PrinterTypes = []string{"kitchen", "bar", "receipt"}

// ValidPrinterType reports whether t is an accepted printer type
func ValidPrinterType(t string) bool {
	for _, v := range PrinterTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Printer represents printers table. Removal deactivates instead of
// deleting: KOT routing refers to printers by name.
type Printer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Type       string     `gorm:"size:20;not null;default:'kitchen'" json:"type"`
	Location   string     `gorm:"size:100" json:"location"`
	Status     string     `gorm:"size:10;default:'offline'" json:"status"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	LastTestAt *time.Time `json:"last_test_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Printer) TableName() string {
	return "printers"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Table{},
		&MenuItem{},
		&Device{},
		&Printer{},
		&Order{},
		&OrderItem{},
		&Session{},
		&SessionExtension{},
		&Reservation{},
	)
}
