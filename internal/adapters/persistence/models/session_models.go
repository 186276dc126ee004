package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Sessions
// ============================================================

// Session status
const (
	SessionStatusActive    = "active"
	SessionStatusPaused    = "paused"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Session represents sessions table. SessionID is the customer-facing id
// (SES-YYYYMMDD-NNNN). HourlyRate is copied from the table at start so a
// later rate change cannot alter a running bill.
type Session struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	SessionID      string         `gorm:"uniqueIndex;size:30;not null" json:"session_id"`
	TableID        uint           `gorm:"not null;index" json:"table_id"`
	TableNumber    string         `gorm:"size:20" json:"table_number"`
	CustomerName   string         `gorm:"size:100" json:"customer_name"`
	CustomerPhone  string         `gorm:"size:20" json:"customer_phone"`
	StartTime      time.Time      `gorm:"not null" json:"start_time"`
	EndTime        *time.Time     `json:"end_time"`
	DurationMin    int            `gorm:"default:0" json:"duration_minutes"`
	HourlyRate     float64        `gorm:"type:decimal(10,2);not null" json:"hourly_rate"`
	SessionCost    float64        `gorm:"type:decimal(10,2);default:0" json:"session_cost"`
	TotalOrderCost float64        `gorm:"type:decimal(10,2);default:0" json:"total_order_cost"`
	Subtotal       float64        `gorm:"type:decimal(10,2);default:0" json:"subtotal"`
	Tax            float64        `gorm:"type:decimal(10,2);default:0" json:"tax"`
	ServiceFee     float64        `gorm:"type:decimal(10,2);default:0" json:"service_fee"`
	Discount       float64        `gorm:"type:decimal(10,2);default:0" json:"discount"`
	Total          float64        `gorm:"type:decimal(10,2);default:0" json:"total"`
	PaymentStatus  string         `gorm:"size:20;default:'pending';index" json:"payment_status"`
	PaymentMethod  string         `gorm:"size:20" json:"payment_method"`
	Status         string         `gorm:"size:20;default:'active';index" json:"status"`
	CreatedBy      uint           `gorm:"not null" json:"created_by"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Table      *Table             `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Creator    *User              `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Extensions []SessionExtension `gorm:"foreignKey:SessionRef;references:ID" json:"extensions,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

// SessionExtension is one append-only extension log entry
type SessionExtension struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionRef uint      `gorm:"column:session_ref;not null;index" json:"session_ref"`
	Amount     float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reason     string    `gorm:"size:255" json:"reason"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SessionExtension) TableName() string {
	return "session_extensions"
}

// ============================================================
// Reservations
// ============================================================

// Reservation status
const (
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusArrived   = "arrived"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
	ReservationStatusNoShow    = "no_show"
)

// Reservation represents reservations table. ReservationID is the
// customer-facing id (RES-YYYYMMDD-NNNN).
type Reservation struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ReservationID   string         `gorm:"uniqueIndex;size:30;not null" json:"reservation_id"`
	CustomerName    string         `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone   string         `gorm:"size:20;not null" json:"customer_phone"`
	CustomerEmail   string         `gorm:"size:100" json:"customer_email"`
	TableID         *uint          `gorm:"index" json:"table_id"`
	TableType       string         `gorm:"size:20;not null" json:"table_type"`
	Date            time.Time      `gorm:"type:date;not null;index" json:"date"`
	Time            string         `gorm:"size:10;not null" json:"time"`
	DurationMin     int            `gorm:"default:60" json:"duration_minutes"`
	PartySize       int            `gorm:"default:2" json:"party_size"`
	SpecialRequests string         `gorm:"type:text" json:"special_requests"`
	Status          string         `gorm:"size:20;default:'confirmed';index" json:"status"`
	ReminderSent    bool           `gorm:"default:false" json:"reminder_sent"`
	CreatedBy       *uint          `json:"created_by"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Table   *Table `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Creator *User  `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}
