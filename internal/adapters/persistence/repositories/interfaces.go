package repositories

import (
	"context"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetForLogin(ctx context.Context, email, role string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	List(ctx context.Context, role string, offset, limit int) ([]models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TableFilter narrows table listings
type TableFilter struct {
	Status     string
	Type       string
	Location   string
	ActiveOnly bool
}

// TableRepository defines table repository interface
type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, id uint) (*models.Table, error)
	GetByNumber(ctx context.Context, tableNumber string) (*models.Table, error)
	Update(ctx context.Context, table *models.Table) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	List(ctx context.Context, filter TableFilter) ([]models.Table, error)
	ExistsByNumber(ctx context.Context, tableNumber string) (bool, error)
}

// MenuFilter narrows menu listings
type MenuFilter struct {
	Category      string
	Printer       string
	AvailableOnly bool
	Search        string
}

// MenuRepository defines menu repository interface
type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uint) (*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error)
	Categories(ctx context.Context) ([]string, error)
}

// OrderFilter narrows order listings
type OrderFilter struct {
	Status        string
	PaymentStatus string
	TableID       uint
	DateFrom      *time.Time
	DateTo        *time.Time
	Offset        int
	Limit         int
}

// OrderRepository defines order repository interface
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	GetItem(ctx context.Context, orderRef, itemID uint) (*models.OrderItem, error)
	ItemsByOrder(ctx context.Context, orderRef uint) ([]models.OrderItem, error)
	UpdateItemFields(ctx context.Context, itemID uint, updates map[string]interface{}) error
	CountByPattern(ctx context.Context, pattern string) (int64, error)
	InWindow(ctx context.Context, tableID uint, from, to time.Time) ([]models.Order, error)
	MarkPaidInWindow(ctx context.Context, tableID uint, from, to time.Time, method string) error
	InFlightForDay(ctx context.Context, day time.Time) ([]models.Order, error)
}

// SessionFilter narrows session listings
type SessionFilter struct {
	Status   string
	TableID  uint
	DateFrom *time.Time
	DateTo   *time.Time
	Offset   int
	Limit    int
}

// SessionRepository defines session repository interface
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uint) (*models.Session, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error)
	ActiveByTable(ctx context.Context, tableID uint) (*models.Session, error)
	List(ctx context.Context, filter SessionFilter) ([]models.Session, int64, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	AddExtension(ctx context.Context, ext *models.SessionExtension) error
	CountByPattern(ctx context.Context, pattern string) (int64, error)
	StaleActive(ctx context.Context, startedBefore time.Time) ([]models.Session, error)
}

// ReservationFilter narrows reservation listings
type ReservationFilter struct {
	Status string
	Date   *time.Time
	Search string
	Offset int
	Limit  int
}

// ReservationRepository defines reservation repository interface
type ReservationRepository interface {
	CreateAssigning(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	GetByReservationID(ctx context.Context, reservationID string) (*models.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int64, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	CountByPattern(ctx context.Context, pattern string) (int64, error)
	ConfirmedBefore(ctx context.Context, day time.Time) ([]models.Reservation, error)
}

// DeviceFilter narrows device listings
type DeviceFilter struct {
	Type       string
	TableID    uint
	ActiveOnly bool
}

// DeviceRepository defines device repository interface
type DeviceRepository interface {
	Create(ctx context.Context, device *models.Device) error
	GetByID(ctx context.Context, id uint) (*models.Device, error)
	Update(ctx context.Context, device *models.Device) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	List(ctx context.Context, filter DeviceFilter) ([]models.Device, error)
	ExistsByDeviceID(ctx context.Context, deviceID string) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// PrinterRepository defines printer repository interface
type PrinterRepository interface {
	Create(ctx context.Context, printer *models.Printer) error
	GetByID(ctx context.Context, id uint) (*models.Printer, error)
	GetByName(ctx context.Context, name string) (*models.Printer, error)
	Update(ctx context.Context, printer *models.Printer) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	List(ctx context.Context, activeOnly bool) ([]models.Printer, error)
}
