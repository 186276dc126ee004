package handlers

import (
	"context"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Function-field repository mocks, same shape as the service-level
// ones: a test sets only the calls it expects.

type mockUserRepo struct {
	getByIDFn     func(ctx context.Context, id uint) (*models.User, error)
	existsEmailFn func(ctx context.Context, email string) (bool, error)
	existsUserFn  func(ctx context.Context, username string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetForLogin(ctx context.Context, email, role string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

func (m *mockUserRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, role string, offset, limit int) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsUserFn != nil {
		return m.existsUserFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsEmailFn != nil {
		return m.existsEmailFn(ctx, email)
	}
	return false, nil
}

type mockTableRepo struct {
	getByIDFn func(ctx context.Context, id uint) (*models.Table, error)
}

func (m *mockTableRepo) Create(ctx context.Context, table *models.Table) error { return nil }

func (m *mockTableRepo) GetByID(ctx context.Context, id uint) (*models.Table, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTableRepo) GetByNumber(ctx context.Context, tableNumber string) (*models.Table, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTableRepo) Update(ctx context.Context, table *models.Table) error { return nil }

func (m *mockTableRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return nil
}

func (m *mockTableRepo) List(ctx context.Context, filter repositories.TableFilter) ([]models.Table, error) {
	return nil, nil
}

func (m *mockTableRepo) ExistsByNumber(ctx context.Context, tableNumber string) (bool, error) {
	return false, nil
}

type mockMenuRepo struct{}

func (m *mockMenuRepo) Create(ctx context.Context, item *models.MenuItem) error { return nil }

func (m *mockMenuRepo) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMenuRepo) Update(ctx context.Context, item *models.MenuItem) error { return nil }

func (m *mockMenuRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return nil
}

func (m *mockMenuRepo) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockMenuRepo) List(ctx context.Context, filter repositories.MenuFilter) ([]models.MenuItem, error) {
	return nil, nil
}

func (m *mockMenuRepo) Categories(ctx context.Context) ([]string, error) { return nil, nil }

type mockOrderRepo struct{}

func (m *mockOrderRepo) CreateWithItems(ctx context.Context, order *models.Order) error { return nil }

func (m *mockOrderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) List(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return nil
}

func (m *mockOrderRepo) GetItem(ctx context.Context, orderRef, itemID uint) (*models.OrderItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) ItemsByOrder(ctx context.Context, orderRef uint) ([]models.OrderItem, error) {
	return nil, nil
}

func (m *mockOrderRepo) UpdateItemFields(ctx context.Context, itemID uint, updates map[string]interface{}) error {
	return nil
}

func (m *mockOrderRepo) CountByPattern(ctx context.Context, pattern string) (int64, error) {
	return 0, nil
}

func (m *mockOrderRepo) InWindow(ctx context.Context, tableID uint, from, to time.Time) ([]models.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) MarkPaidInWindow(ctx context.Context, tableID uint, from, to time.Time, method string) error {
	return nil
}

func (m *mockOrderRepo) InFlightForDay(ctx context.Context, day time.Time) ([]models.Order, error) {
	return nil, nil
}

type mockSessionRepo struct {
	getByIDFn func(ctx context.Context, id uint) (*models.Session, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error { return nil }

func (m *mockSessionRepo) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ActiveByTable(ctx context.Context, tableID uint) (*models.Session, error) {
	return nil, nil
}

func (m *mockSessionRepo) List(ctx context.Context, filter repositories.SessionFilter) ([]models.Session, int64, error) {
	return nil, 0, nil
}

func (m *mockSessionRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return nil
}

func (m *mockSessionRepo) AddExtension(ctx context.Context, ext *models.SessionExtension) error {
	return nil
}

func (m *mockSessionRepo) CountByPattern(ctx context.Context, pattern string) (int64, error) {
	return 0, nil
}

func (m *mockSessionRepo) StaleActive(ctx context.Context, startedBefore time.Time) ([]models.Session, error) {
	return nil, nil
}

type mockReservationRepo struct {
	createAssigningFn func(ctx context.Context, res *models.Reservation) error
}

func (m *mockReservationRepo) CreateAssigning(ctx context.Context, res *models.Reservation) error {
	if m.createAssigningFn != nil {
		return m.createAssigningFn(ctx, res)
	}
	return nil
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReservationRepo) GetByReservationID(ctx context.Context, reservationID string) (*models.Reservation, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReservationRepo) List(ctx context.Context, filter repositories.ReservationFilter) ([]models.Reservation, int64, error) {
	return nil, 0, nil
}

func (m *mockReservationRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return nil
}

func (m *mockReservationRepo) CountByPattern(ctx context.Context, pattern string) (int64, error) {
	return 0, nil
}

func (m *mockReservationRepo) ConfirmedBefore(ctx context.Context, day time.Time) ([]models.Reservation, error) {
	return nil, nil
}
