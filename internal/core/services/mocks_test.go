package services

import (
	"context"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Function-field mocks: a test sets only the calls it expects, anything
// else falls back to an empty result.

type mockUserRepo struct {
	createFn       func(ctx context.Context, user *models.User) error
	getByIDFn      func(ctx context.Context, id uint) (*models.User, error)
	getForLoginFn  func(ctx context.Context, email, role string) (*models.User, error)
	updateFieldsFn func(ctx context.Context, id uint, updates map[string]interface{}) error
	existsEmailFn  func(ctx context.Context, email string) (bool, error)
	existsUserFn   func(ctx context.Context, username string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetForLogin(ctx context.Context, email, role string) (*models.User, error) {
	if m.getForLoginFn != nil {
		return m.getForLoginFn(ctx, email, role)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

func (m *mockUserRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	if m.updateFieldsFn != nil {
		return m.updateFieldsFn(ctx, id, updates)
	}
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
	createFn       func(ctx context.Context, table *models.Table) error
	getByIDFn      func(ctx context.Context, id uint) (*models.Table, error)
	updateFieldsFn func(ctx context.Context, id uint, updates map[string]interface{}) error
	existsFn       func(ctx context.Context, tableNumber string) (bool, error)
}

func (m *mockTableRepo) Create(ctx context.Context, table *models.Table) error {
	if m.createFn != nil {
		return m.createFn(ctx, table)
	}
	return nil
}

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
	if m.updateFieldsFn != nil {
		return m.updateFieldsFn(ctx, id, updates)
	}
	return nil
}

func (m *mockTableRepo) List(ctx context.Context, filter repositories.TableFilter) ([]models.Table, error) {
	return nil, nil
}

func (m *mockTableRepo) ExistsByNumber(ctx context.Context, tableNumber string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, tableNumber)
	}
	return false, nil
}

type mockMenuRepo struct {
	getByIDFn func(ctx context.Context, id uint) (*models.MenuItem, error)
}

func (m *mockMenuRepo) Create(ctx context.Context, item *models.MenuItem) error { return nil }

func (m *mockMenuRepo) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
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

type mockOrderRepo struct {
	createWithItemsFn func(ctx context.Context, order *models.Order) error
	getByIDFn         func(ctx context.Context, id uint) (*models.Order, error)
	getByOrderIDFn    func(ctx context.Context, orderID string) (*models.Order, error)
	updateFieldsFn    func(ctx context.Context, id uint, updates map[string]interface{}) error
	getItemFn         func(ctx context.Context, orderRef, itemID uint) (*models.OrderItem, error)
	itemsByOrderFn    func(ctx context.Context, orderRef uint) ([]models.OrderItem, error)
	updateItemFn      func(ctx context.Context, itemID uint, updates map[string]interface{}) error
	countFn           func(ctx context.Context, pattern string) (int64, error)
	inWindowFn        func(ctx context.Context, tableID uint, from, to time.Time) ([]models.Order, error)
	markPaidFn        func(ctx context.Context, tableID uint, from, to time.Time, method string) error
	inFlightFn        func(ctx context.Context, day time.Time) ([]models.Order, error)
}

func (m *mockOrderRepo) CreateWithItems(ctx context.Context, order *models.Order) error {
	if m.createWithItemsFn != nil {
		return m.createWithItemsFn(ctx, order)
	}
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	if m.getByOrderIDFn != nil {
		return m.getByOrderIDFn(ctx, orderID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) List(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	if m.updateFieldsFn != nil {
		return m.updateFieldsFn(ctx, id, updates)
	}
	return nil
}

func (m *mockOrderRepo) GetItem(ctx context.Context, orderRef, itemID uint) (*models.OrderItem, error) {
	if m.getItemFn != nil {
		return m.getItemFn(ctx, orderRef, itemID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) ItemsByOrder(ctx context.Context, orderRef uint) ([]models.OrderItem, error) {
	if m.itemsByOrderFn != nil {
		return m.itemsByOrderFn(ctx, orderRef)
	}
	return nil, nil
}

func (m *mockOrderRepo) UpdateItemFields(ctx context.Context, itemID uint, updates map[string]interface{}) error {
	if m.updateItemFn != nil {
		return m.updateItemFn(ctx, itemID, updates)
	}
	return nil
}

func (m *mockOrderRepo) CountByPattern(ctx context.Context, pattern string) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, pattern)
	}
	return 0, nil
}

func (m *mockOrderRepo) InWindow(ctx context.Context, tableID uint, from, to time.Time) ([]models.Order, error) {
	if m.inWindowFn != nil {
		return m.inWindowFn(ctx, tableID, from, to)
	}
	return nil, nil
}

func (m *mockOrderRepo) MarkPaidInWindow(ctx context.Context, tableID uint, from, to time.Time, method string) error {
	if m.markPaidFn != nil {
		return m.markPaidFn(ctx, tableID, from, to, method)
	}
	return nil
}

func (m *mockOrderRepo) InFlightForDay(ctx context.Context, day time.Time) ([]models.Order, error) {
	if m.inFlightFn != nil {
		return m.inFlightFn(ctx, day)
	}
	return nil, nil
}

type mockSessionRepo struct {
	createFn         func(ctx context.Context, session *models.Session) error
	getByIDFn        func(ctx context.Context, id uint) (*models.Session, error)
	getBySessionIDFn func(ctx context.Context, sessionID string) (*models.Session, error)
	activeByTableFn  func(ctx context.Context, tableID uint) (*models.Session, error)
	updateFieldsFn   func(ctx context.Context, id uint, updates map[string]interface{}) error
	addExtensionFn   func(ctx context.Context, ext *models.SessionExtension) error
	countFn          func(ctx context.Context, pattern string) (int64, error)
	staleActiveFn    func(ctx context.Context, startedBefore time.Time) ([]models.Session, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	if m.getBySessionIDFn != nil {
		return m.getBySessionIDFn(ctx, sessionID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ActiveByTable(ctx context.Context, tableID uint) (*models.Session, error) {
	if m.activeByTableFn != nil {
		return m.activeByTableFn(ctx, tableID)
	}
	return nil, nil
}

func (m *mockSessionRepo) List(ctx context.Context, filter repositories.SessionFilter) ([]models.Session, int64, error) {
	return nil, 0, nil
}

func (m *mockSessionRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	if m.updateFieldsFn != nil {
		return m.updateFieldsFn(ctx, id, updates)
	}
	return nil
}

func (m *mockSessionRepo) AddExtension(ctx context.Context, ext *models.SessionExtension) error {
	if m.addExtensionFn != nil {
		return m.addExtensionFn(ctx, ext)
	}
	return nil
}

func (m *mockSessionRepo) CountByPattern(ctx context.Context, pattern string) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, pattern)
	}
	return 0, nil
}

func (m *mockSessionRepo) StaleActive(ctx context.Context, startedBefore time.Time) ([]models.Session, error) {
	if m.staleActiveFn != nil {
		return m.staleActiveFn(ctx, startedBefore)
	}
	return nil, nil
}

type mockReservationRepo struct {
	createAssigningFn func(ctx context.Context, res *models.Reservation) error
	getByIDFn         func(ctx context.Context, id uint) (*models.Reservation, error)
	getByResIDFn      func(ctx context.Context, reservationID string) (*models.Reservation, error)
	updateFieldsFn    func(ctx context.Context, id uint, updates map[string]interface{}) error
	countFn           func(ctx context.Context, pattern string) (int64, error)
	confirmedBeforeFn func(ctx context.Context, day time.Time) ([]models.Reservation, error)
}

func (m *mockReservationRepo) CreateAssigning(ctx context.Context, res *models.Reservation) error {
	if m.createAssigningFn != nil {
		return m.createAssigningFn(ctx, res)
	}
	return nil
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReservationRepo) GetByReservationID(ctx context.Context, reservationID string) (*models.Reservation, error) {
	if m.getByResIDFn != nil {
		return m.getByResIDFn(ctx, reservationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReservationRepo) List(ctx context.Context, filter repositories.ReservationFilter) ([]models.Reservation, int64, error) {
	return nil, 0, nil
}

func (m *mockReservationRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	if m.updateFieldsFn != nil {
		return m.updateFieldsFn(ctx, id, updates)
	}
	return nil
}

func (m *mockReservationRepo) CountByPattern(ctx context.Context, pattern string) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, pattern)
	}
	return 0, nil
}

func (m *mockReservationRepo) ConfirmedBefore(ctx context.Context, day time.Time) ([]models.Reservation, error) {
	if m.confirmedBeforeFn != nil {
		return m.confirmedBeforeFn(ctx, day)
	}
	return nil, nil
}

// mockNotifier records kitchen events
type mockNotifier struct {
	events []notifiedEvent
}

type notifiedEvent struct {
	printer string
	event   string
}

func (m *mockNotifier) Notify(printer, event string, payload interface{}) {
	m.events = append(m.events, notifiedEvent{printer: printer, event: event})
}
