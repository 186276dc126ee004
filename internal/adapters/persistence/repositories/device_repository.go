package repositories

import (
	"context"

	"arcadia-pos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Devices
// ============================================================

// deviceRepository implements DeviceRepository interface
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

// Create creates a new device
func (r *deviceRepository) Create(ctx context.Context, device *models.Device) error {
	return r.db.WithContext(ctx).Create(device).Error
}

// GetByID gets a device by ID
func (r *deviceRepository) GetByID(ctx context.Context, id uint) (*models.Device, error) {
	var device models.Device
	err := r.db.WithContext(ctx).Preload("Table").Where("id = ?", id).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// Update updates a device
func (r *deviceRepository) Update(ctx context.Context, device *models.Device) error {
	return r.db.WithContext(ctx).Save(device).Error
}

// UpdateFields updates selected device columns
func (r *deviceRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Device{}).Where("id = ?", id).Updates(updates).Error
}

// List lists devices matching the filter
func (r *deviceRepository) List(ctx context.Context, filter DeviceFilter) ([]models.Device, error) {
	var devices []models.Device

	query := r.db.WithContext(ctx).Model(&models.Device{}).Preload("Table")
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.TableID != 0 {
		query = query.Where("table_id = ?", filter.TableID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("id ASC").Find(&devices).Error
	return devices, err
}

// ExistsByDeviceID checks if a device id is already registered
func (r *deviceRepository) ExistsByDeviceID(ctx context.Context, deviceID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Device{}).Where("device_id = ?", deviceID).Count(&count).Error
	return count > 0, err
}

// Delete soft deletes a device
func (r *deviceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Device{}, id).Error
}

// ============================================================
// Printers
// ============================================================

// printerRepository implements PrinterRepository interface
type printerRepository struct {
	db *gorm.DB
}

// NewPrinterRepository creates a new printer repository
func NewPrinterRepository(db *gorm.DB) PrinterRepository {
	return &printerRepository{db: db}
}

// Create creates a new printer
func (r *printerRepository) Create(ctx context.Context, printer *models.Printer) error {
	return r.db.WithContext(ctx).Create(printer).Error
}

// GetByID gets a printer by ID
func (r *printerRepository) GetByID(ctx context.Context, id uint) (*models.Printer, error) {
	var printer models.Printer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&printer).Error
	if err != nil {
		return nil, err
	}
	return &printer, nil
}

// GetByName gets a printer by name
func (r *printerRepository) GetByName(ctx context.Context, name string) (*models.Printer, error) {
	var printer models.Printer
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&printer).Error
	if err != nil {
		return nil, err
	}
	return &printer, nil
}

// Update updates a printer
func (r *printerRepository) Update(ctx context.Context, printer *models.Printer) error {
	return r.db.WithContext(ctx).Save(printer).Error
}

// UpdateFields updates selected printer columns
func (r *printerRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Printer{}).Where("id = ?", id).Updates(updates).Error
}

// List lists printers, optionally only active ones
func (r *printerRepository) List(ctx context.Context, activeOnly bool) ([]models.Printer, error) {
	var printers []models.Printer

	query := r.db.WithContext(ctx).Model(&models.Printer{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("name ASC").Find(&printers).Error
	return printers, err
}
