package services

import (
	"context"
	"errors"
	"log"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Devices
// ============================================================

// DeviceService handles smart device registry. Control is a stub: it
// mutates the stored status only, no device protocol is spoken.
type DeviceService struct {
	deviceRepo repositories.DeviceRepository
	tableRepo  repositories.TableRepository
}

// NewDeviceService creates a new device service
func NewDeviceService(deviceRepo repositories.DeviceRepository, tableRepo repositories.TableRepository) *DeviceService {
	return &DeviceService{
		deviceRepo: deviceRepo,
		tableRepo:  tableRepo,
	}
}

// RegisterDeviceInput represents device registration input
type RegisterDeviceInput struct {
	DeviceID string `json:"device_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	TableID  *uint  `json:"table_id"`
}

// UpdateDeviceInput represents device update input
type UpdateDeviceInput struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	TableID  *uint   `json:"table_id"`
	IsActive *bool   `json:"is_active"`
}

// RegisterDevice registers a device under a unique external device id
func (s *DeviceService) RegisterDevice(ctx context.Context, input *RegisterDeviceInput) (*models.Device, error) {
	if input.DeviceID == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !models.ValidDeviceType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.deviceRepo.ExistsByDeviceID(ctx, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDeviceIDTaken
	}

	if input.TableID != nil {
		if _, err := s.tableRepo.GetByID(ctx, *input.TableID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrTableNotFound
			}
			return nil, err
		}
	}

	device := &models.Device{
		DeviceID: input.DeviceID,
		Name:     input.Name,
		Type:     input.Type,
		TableID:  input.TableID,
		Status:   models.DeviceStatusUnknown,
		IsActive: true,
	}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}

	log.Printf("✅ Device registered: %s (%s)", device.DeviceID, device.Type)
	return s.deviceRepo.GetByID(ctx, device.ID)
}

// ListDevices lists devices matching the filter
func (s *DeviceService) ListDevices(ctx context.Context, filter repositories.DeviceFilter) ([]models.Device, error) {
	return s.deviceRepo.List(ctx, filter)
}

// GetDevice fetches one device
func (s *DeviceService) GetDevice(ctx context.Context, id uint) (*models.Device, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, err
	}
	return device, nil
}

// UpdateDevice applies partial updates to a device
func (s *DeviceService) UpdateDevice(ctx context.Context, id uint, input *UpdateDeviceInput) (*models.Device, error) {
	device, err := s.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Type != nil {
		if !models.ValidDeviceType(*input.Type) {
			return nil, domain.ErrInvalidInput
		}
		updates["type"] = *input.Type
	}
	if input.TableID != nil {
		if _, err := s.tableRepo.GetByID(ctx, *input.TableID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrTableNotFound
			}
			return nil, err
		}
		updates["table_id"] = *input.TableID
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return device, nil
	}

	if err := s.deviceRepo.UpdateFields(ctx, device.ID, updates); err != nil {
		return nil, err
	}
	return s.deviceRepo.GetByID(ctx, device.ID)
}

// ControlDevice flips the stored device status on or off and stamps
// last_seen_at
func (s *DeviceService) ControlDevice(ctx context.Context, id uint, action string) (*models.Device, error) {
	if action != models.DeviceStatusOn && action != models.DeviceStatusOff {
		return nil, domain.ErrInvalidInput
	}

	device, err := s.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.deviceRepo.UpdateFields(ctx, device.ID, map[string]interface{}{
		"status":       action,
		"last_seen_at": now,
	}); err != nil {
		return nil, err
	}

	log.Printf("🔌 Device %s switched %s", device.DeviceID, action)
	return s.deviceRepo.GetByID(ctx, device.ID)
}

// DeleteDevice soft-deletes a device
func (s *DeviceService) DeleteDevice(ctx context.Context, id uint) error {
	device, err := s.GetDevice(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deviceRepo.Delete(ctx, device.ID); err != nil {
		return err
	}
	log.Printf("🗑️ Device removed: %s", device.DeviceID)
	return nil
}

// ============================================================
// Printers
// ============================================================

// PrinterService handles the KOT printer registry
type PrinterService struct {
	printerRepo repositories.PrinterRepository
}

// NewPrinterService creates a new printer service
func NewPrinterService(printerRepo repositories.PrinterRepository) *PrinterService {
	return &PrinterService{printerRepo: printerRepo}
}

// CreatePrinterInput represents printer creation input
type CreatePrinterInput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

// UpdatePrinterInput represents printer update input
type UpdatePrinterInput struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Location *string `json:"location"`
	IsActive *bool   `json:"is_active"`
}

// CreatePrinter registers a printer under a unique name
func (s *PrinterService) CreatePrinter(ctx context.Context, input *CreatePrinterInput) (*models.Printer, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	printerType := input.Type
	if printerType == "" {
		printerType = "kitchen"
	}
	if !models.ValidPrinterType(printerType) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.printerRepo.GetByName(ctx, input.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEntry
	}

	printer := &models.Printer{
		Name:     input.Name,
		Type:     printerType,
		Location: input.Location,
		Status:   models.PrinterStatusOffline,
		IsActive: true,
	}
	if err := s.printerRepo.Create(ctx, printer); err != nil {
		return nil, err
	}

	log.Printf("✅ Printer created: %s (%s)", printer.Name, printer.Type)
	return printer, nil
}

// ListPrinters lists printers, optionally active ones only
func (s *PrinterService) ListPrinters(ctx context.Context, activeOnly bool) ([]models.Printer, error) {
	return s.printerRepo.List(ctx, activeOnly)
}

// GetPrinter fetches one printer
func (s *PrinterService) GetPrinter(ctx context.Context, id uint) (*models.Printer, error) {
	printer, err := s.printerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrinterNotFound
		}
		return nil, err
	}
	return printer, nil
}

// UpdatePrinter applies partial updates to a printer
func (s *PrinterService) UpdatePrinter(ctx context.Context, id uint, input *UpdatePrinterInput) (*models.Printer, error) {
	printer, err := s.GetPrinter(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Type != nil {
		if !models.ValidPrinterType(*input.Type) {
			return nil, domain.ErrInvalidInput
		}
		updates["type"] = *input.Type
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return printer, nil
	}

	if err := s.printerRepo.UpdateFields(ctx, printer.ID, updates); err != nil {
		return nil, err
	}
	return s.printerRepo.GetByID(ctx, printer.ID)
}

// TestPrinter stamps a test print: status online + last_test_at. No
// printer protocol is spoken.
func (s *PrinterService) TestPrinter(ctx context.Context, id uint) (*models.Printer, error) {
	printer, err := s.GetPrinter(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.printerRepo.UpdateFields(ctx, printer.ID, map[string]interface{}{
		"status":       models.PrinterStatusOnline,
		"last_test_at": now,
	}); err != nil {
		return nil, err
	}

	log.Printf("🖨️ Test print sent to %s", printer.Name)
	return s.printerRepo.GetByID(ctx, printer.ID)
}

// DeletePrinter deactivates a printer. Rows stay because KOT routing
// refers to printers by name.
func (s *PrinterService) DeletePrinter(ctx context.Context, id uint) error {
	printer, err := s.GetPrinter(ctx, id)
	if err != nil {
		return err
	}
	if err := s.printerRepo.UpdateFields(ctx, printer.ID, map[string]interface{}{
		"is_active": false,
	}); err != nil {
		return err
	}
	log.Printf("🗑️ Printer deactivated: %s", printer.Name)
	return nil
}
