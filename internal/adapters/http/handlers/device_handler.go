package handlers

import (
	"errors"
	"strconv"

	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/core/services"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DeviceHandler handles device and printer registry endpoints
type DeviceHandler struct {
	deviceService  *services.DeviceService
	printerService *services.PrinterService
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(deviceService *services.DeviceService, printerService *services.PrinterService) *DeviceHandler {
	return &DeviceHandler{
		deviceService:  deviceService,
		printerService: printerService,
	}
}

// ControlRequest represents a device power control request body
type ControlRequest struct {
	Action string `json:"action"`
}

// ListDevices lists devices
// @Summary List devices
// @Description List registered devices, filterable by type and table
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by device type"
// @Param table_id query int false "Filter by table"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /devices [get]
func (h *DeviceHandler) ListDevices(c *fiber.Ctx) error {
	filter := repositories.DeviceFilter{
		Type:       c.Query("type"),
		ActiveOnly: c.Query("include_inactive") != "true",
	}
	if tableID := c.Query("table_id"); tableID != "" {
		id, _ := strconv.ParseUint(tableID, 10, 32)
		filter.TableID = uint(id)
	}

	devices, err := h.deviceService.ListDevices(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list devices")
	}

	return response.Success(c, "Devices retrieved successfully", fiber.Map{
		"devices": devices,
	})
}

// GetDevice gets a device by ID
// @Summary Get device by ID
// @Description Get a registered device
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /devices/{id} [get]
func (h *DeviceHandler) GetDevice(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid device ID")
	}

	device, err := h.deviceService.GetDevice(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrDeviceNotFound) {
			return response.NotFound(c, "Device not found")
		}
		return response.InternalServerError(c, "Failed to get device")
	}

	return response.Success(c, "Device retrieved successfully", fiber.Map{
		"device": device,
	})
}

// RegisterDevice registers a device
// @Summary Register device
// @Description Register a smart plug, display, controller or console (Manager or Admin)
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterDeviceInput true "Device data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /devices [post]
func (h *DeviceHandler) RegisterDevice(c *fiber.Ctx) error {
	var input services.RegisterDeviceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	device, err := h.deviceService.RegisterDevice(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Device ID, name and a valid type are required")
		case errors.Is(err, domain.ErrDeviceIDTaken):
			return response.BadRequest(c, "Device ID already registered")
		case errors.Is(err, domain.ErrTableNotFound):
			return response.NotFound(c, "Table not found")
		default:
			return response.InternalServerError(c, "Failed to register device")
		}
	}

	return response.Created(c, "Device registered successfully", fiber.Map{
		"device": device,
	})
}

// UpdateDevice updates a device
// @Summary Update device
// @Description Update a registered device (Manager or Admin)
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Param body body services.UpdateDeviceInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /devices/{id} [put]
func (h *DeviceHandler) UpdateDevice(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid device ID")
	}

	var input services.UpdateDeviceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	device, err := h.deviceService.UpdateDevice(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDeviceNotFound):
			return response.NotFound(c, "Device not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid device type")
		case errors.Is(err, domain.ErrTableNotFound):
			return response.NotFound(c, "Table not found")
		default:
			return response.InternalServerError(c, "Failed to update device")
		}
	}

	return response.Success(c, "Device updated successfully", fiber.Map{
		"device": device,
	})
}

// ControlDevice turns a device on or off
// @Summary Control device
// @Description Turn a device on or off and stamp its last-seen time
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Param body body ControlRequest true "Action (on/off)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /devices/{id}/control [post]
func (h *DeviceHandler) ControlDevice(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid device ID")
	}

	var req ControlRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	device, err := h.deviceService.ControlDevice(c.Context(), uint(id), req.Action)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDeviceNotFound):
			return response.NotFound(c, "Device not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Action must be on or off")
		default:
			return response.InternalServerError(c, "Failed to control device")
		}
	}

	return response.Success(c, "Device updated successfully", fiber.Map{
		"device": device,
	})
}

// DeleteDevice removes a device
// @Summary Delete device
// @Description Deactivate a registered device (Manager or Admin)
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /devices/{id} [delete]
func (h *DeviceHandler) DeleteDevice(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid device ID")
	}

	if err := h.deviceService.DeleteDevice(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrDeviceNotFound) {
			return response.NotFound(c, "Device not found")
		}
		return response.InternalServerError(c, "Failed to delete device")
	}

	return response.Success(c, "Device deleted successfully", nil)
}

// ListPrinters lists printers
// @Summary List printers
// @Description List registered printers
// @Tags Printers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param include_inactive query bool false "Include deactivated printers"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /printers [get]
func (h *DeviceHandler) ListPrinters(c *fiber.Ctx) error {
	activeOnly := c.Query("include_inactive") != "true"

	printers, err := h.printerService.ListPrinters(c.Context(), activeOnly)
	if err != nil {
		return response.InternalServerError(c, "Failed to list printers")
	}

	return response.Success(c, "Printers retrieved successfully", fiber.Map{
		"printers": printers,
	})
}

// GetPrinter gets a printer by ID
// @Summary Get printer by ID
// @Description Get a registered printer
// @Tags Printers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Printer ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /printers/{id} [get]
func (h *DeviceHandler) GetPrinter(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid printer ID")
	}

	printer, err := h.printerService.GetPrinter(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrPrinterNotFound) {
			return response.NotFound(c, "Printer not found")
		}
		return response.InternalServerError(c, "Failed to get printer")
	}

	return response.Success(c, "Printer retrieved successfully", fiber.Map{
		"printer": printer,
	})
}

// CreatePrinter registers a printer
// @Summary Create printer
// @Description Register a kitchen, bar or receipt printer (Manager or Admin)
// @Tags Printers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePrinterInput true "Printer data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /printers [post]
func (h *DeviceHandler) CreatePrinter(c *fiber.Ctx) error {
	var input services.CreatePrinterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	printer, err := h.printerService.CreatePrinter(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Name and a valid printer type are required")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.BadRequest(c, "Printer name already registered")
		default:
			return response.InternalServerError(c, "Failed to create printer")
		}
	}

	return response.Created(c, "Printer created successfully", fiber.Map{
		"printer": printer,
	})
}

// UpdatePrinter updates a printer
// @Summary Update printer
// @Description Update a registered printer (Manager or Admin)
// @Tags Printers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Printer ID"
// @Param body body services.UpdatePrinterInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /printers/{id} [put]
func (h *DeviceHandler) UpdatePrinter(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid printer ID")
	}

	var input services.UpdatePrinterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	printer, err := h.printerService.UpdatePrinter(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPrinterNotFound):
			return response.NotFound(c, "Printer not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid printer type")
		default:
			return response.InternalServerError(c, "Failed to update printer")
		}
	}

	return response.Success(c, "Printer updated successfully", fiber.Map{
		"printer": printer,
	})
}

// TestPrinter runs a printer connectivity test
// @Summary Test printer
// @Description Mark the printer online and stamp its last test time
// @Tags Printers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Printer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /printers/{id}/test [post]
func (h *DeviceHandler) TestPrinter(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid printer ID")
	}

	printer, err := h.printerService.TestPrinter(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrPrinterNotFound) {
			return response.NotFound(c, "Printer not found")
		}
		return response.InternalServerError(c, "Failed to test printer")
	}

	return response.Success(c, "Printer test completed", fiber.Map{
		"printer": printer,
	})
}

// DeletePrinter removes a printer
// @Summary Delete printer
// @Description Deactivate a registered printer (Manager or Admin)
// @Tags Printers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Printer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /printers/{id} [delete]
func (h *DeviceHandler) DeletePrinter(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid printer ID")
	}

	if err := h.printerService.DeletePrinter(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrPrinterNotFound) {
			return response.NotFound(c, "Printer not found")
		}
		return response.InternalServerError(c, "Failed to delete printer")
	}

	return response.Success(c, "Printer deleted successfully", nil)
}
