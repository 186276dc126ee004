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

// TableHandler handles table registry endpoints
type TableHandler struct {
	tableService *services.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *services.TableService) *TableHandler {
	return &TableHandler{
		tableService: tableService,
	}
}

// PlugRequest represents a plug control request body
type PlugRequest struct {
	Action string `json:"action"`
}

// List lists tables
// @Summary List tables
// @Description List tables with live session info, filterable by status, type and location
// @Tags Tables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Param location query string false "Filter by location"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /tables [get]
func (h *TableHandler) List(c *fiber.Ctx) error {
	filter := repositories.TableFilter{
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		Location:   c.Query("location"),
		ActiveOnly: c.Query("include_inactive") != "true",
	}

	tables, err := h.tableService.ListTables(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tables")
	}

	return response.Success(c, "Tables retrieved successfully", fiber.Map{
		"tables": tables,
	})
}

// GetByID gets a table by ID
// @Summary Get table by ID
// @Description Get a table with its running session projected in
// @Tags Tables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Table ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tables/{id} [get]
func (h *TableHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid table ID")
	}

	table, err := h.tableService.GetTable(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return response.NotFound(c, "Table not found")
		}
		return response.InternalServerError(c, "Failed to get table")
	}

	return response.Success(c, "Table retrieved successfully", fiber.Map{
		"table": table,
	})
}

// Create creates a table
// @Summary Create table
// @Description Register a new table or station (Manager or Admin)
// @Tags Tables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateTableInput true "Table data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /tables [post]
func (h *TableHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTableInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var fieldErrs []response.FieldError
	if input.TableNumber == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "table_number", Message: "Table number is required"})
	}
	if input.Type == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "type", Message: "Table type is required"})
	}
	if input.HourlyRate < 0 {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "hourly_rate", Message: "Hourly rate cannot be negative"})
	}
	if len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	table, err := h.tableService.CreateTable(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid table type")
		case errors.Is(err, domain.ErrTableNumberTaken):
			return response.BadRequest(c, "Table number already in use")
		default:
			return response.InternalServerError(c, "Failed to create table")
		}
	}

	return response.Created(c, "Table created successfully", fiber.Map{
		"table": table.ToResponse(),
	})
}

// Update updates a table
// @Summary Update table
// @Description Update a table; status edits are rejected while a session is running (Manager or Admin)
// @Tags Tables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Table ID"
// @Param body body services.UpdateTableInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tables/{id} [put]
func (h *TableHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid table ID")
	}

	var input services.UpdateTableInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	table, err := h.tableService.UpdateTable(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTableNotFound):
			return response.NotFound(c, "Table not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid table type or status")
		case errors.Is(err, domain.ErrTableOccupied):
			return response.BadRequest(c, "Table has an active session")
		default:
			return response.InternalServerError(c, "Failed to update table")
		}
	}

	return response.Success(c, "Table updated successfully", fiber.Map{
		"table": table.ToResponse(),
	})
}

// Delete deactivates a table
// @Summary Delete table
// @Description Deactivate a table; not possible while a session is running (Manager or Admin)
// @Tags Tables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Table ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tables/{id} [delete]
func (h *TableHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid table ID")
	}

	if err := h.tableService.DeleteTable(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrTableNotFound):
			return response.NotFound(c, "Table not found")
		case errors.Is(err, domain.ErrTableOccupied):
			return response.BadRequest(c, "Table has an active session")
		default:
			return response.InternalServerError(c, "Failed to delete table")
		}
	}

	return response.Success(c, "Table deleted successfully", nil)
}

// SetPlug toggles a table's smart plug
// @Summary Control table plug
// @Description Turn the smart plug assigned to a table on or off
// @Tags Tables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Table ID"
// @Param body body PlugRequest true "Plug action (on/off)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tables/{id}/plug [post]
func (h *TableHandler) SetPlug(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid table ID")
	}

	var req PlugRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	table, err := h.tableService.SetPlug(c.Context(), uint(id), req.Action)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTableNotFound):
			return response.NotFound(c, "Table not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Action must be on or off, and the table must have a plug assigned")
		default:
			return response.InternalServerError(c, "Failed to control plug")
		}
	}

	return response.Success(c, "Plug updated successfully", fiber.Map{
		"table": table.ToResponse(),
	})
}
