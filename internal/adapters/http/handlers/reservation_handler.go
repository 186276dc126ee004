package handlers

import (
	"errors"
	"time"

	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/core/services"
	"arcadia-pos/internal/pkg/pagination"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReservationHandler handles reservation endpoints
type ReservationHandler struct {
	reservationService *services.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

// Create creates a reservation
// @Summary Create reservation
// @Description Book a table type for a slot; a free table is assigned automatically when one exists
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateReservationInput true "Reservation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var input services.CreateReservationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var fieldErrs []response.FieldError
	if input.CustomerName == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "customer_name", Message: "Customer name is required"})
	}
	if input.TableType == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "table_type", Message: "Table type is required"})
	}
	if input.Date == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "date", Message: "Date is required"})
	}
	if input.Time == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "time", Message: "Time is required"})
	}
	if len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	userID, _ := c.Locals("userID").(uint)

	res, err := h.reservationService.CreateReservation(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid reservation data")
		case errors.Is(err, domain.ErrNoTablesAvailable):
			return response.Conflict(c, "No tables available for the requested slot")
		default:
			return response.InternalServerError(c, "Failed to create reservation")
		}
	}

	return response.Created(c, "Reservation created successfully", fiber.Map{
		"reservation": res,
	})
}

// List lists reservations
// @Summary List reservations
// @Description List reservations with pagination and filters
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param search query string false "Search by customer name or phone"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.ReservationFilter{
		Status: c.Query("status"),
		Search: params.Search,
		Offset: params.Offset,
		Limit:  params.Limit,
	}

	if date := c.Query("date"); date != "" {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		}
		filter.Date = &t
	}

	reservations, total, err := h.reservationService.ListReservations(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list reservations")
	}

	return response.Success(c, "Reservations retrieved successfully", pagination.NewResponse(reservations, params, total))
}

// GetByRef gets a reservation by numeric ID or external reservation ID
// @Summary Get reservation
// @Description Get a reservation by numeric ID or by its RES- reference
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Reservation ID or reference"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reservations/{ref} [get]
func (h *ReservationHandler) GetByRef(c *fiber.Ctx) error {
	res, err := h.reservationService.GetReservation(c.Context(), c.Params("ref"))
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return response.NotFound(c, "Reservation not found")
		}
		return response.InternalServerError(c, "Failed to get reservation")
	}

	return response.Success(c, "Reservation retrieved successfully", fiber.Map{
		"reservation": res,
	})
}

// UpdateStatus updates a reservation's status
// @Summary Update reservation status
// @Description Mark a reservation arrived, completed, cancelled or no-show; the assigned table is held or freed accordingly
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Reservation ID or reference"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reservations/{ref}/status [patch]
func (h *ReservationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	res, err := h.reservationService.UpdateStatus(c.Context(), c.Params("ref"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReservationNotFound):
			return response.NotFound(c, "Reservation not found")
		case errors.Is(err, domain.ErrInvalidReservationStatus):
			return response.BadRequest(c, "Status change not allowed from the reservation's current state")
		default:
			return response.InternalServerError(c, "Failed to update reservation")
		}
	}

	return response.Success(c, "Reservation updated successfully", fiber.Map{
		"reservation": res,
	})
}
