package handlers

import (
	"errors"

	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/core/services"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BillingHandler handles discount, payment and receipt endpoints
type BillingHandler struct {
	billingService *services.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

// DiscountSession applies a discount to a session bill
// @Summary Apply session discount
// @Description Apply a percent or fixed discount to a session bill, gated by the acting user's permissions
// @Tags Billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Session ID or reference"
// @Param body body services.DiscountInput true "Discount (exactly one of percent or amount)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{ref}/discount [post]
func (h *BillingHandler) DiscountSession(c *fiber.Ctx) error {
	var input services.DiscountInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, _ := c.Locals("userID").(uint)

	session, err := h.billingService.ApplySessionDiscount(c.Context(), userID, c.Params("ref"), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			return response.NotFound(c, "Session not found")
		case errors.Is(err, domain.ErrDiscountNotAllowed):
			return response.Forbidden(c, "You are not allowed to discount session bills")
		case errors.Is(err, domain.ErrDiscountTooLarge):
			return response.BadRequest(c, "Discount exceeds your permitted maximum")
		case errors.Is(err, domain.ErrSessionAlreadyPaid):
			return response.BadRequest(c, "Session is already paid")
		case errors.Is(err, domain.ErrInvalidSessionStatus):
			return response.BadRequest(c, "Cannot discount a cancelled session")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Provide exactly one of percent or amount, greater than zero")
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "Acting user is not permitted")
		default:
			return response.InternalServerError(c, "Failed to apply discount")
		}
	}

	return response.Success(c, "Discount applied successfully", fiber.Map{
		"session": session,
	})
}

// DiscountOrder applies a discount to an order
// @Summary Apply order discount
// @Description Apply a percent or fixed discount to an order, gated by the acting user's permissions
// @Tags Billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Order ID or reference"
// @Param body body services.DiscountInput true "Discount (exactly one of percent or amount)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{ref}/discount [post]
func (h *BillingHandler) DiscountOrder(c *fiber.Ctx) error {
	var input services.DiscountInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, _ := c.Locals("userID").(uint)

	order, err := h.billingService.ApplyOrderDiscount(c.Context(), userID, c.Params("ref"), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, domain.ErrDiscountNotAllowed):
			return response.Forbidden(c, "You are not allowed to discount orders")
		case errors.Is(err, domain.ErrDiscountTooLarge):
			return response.BadRequest(c, "Discount exceeds your permitted maximum")
		case errors.Is(err, domain.ErrOrderAlreadyPaid):
			return response.BadRequest(c, "Order is already paid")
		case errors.Is(err, domain.ErrInvalidOrderStatus):
			return response.BadRequest(c, "Cannot discount a cancelled order")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Provide exactly one of percent or amount, greater than zero")
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "Acting user is not permitted")
		default:
			return response.InternalServerError(c, "Failed to apply discount")
		}
	}

	return response.Success(c, "Discount applied successfully", fiber.Map{
		"order": order,
	})
}

// PaySession settles a session bill
// @Summary Pay session
// @Description Settle a session; a still-running session is ended first, and its in-window orders are marked paid
// @Tags Billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Session ID or reference"
// @Param body body services.PayInput true "Payment method (cash, card or upi)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{ref}/pay [post]
func (h *BillingHandler) PaySession(c *fiber.Ctx) error {
	var input services.PayInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, _ := c.Locals("userID").(uint)

	session, err := h.billingService.PaySession(c.Context(), userID, c.Params("ref"), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			return response.NotFound(c, "Session not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You are not allowed to accept payments")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Payment method must be cash, card or upi")
		case errors.Is(err, domain.ErrSessionAlreadyPaid):
			return response.BadRequest(c, "Session is already paid")
		case errors.Is(err, domain.ErrInvalidSessionStatus):
			return response.BadRequest(c, "Cannot pay a cancelled session")
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "Acting user is not permitted")
		default:
			return response.InternalServerError(c, "Failed to pay session")
		}
	}

	return response.Success(c, "Payment recorded successfully", fiber.Map{
		"session": session,
	})
}

// GetReceipt returns a session's receipt
// @Summary Get receipt
// @Description Get the full bill breakdown for a session; live for running sessions, persisted once settled
// @Tags Billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Session ID or reference"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{ref}/receipt [get]
func (h *BillingHandler) GetReceipt(c *fiber.Ctx) error {
	receipt, err := h.billingService.GetReceipt(c.Context(), c.Params("ref"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return response.NotFound(c, "Session not found")
		}
		return response.InternalServerError(c, "Failed to build receipt")
	}

	return response.Success(c, "Receipt retrieved successfully", receipt)
}
