package handlers

import (
	"errors"
	"strconv"
	"time"

	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/core/services"
	"arcadia-pos/internal/pkg/pagination"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// UpdateStatusRequest represents a status change request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Create creates an order
// @Summary Create order
// @Description Place an order; every line is validated against the live menu and priced from it
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateOrderInput true "Order data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input services.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, _ := c.Locals("userID").(uint)

	order, err := h.orderService.CreateOrder(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyOrder):
			return response.BadRequest(c, "Order must have at least one item")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid order data")
		case errors.Is(err, domain.ErrTableNotFound):
			return response.NotFound(c, "Table not found")
		case errors.Is(err, domain.ErrMenuItemNotFound):
			return response.NotFound(c, "Menu item not found")
		case errors.Is(err, domain.ErrMenuItemUnavailable):
			return response.BadRequest(c, "A requested item is sold out")
		default:
			return response.InternalServerError(c, "Failed to create order")
		}
	}

	return response.Created(c, "Order created successfully", fiber.Map{
		"order": order,
	})
}

// List lists orders
// @Summary List orders
// @Description List orders with pagination and filters
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param payment_status query string false "Filter by payment status"
// @Param table_id query int false "Filter by table"
// @Param date_from query string false "Orders created on or after (YYYY-MM-DD)"
// @Param date_to query string false "Orders created before (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.OrderFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Offset:        params.Offset,
		Limit:         params.Limit,
	}

	if tableID := c.Query("table_id"); tableID != "" {
		id, _ := strconv.ParseUint(tableID, 10, 32)
		filter.TableID = uint(id)
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return response.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return response.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
		}
		filter.DateTo = &t
	}

	orders, total, err := h.orderService.ListOrders(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list orders")
	}

	return response.Success(c, "Orders retrieved successfully", pagination.NewResponse(orders, params, total))
}

// GetByRef gets an order by numeric ID or external order ID
// @Summary Get order
// @Description Get an order by numeric ID or by its ORD- reference
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Order ID or reference"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{ref} [get]
func (h *OrderHandler) GetByRef(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrder(c.Context(), c.Params("ref"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return response.NotFound(c, "Order not found")
		}
		return response.InternalServerError(c, "Failed to get order")
	}

	return response.Success(c, "Order retrieved successfully", fiber.Map{
		"order": order,
	})
}

// UpdateStatus updates an order's status
// @Summary Update order status
// @Description Move an order along its lifecycle; illegal jumps are rejected
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Order ID or reference"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{ref}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	order, err := h.orderService.UpdateStatus(c.Context(), c.Params("ref"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, domain.ErrInvalidOrderStatus):
			return response.BadRequest(c, "Status change not allowed from the order's current state")
		default:
			return response.InternalServerError(c, "Failed to update order status")
		}
	}

	return response.Success(c, "Order status updated successfully", fiber.Map{
		"order": order,
	})
}

// Cancel cancels an order
// @Summary Cancel order
// @Description Cancel an order; served or paid orders cannot be cancelled
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Order ID or reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{ref}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.orderService.CancelOrder(c.Context(), c.Params("ref"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, domain.ErrInvalidOrderStatus):
			return response.BadRequest(c, "Order can no longer be cancelled")
		default:
			return response.InternalServerError(c, "Failed to cancel order")
		}
	}

	return response.Success(c, "Order cancelled successfully", fiber.Map{
		"order": order,
	})
}

// PrintKOT prints the kitchen order ticket
// @Summary Print KOT
// @Description Send the order to its printer groups and confirm it if still pending
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Order ID or reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{ref}/print [post]
func (h *OrderHandler) PrintKOT(c *fiber.Ctx) error {
	order, err := h.orderService.PrintKOT(c.Context(), c.Params("ref"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, domain.ErrInvalidOrderStatus):
			return response.BadRequest(c, "Cannot print a cancelled order")
		default:
			return response.InternalServerError(c, "Failed to print KOT")
		}
	}

	return response.Success(c, "KOT printed successfully", fiber.Map{
		"order": order,
	})
}

// UpdateItemStatus updates a single order item's status
// @Summary Update order item status
// @Description Move one line through the kitchen; the order flips to ready when its last item does
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Order ID or reference"
// @Param itemId path int true "Order item ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{ref}/items/{itemId}/status [patch]
func (h *OrderHandler) UpdateItemStatus(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("itemId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid item ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	order, err := h.orderService.UpdateItemStatus(c.Context(), c.Params("ref"), uint(itemID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, domain.ErrOrderItemNotFound):
			return response.NotFound(c, "Order item not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid item status")
		case errors.Is(err, domain.ErrInvalidOrderStatus):
			return response.BadRequest(c, "Status change not allowed from the item's current state")
		default:
			return response.InternalServerError(c, "Failed to update item status")
		}
	}

	return response.Success(c, "Item status updated successfully", fiber.Map{
		"order": order,
	})
}
