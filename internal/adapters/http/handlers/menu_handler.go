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

// MenuHandler handles menu catalog endpoints
type MenuHandler struct {
	menuService *services.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

// AvailabilityRequest represents an availability toggle request body
type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

// List lists menu items
// @Summary List menu items
// @Description List menu items filterable by category, printer and availability
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param printer query string false "Filter by printer group"
// @Param available query bool false "Only available items"
// @Param search query string false "Search by name"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /menu [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	filter := repositories.MenuFilter{
		Category:      c.Query("category"),
		Printer:       c.Query("printer"),
		AvailableOnly: c.Query("available") == "true",
		Search:        c.Query("search"),
	}

	items, err := h.menuService.ListItems(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list menu items")
	}

	return response.Success(c, "Menu items retrieved successfully", fiber.Map{
		"items": items,
	})
}

// GetByID gets a menu item by ID
// @Summary Get menu item by ID
// @Description Get a specific menu item
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /menu/{id} [get]
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid menu item ID")
	}

	item, err := h.menuService.GetItem(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			return response.NotFound(c, "Menu item not found")
		}
		return response.InternalServerError(c, "Failed to get menu item")
	}

	return response.Success(c, "Menu item retrieved successfully", fiber.Map{
		"item": item,
	})
}

// Categories lists the distinct menu categories
// @Summary List menu categories
// @Description Get the distinct categories in the menu
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /menu/categories [get]
func (h *MenuHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.menuService.Categories(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}

	return response.Success(c, "Categories retrieved successfully", fiber.Map{
		"categories": categories,
	})
}

// Create creates a menu item
// @Summary Create menu item
// @Description Add an item to the menu (Manager or Admin)
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMenuItemInput true "Menu item data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /menu [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMenuItemInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var fieldErrs []response.FieldError
	if input.Name == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.Category == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "category", Message: "Category is required"})
	}
	if input.Price < 0 {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	item, err := h.menuService.CreateItem(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid menu item data")
		}
		return response.InternalServerError(c, "Failed to create menu item")
	}

	return response.Created(c, "Menu item created successfully", fiber.Map{
		"item": item,
	})
}

// Update updates a menu item
// @Summary Update menu item
// @Description Update a menu item (Manager or Admin)
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Param body body services.UpdateMenuItemInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /menu/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid menu item ID")
	}

	var input services.UpdateMenuItemInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.menuService.UpdateItem(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMenuItemNotFound):
			return response.NotFound(c, "Menu item not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid menu item data")
		default:
			return response.InternalServerError(c, "Failed to update menu item")
		}
	}

	return response.Success(c, "Menu item updated successfully", fiber.Map{
		"item": item,
	})
}

// SetAvailability toggles a menu item's availability
// @Summary Set menu item availability
// @Description Mark a menu item available or sold out; sold-out items cannot be ordered
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Param body body AvailabilityRequest true "Availability flag"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /menu/{id}/availability [patch]
func (h *MenuHandler) SetAvailability(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid menu item ID")
	}

	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.IsAvailable == nil {
		return response.BadRequest(c, "is_available is required")
	}

	item, err := h.menuService.SetAvailability(c.Context(), uint(id), *req.IsAvailable)
	if err != nil {
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			return response.NotFound(c, "Menu item not found")
		}
		return response.InternalServerError(c, "Failed to update availability")
	}

	return response.Success(c, "Availability updated successfully", fiber.Map{
		"item": item,
	})
}

// Delete removes a menu item
// @Summary Delete menu item
// @Description Remove a menu item; past orders keep their own name and price snapshot (Manager or Admin)
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /menu/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid menu item ID")
	}

	if err := h.menuService.DeleteItem(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			return response.NotFound(c, "Menu item not found")
		}
		return response.InternalServerError(c, "Failed to delete menu item")
	}

	return response.Success(c, "Menu item deleted successfully", nil)
}
