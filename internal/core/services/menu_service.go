package services

import (
	"context"
	"errors"
	"log"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/core/domain"

	"gorm.io/gorm"
)

// MenuService handles menu catalog business logic
type MenuService struct {
	menuRepo repositories.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repositories.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// CreateMenuItemInput represents menu item creation input
type CreateMenuItemInput struct {
	Name            string             `json:"name"`
	Category        string             `json:"category"`
	Subcategory     string             `json:"subcategory"`
	Price           float64            `json:"price"`
	Printer         string             `json:"printer"`
	Variants        models.VariantList `json:"variants"`
	IsVeg           bool               `json:"is_veg"`
	SpiceLevel      string             `json:"spice_level"`
	PrepTimeMinutes int                `json:"prep_time_minutes"`
	IsPopular       bool               `json:"is_popular"`
}

// UpdateMenuItemInput represents menu item update input
type UpdateMenuItemInput struct {
	Name            *string             `json:"name"`
	Category        *string             `json:"category"`
	Subcategory     *string             `json:"subcategory"`
	Price           *float64            `json:"price"`
	Printer         *string             `json:"printer"`
	IsAvailable     *bool               `json:"is_available"`
	Variants        *models.VariantList `json:"variants"`
	IsVeg           *bool               `json:"is_veg"`
	SpiceLevel      *string             `json:"spice_level"`
	PrepTimeMinutes *int                `json:"prep_time_minutes"`
	IsPopular       *bool               `json:"is_popular"`
}

// ListItems lists menu items matching the filter
func (s *MenuService) ListItems(ctx context.Context, filter repositories.MenuFilter) ([]models.MenuItem, error) {
	return s.menuRepo.List(ctx, filter)
}

// GetItem gets one menu item
func (s *MenuService) GetItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// Categories returns the distinct menu categories
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	return s.menuRepo.Categories(ctx)
}

// CreateItem creates a new menu item
func (s *MenuService) CreateItem(ctx context.Context, input *CreateMenuItemInput) (*models.MenuItem, error) {
	if input.Name == "" || input.Category == "" || input.Price < 0 {
		return nil, domain.ErrInvalidInput
	}

	item := &models.MenuItem{
		Name:            input.Name,
		Category:        input.Category,
		Subcategory:     input.Subcategory,
		Price:           input.Price,
		Printer:         input.Printer,
		IsAvailable:     true,
		Variants:        input.Variants,
		IsVeg:           input.IsVeg,
		SpiceLevel:      input.SpiceLevel,
		PrepTimeMinutes: input.PrepTimeMinutes,
		IsPopular:       input.IsPopular,
	}
	if item.Printer == "" {
		item.Printer = "kitchen"
	}
	if item.PrepTimeMinutes <= 0 {
		item.PrepTimeMinutes = 15
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	log.Printf("✅ Menu item created: %s (%s)", item.Name, item.Category)
	return item, nil
}

// UpdateItem updates a menu item
func (s *MenuService) UpdateItem(ctx context.Context, id uint, input *UpdateMenuItemInput) (*models.MenuItem, error) {
	if _, err := s.GetItem(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Subcategory != nil {
		updates["subcategory"] = *input.Subcategory
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domain.ErrInvalidInput
		}
		updates["price"] = *input.Price
	}
	if input.Printer != nil {
		updates["printer"] = *input.Printer
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if input.Variants != nil {
		updates["variants"] = *input.Variants
	}
	if input.IsVeg != nil {
		updates["is_veg"] = *input.IsVeg
	}
	if input.SpiceLevel != nil {
		updates["spice_level"] = *input.SpiceLevel
	}
	if input.PrepTimeMinutes != nil {
		updates["prep_time_minutes"] = *input.PrepTimeMinutes
	}
	if input.IsPopular != nil {
		updates["is_popular"] = *input.IsPopular
	}

	if len(updates) > 0 {
		if err := s.menuRepo.UpdateFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.GetItem(ctx, id)
}

// SetAvailability toggles a menu item's availability
func (s *MenuService) SetAvailability(ctx context.Context, id uint, available bool) (*models.MenuItem, error) {
	if _, err := s.GetItem(ctx, id); err != nil {
		return nil, err
	}

	if err := s.menuRepo.UpdateFields(ctx, id, map[string]interface{}{
		"is_available": available,
	}); err != nil {
		return nil, err
	}

	return s.GetItem(ctx, id)
}

// DeleteItem permanently removes a menu item. Existing order items are
// unaffected; they carry their own snapshot of the name and price.
func (s *MenuService) DeleteItem(ctx context.Context, id uint) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}

	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("🗑️ Menu item deleted: id=%d", id)
	return nil
}
