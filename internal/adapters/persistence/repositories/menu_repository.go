package repositories

import (
	"context"

	"arcadia-pos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// menuRepository implements MenuRepository interface
type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// Create creates a new menu item
func (r *menuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID gets a menu item by ID
func (r *menuRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update updates a menu item
func (r *menuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateFields updates selected menu item columns
func (r *menuRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).Updates(updates).Error
}

// Delete permanently removes a menu item. Order items keep their own
// snapshot of name and price.
func (r *menuRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, id).Error
}

// List lists menu items matching the filter
func (r *menuRepository) List(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error) {
	var items []models.MenuItem

	query := r.db.WithContext(ctx).Model(&models.MenuItem{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Printer != "" {
		query = query.Where("printer = ?", filter.Printer)
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	err := query.Order("category ASC, name ASC").Find(&items).Error
	return items, err
}

// Categories returns the distinct menu categories
func (r *menuRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.MenuItem{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}
