package repositories

import (
	"context"

	"arcadia-pos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// tableRepository implements TableRepository interface
type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

// Create creates a new table
func (r *tableRepository) Create(ctx context.Context, table *models.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

// GetByID gets a table by ID
func (r *tableRepository) GetByID(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// GetByNumber gets a table by its table number
func (r *tableRepository) GetByNumber(ctx context.Context, tableNumber string) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).Where("table_number = ?", tableNumber).First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// Update updates a table
func (r *tableRepository) Update(ctx context.Context, table *models.Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

// UpdateFields updates selected table columns
func (r *tableRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Table{}).Where("id = ?", id).Updates(updates).Error
}

// List lists tables matching the filter, ordered by table number
func (r *tableRepository) List(ctx context.Context, filter TableFilter) ([]models.Table, error) {
	var tables []models.Table

	query := r.db.WithContext(ctx).Model(&models.Table{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("table_number ASC").Find(&tables).Error
	return tables, err
}

// ExistsByNumber checks if a table number is taken
func (r *tableRepository) ExistsByNumber(ctx context.Context, tableNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Table{}).Where("table_number = ?", tableNumber).Count(&count).Error
	return count > 0, err
}
