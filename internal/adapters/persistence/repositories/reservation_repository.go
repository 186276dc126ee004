package repositories

import (
	"context"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reservationRepository implements ReservationRepository interface
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// CreateAssigning checks slot capacity and assigns the first free table
// inside one transaction. The candidate tables are row-locked for the
// duration of check-and-assign so two concurrent bookings cannot take the
// same slot.
func (r *reservationRepository) CreateAssigning(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tables []models.Table
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("type = ? AND is_active = ?", res.TableType, true).
			Order("table_number ASC").
			Find(&tables).Error; err != nil {
			return err
		}
		if len(tables) == 0 {
			return domain.ErrNoTablesAvailable
		}

		var conflicting []models.Reservation
		if err := tx.
			Where("table_type = ? AND date = ? AND time = ? AND status IN ?",
				res.TableType, res.Date, res.Time,
				[]string{models.ReservationStatusConfirmed, models.ReservationStatusArrived}).
			Find(&conflicting).Error; err != nil {
			return err
		}
		if len(conflicting) >= len(tables) {
			return domain.ErrNoTablesAvailable
		}

		taken := make(map[uint]bool, len(conflicting))
		for _, c := range conflicting {
			if c.TableID != nil {
				taken[*c.TableID] = true
			}
		}
		for i := range tables {
			if !taken[tables[i].ID] {
				id := tables[i].ID
				res.TableID = &id
				break
			}
		}
		if res.TableID == nil {
			return domain.ErrNoTablesAvailable
		}

		return tx.Create(res).Error
	})
}

// GetByID gets a reservation by primary key
func (r *reservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Table").
		Where("id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByReservationID gets a reservation by its customer-facing id
func (r *reservationRepository) GetByReservationID(ctx context.Context, reservationID string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Table").
		Where("reservation_id = ?", reservationID).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// List lists reservations matching the filter with pagination
func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int64, error) {
	var reservations []models.Reservation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Reservation{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.Search != "" {
		query = query.Where("customer_name LIKE ? OR customer_phone LIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Table").
		Order("date ASC, time ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&reservations).Error
	if err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// UpdateFields updates selected reservation columns
func (r *reservationRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Reservation{}).Where("id = ?", id).Updates(updates).Error
}

// CountByPattern counts reservations whose external id matches a LIKE
// pattern, used to derive the next per-day sequence number.
func (r *reservationRepository) CountByPattern(ctx context.Context, pattern string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Unscoped().
		Where("reservation_id LIKE ?", pattern).
		Count(&count).Error
	return count, err
}

// ConfirmedBefore returns reservations still confirmed for days before
// the given day, used by the nightly no-show sweep.
func (r *reservationRepository) ConfirmedBefore(ctx context.Context, day time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("date < ? AND status = ?", day, models.ReservationStatusConfirmed).
		Find(&reservations).Error
	return reservations, err
}
