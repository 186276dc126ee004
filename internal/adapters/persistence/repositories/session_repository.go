package repositories

import (
	"context"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByID gets a session by primary key
func (r *sessionRepository) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Preload("Extensions").
		Preload("Table").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetBySessionID gets a session by its customer-facing id
func (r *sessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Preload("Extensions").
		Preload("Table").
		Where("session_id = ?", sessionID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ActiveByTable returns the running session on a table, or nil if the
// table is free. Paused sessions still hold the table.
func (r *sessionRepository) ActiveByTable(ctx context.Context, tableID uint) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("table_id = ? AND status IN ?", tableID,
			[]string{models.SessionStatusActive, models.SessionStatusPaused}).
		Order("start_time DESC").
		First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List lists sessions matching the filter with pagination
func (r *sessionRepository) List(ctx context.Context, filter SessionFilter) ([]models.Session, int64, error) {
	var sessions []models.Session
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Session{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TableID != 0 {
		query = query.Where("table_id = ?", filter.TableID)
	}
	if filter.DateFrom != nil {
		query = query.Where("start_time >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("start_time < ?", *filter.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("start_time DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// UpdateFields updates selected session columns
func (r *sessionRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).Where("id = ?", id).Updates(updates).Error
}

// AddExtension appends one extension log entry
func (r *sessionRepository) AddExtension(ctx context.Context, ext *models.SessionExtension) error {
	return r.db.WithContext(ctx).Create(ext).Error
}

// CountByPattern counts sessions whose external id matches a LIKE
// pattern, used to derive the next per-day sequence number.
func (r *sessionRepository) CountByPattern(ctx context.Context, pattern string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Session{}).
		Unscoped().
		Where("session_id LIKE ?", pattern).
		Count(&count).Error
	return count, err
}

// StaleActive returns active sessions that started before the cutoff
func (r *sessionRepository) StaleActive(ctx context.Context, startedBefore time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_time < ?", models.SessionStatusActive, startedBefore).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}
