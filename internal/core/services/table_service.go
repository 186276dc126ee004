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

// TableService handles table registry business logic
type TableService struct {
	tableRepo   repositories.TableRepository
	sessionRepo repositories.SessionRepository
}

// NewTableService creates a new table service
func NewTableService(tableRepo repositories.TableRepository, sessionRepo repositories.SessionRepository) *TableService {
	return &TableService{
		tableRepo:   tableRepo,
		sessionRepo: sessionRepo,
	}
}

// CreateTableInput represents table creation input
type CreateTableInput struct {
	TableNumber string  `json:"table_number"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Location    string  `json:"location"`
	Capacity    int     `json:"capacity"`
	HourlyRate  float64 `json:"hourly_rate"`
	PlugID      *string `json:"plug_id"`
}

// UpdateTableInput represents table update input
type UpdateTableInput struct {
	Name       *string  `json:"name"`
	Type       *string  `json:"type"`
	Location   *string  `json:"location"`
	Capacity   *int     `json:"capacity"`
	HourlyRate *float64 `json:"hourly_rate"`
	Status     *string  `json:"status"`
	PlugID     *string  `json:"plug_id"`
	IsActive   *bool    `json:"is_active"`
}

// ListTables lists tables with their running session projected in
func (s *TableService) ListTables(ctx context.Context, filter repositories.TableFilter) ([]*models.TableResponse, error) {
	tables, err := s.tableRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.TableResponse, 0, len(tables))
	for i := range tables {
		resp := tables[i].ToResponse()
		if tables[i].Status == models.TableStatusOccupied {
			resp.CurrentSession, err = s.currentSession(ctx, tables[i].ID)
			if err != nil {
				return nil, err
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// GetTable gets one table with its running session projected in
func (s *TableService) GetTable(ctx context.Context, id uint) (*models.TableResponse, error) {
	table, err := s.getTable(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := table.ToResponse()
	resp.CurrentSession, err = s.currentSession(ctx, table.ID)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateTable creates a new table
func (s *TableService) CreateTable(ctx context.Context, input *CreateTableInput) (*models.Table, error) {
	if !models.ValidTableType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.tableRepo.ExistsByNumber(ctx, input.TableNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrTableNumberTaken
	}

	table := &models.Table{
		TableNumber: input.TableNumber,
		Name:        input.Name,
		Type:        input.Type,
		Location:    input.Location,
		Capacity:    input.Capacity,
		HourlyRate:  input.HourlyRate,
		Status:      models.TableStatusAvailable,
		PlugID:      input.PlugID,
		PlugStatus:  models.PlugStatusOff,
		IsActive:    true,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}

	log.Printf("✅ Table created: %s (%s)", table.TableNumber, table.Type)
	return table, nil
}

// UpdateTable updates a table. Status edits are rejected while a session
// is running on it; the session lifecycle owns those flips.
func (s *TableService) UpdateTable(ctx context.Context, id uint, input *UpdateTableInput) (*models.Table, error) {
	table, err := s.getTable(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Type != nil {
		if !models.ValidTableType(*input.Type) {
			return nil, domain.ErrInvalidInput
		}
		updates["type"] = *input.Type
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Capacity != nil {
		updates["capacity"] = *input.Capacity
	}
	if input.HourlyRate != nil {
		updates["hourly_rate"] = *input.HourlyRate
	}
	if input.PlugID != nil {
		updates["plug_id"] = *input.PlugID
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.Status != nil {
		if !models.ValidTableStatus(*input.Status) {
			return nil, domain.ErrInvalidInput
		}
		running, err := s.sessionRepo.ActiveByTable(ctx, table.ID)
		if err != nil {
			return nil, err
		}
		if running != nil {
			return nil, domain.ErrTableOccupied
		}
		updates["status"] = *input.Status
	}

	if len(updates) == 0 {
		return table, nil
	}
	if err := s.tableRepo.UpdateFields(ctx, id, updates); err != nil {
		return nil, err
	}

	return s.getTable(ctx, id)
}

// DeleteTable deactivates a table. A table with a running session cannot
// be removed.
func (s *TableService) DeleteTable(ctx context.Context, id uint) error {
	table, err := s.getTable(ctx, id)
	if err != nil {
		return err
	}

	running, err := s.sessionRepo.ActiveByTable(ctx, table.ID)
	if err != nil {
		return err
	}
	if running != nil {
		return domain.ErrTableOccupied
	}

	return s.tableRepo.UpdateFields(ctx, id, map[string]interface{}{
		"is_active": false,
	})
}

// SetPlug toggles the smart plug state stored for a table. No hardware
// call is made; the plug integration is a simulation point.
func (s *TableService) SetPlug(ctx context.Context, id uint, action string) (*models.Table, error) {
	if action != models.PlugStatusOn && action != models.PlugStatusOff {
		return nil, domain.ErrInvalidInput
	}

	table, err := s.getTable(ctx, id)
	if err != nil {
		return nil, err
	}
	if table.PlugID == nil {
		return nil, domain.ErrInvalidInput
	}

	if err := s.tableRepo.UpdateFields(ctx, id, map[string]interface{}{
		"plug_status": action,
	}); err != nil {
		return nil, err
	}

	log.Printf("🔌 Plug %s for table %s", action, table.TableNumber)
	return s.getTable(ctx, id)
}

func (s *TableService) getTable(ctx context.Context, id uint) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return table, nil
}

func (s *TableService) currentSession(ctx context.Context, tableID uint) (*models.TableSessionSummary, error) {
	session, err := s.sessionRepo.ActiveByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return &models.TableSessionSummary{
		SessionID:     session.SessionID,
		CustomerName:  session.CustomerName,
		CustomerPhone: session.CustomerPhone,
		StartTime:     session.StartTime,
		Status:        session.Status,
	}, nil
}
