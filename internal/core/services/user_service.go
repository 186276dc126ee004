package services

import (
	"context"
	"errors"
	"log"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles staff management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateStaffInput represents staff creation input
type CreateStaffInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// UpdateUserInput represents admin-side user update input
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ListUsers lists users with pagination, optionally filtered by role
func (s *UserService) ListUsers(ctx context.Context, role string, offset, limit int) ([]*models.UserResponse, int64, error) {
	if role != "" {
		if _, ok := domain.ParseRole(role); !ok {
			return nil, 0, domain.ErrInvalidRole
		}
	}

	users, total, err := s.userRepo.List(ctx, role, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, total, nil
}

// GetUser gets one user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateStaff creates a staff account. Permissions come from the same
// role mapping registration uses.
func (s *UserService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*models.User, error) {
	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrInvalidPassword
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}
	exists, err = s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        input.Name,
		Username:    input.Username,
		Email:       input.Email,
		Password:    hashed,
		Phone:       input.Phone,
		Role:        string(role),
		Permissions: domain.DefaultPermissions(role),
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Staff account created: %s (%s)", user.Username, user.Role)
	return user, nil
}

// UpdateUser updates a user. A role change re-assigns the permission
// bundle from the new role's defaults.
func (s *UserService) UpdateUser(ctx context.Context, actingID, targetID uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Role != nil {
		if actingID == targetID {
			return nil, domain.ErrCannotChangeOwnRole
		}
		role, ok := domain.ParseRole(*input.Role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		updates["role"] = string(role)
		updates["permissions"] = domain.DefaultPermissions(role)
	}
	if input.IsActive != nil {
		if actingID == targetID && !*input.IsActive {
			return nil, domain.ErrCannotDeleteSelf
		}
		updates["is_active"] = *input.IsActive
	}

	if len(updates) == 0 {
		return user, nil
	}
	if err := s.userRepo.UpdateFields(ctx, targetID, updates); err != nil {
		return nil, err
	}

	return s.GetUser(ctx, targetID)
}

// DeactivateUser disables a user account. Accounts are never hard
// deleted; orders and sessions keep their creator reference.
func (s *UserService) DeactivateUser(ctx context.Context, actingID, targetID uint) error {
	if actingID == targetID {
		return domain.ErrCannotDeleteSelf
	}
	if _, err := s.GetUser(ctx, targetID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateFields(ctx, targetID, map[string]interface{}{
		"is_active": false,
	}); err != nil {
		return err
	}

	log.Printf("⚠️ User deactivated: id=%d by user=%d", targetID, actingID)
	return nil
}

// ChangePassword changes the acting user's own password
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return domain.ErrOldPasswordWrong
	}
	if !password.ValidatePassword(input.NewPassword) {
		return domain.ErrInvalidPassword
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"password": hashed,
	})
}
