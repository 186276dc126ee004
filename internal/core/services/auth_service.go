package services

import (
	"context"
	"errors"
	"log"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/jwt"
	"arcadia-pos/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"access_token"`
	ExpiresIn   int                  `json:"expires_in"`
}

// Register registers a new user. The permission bundle is assigned from
// the role once, here, and stored with the user.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Validate role
	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	// 2. Validate password strength
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrInvalidPassword
	}

	// 3. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 4. Check if username already exists
	exists, err = s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 5. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 6. Create user with role-derived permissions
	user := &models.User{
		Name:        input.Name,
		Username:    input.Username,
		Email:       input.Email,
		Password:    hashedPassword,
		Phone:       input.Phone,
		Role:        string(role),
		Permissions: domain.DefaultPermissions(role),
		IsActive:    true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 7. Issue access token
	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Username, user.Role)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
		ExpiresIn:   s.cfg.JWT.AccessTokenMins * 60,
	}, nil
}

// Login authenticates a user by email, role and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetForLogin(ctx, input.Email, input.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"last_login_at": now,
	}); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
		ExpiresIn:   s.cfg.JWT.AccessTokenMins * 60,
	}, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	return jwt.GenerateAccessToken(
		user.ID,
		user.Name,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
}
