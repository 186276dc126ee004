package handlers

import (
	"errors"
	"strings"

	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/core/services"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new user account with a role-derived permission bundle
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	var fieldErrs []response.FieldError
	if req.Name == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "name", Message: "Name is required"})
	}
	if req.Username == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "username", Message: "Username is required"})
	}
	if req.Email == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "email", Message: "Email is required"})
	}
	if req.Password == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "password", Message: "Password is required"})
	}
	if req.Role == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "role", Message: "Role is required"})
	}
	if len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	input := &services.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Phone:    strings.TrimSpace(req.Phone),
		Role:     req.Role,
	}

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		case errors.Is(err, domain.ErrInvalidPassword):
			return response.BadRequest(c, "Password must be at least 8 characters with letters and digits")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.BadRequest(c, "Username or email already exists")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Created(c, "User registered successfully", result)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate by email, role and password and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	var fieldErrs []response.FieldError
	if req.Email == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "email", Message: "Email is required"})
	}
	if req.Password == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "password", Message: "Password is required"})
	}
	if req.Role == "" {
		fieldErrs = append(fieldErrs, response.FieldError{Field: "role", Message: "Role is required"})
	}
	if len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	input := &services.LoginInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     req.Role,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Login successful", result)
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the currently authenticated user's information
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	// Get user ID from context (set by auth middleware)
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}
