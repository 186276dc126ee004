package handlers

import (
	"errors"
	"strconv"
	"time"

	"arcadia-pos/internal/adapters/persistence/repositories"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/core/services"
	"arcadia-pos/internal/pkg/pagination"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles gaming session endpoints
type SessionHandler struct {
	sessionService *services.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Start starts a session
// @Summary Start session
// @Description Open a timed session on an available table; the hourly rate is frozen at start
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.StartSessionInput true "Session data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var input services.StartSessionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.TableID == 0 {
		return response.BadRequest(c, "Table ID is required")
	}

	userID, _ := c.Locals("userID").(uint)

	session, err := h.sessionService.StartSession(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTableNotFound):
			return response.NotFound(c, "Table not found")
		case errors.Is(err, domain.ErrTableNotAvailable):
			return response.BadRequest(c, "Table is not available")
		default:
			return response.InternalServerError(c, "Failed to start session")
		}
	}

	return response.Created(c, "Session started successfully", fiber.Map{
		"session": session,
	})
}

// List lists sessions
// @Summary List sessions
// @Description List sessions with pagination and filters
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param table_id query int false "Filter by table"
// @Param date_from query string false "Sessions started on or after (YYYY-MM-DD)"
// @Param date_to query string false "Sessions started before (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /sessions [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.SessionFilter{
		Status: c.Query("status"),
		Offset: params.Offset,
		Limit:  params.Limit,
	}

	if tableID := c.Query("table_id"); tableID != "" {
		id, _ := strconv.ParseUint(tableID, 10, 32)
		filter.TableID = uint(id)
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return response.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return response.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
		}
		filter.DateTo = &t
	}

	sessions, total, err := h.sessionService.ListSessions(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list sessions")
	}

	return response.Success(c, "Sessions retrieved successfully", pagination.NewResponse(sessions, params, total))
}

// GetByRef gets a session by numeric ID or external session ID
// @Summary Get session
// @Description Get a session by numeric ID or by its SES- reference
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Session ID or reference"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{ref} [get]
func (h *SessionHandler) GetByRef(c *fiber.Ctx) error {
	session, err := h.sessionService.GetSession(c.Context(), c.Params("ref"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return response.NotFound(c, "Session not found")
		}
		return response.InternalServerError(c, "Failed to get session")
	}

	return response.Success(c, "Session retrieved successfully", fiber.Map{
		"session": session,
	})
}

// Pause pauses a session
// @Summary Pause session
// @Description Pause an active session; the timer keeps counting wall-clock time
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Session ID or reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{ref}/pause [post]
func (h *SessionHandler) Pause(c *fiber.Ctx) error {
	session, err := h.sessionService.PauseSession(c.Context(), c.Params("ref"))
	if err != nil {
		return h.sessionError(c, err, "Failed to pause session")
	}

	return response.Success(c, "Session paused successfully", fiber.Map{
		"session": session,
	})
}

// Resume resumes a paused session
// @Summary Resume session
// @Description Resume a paused session
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Session ID or reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{ref}/resume [post]
func (h *SessionHandler) Resume(c *fiber.Ctx) error {
	session, err := h.sessionService.ResumeSession(c.Context(), c.Params("ref"))
	if err != nil {
		return h.sessionError(c, err, "Failed to resume session")
	}

	return response.Success(c, "Session resumed successfully", fiber.Map{
		"session": session,
	})
}

// Extend records an extension against a session
// @Summary Extend session
// @Description Record a prepaid extension entry; billing still settles on actual elapsed time
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Session ID or reference"
// @Param body body services.ExtendSessionInput true "Extension data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{ref}/extend [post]
func (h *SessionHandler) Extend(c *fiber.Ctx) error {
	var input services.ExtendSessionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	session, err := h.sessionService.ExtendSession(c.Context(), c.Params("ref"), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			return response.NotFound(c, "Session not found")
		case errors.Is(err, domain.ErrInvalidSessionStatus):
			return response.BadRequest(c, "Only running sessions can be extended")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Extension amount cannot be negative")
		default:
			return response.InternalServerError(c, "Failed to extend session")
		}
	}

	return response.Success(c, "Session extended successfully", fiber.Map{
		"session": session,
	})
}

// End ends a session
// @Summary End session
// @Description Stop the timer, compute the bill and free the table
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Session ID or reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{ref}/end [post]
func (h *SessionHandler) End(c *fiber.Ctx) error {
	session, err := h.sessionService.EndSession(c.Context(), c.Params("ref"))
	if err != nil {
		return h.sessionError(c, err, "Failed to end session")
	}

	return response.Success(c, "Session ended successfully", fiber.Map{
		"session": session,
	})
}

// Cancel voids a session
// @Summary Cancel session
// @Description Void a session without billing and free the table
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Session ID or reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{ref}/cancel [post]
func (h *SessionHandler) Cancel(c *fiber.Ctx) error {
	session, err := h.sessionService.CancelSession(c.Context(), c.Params("ref"))
	if err != nil {
		return h.sessionError(c, err, "Failed to cancel session")
	}

	return response.Success(c, "Session cancelled successfully", fiber.Map{
		"session": session,
	})
}

// sessionError maps session lifecycle errors to responses
func (h *SessionHandler) sessionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return response.NotFound(c, "Session not found")
	case errors.Is(err, domain.ErrInvalidSessionStatus):
		return response.BadRequest(c, "Operation not allowed from the session's current state")
	default:
		return response.InternalServerError(c, fallback)
	}
}
