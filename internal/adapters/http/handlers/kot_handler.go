package handlers

import (
	"arcadia-pos/internal/adapters/http/ws"
	"arcadia-pos/internal/config"
	"arcadia-pos/internal/core/services"
	"arcadia-pos/internal/pkg/jwt"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
)

// KOTHandler handles kitchen order ticket endpoints
type KOTHandler struct {
	kotService *services.KOTService
	hub        *ws.Hub
	cfg        *config.Config
}

// NewKOTHandler creates a new KOT handler
func NewKOTHandler(kotService *services.KOTService, hub *ws.Hub, cfg *config.Config) *KOTHandler {
	return &KOTHandler{
		kotService: kotService,
		hub:        hub,
		cfg:        cfg,
	}
}

// Queue returns today's open tickets grouped by printer
// @Summary KOT queue
// @Description Get today's in-flight tickets grouped by printer, oldest first
// @Tags KOT
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /kot/queue [get]
func (h *KOTHandler) Queue(c *fiber.Ctx) error {
	queues, err := h.kotService.Queue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build KOT queue")
	}

	return response.Success(c, "KOT queue retrieved successfully", fiber.Map{
		"printers": queues,
	})
}

// LiveUpgrade gates the live KOT stream behind a token check before the
// WebSocket upgrade. Browsers cannot set an Authorization header on a
// WebSocket dial, so the token rides a query parameter.
func (h *KOTHandler) LiveUpgrade(c *fiber.Ctx) error {
	if !fiberws.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		return response.Unauthorized(c, "Access token required")
	}
	if _, err := jwt.ValidateAccessToken(token, h.cfg.JWT.Secret); err != nil {
		return response.Unauthorized(c, "Invalid access token")
	}

	return c.Next()
}

// Live streams kitchen events to the connected client
// @Summary Live KOT stream
// @Description WebSocket stream of kitchen events; pass ?token= for auth and optional ?printer= to follow one printer
// @Tags KOT
// @Param token query string true "Access token"
// @Param printer query string false "Printer room to follow (all events when omitted)"
// @Router /kot/live [get]
func (h *KOTHandler) Live() fiber.Handler {
	return fiberws.New(func(conn *fiberws.Conn) {
		ws.Serve(h.hub, conn)
	})
}
