package handlers

import (
	"time"

	"arcadia-pos/internal/core/services"
	"arcadia-pos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles dashboard and report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Dashboard returns the live floor dashboard
// @Summary Dashboard
// @Description Get today's revenue, open orders, running sessions and table occupancy at a glance
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	data, err := h.reportService.GetDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Revenue returns the revenue report for a date range
// @Summary Revenue report
// @Description Daily revenue split by source and payment method (Manager or Admin)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (YYYY-MM-DD), default 6 days ago"
// @Param to query string false "Range end (YYYY-MM-DD), default today"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reports/revenue [get]
func (h *ReportHandler) Revenue(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return response.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
	}

	report, err := h.reportService.GetRevenueReport(c.Context(), from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to build revenue report")
	}

	return response.Success(c, "Revenue report retrieved successfully", report)
}

// Sales returns the item sales report for a date range
// @Summary Sales report
// @Description Quantity and revenue per menu item and category (Manager or Admin)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (YYYY-MM-DD), default 6 days ago"
// @Param to query string false "Range end (YYYY-MM-DD), default today"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return response.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
	}

	report, err := h.reportService.GetSalesReport(c.Context(), from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to build sales report")
	}

	return response.Success(c, "Sales report retrieved successfully", report)
}

// Staff returns the staff activity report for a date range
// @Summary Staff report
// @Description Orders and sessions handled per staff member (Manager or Admin)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (YYYY-MM-DD), default 6 days ago"
// @Param to query string false "Range end (YYYY-MM-DD), default today"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reports/staff [get]
func (h *ReportHandler) Staff(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return response.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
	}

	report, err := h.reportService.GetStaffReport(c.Context(), from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to build staff report")
	}

	return response.Success(c, "Staff report retrieved successfully", report)
}

// RevenueCSV exports the revenue report as CSV
// @Summary Revenue CSV export
// @Description Download the daily revenue report as a CSV file (Manager or Admin)
// @Tags Reports
// @Produce text/csv
// @Security BearerAuth
// @Param from query string false "Range start (YYYY-MM-DD), default 6 days ago"
// @Param to query string false "Range end (YYYY-MM-DD), default today"
// @Success 200 {string} string "CSV data"
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reports/revenue/export [get]
func (h *ReportHandler) RevenueCSV(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return response.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
	}

	data, err := h.reportService.ExportRevenueCSV(c.Context(), from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to export revenue report")
	}

	filename := "revenue_" + from.Format("20060102") + "_" + to.Format("20060102") + ".csv"
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// parseRange reads the from/to query dates, defaulting to the last week
func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -6)
	to := now

	if q := c.Query("from"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if q := c.Query("to"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}

	return from, to, nil
}
