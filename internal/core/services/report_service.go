package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"arcadia-pos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ReportService handles reporting operations
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// ============================================================
// Dashboard
// ============================================================

// DashboardData represents the live floor snapshot
type DashboardData struct {
	// Today
	TodayRevenue      float64 `json:"today_revenue"`
	TodayOrderCount   int64   `json:"today_order_count"`
	TodaySessionCount int64   `json:"today_session_count"`

	// Floor state
	ActiveSessions    int64 `json:"active_sessions"`
	OccupiedTables    int64 `json:"occupied_tables"`
	TotalTables       int64 `json:"total_tables"`
	OpenOrders        int64 `json:"open_orders"`
	TodayReservations int64 `json:"today_reservations"`

	// Recent Activity
	RecentOrders []OrderSummary `json:"recent_orders"`
}

// OrderSummary represents order summary
type OrderSummary struct {
	OrderID     string    `json:"order_id"`
	TableNumber string    `json:"table_number"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetDashboard returns the dashboard snapshot for today
func (s *ReportService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Today's revenue: paid orders plus paid sessions
	var orderRevenue, sessionRevenue float64
	s.db.WithContext(ctx).Table("orders").
		Where("payment_status = ? AND created_at >= ? AND deleted_at IS NULL", models.PaymentStatusPaid, startOfDay).
		Select("COALESCE(SUM(total), 0)").
		Scan(&orderRevenue)
	s.db.WithContext(ctx).Table("sessions").
		Where("payment_status = ? AND end_time >= ?", models.PaymentStatusPaid, startOfDay).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sessionRevenue)
	data.TodayRevenue = orderRevenue + sessionRevenue

	// Today's counts
	s.db.WithContext(ctx).Table("orders").
		Where("created_at >= ? AND deleted_at IS NULL", startOfDay).
		Count(&data.TodayOrderCount)
	s.db.WithContext(ctx).Table("sessions").
		Where("start_time >= ?", startOfDay).
		Count(&data.TodaySessionCount)

	// Floor state
	s.db.WithContext(ctx).Table("sessions").
		Where("status IN ?", []string{models.SessionStatusActive, models.SessionStatusPaused}).
		Count(&data.ActiveSessions)
	s.db.WithContext(ctx).Table("tables").
		Where("status = ? AND is_active = ?", models.TableStatusOccupied, true).
		Count(&data.OccupiedTables)
	s.db.WithContext(ctx).Table("tables").
		Where("is_active = ?", true).
		Count(&data.TotalTables)
	s.db.WithContext(ctx).Table("orders").
		Where("status IN ? AND deleted_at IS NULL",
			[]string{models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusPreparing, models.OrderStatusReady}).
		Count(&data.OpenOrders)
	s.db.WithContext(ctx).Table("reservations").
		Where("date = ? AND status IN ?",
			startOfDay.Format("2006-01-02"), []string{models.ReservationStatusConfirmed, models.ReservationStatusArrived}).
		Count(&data.TodayReservations)

	// Recent orders
	var recent []struct {
		OrderID     string
		TableNumber string
		Status      string
		Total       float64
		CreatedAt   time.Time
	}
	s.db.WithContext(ctx).Table("orders").
		Select("order_id, table_number, status, total, created_at").
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Limit(10).
		Scan(&recent)

	data.RecentOrders = make([]OrderSummary, len(recent))
	for i, o := range recent {
		data.RecentOrders[i] = OrderSummary{
			OrderID:     o.OrderID,
			TableNumber: o.TableNumber,
			Status:      o.Status,
			Total:       o.Total,
			CreatedAt:   o.CreatedAt,
		}
	}

	return data, nil
}

// ============================================================
// Revenue
// ============================================================

// RevenueRow is one day of revenue
type RevenueRow struct {
	Date           string  `json:"date"`
	OrderRevenue   float64 `json:"order_revenue"`
	SessionRevenue float64 `json:"session_revenue"`
	Total          float64 `json:"total"`
}

// MethodSplit is revenue by payment method over the range
type MethodSplit struct {
	Method string  `json:"method"`
	Total  float64 `json:"total"`
}

// RevenueReport represents the ranged revenue report
type RevenueReport struct {
	From     string        `json:"from"`
	To       string        `json:"to"`
	Days     []RevenueRow  `json:"days"`
	ByMethod []MethodSplit `json:"by_method"`
	Total    float64       `json:"total"`
}

// GetRevenueReport returns per-day revenue between from and to inclusive
func (s *ReportService) GetRevenueReport(ctx context.Context, from, to time.Time) (*RevenueReport, error) {
	report := &RevenueReport{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}
	rangeEnd := to.Add(24 * time.Hour)

	// Paid orders per day
	var orderRows []struct {
		Day     string
		Revenue float64
	}
	err := s.db.WithContext(ctx).Table("orders").
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') as day, COALESCE(SUM(total), 0) as revenue").
		Where("payment_status = ? AND created_at >= ? AND created_at < ? AND deleted_at IS NULL",
			models.PaymentStatusPaid, from, rangeEnd).
		Group("day").
		Scan(&orderRows).Error
	if err != nil {
		return nil, err
	}

	// Paid sessions per day, keyed by end time
	var sessionRows []struct {
		Day     string
		Revenue float64
	}
	err = s.db.WithContext(ctx).Table("sessions").
		Select("DATE_FORMAT(end_time, '%Y-%m-%d') as day, COALESCE(SUM(total), 0) as revenue").
		Where("payment_status = ? AND end_time >= ? AND end_time < ?",
			models.PaymentStatusPaid, from, rangeEnd).
		Group("day").
		Scan(&sessionRows).Error
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]*RevenueRow)
	for _, row := range orderRows {
		perDay[row.Day] = &RevenueRow{Date: row.Day, OrderRevenue: row.Revenue}
	}
	for _, row := range sessionRows {
		if existing, ok := perDay[row.Day]; ok {
			existing.SessionRevenue = row.Revenue
		} else {
			perDay[row.Day] = &RevenueRow{Date: row.Day, SessionRevenue: row.Revenue}
		}
	}

	// Walk the range so empty days still show up
	for day := from; day.Before(rangeEnd); day = day.Add(24 * time.Hour) {
		key := day.Format("2006-01-02")
		row, ok := perDay[key]
		if !ok {
			row = &RevenueRow{Date: key}
		}
		row.Total = row.OrderRevenue + row.SessionRevenue
		report.Days = append(report.Days, *row)
		report.Total += row.Total
	}

	// Method split across both revenue sources
	var methodRows []struct {
		Method string
		Total  float64
	}
	err = s.db.WithContext(ctx).Raw(`
		SELECT payment_method as method, COALESCE(SUM(total), 0) as total FROM orders
			WHERE payment_status = ? AND created_at >= ? AND created_at < ? AND deleted_at IS NULL
			GROUP BY payment_method
		UNION ALL
		SELECT payment_method as method, COALESCE(SUM(total), 0) as total FROM sessions
			WHERE payment_status = ? AND end_time >= ? AND end_time < ?
			GROUP BY payment_method`,
		models.PaymentStatusPaid, from, rangeEnd,
		models.PaymentStatusPaid, from, rangeEnd).
		Scan(&methodRows).Error
	if err != nil {
		return nil, err
	}

	merged := make(map[string]float64)
	for _, row := range methodRows {
		merged[row.Method] += row.Total
	}
	for _, method := range []string{models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodUPI} {
		if total, ok := merged[method]; ok {
			report.ByMethod = append(report.ByMethod, MethodSplit{Method: method, Total: total})
		}
	}

	return report, nil
}

// ============================================================
// Sales
// ============================================================

// ItemSales is the ranking entry for one menu item
type ItemSales struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// CategorySales is the rollup for one category
type CategorySales struct {
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// SalesReport represents the ranged item sales report
type SalesReport struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	Items      []ItemSales     `json:"items"`
	Categories []CategorySales `json:"categories"`
}

// GetSalesReport ranks menu items by quantity sold between from and to.
// Cancelled orders are excluded; item names come from the order-time
// snapshot so renamed or deleted menu items still report correctly.
func (s *ReportService) GetSalesReport(ctx context.Context, from, to time.Time) (*SalesReport, error) {
	report := &SalesReport{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}
	rangeEnd := to.Add(24 * time.Hour)

	var itemRows []struct {
		Name     string
		Category string
		Quantity int64
		Revenue  float64
	}
	err := s.db.WithContext(ctx).Table("order_items").
		Select(`
			order_items.name,
			COALESCE(menu_items.category, 'other') as category,
			SUM(order_items.quantity) as quantity,
			COALESCE(SUM(order_items.price * order_items.quantity), 0) as revenue
		`).
		Joins("JOIN orders ON order_items.order_ref = orders.id").
		Joins("LEFT JOIN menu_items ON order_items.menu_item_id = menu_items.id").
		Where("orders.status <> ? AND orders.created_at >= ? AND orders.created_at < ? AND orders.deleted_at IS NULL",
			models.OrderStatusCancelled, from, rangeEnd).
		Group("order_items.name, menu_items.category").
		Order("quantity DESC").
		Scan(&itemRows).Error
	if err != nil {
		return nil, err
	}

	categories := make(map[string]*CategorySales)
	categoryOrder := []string{}
	report.Items = make([]ItemSales, len(itemRows))
	for i, row := range itemRows {
		report.Items[i] = ItemSales{
			Name:     row.Name,
			Category: row.Category,
			Quantity: row.Quantity,
			Revenue:  row.Revenue,
		}
		rollup, ok := categories[row.Category]
		if !ok {
			rollup = &CategorySales{Category: row.Category}
			categories[row.Category] = rollup
			categoryOrder = append(categoryOrder, row.Category)
		}
		rollup.Quantity += row.Quantity
		rollup.Revenue += row.Revenue
	}
	for _, category := range categoryOrder {
		report.Categories = append(report.Categories, *categories[category])
	}

	return report, nil
}

// ============================================================
// Staff
// ============================================================

// StaffStats is the performance entry for one staff member
type StaffStats struct {
	UserID         uint    `json:"user_id"`
	Name           string  `json:"name"`
	OrderCount     int64   `json:"order_count"`
	OrderRevenue   float64 `json:"order_revenue"`
	SessionCount   int64   `json:"session_count"`
	SessionRevenue float64 `json:"session_revenue"`
}

// StaffReport represents the ranged staff performance report
type StaffReport struct {
	From  string       `json:"from"`
	To    string       `json:"to"`
	Staff []StaffStats `json:"staff"`
}

// GetStaffReport returns per-creator order and session volumes
func (s *ReportService) GetStaffReport(ctx context.Context, from, to time.Time) (*StaffReport, error) {
	report := &StaffReport{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}
	rangeEnd := to.Add(24 * time.Hour)

	var orderRows []struct {
		UserID  uint
		Name    string
		Count   int64
		Revenue float64
	}
	err := s.db.WithContext(ctx).Table("orders").
		Select(`
			orders.created_by as user_id,
			COALESCE(users.name, '') as name,
			COUNT(*) as count,
			COALESCE(SUM(orders.total), 0) as revenue
		`).
		Joins("LEFT JOIN users ON orders.created_by = users.id").
		Where("orders.status <> ? AND orders.created_at >= ? AND orders.created_at < ? AND orders.deleted_at IS NULL",
			models.OrderStatusCancelled, from, rangeEnd).
		Group("orders.created_by, users.name").
		Scan(&orderRows).Error
	if err != nil {
		return nil, err
	}

	var sessionRows []struct {
		UserID  uint
		Name    string
		Count   int64
		Revenue float64
	}
	err = s.db.WithContext(ctx).Table("sessions").
		Select(`
			sessions.created_by as user_id,
			COALESCE(users.name, '') as name,
			COUNT(*) as count,
			COALESCE(SUM(sessions.total), 0) as revenue
		`).
		Joins("LEFT JOIN users ON sessions.created_by = users.id").
		Where("sessions.status = ? AND sessions.start_time >= ? AND sessions.start_time < ?",
			models.SessionStatusCompleted, from, rangeEnd).
		Group("sessions.created_by, users.name").
		Scan(&sessionRows).Error
	if err != nil {
		return nil, err
	}

	byUser := make(map[uint]*StaffStats)
	order := []uint{}
	for _, row := range orderRows {
		stats := &StaffStats{UserID: row.UserID, Name: row.Name, OrderCount: row.Count, OrderRevenue: row.Revenue}
		byUser[row.UserID] = stats
		order = append(order, row.UserID)
	}
	for _, row := range sessionRows {
		stats, ok := byUser[row.UserID]
		if !ok {
			stats = &StaffStats{UserID: row.UserID, Name: row.Name}
			byUser[row.UserID] = stats
			order = append(order, row.UserID)
		}
		stats.SessionCount = row.Count
		stats.SessionRevenue = row.Revenue
	}
	for _, userID := range order {
		report.Staff = append(report.Staff, *byUser[userID])
	}

	return report, nil
}

// ============================================================
// Export
// ============================================================

// ExportRevenueCSV renders the revenue report as CSV
func (s *ReportService) ExportRevenueCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	report, err := s.GetRevenueReport(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "order_revenue", "session_revenue", "total"}); err != nil {
		return nil, err
	}
	for _, row := range report.Days {
		record := []string{
			row.Date,
			fmt.Sprintf("%.2f", row.OrderRevenue),
			fmt.Sprintf("%.2f", row.SessionRevenue),
			fmt.Sprintf("%.2f", row.Total),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
