package services

import (
	"context"
	"log"
	"time"

	"arcadia-pos/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the scheduled housekeeping jobs
type CronService struct {
	cron           *cron.Cron
	reservationSvc *ReservationService
	reportSvc      *ReportService
	sessionRepo    repositories.SessionRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	reservationRepo := repositories.NewReservationRepository(db)
	tableRepo := repositories.NewTableRepository(db)

	return &CronService{
		cron:           cron.New(),
		reservationSvc: NewReservationService(reservationRepo, tableRepo),
		reportSvc:      NewReportService(db),
		sessionRepo:    repositories.NewSessionRepository(db),
	}
}

// Start registers and launches all scheduled jobs
func (s *CronService) Start() {
	// Nightly at 01:00: flip stale confirmed reservations to no-show
	s.cron.AddFunc("0 1 * * *", s.sweepNoShows)

	// Every 30 minutes: flag sessions running longer than 12 hours
	s.cron.AddFunc("*/30 * * * *", s.auditStaleSessions)

	// Daily at 00:05: log yesterday's revenue snapshot
	s.cron.AddFunc("5 0 * * *", s.logRevenueSnapshot)

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler. Running jobs finish.
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) sweepNoShows() {
	ctx := context.Background()
	today := time.Now().Truncate(24 * time.Hour)

	swept, err := s.reservationSvc.MarkNoShows(ctx, today)
	if err != nil {
		log.Printf("❌ No-show sweep error: %v", err)
		return
	}
	if swept > 0 {
		log.Printf("🗑️ Marked %d past reservations as no-show", swept)
	}
}

func (s *CronService) auditStaleSessions() {
	ctx := context.Background()
	cutoff := time.Now().Add(-12 * time.Hour)

	sessions, err := s.sessionRepo.StaleActive(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Stale session audit error: %v", err)
		return
	}
	for _, session := range sessions {
		log.Printf("⚠️ Session %s on table %d running since %s, needs attention",
			session.SessionID, session.TableID, session.StartTime.Format("2006-01-02 15:04"))
	}
}

func (s *CronService) logRevenueSnapshot() {
	ctx := context.Background()
	yesterday := time.Now().AddDate(0, 0, -1)
	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location())

	report, err := s.reportSvc.GetRevenueReport(ctx, day, day)
	if err != nil {
		log.Printf("❌ Revenue snapshot error: %v", err)
		return
	}
	log.Printf("📊 Revenue %s: %.2f (%d day rows)", day.Format("2006-01-02"), report.Total, len(report.Days))
}
