package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"Hestia/Ledger"
)

// SummaryRefresher keeps the current month's rollup row warm by recomputing
// it on a schedule, so the dashboard never serves a stale materialized row
// after expenses or payments land outside the summary endpoint.
type SummaryRefresher struct {
	cronScheduler  *cron.Cron
	db             *gorm.DB
	runImmediately bool
	jobID          cron.EntryID
}

// NewSummaryRefresher creates a new refresher bound to the given store handle
func NewSummaryRefresher(db *gorm.DB, runImmediately bool) *SummaryRefresher {
	return &SummaryRefresher{
		cronScheduler:  cron.New(cron.WithSeconds()),
		db:             db,
		runImmediately: runImmediately,
	}
}

// Start schedules the nightly refresh
func (s *SummaryRefresher) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 30 2 * * *", func() {
		log.Println("Running scheduled monthly summary refresh")
		s.refresh()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()

	if s.runImmediately {
		s.refresh()
	}

	return nil
}

// Stop terminates the refresher
func (s *SummaryRefresher) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Summary refresh scheduler stopped")
	}
}

// UpdateSchedule changes the refresh schedule.
// Format: "0 30 2 * * *" = at 02:30:00 every day
func (s *SummaryRefresher) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled monthly summary refresh")
		s.refresh()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Summary refresh schedule updated to: %s\n", schedule)
	return nil
}

func (s *SummaryRefresher) refresh() {
	month := time.Now().UTC().Format("2006-01")
	if _, err := Ledger.ComputeSummary(s.db, month); err != nil {
		log.Printf("Error refreshing summary for %s: %v", month, err)
		return
	}
	log.Printf("Refreshed monthly summary for %s", month)
}
