package jobs

import (
	"database/sql"

	"amenibook-backend/internal/config"
	"amenibook-backend/internal/logger"
	"amenibook-backend/internal/repository/postgres"
	"amenibook-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs. Jobs are strictly advisory:
// they read the schedule and send reminders, they never move a reservation
// through its lifecycle.
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	emailSvc service.EmailService
	config   *config.Config
}

func NewJobRunner(db *sql.DB, store *postgres.Store, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		emailSvc: emailSvc,
		config:   cfg,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllDailyJobs runs every reminder job once (for manual execution).
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendUpcomingReservationReminders()
	jr.SendPendingApprovalDigest()
	jr.SendCompletionReminders()
}
