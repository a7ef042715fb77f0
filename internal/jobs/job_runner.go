package jobs

import (
	"samedayramps-backend/internal/config"
	"samedayramps-backend/internal/logger"
	"samedayramps-backend/internal/repository/postgres"
	"samedayramps-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	store  *postgres.Store
	email  service.EmailService
	config *config.Config
}

func NewJobRunner(store *postgres.Store, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:  store,
		email:  email,
		config: cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
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

// RunAllDailyJobs runs every scheduled job once (for manual execution).
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendQuoteFollowUps()
	jr.SendInstallationReminders()
}
