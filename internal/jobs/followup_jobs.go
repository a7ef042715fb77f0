package jobs

import (
	"context"
	"fmt"
	"time"

	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/logger"
)

// SendQuoteFollowUps emails customers whose quote has sat unanswered for the
// configured number of days. The follow-up is recorded in the communication
// log so the same job is never chased twice.
func (jr *JobRunner) SendQuoteFollowUps() {
	jr.runWithRecovery("SendQuoteFollowUps", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.QuoteFollowUpAfterDays)

		jobs, err := jr.store.JobRepository.ListByStage(ctx, domain.JobStageQuoteSent)
		if err != nil {
			logger.Error("Failed to list quote-sent jobs", "error", err)
			return
		}

		count := 0
		for i := range jobs {
			job := &jobs[i]
			if job.UpdatedOn.After(cutoff) {
				continue
			}
			if hasFollowUp(job) {
				continue
			}
			if job.CustomerEmail() == "" {
				logger.Warn("Skipping quote follow-up: missing email", "job_id", job.ID)
				continue
			}

			if err := jr.email.SendQuoteFollowUp(ctx, job); err != nil {
				logger.Error("Failed to send quote follow-up", "job_id", job.ID, "error", err)
				continue
			}
			job.AppendLog(domain.CommunicationChannelSystem, "Quote follow-up email sent")
			if err := jr.store.JobRepository.Update(ctx, job); err != nil {
				logger.Error("Failed to record quote follow-up", "job_id", job.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Quote follow-ups sent", "count", count)
	})
}

func hasFollowUp(job *domain.Job) bool {
	for _, entry := range job.CommunicationLog {
		if entry.Channel == domain.CommunicationChannelSystem && entry.Notes == "Quote follow-up email sent" {
			return true
		}
	}
	return false
}

// SendInstallationReminders emails customers whose installation falls within
// the next 24 hours.
func (jr *JobRunner) SendInstallationReminders() {
	jr.runWithRecovery("SendInstallationReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		jobs, err := jr.store.JobRepository.ListInstallationsBetween(ctx, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to list upcoming installations", "error", err)
			return
		}

		count := 0
		for i := range jobs {
			job := &jobs[i]
			if job.CustomerEmail() == "" {
				logger.Warn("Skipping installation reminder: missing email", "job_id", job.ID)
				continue
			}
			if err := jr.email.SendInstallationReminder(ctx, job); err != nil {
				logger.Error("Failed to send installation reminder", "job_id", job.ID, "error", err)
				continue
			}
			job.AppendLog(domain.CommunicationChannelSystem,
				fmt.Sprintf("Installation reminder email sent for %s", job.InstallationSchedule.Date.Format("2006-01-02")))
			if err := jr.store.JobRepository.Update(ctx, job); err != nil {
				logger.Error("Failed to record installation reminder", "job_id", job.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Installation reminders sent", "count", count)
	})
}
