package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"samedayramps-backend/internal/apperror"
	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/logger"
	"samedayramps-backend/internal/repository"
)

type jobService struct {
	jobRepo     repository.JobRepository
	pricing     PricingService
	emailSvc    EmailService
	payment     PaymentLinkService
	agreement   AgreementService
	notifier    Notifier
	frontendURL string
}

func NewJobService(
	jobRepo repository.JobRepository,
	pricing PricingService,
	emailSvc EmailService,
	payment PaymentLinkService,
	agreement AgreementService,
	notifier Notifier,
	frontendURL string,
) JobService {
	return &jobService{
		jobRepo:     jobRepo,
		pricing:     pricing,
		emailSvc:    emailSvc,
		payment:     payment,
		agreement:   agreement,
		notifier:    notifier,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
	}
}

func (s *jobService) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return s.jobRepo.List(ctx)
}

func (s *jobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

func (s *jobService) CreateJob(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	if job.Stage == "" {
		job.Stage = domain.JobStageRequested
	}
	if !job.Stage.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("Invalid job stage: %s", job.Stage))
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	logger.Info("Job created", "job_id", job.ID)
	return job, nil
}

func (s *jobService) UpdateJob(ctx context.Context, id string, upd JobUpdate) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Stage != nil {
		if !upd.Stage.Valid() {
			return nil, apperror.Validation(fmt.Sprintf("Invalid job stage: %s", *upd.Stage))
		}
		job.Stage = *upd.Stage
	}
	if upd.CustomerInfo != nil {
		job.CustomerInfo = upd.CustomerInfo
	}
	if upd.Pricing != nil {
		job.Pricing = upd.Pricing
	}
	if upd.Notes != nil && job.CustomerInfo != nil {
		job.CustomerInfo.Notes = *upd.Notes
	}
	if upd.RampConfiguration != nil {
		job.RampConfiguration = upd.RampConfiguration
		// A changed configuration invalidates the stored breakdown.
		if job.CustomerInfo != nil && job.CustomerInfo.InstallAddress != "" {
			pricing, err := s.pricing.CalculatePricing(ctx, *upd.RampConfiguration, job.CustomerInfo.InstallAddress)
			if err != nil {
				return nil, err
			}
			job.Pricing = pricing
		}
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	logger.Info("Job updated", "job_id", job.ID)
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, id string) error {
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Job deleted", "job_id", id)
	return nil
}

func (s *jobService) OverrideStage(ctx context.Context, id string, stage domain.JobStage) (*domain.Job, error) {
	if !stage.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("Invalid job stage: %s", stage))
	}
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job.Stage = stage
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	logger.Info("Job stage overridden", "job_id", id, "stage", stage)
	return job, nil
}

// advance applies action to the job via the transition table, or reports a
// stage violation naming the allowed stages.
func (s *jobService) advance(job *domain.Job, action domain.JobAction) error {
	next, ok := domain.NextStage(job.Stage, action)
	if !ok {
		allowed := domain.AllowedStages(action)
		names := make([]string, len(allowed))
		for i, st := range allowed {
			names[i] = string(st)
		}
		return apperror.StageViolation(fmt.Sprintf("Invalid job stage. Allowed stages: %s", strings.Join(names, ", ")))
	}
	job.Stage = next
	return nil
}

func (s *jobService) SendQuote(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.CustomerEmail() == "" {
		return nil, apperror.Validation("Customer email is missing")
	}
	if err := s.advance(job, domain.ActionSendQuote); err != nil {
		return nil, err
	}
	job.QuoteHTML = buildQuoteHTML(job, s.frontendURL)
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	// The quote email is the whole point of this operation; failure surfaces.
	if err := s.emailSvc.SendQuoteEmail(ctx, job); err != nil {
		return nil, apperror.Upstream("Failed to send quote email", err)
	}
	logger.Info("Quote sent", "job_id", job.ID)
	return job, nil
}

func (s *jobService) GenerateQuote(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job.QuoteHTML = buildQuoteHTML(job, s.frontendURL)
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	logger.Info("Quote generated", "job_id", job.ID)
	return job, nil
}

func (s *jobService) AcceptQuote(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	alreadyAccepted := job.Stage == domain.JobStageQuoteAccepted
	if err := s.advance(job, domain.ActionAcceptQuote); err != nil {
		return nil, err
	}
	if alreadyAccepted {
		logger.Info("Quote already accepted", "job_id", job.ID)
	} else {
		if err := s.jobRepo.Update(ctx, job); err != nil {
			return nil, err
		}
		logger.Info("Quote accepted", "job_id", job.ID)
	}

	// Best effort; a notification failure never fails the acceptance.
	if err := s.notifier.Notify(ctx, "Quote Accepted", fmt.Sprintf("Quote accepted for Job %s", job.ID)); err != nil {
		logger.Warn("Failed to send quote-accepted notification", "job_id", job.ID, "error", err)
	}
	return job, nil
}

func (s *jobService) CreatePaymentLink(ctx context.Context, id string) (string, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	// Idempotent: once a link exists the provider is not called again.
	if job.PaymentLinkURL != "" {
		logger.Info("Payment link already exists", "job_id", job.ID)
		return job.PaymentLinkURL, nil
	}
	if job.Pricing == nil || job.Pricing.UpfrontFee <= 0 {
		return "", apperror.Validation("Job is missing pricing information")
	}

	amountCents := int64(math.Round(job.Pricing.UpfrontFee * 100))
	description := fmt.Sprintf("Ramp Rental - Job %s", job.ID)
	redirectURL := fmt.Sprintf("%s/jobs/%s", s.frontendURL, job.ID)

	url, err := s.payment.CreatePaymentLink(ctx, amountCents, description, redirectURL)
	if err != nil {
		return "", apperror.Upstream("Failed to create payment link", err)
	}

	job.PaymentLinkURL = url
	if err := s.advance(job, domain.ActionCreatePaymentLink); err != nil {
		return "", err
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return "", err
	}
	logger.Info("Payment link created", "job_id", job.ID, "payment_link_url", url)
	return url, nil
}

func (s *jobService) CreateAgreementLink(ctx context.Context, id string) (string, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if job.CustomerInfo == nil || job.CustomerInfo.Email == "" {
		return "", apperror.Validation("Job is missing customer information")
	}
	if job.AgreementLink != "" {
		logger.Info("Agreement link already exists", "job_id", job.ID)
		return job.AgreementLink, nil
	}

	fields := map[string]string{
		"date":               time.Now().Format("1/2/2006"),
		"customerName":       job.CustomerInfo.FullName(),
		"installAddress":     job.CustomerInfo.InstallAddress,
		"totalLength":        "N/A",
		"number-of-landings": "0",
		"monthlyRentalRate":  "0.00",
		"totalUpfront":       "0.00",
	}
	if job.RampConfiguration != nil {
		fields["totalLength"] = fmt.Sprintf("%g", job.RampConfiguration.TotalLength)
		fields["number-of-landings"] = fmt.Sprintf("%d", job.RampConfiguration.LandingCount())
	}
	if job.Pricing != nil {
		fields["monthlyRentalRate"] = fmt.Sprintf("%.2f", job.Pricing.MonthlyRate)
		fields["totalUpfront"] = fmt.Sprintf("%.2f", job.Pricing.UpfrontFee)
	}

	link, err := s.agreement.CreateAgreement(ctx, AgreementRequest{
		SignerName:  job.CustomerInfo.FullName(),
		SignerEmail: job.CustomerInfo.Email,
		Fields:      fields,
	})
	if err != nil {
		return "", apperror.Upstream("Failed to create agreement link", err)
	}

	job.AgreementLink = link
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return "", err
	}
	logger.Info("Agreement link created", "job_id", job.ID, "agreement_link", link)
	return link, nil
}

func (s *jobService) ScheduleInstallation(ctx context.Context, id string, date time.Time, timeSlot string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.advance(job, domain.ActionScheduleInstallation); err != nil {
		return nil, err
	}
	job.InstallationSchedule = &domain.Schedule{Date: date, TimeSlot: timeSlot}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if job.CustomerEmail() == "" {
		logger.Warn("Could not send installation confirmation email: missing email", "job_id", job.ID)
	} else if err := s.emailSvc.SendInstallationConfirmation(ctx, job); err != nil {
		logger.Warn("Failed to send installation confirmation email", "job_id", job.ID, "error", err)
	}
	logger.Info("Installation scheduled", "job_id", job.ID, "date", date, "time_slot", timeSlot)
	return job, nil
}

func (s *jobService) MarkInstalled(ctx context.Context, id string, notes string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.advance(job, domain.ActionMarkInstalled); err != nil {
		return nil, err
	}
	job.AppendLog(domain.CommunicationChannelSystem, fmt.Sprintf("Ramp installed. Notes: %s", notes))
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	logger.Info("Job marked as installed", "job_id", job.ID)
	return job, nil
}

func (s *jobService) ScheduleRemoval(ctx context.Context, id string, date time.Time, timeSlot string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.advance(job, domain.ActionScheduleRemoval); err != nil {
		return nil, err
	}
	job.RemovalSchedule = &domain.Schedule{Date: date, TimeSlot: timeSlot}

	// The estimate informs crew planning; its absence never blocks scheduling.
	if estimate, err := s.pricing.EstimateRemovalCost(ctx, job); err != nil {
		logger.Warn("Failed to estimate removal cost", "job_id", job.ID, "error", err)
	} else {
		job.RemovalCostEstimate = &estimate
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if job.CustomerEmail() == "" {
		logger.Warn("Could not send removal confirmation email: missing email", "job_id", job.ID)
	} else if err := s.emailSvc.SendRemovalConfirmation(ctx, job); err != nil {
		logger.Warn("Failed to send removal confirmation email", "job_id", job.ID, "error", err)
	}
	logger.Info("Removal scheduled", "job_id", job.ID, "date", date, "time_slot", timeSlot)
	return job, nil
}

func (s *jobService) MarkRemoved(ctx context.Context, id string, notes string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.advance(job, domain.ActionMarkRemoved); err != nil {
		return nil, err
	}
	job.AppendLog(domain.CommunicationChannelSystem, fmt.Sprintf("Ramp removed. Notes: %s", notes))
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	logger.Info("Job marked as removed", "job_id", job.ID)
	return job, nil
}

func (s *jobService) CompleteJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.advance(job, domain.ActionComplete); err != nil {
		return nil, err
	}
	job.AppendLog(domain.CommunicationChannelSystem, "Job completed")
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	if job.CustomerEmail() == "" {
		logger.Warn("Could not send job completion email: missing email", "job_id", job.ID)
	} else if err := s.emailSvc.SendCompletionEmail(ctx, job); err != nil {
		logger.Warn("Failed to send job completion email", "job_id", job.ID, "error", err)
	}
	logger.Info("Job completed", "job_id", job.ID)
	return job, nil
}
