package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"samedayramps-backend/internal/apperror"
	"samedayramps-backend/internal/domain"
)

type jobServiceMocks struct {
	jobRepo   *MockJobRepo
	pricing   *MockPricingService
	email     *MockEmailService
	payment   *MockPaymentLinkService
	agreement *MockAgreementService
	notifier  *MockNotifier
}

func newTestJobService() (JobService, *jobServiceMocks) {
	m := &jobServiceMocks{
		jobRepo:   new(MockJobRepo),
		pricing:   new(MockPricingService),
		email:     new(MockEmailService),
		payment:   new(MockPaymentLinkService),
		agreement: new(MockAgreementService),
		notifier:  new(MockNotifier),
	}
	svc := NewJobService(m.jobRepo, m.pricing, m.email, m.payment, m.agreement, m.notifier, "https://app.samedayramps.com")
	return svc, m
}

func testJob(stage domain.JobStage) *domain.Job {
	return &domain.Job{
		ID:    "job-1",
		Stage: stage,
		CustomerInfo: &domain.CustomerInfo{
			FirstName:      "Jane",
			LastName:       "Doe",
			Email:          "jane@example.com",
			InstallAddress: "123 Main St",
		},
		RampConfiguration: &domain.RampConfiguration{
			Components:     []domain.RampComponent{{Type: domain.RampComponentTypeRamp, Quantity: 4}},
			TotalLength:    20,
			RentalDuration: 1,
		},
		Pricing: &domain.Pricing{DeliveryFee: 70, InstallFee: 140, MonthlyRate: 100, UpfrontFee: 210},
	}
}

func TestJobService_SendQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageRequested)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)
		m.email.On("SendQuoteEmail", ctx, job).Return(nil)

		updated, err := svc.SendQuote(ctx, "job-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStageQuoteSent, updated.Stage)
		assert.NotEmpty(t, updated.QuoteHTML)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageRequested)
		job.CustomerInfo.Email = ""
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)

		_, err := svc.SendQuote(ctx, "job-1")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		m.jobRepo.AssertNotCalled(t, "Update")
	})

	t.Run("EmailFailureSurfaces", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageRequested)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)
		m.email.On("SendQuoteEmail", ctx, job).Return(errors.New("smtp down"))

		_, err := svc.SendQuote(ctx, "job-1")
		assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))
	})
}

func TestJobService_AcceptQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageQuoteSent)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)
		m.notifier.On("Notify", ctx, "Quote Accepted", mock.Anything).Return(nil)

		updated, err := svc.AcceptQuote(ctx, "job-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStageQuoteAccepted, updated.Stage)
	})

	t.Run("AlreadyAcceptedIsNoOp", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageQuoteAccepted)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.notifier.On("Notify", ctx, "Quote Accepted", mock.Anything).Return(nil)

		updated, err := svc.AcceptQuote(ctx, "job-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStageQuoteAccepted, updated.Stage)
		m.jobRepo.AssertNotCalled(t, "Update")
	})

	t.Run("NotificationFailureIsSwallowed", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageQuoteSent)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)
		m.notifier.On("Notify", ctx, "Quote Accepted", mock.Anything).Return(errors.New("push down"))

		_, err := svc.AcceptQuote(ctx, "job-1")
		assert.NoError(t, err)
	})

	t.Run("InvalidStage", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStagePaid)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)

		_, err := svc.AcceptQuote(ctx, "job-1")
		assert.Equal(t, apperror.KindStageViolation, apperror.KindOf(err))
		assert.Equal(t, domain.JobStagePaid, job.Stage)
		m.jobRepo.AssertNotCalled(t, "Update")
	})
}

func TestJobService_CreatePaymentLink(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageRequested)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.payment.On("CreatePaymentLink", ctx, int64(21000), "Ramp Rental - Job job-1", "https://app.samedayramps.com/jobs/job-1").
			Return("https://pay.example.com/link", nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)

		url, err := svc.CreatePaymentLink(ctx, "job-1")
		assert.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/link", url)
		assert.Equal(t, domain.JobStageQuoteSent, job.Stage)
	})

	t.Run("IdempotentWithoutProviderCall", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageQuoteSent)
		job.PaymentLinkURL = "https://pay.example.com/existing"
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)

		url, err := svc.CreatePaymentLink(ctx, "job-1")
		assert.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/existing", url)
		m.payment.AssertNotCalled(t, "CreatePaymentLink")
		m.jobRepo.AssertNotCalled(t, "Update")
	})

	t.Run("MissingPricing", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageRequested)
		job.Pricing = nil
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)

		_, err := svc.CreatePaymentLink(ctx, "job-1")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		m.payment.AssertNotCalled(t, "CreatePaymentLink")
	})
}

func TestJobService_CreateAgreementLink(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageQuoteAccepted)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.agreement.On("CreateAgreement", ctx, mock.MatchedBy(func(req AgreementRequest) bool {
			return req.SignerEmail == "jane@example.com" &&
				req.Fields["totalLength"] == "20" &&
				req.Fields["monthlyRentalRate"] == "100.00"
		})).Return("https://esign.example.com/sign", nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)

		url, err := svc.CreateAgreementLink(ctx, "job-1")
		assert.NoError(t, err)
		assert.Equal(t, "https://esign.example.com/sign", url)
		assert.Equal(t, "https://esign.example.com/sign", job.AgreementLink)
	})

	t.Run("Idempotent", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageQuoteAccepted)
		job.AgreementLink = "https://esign.example.com/existing"
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)

		url, err := svc.CreateAgreementLink(ctx, "job-1")
		assert.NoError(t, err)
		assert.Equal(t, "https://esign.example.com/existing", url)
		m.agreement.AssertNotCalled(t, "CreateAgreement")
	})
}

func TestJobService_ScheduleInstallation(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStagePaid)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)
		m.email.On("SendInstallationConfirmation", ctx, job).Return(nil)

		updated, err := svc.ScheduleInstallation(ctx, "job-1", date, "morning")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStageScheduled, updated.Stage)
		assert.Equal(t, date, updated.InstallationSchedule.Date)
	})

	t.Run("GuardRequiresPaid", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageQuoteSent)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)

		_, err := svc.ScheduleInstallation(ctx, "job-1", date, "morning")
		assert.Equal(t, apperror.KindStageViolation, apperror.KindOf(err))
		assert.Nil(t, job.InstallationSchedule)
	})

	t.Run("EmailFailureIsSwallowed", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStagePaid)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)
		m.email.On("SendInstallationConfirmation", ctx, job).Return(errors.New("smtp down"))

		_, err := svc.ScheduleInstallation(ctx, "job-1", date, "morning")
		assert.NoError(t, err)
	})
}

func TestJobService_ScheduleRemoval(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	t.Run("StoresRemovalCostEstimate", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageInstalled)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.pricing.On("EstimateRemovalCost", ctx, job).Return(70.0, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)
		m.email.On("SendRemovalConfirmation", ctx, job).Return(nil)

		updated, err := svc.ScheduleRemoval(ctx, "job-1", date, "afternoon")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStageRemovalScheduled, updated.Stage)
		assert.NotNil(t, updated.RemovalCostEstimate)
		assert.Equal(t, 70.0, *updated.RemovalCostEstimate)
		m.jobRepo.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("EstimateFailureDoesNotBlock", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageInstalled)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.pricing.On("EstimateRemovalCost", ctx, job).Return(0.0, errors.New("no route"))
		m.jobRepo.On("Update", ctx, job).Return(nil)
		m.email.On("SendRemovalConfirmation", ctx, job).Return(nil)

		updated, err := svc.ScheduleRemoval(ctx, "job-1", date, "afternoon")
		assert.NoError(t, err)
		assert.Nil(t, updated.RemovalCostEstimate)
	})
}

func TestJobService_TerminalOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("MarkInstalledLogsNotes", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageScheduled)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)

		updated, err := svc.MarkInstalled(ctx, "job-1", "left side entry")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStageInstalled, updated.Stage)
		assert.Len(t, updated.CommunicationLog, 1)
		assert.Equal(t, domain.CommunicationChannelSystem, updated.CommunicationLog[0].Channel)
		assert.Contains(t, updated.CommunicationLog[0].Notes, "left side entry")
	})

	t.Run("MarkRemovedGuard", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageInstalled)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)

		_, err := svc.MarkRemoved(ctx, "job-1", "")
		assert.Equal(t, apperror.KindStageViolation, apperror.KindOf(err))
	})

	t.Run("CompleteJobSendsEmail", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageRemoved)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)
		m.email.On("SendCompletionEmail", ctx, job).Return(nil)

		updated, err := svc.CompleteJob(ctx, "job-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStageCompleted, updated.Stage)
	})
}

func TestJobService_UpdateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("RecalculatesPricingOnConfigurationChange", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageRequested)
		newCfg := &domain.RampConfiguration{TotalLength: 30, RentalDuration: 2}
		newPricing := &domain.Pricing{DeliveryFee: 80, InstallFee: 100, MonthlyRate: 150, UpfrontFee: 180}

		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)
		m.pricing.On("CalculatePricing", ctx, *newCfg, "123 Main St").Return(newPricing, nil)
		m.jobRepo.On("Update", ctx, job).Return(nil)

		updated, err := svc.UpdateJob(ctx, "job-1", JobUpdate{RampConfiguration: newCfg})
		assert.NoError(t, err)
		assert.Equal(t, newPricing, updated.Pricing)
	})

	t.Run("RejectsInvalidStage", func(t *testing.T) {
		svc, m := newTestJobService()
		job := testJob(domain.JobStageRequested)
		m.jobRepo.On("GetByID", ctx, "job-1").Return(job, nil)

		bad := domain.JobStage("BOGUS")
		_, err := svc.UpdateJob(ctx, "job-1", JobUpdate{Stage: &bad})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}
