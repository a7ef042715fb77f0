package service

import (
	"context"
	"time"

	"samedayramps-backend/internal/domain"
)

type JobService interface {
	ListJobs(ctx context.Context) ([]domain.Job, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	CreateJob(ctx context.Context, job *domain.Job) (*domain.Job, error)
	UpdateJob(ctx context.Context, id string, upd JobUpdate) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string) error
	OverrideStage(ctx context.Context, id string, stage domain.JobStage) (*domain.Job, error)

	// Lifecycle operations. Each checks the job's current stage against the
	// transition table before mutating, and triggers its side effect after
	// the stage change is persisted.
	SendQuote(ctx context.Context, id string) (*domain.Job, error)
	GenerateQuote(ctx context.Context, id string) (*domain.Job, error)
	AcceptQuote(ctx context.Context, id string) (*domain.Job, error)
	CreatePaymentLink(ctx context.Context, id string) (string, error)
	CreateAgreementLink(ctx context.Context, id string) (string, error)
	ScheduleInstallation(ctx context.Context, id string, date time.Time, timeSlot string) (*domain.Job, error)
	MarkInstalled(ctx context.Context, id string, notes string) (*domain.Job, error)
	ScheduleRemoval(ctx context.Context, id string, date time.Time, timeSlot string) (*domain.Job, error)
	MarkRemoved(ctx context.Context, id string, notes string) (*domain.Job, error)
	CompleteJob(ctx context.Context, id string) (*domain.Job, error)
}

// JobUpdate carries a partial job update; nil fields are left unchanged.
type JobUpdate struct {
	Stage             *domain.JobStage
	CustomerInfo      *domain.CustomerInfo
	RampConfiguration *domain.RampConfiguration
	Pricing           *domain.Pricing
	Notes             *string
}

type PricingService interface {
	// CalculatePricing computes the fee breakdown for a ramp configuration
	// delivered from the configured warehouse to installAddress.
	CalculatePricing(ctx context.Context, cfg domain.RampConfiguration, installAddress string) (*domain.Pricing, error)
	// EstimateRemovalCost re-derives the delivery-fee term for hauling the
	// ramp back from the job's install address.
	EstimateRemovalCost(ctx context.Context, job *domain.Job) (float64, error)
	GetVariables(ctx context.Context) (*domain.PricingVariables, error)
	UpdateVariables(ctx context.Context, vars *domain.PricingVariables) (*domain.PricingVariables, error)
}

type RentalRequestService interface {
	ListRentalRequests(ctx context.Context) ([]domain.RentalRequest, error)
	GetRentalRequest(ctx context.Context, id string) (*domain.RentalRequest, error)
	CreateRentalRequest(ctx context.Context, req *domain.RentalRequest) (*domain.RentalRequest, error)
	ArchiveRentalRequest(ctx context.Context, id string) (*domain.RentalRequest, error)
	DeleteRentalRequest(ctx context.Context, id string) error
	// ConvertToJob creates a Job from the request. A request produces at
	// most one job; conversion is rejected once a job reference exists.
	ConvertToJob(ctx context.Context, id string) (*domain.Job, error)
}

type EmailService interface {
	Send(ctx context.Context, to, subject, html string) error

	SendQuoteEmail(ctx context.Context, job *domain.Job) error
	SendInstallationConfirmation(ctx context.Context, job *domain.Job) error
	SendRemovalConfirmation(ctx context.Context, job *domain.Job) error
	SendCompletionEmail(ctx context.Context, job *domain.Job) error
	SendQuoteFollowUp(ctx context.Context, job *domain.Job) error
	SendInstallationReminder(ctx context.Context, job *domain.Job) error
}

// DistanceService resolves driving distance between two street addresses.
type DistanceService interface {
	DistanceMiles(ctx context.Context, origin, destination string) (float64, error)
}

// PaymentLinkService creates hosted payment links.
type PaymentLinkService interface {
	CreatePaymentLink(ctx context.Context, amountCents int64, description, redirectURL string) (string, error)
}

// AgreementRequest describes the e-signature contract to create.
type AgreementRequest struct {
	SignerName  string
	SignerEmail string
	Fields      map[string]string
}

// AgreementService creates e-signature contracts and returns the signer URL.
type AgreementService interface {
	CreateAgreement(ctx context.Context, req AgreementRequest) (string, error)
}

// Notifier delivers best-effort push notifications to the operator.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}
