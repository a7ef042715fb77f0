package repository

import (
	"context"
	"time"

	"samedayramps-backend/internal/domain"
)

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Job, error)
	ListByStage(ctx context.Context, stage domain.JobStage) ([]domain.Job, error)
	// ListInstallationsBetween returns SCHEDULED jobs whose installation date
	// falls within [from, to).
	ListInstallationsBetween(ctx context.Context, from, to time.Time) ([]domain.Job, error)
}

type RentalRequestRepository interface {
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, id string) (*domain.RentalRequest, error)
	Update(ctx context.Context, req *domain.RentalRequest) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.RentalRequest, error)
}

type PricingVariablesRepository interface {
	// Get returns the singleton record, or a NotFound error when it has
	// never been configured.
	Get(ctx context.Context) (*domain.PricingVariables, error)
	Upsert(ctx context.Context, vars *domain.PricingVariables) error
}
