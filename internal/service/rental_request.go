package service

import (
	"context"

	"samedayramps-backend/internal/apperror"
	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/logger"
	"samedayramps-backend/internal/repository"
)

type rentalRequestService struct {
	requestRepo repository.RentalRequestRepository
	jobRepo     repository.JobRepository
	notifier    Notifier
}

func NewRentalRequestService(
	requestRepo repository.RentalRequestRepository,
	jobRepo repository.JobRepository,
	notifier Notifier,
) RentalRequestService {
	return &rentalRequestService{
		requestRepo: requestRepo,
		jobRepo:     jobRepo,
		notifier:    notifier,
	}
}

func (s *rentalRequestService) ListRentalRequests(ctx context.Context) ([]domain.RentalRequest, error) {
	return s.requestRepo.List(ctx)
}

func (s *rentalRequestService) GetRentalRequest(ctx context.Context, id string) (*domain.RentalRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *rentalRequestService) CreateRentalRequest(ctx context.Context, req *domain.RentalRequest) (*domain.RentalRequest, error) {
	req.Status = domain.RentalRequestStatusPending
	req.SalesStage = domain.SalesStageRentalRequest
	req.JobID = ""
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("Rental request created", "request_id", req.ID, "customer", req.CustomerInfo.FirstName+" "+req.CustomerInfo.LastName)

	if err := s.notifier.Notify(ctx, "New Rental Request",
		"New rental request from "+req.CustomerInfo.FirstName+" "+req.CustomerInfo.LastName); err != nil {
		logger.Warn("Failed to send rental-request notification", "request_id", req.ID, "error", err)
	}
	return req, nil
}

func (s *rentalRequestService) ArchiveRentalRequest(ctx context.Context, id string) (*domain.RentalRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Status = domain.RentalRequestStatusArchived
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("Rental request archived", "request_id", id)
	return req, nil
}

func (s *rentalRequestService) DeleteRentalRequest(ctx context.Context, id string) error {
	if err := s.requestRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Rental request deleted", "request_id", id)
	return nil
}

func (s *rentalRequestService) ConvertToJob(ctx context.Context, id string) (*domain.Job, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.JobID != "" {
		return nil, apperror.Conflict("Rental request has already been converted to a job")
	}

	job := jobFromRequest(req)
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	req.JobID = job.ID
	req.Status = domain.RentalRequestStatusJobCreated
	req.SalesStage = domain.SalesStageJobCreated
	if err := s.requestRepo.Update(ctx, req); err != nil {
		// Best effort cleanup so a retry does not strand an orphan job.
		if delErr := s.jobRepo.Delete(ctx, job.ID); delErr != nil {
			logger.Error("Failed to delete orphan job after conversion failure", "job_id", job.ID, "error", delErr)
		}
		return nil, err
	}
	logger.Info("Rental request converted to job", "request_id", id, "job_id", job.ID)
	return job, nil
}

// jobFromRequest maps an intake lead onto a fresh job in the REQUESTED stage.
func jobFromRequest(req *domain.RentalRequest) *domain.Job {
	cfg := domain.RampConfiguration{
		Components:     []domain.RampComponent{},
		RentalDuration: 1,
	}
	if req.RampDetails.KnowRampLength && req.RampDetails.RampLength != nil {
		cfg.TotalLength = *req.RampDetails.RampLength
	}
	if req.RampDetails.KnowRentalDuration && req.RampDetails.RentalDuration != nil {
		cfg.RentalDuration = *req.RampDetails.RentalDuration
	}

	return &domain.Job{
		Stage: domain.JobStageRequested,
		CustomerInfo: &domain.CustomerInfo{
			FirstName:      req.CustomerInfo.FirstName,
			LastName:       req.CustomerInfo.LastName,
			Phone:          req.CustomerInfo.Phone,
			Email:          req.CustomerInfo.Email,
			InstallAddress: req.InstallAddress,
			MobilityAids:   req.RampDetails.MobilityAids,
		},
		RampConfiguration: &cfg,
	}
}
