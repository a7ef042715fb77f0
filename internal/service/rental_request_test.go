package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"samedayramps-backend/internal/apperror"
	"samedayramps-backend/internal/domain"
)

func testRentalRequest() *domain.RentalRequest {
	length := 20.0
	duration := 6
	return &domain.RentalRequest{
		ID: "req-1",
		CustomerInfo: domain.RequestCustomerInfo{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Phone:     "555-0100",
		},
		RampDetails: domain.RampDetails{
			KnowRampLength:     true,
			RampLength:         &length,
			KnowRentalDuration: true,
			RentalDuration:     &duration,
			MobilityAids:       []string{"wheelchair"},
		},
		InstallAddress: "123 Main St",
		Status:         domain.RentalRequestStatusPending,
		SalesStage:     domain.SalesStageRentalRequest,
	}
}

func TestRentalRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		requestRepo := new(MockRentalRequestRepo)
		notifier := new(MockNotifier)
		svc := NewRentalRequestService(requestRepo, new(MockJobRepo), notifier)

		req := testRentalRequest()
		requestRepo.On("Create", ctx, req).Return(nil)
		notifier.On("Notify", ctx, "New Rental Request", mock.Anything).Return(nil)

		created, err := svc.CreateRentalRequest(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalRequestStatusPending, created.Status)
		assert.Equal(t, domain.SalesStageRentalRequest, created.SalesStage)
	})

	t.Run("NotificationFailureIsSwallowed", func(t *testing.T) {
		requestRepo := new(MockRentalRequestRepo)
		notifier := new(MockNotifier)
		svc := NewRentalRequestService(requestRepo, new(MockJobRepo), notifier)

		req := testRentalRequest()
		requestRepo.On("Create", ctx, req).Return(nil)
		notifier.On("Notify", ctx, "New Rental Request", mock.Anything).Return(errors.New("push down"))

		_, err := svc.CreateRentalRequest(ctx, req)
		assert.NoError(t, err)
	})
}

func TestRentalRequestService_ConvertToJob(t *testing.T) {
	ctx := context.Background()

	t.Run("MapsFieldsOntoJob", func(t *testing.T) {
		requestRepo := new(MockRentalRequestRepo)
		jobRepo := new(MockJobRepo)
		svc := NewRentalRequestService(requestRepo, jobRepo, new(MockNotifier))

		req := testRentalRequest()
		requestRepo.On("GetByID", ctx, "req-1").Return(req, nil)
		jobRepo.On("Create", ctx, mock.MatchedBy(func(job *domain.Job) bool {
			return job.Stage == domain.JobStageRequested &&
				job.CustomerInfo.Email == "jane@example.com" &&
				job.CustomerInfo.InstallAddress == "123 Main St" &&
				job.RampConfiguration.TotalLength == 20 &&
				job.RampConfiguration.RentalDuration == 6
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Job).ID = "job-1"
		}).Return(nil)
		requestRepo.On("Update", ctx, req).Return(nil)

		job, err := svc.ConvertToJob(ctx, "req-1")
		assert.NoError(t, err)
		assert.Equal(t, "job-1", job.ID)
		assert.Equal(t, "job-1", req.JobID)
		assert.Equal(t, domain.RentalRequestStatusJobCreated, req.Status)
		assert.Equal(t, domain.SalesStageJobCreated, req.SalesStage)
	})

	t.Run("DefaultsWhenDetailsUnknown", func(t *testing.T) {
		requestRepo := new(MockRentalRequestRepo)
		jobRepo := new(MockJobRepo)
		svc := NewRentalRequestService(requestRepo, jobRepo, new(MockNotifier))

		req := testRentalRequest()
		req.RampDetails.KnowRampLength = false
		req.RampDetails.KnowRentalDuration = false
		requestRepo.On("GetByID", ctx, "req-1").Return(req, nil)
		jobRepo.On("Create", ctx, mock.MatchedBy(func(job *domain.Job) bool {
			return job.RampConfiguration.TotalLength == 0 &&
				job.RampConfiguration.RentalDuration == 1 &&
				len(job.RampConfiguration.Components) == 0
		})).Return(nil)
		requestRepo.On("Update", ctx, req).Return(nil)

		_, err := svc.ConvertToJob(ctx, "req-1")
		assert.NoError(t, err)
	})

	t.Run("RejectsSecondConversion", func(t *testing.T) {
		requestRepo := new(MockRentalRequestRepo)
		jobRepo := new(MockJobRepo)
		svc := NewRentalRequestService(requestRepo, jobRepo, new(MockNotifier))

		req := testRentalRequest()
		req.JobID = "job-1"
		requestRepo.On("GetByID", ctx, "req-1").Return(req, nil)

		_, err := svc.ConvertToJob(ctx, "req-1")
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		jobRepo.AssertNotCalled(t, "Create")
	})

	t.Run("CleansUpOrphanJobOnUpdateFailure", func(t *testing.T) {
		requestRepo := new(MockRentalRequestRepo)
		jobRepo := new(MockJobRepo)
		svc := NewRentalRequestService(requestRepo, jobRepo, new(MockNotifier))

		req := testRentalRequest()
		requestRepo.On("GetByID", ctx, "req-1").Return(req, nil)
		jobRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Job).ID = "job-1"
		}).Return(nil)
		requestRepo.On("Update", ctx, req).Return(errors.New("db down"))
		jobRepo.On("Delete", ctx, "job-1").Return(nil)

		_, err := svc.ConvertToJob(ctx, "req-1")
		assert.Error(t, err)
		jobRepo.AssertCalled(t, "Delete", ctx, "job-1")
	})
}

func TestRentalRequestService_Archive(t *testing.T) {
	ctx := context.Background()

	requestRepo := new(MockRentalRequestRepo)
	svc := NewRentalRequestService(requestRepo, new(MockJobRepo), new(MockNotifier))

	req := testRentalRequest()
	requestRepo.On("GetByID", ctx, "req-1").Return(req, nil)
	requestRepo.On("Update", ctx, req).Return(nil)

	archived, err := svc.ArchiveRentalRequest(ctx, "req-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.RentalRequestStatusArchived, archived.Status)
}
