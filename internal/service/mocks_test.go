package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"samedayramps-backend/internal/domain"
)

// MockJobRepo
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockJobRepo) List(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) ListByStage(ctx context.Context, stage domain.JobStage) ([]domain.Job, error) {
	args := m.Called(ctx, stage)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) ListInstallationsBetween(ctx context.Context, from, to time.Time) ([]domain.Job, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Job), args.Error(1)
}

// MockRentalRequestRepo
type MockRentalRequestRepo struct {
	mock.Mock
}

func (m *MockRentalRequestRepo) Create(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentalRequestRepo) GetByID(ctx context.Context, id string) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) Update(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentalRequestRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRequestRepo) List(ctx context.Context) ([]domain.RentalRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}

// MockPricingVariablesRepo
type MockPricingVariablesRepo struct {
	mock.Mock
}

func (m *MockPricingVariablesRepo) Get(ctx context.Context) (*domain.PricingVariables, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingVariables), args.Error(1)
}
func (m *MockPricingVariablesRepo) Upsert(ctx context.Context, vars *domain.PricingVariables) error {
	args := m.Called(ctx, vars)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, html string) error {
	args := m.Called(ctx, to, subject, html)
	return args.Error(0)
}
func (m *MockEmailService) SendQuoteEmail(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockEmailService) SendInstallationConfirmation(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockEmailService) SendRemovalConfirmation(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockEmailService) SendCompletionEmail(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockEmailService) SendQuoteFollowUp(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockEmailService) SendInstallationReminder(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockDistanceService
type MockDistanceService struct {
	mock.Mock
}

func (m *MockDistanceService) DistanceMiles(ctx context.Context, origin, destination string) (float64, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(float64), args.Error(1)
}

// MockPaymentLinkService
type MockPaymentLinkService struct {
	mock.Mock
}

func (m *MockPaymentLinkService) CreatePaymentLink(ctx context.Context, amountCents int64, description, redirectURL string) (string, error) {
	args := m.Called(ctx, amountCents, description, redirectURL)
	return args.String(0), args.Error(1)
}

// MockAgreementService
type MockAgreementService struct {
	mock.Mock
}

func (m *MockAgreementService) CreateAgreement(ctx context.Context, req AgreementRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, title, message string) error {
	args := m.Called(ctx, title, message)
	return args.Error(0)
}

// MockPricingService
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) CalculatePricing(ctx context.Context, cfg domain.RampConfiguration, installAddress string) (*domain.Pricing, error) {
	args := m.Called(ctx, cfg, installAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pricing), args.Error(1)
}
func (m *MockPricingService) EstimateRemovalCost(ctx context.Context, job *domain.Job) (float64, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockPricingService) GetVariables(ctx context.Context) (*domain.PricingVariables, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingVariables), args.Error(1)
}
func (m *MockPricingService) UpdateVariables(ctx context.Context, vars *domain.PricingVariables) (*domain.PricingVariables, error) {
	args := m.Called(ctx, vars)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingVariables), args.Error(1)
}
