package service

import (
	"context"
	"math"

	"samedayramps-backend/internal/apperror"
	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/logger"
	"samedayramps-backend/internal/repository"
)

type pricingService struct {
	varsRepo repository.PricingVariablesRepository
	distance DistanceService
}

func NewPricingService(varsRepo repository.PricingVariablesRepository, distance DistanceService) PricingService {
	return &pricingService{
		varsRepo: varsRepo,
		distance: distance,
	}
}

// DurationDiscount returns the rental-duration discount applied to the
// monthly rate: 10% at six months or longer, 5% at three to six months.
func DurationDiscount(months int) float64 {
	switch {
	case months >= 6:
		return 0.10
	case months >= 3:
		return 0.05
	default:
		return 0
	}
}

func (s *pricingService) CalculatePricing(ctx context.Context, cfg domain.RampConfiguration, installAddress string) (*domain.Pricing, error) {
	vars, err := s.variables(ctx)
	if err != nil {
		return nil, err
	}

	miles, err := s.distance.DistanceMiles(ctx, vars.WarehouseAddress, installAddress)
	if err != nil {
		return nil, apperror.Upstream("Distance unavailable", err)
	}
	logger.Debug("Distance calculated", "miles", miles, "install_address", installAddress)

	deliveryFee := vars.BaseDeliveryFee + vars.DeliveryFeePerMile*miles
	installFee := vars.BaseInstallFee + vars.InstallFeePerComponent*float64(cfg.ComponentCount())

	monthlyRate := 0.0
	if cfg.TotalLength > 0 {
		monthlyRate = vars.RentalRatePerFt * cfg.TotalLength * (1 - DurationDiscount(cfg.RentalDuration))
	}

	upfrontFee := deliveryFee + installFee

	pricing := &domain.Pricing{
		DeliveryFee: math.Round(deliveryFee),
		InstallFee:  math.Round(installFee),
		MonthlyRate: math.Round(monthlyRate),
		UpfrontFee:  math.Round(upfrontFee),
	}
	logger.Info("Pricing calculation completed",
		"delivery_fee", pricing.DeliveryFee,
		"install_fee", pricing.InstallFee,
		"monthly_rate", pricing.MonthlyRate,
		"upfront_fee", pricing.UpfrontFee,
	)
	return pricing, nil
}

func (s *pricingService) EstimateRemovalCost(ctx context.Context, job *domain.Job) (float64, error) {
	if job == nil {
		return 0, apperror.NotFound("Job not found")
	}
	if job.CustomerInfo == nil || job.CustomerInfo.InstallAddress == "" {
		return 0, apperror.Validation("Customer install address is missing")
	}

	vars, err := s.variables(ctx)
	if err != nil {
		return 0, err
	}

	miles, err := s.distance.DistanceMiles(ctx, vars.WarehouseAddress, job.CustomerInfo.InstallAddress)
	if err != nil {
		return 0, apperror.Upstream("Distance unavailable", err)
	}

	// Same formula as the delivery-fee term of CalculatePricing.
	return math.Round(vars.BaseDeliveryFee + vars.DeliveryFeePerMile*miles), nil
}

func (s *pricingService) GetVariables(ctx context.Context) (*domain.PricingVariables, error) {
	return s.varsRepo.Get(ctx)
}

func (s *pricingService) UpdateVariables(ctx context.Context, vars *domain.PricingVariables) (*domain.PricingVariables, error) {
	if vars.WarehouseAddress == "" {
		return nil, apperror.Validation("Warehouse address is required")
	}
	if err := s.varsRepo.Upsert(ctx, vars); err != nil {
		return nil, err
	}
	return vars, nil
}

// variables loads the singleton configuration, translating absence into a
// configuration error rather than a not-found.
func (s *pricingService) variables(ctx context.Context) (*domain.PricingVariables, error) {
	vars, err := s.varsRepo.Get(ctx)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, apperror.ConfigurationMissing("Pricing variables not set")
		}
		return nil, err
	}
	if vars.WarehouseAddress == "" {
		return nil, apperror.ConfigurationMissing("Warehouse address is missing in pricing variables")
	}
	return vars, nil
}
