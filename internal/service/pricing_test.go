package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"samedayramps-backend/internal/apperror"
	"samedayramps-backend/internal/domain"
)

func testPricingVariables() *domain.PricingVariables {
	return &domain.PricingVariables{
		WarehouseAddress:       "1 Warehouse Rd",
		BaseDeliveryFee:        50,
		DeliveryFeePerMile:     2,
		BaseInstallFee:         100,
		InstallFeePerComponent: 10,
		RentalRatePerFt:        5,
	}
}

func TestPricingService_CalculatePricing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		varsRepo := new(MockPricingVariablesRepo)
		distance := new(MockDistanceService)
		svc := NewPricingService(varsRepo, distance)

		varsRepo.On("Get", ctx).Return(testPricingVariables(), nil)
		distance.On("DistanceMiles", ctx, "1 Warehouse Rd", "123 Main St").Return(10.0, nil)

		cfg := domain.RampConfiguration{
			Components:     []domain.RampComponent{{Type: domain.RampComponentTypeRamp, Quantity: 4}},
			TotalLength:    20,
			RentalDuration: 1,
		}
		pricing, err := svc.CalculatePricing(ctx, cfg, "123 Main St")
		assert.NoError(t, err)
		assert.Equal(t, 70.0, pricing.DeliveryFee)
		assert.Equal(t, 140.0, pricing.InstallFee)
		assert.Equal(t, 100.0, pricing.MonthlyRate)
		assert.Equal(t, 210.0, pricing.UpfrontFee)
	})

	t.Run("DurationDiscountOnMonthlyRateOnly", func(t *testing.T) {
		varsRepo := new(MockPricingVariablesRepo)
		distance := new(MockDistanceService)
		svc := NewPricingService(varsRepo, distance)

		varsRepo.On("Get", ctx).Return(testPricingVariables(), nil)
		distance.On("DistanceMiles", ctx, "1 Warehouse Rd", "123 Main St").Return(10.0, nil)

		cfg := domain.RampConfiguration{
			Components:     []domain.RampComponent{{Type: domain.RampComponentTypeRamp, Quantity: 4}},
			TotalLength:    20,
			RentalDuration: 6,
		}
		pricing, err := svc.CalculatePricing(ctx, cfg, "123 Main St")
		assert.NoError(t, err)
		assert.Equal(t, 90.0, pricing.MonthlyRate)
		assert.Equal(t, 70.0, pricing.DeliveryFee)
		assert.Equal(t, 210.0, pricing.UpfrontFee)
	})

	t.Run("MissingVariables", func(t *testing.T) {
		varsRepo := new(MockPricingVariablesRepo)
		distance := new(MockDistanceService)
		svc := NewPricingService(varsRepo, distance)

		varsRepo.On("Get", ctx).Return(nil, apperror.NotFound("Pricing variables not found"))

		_, err := svc.CalculatePricing(ctx, domain.RampConfiguration{}, "123 Main St")
		assert.Equal(t, apperror.KindConfigurationMissing, apperror.KindOf(err))
	})

	t.Run("DistanceFailure", func(t *testing.T) {
		varsRepo := new(MockPricingVariablesRepo)
		distance := new(MockDistanceService)
		svc := NewPricingService(varsRepo, distance)

		varsRepo.On("Get", ctx).Return(testPricingVariables(), nil)
		distance.On("DistanceMiles", ctx, "1 Warehouse Rd", "nowhere").Return(0.0, errors.New("no route"))

		_, err := svc.CalculatePricing(ctx, domain.RampConfiguration{}, "nowhere")
		assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))
	})
}

func TestDurationDiscount(t *testing.T) {
	assert.Equal(t, 0.0, DurationDiscount(1))
	assert.Equal(t, 0.0, DurationDiscount(2))
	assert.Equal(t, 0.05, DurationDiscount(3))
	assert.Equal(t, 0.05, DurationDiscount(5))
	assert.Equal(t, 0.10, DurationDiscount(6))
	assert.Equal(t, 0.10, DurationDiscount(24))
}

func TestPricingService_EstimateRemovalCost(t *testing.T) {
	ctx := context.Background()

	t.Run("AgreesWithDeliveryFee", func(t *testing.T) {
		varsRepo := new(MockPricingVariablesRepo)
		distance := new(MockDistanceService)
		svc := NewPricingService(varsRepo, distance)

		varsRepo.On("Get", ctx).Return(testPricingVariables(), nil)
		distance.On("DistanceMiles", ctx, "1 Warehouse Rd", "123 Main St").Return(10.0, nil)

		job := &domain.Job{CustomerInfo: &domain.CustomerInfo{InstallAddress: "123 Main St"}}
		estimate, err := svc.EstimateRemovalCost(ctx, job)
		assert.NoError(t, err)

		cfg := domain.RampConfiguration{TotalLength: 20, RentalDuration: 1}
		pricing, err := svc.CalculatePricing(ctx, cfg, "123 Main St")
		assert.NoError(t, err)
		assert.Equal(t, pricing.DeliveryFee, estimate)
	})

	t.Run("MissingAddress", func(t *testing.T) {
		varsRepo := new(MockPricingVariablesRepo)
		distance := new(MockDistanceService)
		svc := NewPricingService(varsRepo, distance)

		job := &domain.Job{CustomerInfo: &domain.CustomerInfo{}}
		_, err := svc.EstimateRemovalCost(ctx, job)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestPricingService_UpdateVariables(t *testing.T) {
	ctx := context.Background()

	t.Run("RequiresWarehouseAddress", func(t *testing.T) {
		varsRepo := new(MockPricingVariablesRepo)
		svc := NewPricingService(varsRepo, new(MockDistanceService))

		_, err := svc.UpdateVariables(ctx, &domain.PricingVariables{})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		varsRepo.AssertNotCalled(t, "Upsert")
	})
}
