package postgres

import (
	"context"
	"database/sql"
	"time"

	"samedayramps-backend/internal/apperror"
	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/repository"
)

type pricingVariablesRepository struct {
	db *sql.DB
}

func NewPricingVariablesRepository(db *sql.DB) repository.PricingVariablesRepository {
	return &pricingVariablesRepository{db: db}
}

// The table is constrained to a single row (id = 1).

func (r *pricingVariablesRepository) Get(ctx context.Context) (*domain.PricingVariables, error) {
	query := `SELECT warehouse_address, base_delivery_fee, delivery_fee_per_mile, base_install_fee,
	          install_fee_per_component, rental_rate_per_ft, updated_on
	          FROM pricing_variables WHERE id = 1`
	vars := &domain.PricingVariables{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&vars.WarehouseAddress, &vars.BaseDeliveryFee, &vars.DeliveryFeePerMile,
		&vars.BaseInstallFee, &vars.InstallFeePerComponent, &vars.RentalRatePerFt, &vars.UpdatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("Pricing variables not found")
	}
	if err != nil {
		return nil, err
	}
	return vars, nil
}

func (r *pricingVariablesRepository) Upsert(ctx context.Context, vars *domain.PricingVariables) error {
	query := `INSERT INTO pricing_variables (id, warehouse_address, base_delivery_fee, delivery_fee_per_mile,
	          base_install_fee, install_fee_per_component, rental_rate_per_ft, updated_on)
	          VALUES (1, $1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (id) DO UPDATE SET
	            warehouse_address = EXCLUDED.warehouse_address,
	            base_delivery_fee = EXCLUDED.base_delivery_fee,
	            delivery_fee_per_mile = EXCLUDED.delivery_fee_per_mile,
	            base_install_fee = EXCLUDED.base_install_fee,
	            install_fee_per_component = EXCLUDED.install_fee_per_component,
	            rental_rate_per_ft = EXCLUDED.rental_rate_per_ft,
	            updated_on = EXCLUDED.updated_on`
	now := time.Now().UTC()
	vars.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query,
		vars.WarehouseAddress, vars.BaseDeliveryFee, vars.DeliveryFeePerMile,
		vars.BaseInstallFee, vars.InstallFeePerComponent, vars.RentalRatePerFt, now,
	)
	return err
}
