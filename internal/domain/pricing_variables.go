package domain

import "time"

// PricingVariables is the singleton configuration driving fee computation.
// At most one record exists; pricing fails when it is absent.
type PricingVariables struct {
	WarehouseAddress       string    `json:"warehouse_address"`
	BaseDeliveryFee        float64   `json:"base_delivery_fee"`
	DeliveryFeePerMile     float64   `json:"delivery_fee_per_mile"`
	BaseInstallFee         float64   `json:"base_install_fee"`
	InstallFeePerComponent float64   `json:"install_fee_per_component"`
	RentalRatePerFt        float64   `json:"rental_rate_per_ft"`
	UpdatedOn              time.Time `json:"updated_on"`
}
