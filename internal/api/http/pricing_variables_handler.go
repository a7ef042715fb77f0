package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/service"
)

type PricingVariablesHandler struct {
	pricing  service.PricingService
	validate *validator.Validate
}

func NewPricingVariablesHandler(pricing service.PricingService) *PricingVariablesHandler {
	return &PricingVariablesHandler{
		pricing:  pricing,
		validate: validator.New(),
	}
}

func (h *PricingVariablesHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars, err := h.pricing.GetVariables(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vars)
}

type upsertPricingVariablesRequest struct {
	WarehouseAddress       string  `json:"warehouse_address" validate:"required"`
	BaseDeliveryFee        float64 `json:"base_delivery_fee" validate:"gte=0"`
	DeliveryFeePerMile     float64 `json:"delivery_fee_per_mile" validate:"gte=0"`
	BaseInstallFee         float64 `json:"base_install_fee" validate:"gte=0"`
	InstallFeePerComponent float64 `json:"install_fee_per_component" validate:"gte=0"`
	RentalRatePerFt        float64 `json:"rental_rate_per_ft" validate:"gte=0"`
}

func (h *PricingVariablesHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var body upsertPricingVariablesRequest
	if err := decodeBody(r, &body); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		writeValidationError(w, "Warehouse address is required and fees must not be negative")
		return
	}

	vars, err := h.pricing.UpdateVariables(r.Context(), &domain.PricingVariables{
		WarehouseAddress:       body.WarehouseAddress,
		BaseDeliveryFee:        body.BaseDeliveryFee,
		DeliveryFeePerMile:     body.DeliveryFeePerMile,
		BaseInstallFee:         body.BaseInstallFee,
		InstallFeePerComponent: body.InstallFeePerComponent,
		RentalRatePerFt:        body.RentalRatePerFt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vars)
}
