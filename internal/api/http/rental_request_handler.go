package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/service"
)

type RentalRequestHandler struct {
	requests service.RentalRequestService
	validate *validator.Validate
}

func NewRentalRequestHandler(requests service.RentalRequestService) *RentalRequestHandler {
	return &RentalRequestHandler{
		requests: requests,
		validate: validator.New(),
	}
}

func (h *RentalRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.ListRentalRequests(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RentalRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.GetRentalRequest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type createRentalRequestRequest struct {
	CustomerInfo   domain.RequestCustomerInfo `json:"customer_info" validate:"required"`
	RampDetails    domain.RampDetails         `json:"ramp_details"`
	InstallAddress string                     `json:"install_address" validate:"required"`
}

func (h *RentalRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createRentalRequestRequest
	if err := decodeBody(r, &body); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		writeValidationError(w, "Customer information and install address are required")
		return
	}
	if body.CustomerInfo.FirstName == "" || body.CustomerInfo.Email == "" {
		writeValidationError(w, "Customer name and email are required")
		return
	}

	req := &domain.RentalRequest{
		CustomerInfo:   body.CustomerInfo,
		RampDetails:    body.RampDetails,
		InstallAddress: body.InstallAddress,
	}
	created, err := h.requests.CreateRentalRequest(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RentalRequestHandler) Archive(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.ArchiveRentalRequest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RentalRequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.requests.DeleteRentalRequest(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RentalRequestHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.requests.ConvertToJob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}
