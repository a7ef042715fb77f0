package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/service"
)

type JobHandler struct {
	jobs     service.JobService
	pricing  service.PricingService
	validate *validator.Validate
}

func NewJobHandler(jobs service.JobService, pricing service.PricingService) *JobHandler {
	return &JobHandler{
		jobs:     jobs,
		pricing:  pricing,
		validate: validator.New(),
	}
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListJobs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.GetJob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type createJobRequest struct {
	Stage             domain.JobStage           `json:"stage"`
	CustomerInfo      *domain.CustomerInfo      `json:"customer_info" validate:"required"`
	RampConfiguration *domain.RampConfiguration `json:"ramp_configuration"`
	Pricing           *domain.Pricing           `json:"pricing"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, "Customer information is required")
		return
	}
	job := &domain.Job{
		Stage:             req.Stage,
		CustomerInfo:      req.CustomerInfo,
		RampConfiguration: req.RampConfiguration,
		Pricing:           req.Pricing,
	}
	created, err := h.jobs.CreateJob(r.Context(), job)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type updateJobRequest struct {
	Stage             *domain.JobStage          `json:"stage"`
	CustomerInfo      *domain.CustomerInfo      `json:"customer_info"`
	RampConfiguration *domain.RampConfiguration `json:"ramp_configuration"`
	Pricing           *domain.Pricing           `json:"pricing"`
	Notes             *string                   `json:"notes"`
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateJobRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	job, err := h.jobs.UpdateJob(r.Context(), mux.Vars(r)["id"], service.JobUpdate{
		Stage:             req.Stage,
		CustomerInfo:      req.CustomerInfo,
		RampConfiguration: req.RampConfiguration,
		Pricing:           req.Pricing,
		Notes:             req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.jobs.DeleteJob(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type overrideStageRequest struct {
	Stage domain.JobStage `json:"stage" validate:"required"`
}

func (h *JobHandler) OverrideStage(w http.ResponseWriter, r *http.Request) {
	var req overrideStageRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, "Stage is required")
		return
	}
	job, err := h.jobs.OverrideStage(r.Context(), mux.Vars(r)["id"], req.Stage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) SendQuote(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.SendQuote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) GenerateQuote(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.GenerateQuote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) AcceptQuote(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.AcceptQuote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type linkResponse struct {
	URL string `json:"url"`
}

func (h *JobHandler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	url, err := h.jobs.CreatePaymentLink(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, linkResponse{URL: url})
}

func (h *JobHandler) CreateAgreementLink(w http.ResponseWriter, r *http.Request) {
	url, err := h.jobs.CreateAgreementLink(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, linkResponse{URL: url})
}

type scheduleRequest struct {
	Date     time.Time `json:"date" validate:"required"`
	TimeSlot string    `json:"time_slot" validate:"required"`
}

func (h *JobHandler) ScheduleInstallation(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, "Date and time slot are required")
		return
	}
	job, err := h.jobs.ScheduleInstallation(r.Context(), mux.Vars(r)["id"], req.Date, req.TimeSlot)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *JobHandler) MarkInstalled(w http.ResponseWriter, r *http.Request) {
	var req notesRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	job, err := h.jobs.MarkInstalled(r.Context(), mux.Vars(r)["id"], req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) ScheduleRemoval(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, "Date and time slot are required")
		return
	}
	job, err := h.jobs.ScheduleRemoval(r.Context(), mux.Vars(r)["id"], req.Date, req.TimeSlot)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) MarkRemoved(w http.ResponseWriter, r *http.Request) {
	var req notesRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	job, err := h.jobs.MarkRemoved(r.Context(), mux.Vars(r)["id"], req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) Complete(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.CompleteJob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type calculatePricingRequest struct {
	RampConfiguration domain.RampConfiguration `json:"ramp_configuration" validate:"required"`
	InstallAddress    string                   `json:"install_address" validate:"required"`
}

func (h *JobHandler) CalculatePricing(w http.ResponseWriter, r *http.Request) {
	var req calculatePricingRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, "Ramp configuration and install address are required")
		return
	}
	pricing, err := h.pricing.CalculatePricing(r.Context(), req.RampConfiguration, req.InstallAddress)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pricing)
}
