package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Jobs           *JobHandler
	RentalRequests *RentalRequestHandler
	PricingVars    *PricingVariablesHandler
	Contact        *ContactHandler
	Auth           *AuthHandler
	AuthMiddleware *AuthMiddleware
}

// NewRouter wires all routes under the /api prefix. Intake and login routes
// are public; everything else requires a Bearer token.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogging)

	api := router.PathPrefix("/api").Subrouter()
	auth := deps.AuthMiddleware.RequireAuth

	api.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Public intake.
	api.HandleFunc("/auth/login", deps.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/rental-requests", deps.RentalRequests.Create).Methods(http.MethodPost)
	api.HandleFunc("/contact", deps.Contact.Submit).Methods(http.MethodPost)

	// Rental requests.
	api.HandleFunc("/rental-requests", auth(deps.RentalRequests.List)).Methods(http.MethodGet)
	api.HandleFunc("/rental-requests/{id}", auth(deps.RentalRequests.Get)).Methods(http.MethodGet)
	api.HandleFunc("/rental-requests/{id}", auth(deps.RentalRequests.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/rental-requests/{id}/archive", auth(deps.RentalRequests.Archive)).Methods(http.MethodPost)
	api.HandleFunc("/rental-requests/{id}/create-job", auth(deps.RentalRequests.CreateJob)).Methods(http.MethodPost)

	// Jobs.
	api.HandleFunc("/jobs", auth(deps.Jobs.List)).Methods(http.MethodGet)
	api.HandleFunc("/jobs", auth(deps.Jobs.Create)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/calculate-pricing", auth(deps.Jobs.CalculatePricing)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}", auth(deps.Jobs.Get)).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}", auth(deps.Jobs.Update)).Methods(http.MethodPut)
	api.HandleFunc("/jobs/{id}", auth(deps.Jobs.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/jobs/{id}/stage", auth(deps.Jobs.OverrideStage)).Methods(http.MethodPut)

	// Job lifecycle.
	api.HandleFunc("/jobs/{id}/send-quote", auth(deps.Jobs.SendQuote)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/generate-quote", auth(deps.Jobs.GenerateQuote)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/accept-quote", auth(deps.Jobs.AcceptQuote)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/create-payment-link", auth(deps.Jobs.CreatePaymentLink)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/create-agreement-link", auth(deps.Jobs.CreateAgreementLink)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/schedule-installation", auth(deps.Jobs.ScheduleInstallation)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/mark-installed", auth(deps.Jobs.MarkInstalled)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/schedule-removal", auth(deps.Jobs.ScheduleRemoval)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/mark-removed", auth(deps.Jobs.MarkRemoved)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/complete", auth(deps.Jobs.Complete)).Methods(http.MethodPost)

	// Pricing variables.
	api.HandleFunc("/pricing-variables", auth(deps.PricingVars.Get)).Methods(http.MethodGet)
	api.HandleFunc("/pricing-variables", auth(deps.PricingVars.Upsert)).Methods(http.MethodPut)

	return router
}
