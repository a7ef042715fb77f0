package http

import (
	"fmt"
	"html"
	"net/http"

	"github.com/go-playground/validator/v10"

	"samedayramps-backend/internal/logger"
	"samedayramps-backend/internal/service"
)

// ContactHandler receives public contact-form submissions and relays them to
// the operator inbox.
type ContactHandler struct {
	email         service.EmailService
	notifier      service.Notifier
	operatorEmail string
	validate      *validator.Validate
}

func NewContactHandler(email service.EmailService, notifier service.Notifier, operatorEmail string) *ContactHandler {
	return &ContactHandler{
		email:         email,
		notifier:      notifier,
		operatorEmail: operatorEmail,
		validate:      validator.New(),
	}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, "Name, email and message are required")
		return
	}

	body := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif;"><h2>New Contact Form Submission</h2>`+
			`<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p>`+
			`<p><strong>Phone:</strong> %s</p><p><strong>Message:</strong></p><p>%s</p></div>`,
		html.EscapeString(req.Name), html.EscapeString(req.Email),
		html.EscapeString(req.Phone), html.EscapeString(req.Message),
	)
	if err := h.email.Send(r.Context(), h.operatorEmail, "New Contact Form Submission", body); err != nil {
		writeError(w, err)
		return
	}

	if err := h.notifier.Notify(r.Context(), "Contact Form", "New message from "+req.Name); err != nil {
		logger.Warn("Failed to send contact-form notification", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}
