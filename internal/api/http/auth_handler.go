package http

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"samedayramps-backend/internal/logger"
	"samedayramps-backend/internal/security"
)

// AuthHandler authenticates the single back-office operator account defined
// in configuration.
type AuthHandler struct {
	tokens            security.TokenManager
	adminEmail        string
	adminPasswordHash string
	validate          *validator.Validate
}

func NewAuthHandler(tokens security.TokenManager, adminEmail, adminPasswordHash string) *AuthHandler {
	return &AuthHandler{
		tokens:            tokens,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		validate:          validator.New(),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, "Email and password are required")
		return
	}

	if !strings.EqualFold(req.Email, h.adminEmail) ||
		security.CheckPassword(h.adminPasswordHash, req.Password) != nil {
		logger.Warn("Failed login attempt", "email", req.Email)
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid email or password"})
		return
	}

	token, err := h.tokens.GenerateAccessToken(h.adminEmail)
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("Operator logged in", "email", h.adminEmail)
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}
