package http

import (
	"encoding/json"
	"net/http"

	"samedayramps-backend/internal/apperror"
	"samedayramps-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps an error onto its HTTP status, hiding internal detail for
// unexpected errors.
func writeError(w http.ResponseWriter, err error) {
	status := apperror.HTTPStatus(err)
	if status >= 500 {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Debug("Request rejected", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: apperror.Message(err)})
}

func writeValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
