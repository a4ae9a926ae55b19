package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yourusername/futurologia/internal/models"
	"github.com/yourusername/futurologia/internal/service"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

const apiKeyHint = "set FUTUROLOGIA_FOOTBALL_API_KEY or FOOTBALL_API_KEY"

// writeServiceError maps a service error to its status code and body
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAPIKeyMissing):
		writeError(w, http.StatusInternalServerError, service.ErrAPIKeyMissing.Error(), apiKeyHint)
	case errors.Is(err, service.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, service.ErrInvalidRequest.Error(), detailsOf(err, service.ErrInvalidRequest))
	case errors.Is(err, service.ErrHistoryDisabled):
		writeError(w, http.StatusNotFound, service.ErrHistoryDisabled.Error(), "enable history in the configuration")
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, models.ErrNotFound.Error(), err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error", err.Error())
	}
}

// detailsOf strips the sentinel prefix from a wrapped error message
func detailsOf(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, ErrorResponse{Error: message, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
