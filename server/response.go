package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TemaXo00/musium-web-application/core/auth"
	"github.com/TemaXo00/musium-web-application/core/moderation"
	"github.com/TemaXo00/musium-web-application/core/report"
	"github.com/TemaXo00/musium-web-application/logger"
	"github.com/TemaXo00/musium-web-application/repository"
)

// Response is the JSON envelope every API endpoint replies with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

func writeSuccess(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Error: message})
}

// writeServiceError maps service-layer failures onto the HTTP taxonomy.
// Unrecognized errors become a generic 500; the raw error goes to the log
// only.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, repository.ErrDuplicateNickname):
		writeError(w, http.StatusBadRequest, "Nickname already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, moderation.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, moderation.ErrInvalidType):
		writeError(w, http.StatusBadRequest, "Invalid entity type")
	case errors.Is(err, report.ErrUnknownReportType),
		errors.Is(err, report.ErrUnknownFormat),
		errors.Is(err, report.ErrInvalidDateRange),
		errors.Is(err, report.ErrEmptyResult):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(fallback, logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
