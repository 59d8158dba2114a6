package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

const internalErrorMessage = "An unexpected error occurred"

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := mapErrorCodeToHTTPStatus(appErr.Code)
		if status == http.StatusInternalServerError {
			logger.Error("internal server error", slog.String("error", err.Error()))
			respondError(w, status, models.CodeInternal, internalErrorMessage)
			return
		}
		respondError(w, status, appErr.Code, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, models.CodeNotFound, err.Error())

	case errors.Is(err, models.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, models.CodeUnauthorized, err.Error())

	default:
		// Log internal errors but don't expose details to client
		logger.Error("internal server error",
			slog.String("error", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, models.CodeInternal, internalErrorMessage)
	}
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case models.CodeInvalidInput:
		return http.StatusBadRequest
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeUnauthorized:
		return http.StatusUnauthorized
	case models.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
