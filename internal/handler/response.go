package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// respondError writes a standard error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// respondSuccess writes a successful response with 200 OK
func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// respondFormState writes a rejected or failed form submission.
// Field errors mean the input was rejected; a bare message means the store failed.
func respondFormState(w http.ResponseWriter, state models.FormState) {
	status := http.StatusInternalServerError
	if len(state.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, state)
}

// respondRedirect sends the client to location with 303 See Other so that
// a form POST is followed by a GET
func respondRedirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}
