package handler

import (
	"log/slog"
	"net/http"

	"github.com/Raymond9734/invoices-dashboard/internal/auth"
	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/service"
	"github.com/Raymond9734/invoices-dashboard/internal/validation"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.SessionManager
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handleError(w, models.ErrInvalidInput("Invalid form encoding"), h.logger)
		return
	}

	result := h.authService.Login(r.Context(),
		r.PostForm.Get(validation.FieldEmail),
		r.PostForm.Get(validation.FieldPassword),
	)
	if result.User == nil {
		respondLoginFailure(w, result.State)
		return
	}

	token, expiresAt, err := h.sessions.Issue(result.User)
	if err != nil {
		h.logger.Error("failed to issue session",
			slog.String("user_id", result.User.ID),
			slog.String("error", err.Error()),
		)
		respondJSON(w, http.StatusInternalServerError, models.FormState{Message: service.MsgLoginFailed})
		return
	}

	h.sessions.SetCookie(w, token, expiresAt)
	respondRedirect(w, r, auth.DashboardPath)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	respondRedirect(w, r, auth.LoginPath)
}

func respondLoginFailure(w http.ResponseWriter, state models.FormState) {
	status := http.StatusUnauthorized
	switch {
	case len(state.Errors) > 0:
		status = http.StatusUnprocessableEntity
	case state.Message == service.MsgLoginFailed:
		status = http.StatusInternalServerError
	}
	respondJSON(w, status, state)
}
