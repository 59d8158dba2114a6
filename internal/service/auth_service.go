package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Raymond9734/invoices-dashboard/internal/auth"
	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/repository"
	"github.com/Raymond9734/invoices-dashboard/internal/validation"
)

// Login failure messages
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgLoginFailed        = "Something went wrong."
)

// AuthService checks login credentials
type AuthService interface {
	Login(ctx context.Context, email, password string) LoginResult
}

type authService struct {
	userRepo  repository.UserRepository
	validator *validation.CredentialsValidator
	logger    *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	validator *validation.CredentialsValidator,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		validator: validator,
		logger:    logger,
	}
}

// Login returns the user on success. An unknown email and a wrong password
// produce the same message.
func (s *authService) Login(ctx context.Context, email, password string) LoginResult {
	result := s.validator.Validate(email, password)
	if !result.OK() {
		return LoginResult{State: models.FormState{Errors: result.Errors, Message: MsgInvalidCredentials}}
	}

	user, err := s.userRepo.GetByEmail(ctx, result.Credentials.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("login rejected", slog.String("reason", "unknown email"))
			return LoginResult{State: models.FormState{Message: MsgInvalidCredentials}}
		}
		s.logger.Error("failed to load user", slog.String("error", err.Error()))
		return LoginResult{State: models.FormState{Message: MsgLoginFailed}}
	}

	if !auth.CheckPassword(user.Password, result.Credentials.Password) {
		s.logger.Info("login rejected",
			slog.String("user_id", user.ID),
			slog.String("reason", "password mismatch"),
		)
		return LoginResult{State: models.FormState{Message: MsgInvalidCredentials}}
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))

	return LoginResult{User: user}
}
