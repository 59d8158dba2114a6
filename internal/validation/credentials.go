package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

// Login form field names and messages
const (
	FieldEmail    = "email"
	FieldPassword = "password"

	MsgEmailInvalid     = "Please enter a valid email address."
	MsgPasswordTooShort = "Password must be at least 6 characters."
)

// Credentials is a login attempt
type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"min=6"`
}

// CredentialsResult is either parsed credentials or per-field messages
type CredentialsResult struct {
	Credentials Credentials
	Errors      models.FieldErrors
}

// OK reports whether validation passed
func (r CredentialsResult) OK() bool {
	return len(r.Errors) == 0
}

var credentialMessages = map[string]string{
	FieldEmail:    MsgEmailInvalid,
	FieldPassword: MsgPasswordTooShort,
}

// CredentialsValidator validates login forms
type CredentialsValidator struct {
	validate *validator.Validate
}

// NewCredentialsValidator creates a new credentials validator
func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{validate: newValidate()}
}

// Validate checks email format and minimum password length
func (v *CredentialsValidator) Validate(email, password string) CredentialsResult {
	creds := Credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
	}

	err := v.validate.Struct(creds)
	if err == nil {
		return CredentialsResult{Credentials: creds}
	}

	errs := models.FieldErrors{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs.Add(fe.Field(), credentialMessages[fe.Field()])
		}
	}
	if len(errs) == 0 {
		errs.Add(FieldEmail, MsgEmailInvalid)
	}

	return CredentialsResult{Errors: errs}
}
