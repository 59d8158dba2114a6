package models

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is across layers
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("authentication required")
)

// Error codes carried by AppError and returned in the JSON error envelope
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is an error whose Message is safe to show to API clients
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput reports a request the API could not decode
func ErrInvalidInput(message string) error {
	return &AppError{Code: CodeInvalidInput, Message: message}
}

// ErrNotFoundWithMsg reports a missing invoice, customer or user
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrUnauthorizedWithMsg reports a missing or rejected session
func ErrUnauthorizedWithMsg(message string) error {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Err:     ErrUnauthorized,
	}
}
