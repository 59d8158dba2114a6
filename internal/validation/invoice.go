package validation

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

// Invoice form field names
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Invoice validation messages
const (
	MsgCustomerRequired = "Please select a customer."
	MsgAmountPositive   = "Please enter an amount greater than $0."
	MsgAmountNotNumber  = "Amount must be a number."
	MsgAmountTooLarge   = "Amount is too large."
	MsgStatusInvalid    = "Please select an invoice status."
)

// InvoiceInput is the raw, untrusted invoice form submission
type InvoiceInput struct {
	CustomerID string
	Amount     string
	Status     string
}

// InvoiceResult is either a validated draft or the per-field messages
type InvoiceResult struct {
	Draft  models.InvoiceDraft
	Errors models.FieldErrors
}

// OK reports whether validation passed
func (r InvoiceResult) OK() bool {
	return len(r.Errors) == 0
}

// invoiceSchema is the coerced form checked by the struct validator
type invoiceSchema struct {
	CustomerID string  `form:"customerId" validate:"required"`
	Amount     float64 `form:"amount" validate:"gt=0"`
	Status     string  `form:"status" validate:"oneof=pending paid"`
}

var invoiceMessages = map[string]string{
	FieldCustomerID: MsgCustomerRequired,
	FieldAmount:     MsgAmountPositive,
	FieldStatus:     MsgStatusInvalid,
}

// InvoiceValidator validates invoice forms for create and update
type InvoiceValidator struct {
	validate *validator.Validate
}

// NewInvoiceValidator creates a new invoice validator
func NewInvoiceValidator() *InvoiceValidator {
	return &InvoiceValidator{validate: newValidate()}
}

// Validate coerces and checks every field. Any failure rejects the whole input.
func (v *InvoiceValidator) Validate(input InvoiceInput) InvoiceResult {
	errs := models.FieldErrors{}

	amount, amountErr := coerceAmount(input.Amount)
	if amountErr != "" {
		errs.Add(FieldAmount, amountErr)
	}

	schema := invoiceSchema{
		CustomerID: strings.TrimSpace(input.CustomerID),
		Amount:     amount,
		Status:     strings.TrimSpace(input.Status),
	}

	if err := v.validate.Struct(schema); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			// Only reachable if the schema itself is malformed
			errs.Add(FieldAmount, MsgAmountNotNumber)
			return InvoiceResult{Errors: errs}
		}
		for _, fe := range fieldErrs {
			field := fe.Field()
			if field == FieldAmount && amountErr != "" {
				continue
			}
			errs.Add(field, invoiceMessages[field])
		}
	}

	if amountErr == "" && !errs.Has(FieldAmount) {
		// Range check on the float first; int64 conversion of a huge value is undefined.
		switch {
		case math.Round(amount*100) > models.MaxMinorUnits:
			errs.Add(FieldAmount, MsgAmountTooLarge)
		case models.ToMinorUnits(amount) < 1:
			errs.Add(FieldAmount, MsgAmountPositive)
		}
	}

	if len(errs) > 0 {
		return InvoiceResult{Errors: errs}
	}

	return InvoiceResult{
		Draft: models.InvoiceDraft{
			CustomerID: schema.CustomerID,
			Amount:     schema.Amount,
			Status:     schema.Status,
		},
	}
}

// coerceAmount turns the raw amount into a number. An empty string coerces
// to 0 and is then rejected by the positivity rule rather than as non-numeric.
func coerceAmount(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ""
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, MsgAmountTooLarge
		}
		return 0, MsgAmountNotNumber
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, MsgAmountNotNumber
	}

	return amount, ""
}
