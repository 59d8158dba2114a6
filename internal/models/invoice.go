package models

import "time"

// Invoice status constants
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// DateLayout is the ISO 8601 date-only layout used for invoice dates
const DateLayout = "2006-01-02"

// Invoice is a persisted invoice row. Amount is stored in minor units (cents).
type Invoice struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	Date       time.Time `json:"date"`
}

// InvoiceDraft is a validated invoice ready for mutation. Amount is in major units.
type InvoiceDraft struct {
	CustomerID string
	Amount     float64
	Status     string
}

// InvoiceForm carries an invoice for the edit form, with the amount in major units
type InvoiceForm struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// InvoiceRow is an invoice joined with its customer, as shown in the listing table
type InvoiceRow struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ImageURL   string    `json:"image_url"`
	Date       time.Time `json:"date"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
}

// LatestInvoice is a recent invoice with its amount already formatted for display
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

// InvoiceTotals aggregates invoice amounts by status, in minor units
type InvoiceTotals struct {
	Paid    int64
	Pending int64
}

// IsValidInvoiceStatus checks if the invoice status is valid
func IsValidInvoiceStatus(status string) bool {
	switch status {
	case InvoiceStatusPending, InvoiceStatusPaid:
		return true
	default:
		return false
	}
}
