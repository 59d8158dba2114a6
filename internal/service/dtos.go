package service

import "github.com/Raymond9734/invoices-dashboard/internal/models"

// InvoicesPath is where successful invoice create and update send the caller
const InvoicesPath = "/dashboard/invoices"

// MutationResult is the outcome of one invoice form action.
// RedirectTo is set only when the caller should navigate after a commit.
type MutationResult struct {
	Committed  bool
	State      models.FormState
	RedirectTo string
}

// InvoiceListResult is one page of the filtered invoices listing
type InvoiceListResult struct {
	Query      models.QueryState       `json:"query"`
	Invoices   []*models.InvoiceRow    `json:"invoices"`
	Pagination models.PaginationResult `json:"pagination"`
}

// CardData holds the dashboard summary figures, already formatted
type CardData struct {
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	NumberOfCustomers    int64  `json:"number_of_customers"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}

// Overview is everything the dashboard landing page shows
type Overview struct {
	Cards          CardData                `json:"cards"`
	Revenue        []*models.Revenue       `json:"revenue"`
	LatestInvoices []*models.LatestInvoice `json:"latest_invoices"`
}

// FormattedCustomer is a customer summary with display-formatted totals
type FormattedCustomer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

// LoginResult is the outcome of a login attempt
type LoginResult struct {
	User  *models.User
	State models.FormState
}
