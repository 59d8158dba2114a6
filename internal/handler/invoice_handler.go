package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/service"
	"github.com/Raymond9734/invoices-dashboard/internal/validation"
)

// InvoiceHandler handles the invoice form actions
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *slog.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// CreateInvoice handles POST /dashboard/invoices
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	input, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	result := h.invoiceService.Create(r.Context(), input)
	h.respondMutation(w, r, result)
}

// UpdateInvoice handles POST /dashboard/invoices/{id}
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	input, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	result := h.invoiceService.Update(r.Context(), chi.URLParam(r, "id"), input)
	h.respondMutation(w, r, result)
}

// DeleteInvoice handles DELETE /dashboard/invoices/{id} and POST /dashboard/invoices/{id}/delete
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	result := h.invoiceService.Delete(r.Context(), chi.URLParam(r, "id"))
	h.respondMutation(w, r, result)
}

func (h *InvoiceHandler) respondMutation(w http.ResponseWriter, r *http.Request, result service.MutationResult) {
	switch {
	case result.Committed && result.RedirectTo != "":
		respondRedirect(w, r, result.RedirectTo)
	case result.Committed:
		respondSuccess(w, result.State)
	default:
		respondFormState(w, result.State)
	}
}

func (h *InvoiceHandler) parseForm(w http.ResponseWriter, r *http.Request) (validation.InvoiceInput, bool) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("malformed invoice form", slog.String("error", err.Error()))
		handleError(w, models.ErrInvalidInput("Invalid form encoding"), h.logger)
		return validation.InvoiceInput{}, false
	}

	return validation.InvoiceInput{
		CustomerID: r.PostForm.Get(validation.FieldCustomerID),
		Amount:     r.PostForm.Get(validation.FieldAmount),
		Status:     r.PostForm.Get(validation.FieldStatus),
	}, true
}
