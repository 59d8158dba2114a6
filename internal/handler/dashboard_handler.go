package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/search"
	"github.com/Raymond9734/invoices-dashboard/internal/service"
)

// DashboardHandler serves the read-only dashboard views
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// PageLink is one entry of the listing pagination bar. Gaps have no URL.
type PageLink struct {
	Label   string `json:"label"`
	URL     string `json:"url,omitempty"`
	Current bool   `json:"current,omitempty"`
}

// InvoiceListResponse is the listing plus ready-made pagination links
type InvoiceListResponse struct {
	*service.InvoiceListResult
	Links []PageLink `json:"links"`
}

// InvoiceFormResponse carries what the create and edit forms render
type InvoiceFormResponse struct {
	Invoice   *models.InvoiceForm     `json:"invoice,omitempty"`
	Customers []*models.CustomerField `json:"customers"`
}

// Overview handles GET /dashboard
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.Overview(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, overview)
}

// ListInvoices handles GET /dashboard/invoices?query=&page=
func (h *DashboardHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	result, err := h.dashboardService.FilteredInvoices(r.Context(), models.ParseQueryState(params))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, InvoiceListResponse{
		InvoiceListResult: result,
		Links:             pageLinks(r.URL.Path, params, result.Pagination),
	})
}

// CreateForm handles GET /dashboard/invoices/create
func (h *DashboardHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	customers, err := h.dashboardService.Customers(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, InvoiceFormResponse{Customers: customers})
}

// GetInvoice handles GET /dashboard/invoices/{id}
func (h *DashboardHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.loadInvoice(w, r)
	if !ok {
		return
	}

	respondSuccess(w, invoice)
}

// EditForm handles GET /dashboard/invoices/{id}/edit
func (h *DashboardHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.loadInvoice(w, r)
	if !ok {
		return
	}

	customers, err := h.dashboardService.Customers(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, InvoiceFormResponse{Invoice: invoice, Customers: customers})
}

// ListCustomers handles GET /dashboard/customers?query=
func (h *DashboardHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get(models.QueryParam))

	customers, err := h.dashboardService.FilteredCustomers(r.Context(), term)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, customers)
}

// loadInvoice resolves the {id} param. Ids that are not uuids cannot exist.
func (h *DashboardHandler) loadInvoice(w http.ResponseWriter, r *http.Request) (*models.InvoiceForm, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		handleError(w, models.ErrNotFoundWithMsg("Invoice not found"), h.logger)
		return nil, false
	}

	invoice, err := h.dashboardService.InvoiceByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return nil, false
	}

	return invoice, true
}

func pageLinks(path string, params url.Values, p models.PaginationResult) []PageLink {
	links := make([]PageLink, 0, len(p.Pages))
	for _, label := range p.Pages {
		if label == models.PaginationEllipsis {
			links = append(links, PageLink{Label: label})
			continue
		}
		page, err := strconv.Atoi(label)
		if err != nil {
			continue
		}
		links = append(links, PageLink{
			Label:   label,
			URL:     search.CreatePageURL(path, params, page),
			Current: page == p.Page,
		})
	}
	return links
}
