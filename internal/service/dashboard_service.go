package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/Raymond9734/invoices-dashboard/internal/cache"
	"github.com/Raymond9734/invoices-dashboard/internal/metrics"
	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/repository"
)

// latestInvoicesLimit is how many recent invoices the overview shows
const latestInvoicesLimit = 5

// DashboardService serves the read side of the dashboard
type DashboardService interface {
	Overview(ctx context.Context) (*Overview, error)
	FilteredInvoices(ctx context.Context, query models.QueryState) (*InvoiceListResult, error)
	InvoicePages(ctx context.Context, term string) (int, error)
	InvoiceByID(ctx context.Context, id string) (*models.InvoiceForm, error)
	Customers(ctx context.Context) ([]*models.CustomerField, error)
	FilteredCustomers(ctx context.Context, term string) ([]*FormattedCustomer, error)
}

type dashboardService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	revenueRepo  repository.RevenueRepository
	cache        cache.Cache
	logger       *slog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	revenueRepo repository.RevenueRepository,
	viewCache cache.Cache,
	logger *slog.Logger,
) DashboardService {
	return &dashboardService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		revenueRepo:  revenueRepo,
		cache:        viewCache,
		logger:       logger,
	}
}

// Overview loads the summary cards, revenue chart and latest invoices concurrently
func (s *dashboardService) Overview(ctx context.Context) (*Overview, error) {
	var (
		overview      Overview
		invoiceCount  int64
		customerCount int64
		totals        models.InvoiceTotals
		latest        []*models.InvoiceRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		invoiceCount, err = s.invoiceRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customerCount, err = s.customerRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.invoiceRepo.Totals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		overview.Revenue, err = s.revenueRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.invoiceRepo.Latest(gctx, latestInvoicesLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load dashboard overview", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}

	overview.Cards = CardData{
		NumberOfInvoices:     invoiceCount,
		NumberOfCustomers:    customerCount,
		TotalPaidInvoices:    FormatCurrency(totals.Paid),
		TotalPendingInvoices: FormatCurrency(totals.Pending),
	}

	overview.LatestInvoices = make([]*models.LatestInvoice, 0, len(latest))
	for _, row := range latest {
		overview.LatestInvoices = append(overview.LatestInvoices, &models.LatestInvoice{
			ID:       row.ID,
			Name:     row.Name,
			Email:    row.Email,
			ImageURL: row.ImageURL,
			Amount:   FormatCurrency(row.Amount),
		})
	}

	return &overview, nil
}

// FilteredInvoices returns one page of the listing, served from the view cache when possible
func (s *dashboardService) FilteredInvoices(ctx context.Context, query models.QueryState) (*InvoiceListResult, error) {
	if query.Page < 1 {
		query.Page = 1
	}

	key := listingKey("list", query.Term, query.Page)

	var cached InvoiceListResult
	generation, ok := s.lookup(ctx, key, &cached)
	if ok {
		return &cached, nil
	}

	totalCount, err := s.invoiceRepo.CountFiltered(ctx, query.Term)
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}

	invoices, err := s.invoiceRepo.ListFiltered(ctx, query.Term, query.Page, models.ItemsPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	result := &InvoiceListResult{
		Query:      query,
		Invoices:   invoices,
		Pagination: models.NewPaginationResult(query.Page, models.ItemsPerPage, totalCount),
	}

	s.store(ctx, generation, key, result)

	return result, nil
}

// InvoicePages returns how many listing pages match term
func (s *dashboardService) InvoicePages(ctx context.Context, term string) (int, error) {
	key := listingKey("pages", term, 0)

	var pages int
	generation, ok := s.lookup(ctx, key, &pages)
	if ok {
		return pages, nil
	}

	totalCount, err := s.invoiceRepo.CountFiltered(ctx, term)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	pages = models.TotalPages(totalCount, models.ItemsPerPage)
	s.store(ctx, generation, key, pages)

	return pages, nil
}

// InvoiceByID loads an invoice for the edit form with the amount in major units
func (s *dashboardService) InvoiceByID(ctx context.Context, id string) (*models.InvoiceForm, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.InvoiceForm{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     models.FromMinorUnits(invoice.Amount),
		Status:     invoice.Status,
	}, nil
}

// Customers lists customer choices for the invoice forms
func (s *dashboardService) Customers(ctx context.Context) ([]*models.CustomerField, error) {
	customers, err := s.customerRepo.ListFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// FilteredCustomers lists customers matching term with formatted totals
func (s *dashboardService) FilteredCustomers(ctx context.Context, term string) ([]*FormattedCustomer, error) {
	summaries, err := s.customerRepo.ListFiltered(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]*FormattedCustomer, 0, len(summaries))
	for _, c := range summaries {
		customers = append(customers, &FormattedCustomer{
			ID:            c.ID,
			Name:          c.Name,
			Email:         c.Email,
			ImageURL:      c.ImageURL,
			TotalInvoices: c.TotalInvoices,
			TotalPending:  FormatCurrency(c.TotalPending),
			TotalPaid:     FormatCurrency(c.TotalPaid),
		})
	}

	return customers, nil
}

// lookup reads the invoices view cache. Cache errors count as misses and
// return a negative generation so the result is not stored.
func (s *dashboardService) lookup(ctx context.Context, key string, dest any) (int64, bool) {
	generation, hit, err := s.cache.Get(ctx, cache.ViewInvoices, key, dest)
	if err != nil {
		s.logger.Warn("cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		generation, hit = -1, false
	}
	metrics.RecordCacheLookup(string(cache.ViewInvoices), hit)
	return generation, hit
}

func (s *dashboardService) store(ctx context.Context, generation int64, key string, value any) {
	if generation < 0 {
		return
	}
	if err := s.cache.Set(ctx, cache.ViewInvoices, generation, key, value); err != nil {
		s.logger.Warn("cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func listingKey(kind, term string, page int) string {
	return fmt.Sprintf("%s:%s:%d", kind, url.QueryEscape(term), page)
}
