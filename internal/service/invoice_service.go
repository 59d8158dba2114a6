package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Raymond9734/invoices-dashboard/internal/cache"
	"github.com/Raymond9734/invoices-dashboard/internal/metrics"
	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/repository"
	"github.com/Raymond9734/invoices-dashboard/internal/validation"
)

// Messages reported by the invoice form actions
const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	MsgCreateFailed        = "Database Error: Failed to Create Invoice."
	MsgUpdateFailed        = "Database Error: Failed to Update Invoice."
	MsgDeleteFailed        = "Database Error: Failed to Delete Invoice."
	MsgDeleted             = "Deleted Invoice."
)

// InvoiceService runs the validate → mutate → invalidate pipeline for invoice forms.
// None of its methods return errors: validation and store failures are reported
// in the result's FormState, and store details never leave the service.
type InvoiceService interface {
	Create(ctx context.Context, input validation.InvoiceInput) MutationResult
	Update(ctx context.Context, id string, input validation.InvoiceInput) MutationResult
	Delete(ctx context.Context, id string) MutationResult
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	validator   *validation.InvoiceValidator
	cache       cache.Cache
	now         func() time.Time
	logger      *slog.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	validator *validation.InvoiceValidator,
	viewCache cache.Cache,
	logger *slog.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		validator:   validator,
		cache:       viewCache,
		now:         time.Now,
		logger:      logger,
	}
}

// Create validates the form and inserts a new invoice dated today
func (s *invoiceService) Create(ctx context.Context, input validation.InvoiceInput) MutationResult {
	result := s.validator.Validate(input)
	if !result.OK() {
		metrics.RecordMutation("create", metrics.OutcomeRejected)
		return MutationResult{
			State: models.FormState{Errors: result.Errors, Message: MsgCreateMissingFields},
		}
	}

	invoice := &models.Invoice{
		CustomerID: result.Draft.CustomerID,
		Amount:     models.ToMinorUnits(result.Draft.Amount),
		Status:     result.Draft.Status,
		Date:       today(s.now()),
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		s.logger.Error("failed to create invoice",
			slog.String("customer_id", invoice.CustomerID),
			slog.String("error", err.Error()),
		)
		metrics.RecordMutation("create", metrics.OutcomeFailed)
		return MutationResult{State: models.FormState{Message: MsgCreateFailed}}
	}

	s.logger.Info("invoice created",
		slog.String("invoice_id", invoice.ID),
		slog.String("customer_id", invoice.CustomerID),
		slog.Int64("amount", invoice.Amount),
		slog.String("status", invoice.Status),
	)
	metrics.RecordMutation("create", metrics.OutcomeCommitted)

	s.invalidateListing(ctx)

	return MutationResult{Committed: true, RedirectTo: InvoicesPath}
}

// Update validates the form and rewrites customer, amount and status of invoice id
func (s *invoiceService) Update(ctx context.Context, id string, input validation.InvoiceInput) MutationResult {
	result := s.validator.Validate(input)
	if !result.OK() {
		metrics.RecordMutation("update", metrics.OutcomeRejected)
		return MutationResult{
			State: models.FormState{Errors: result.Errors, Message: MsgUpdateMissingFields},
		}
	}

	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("rejected invoice update with malformed id",
			slog.String("invoice_id", id),
		)
		metrics.RecordMutation("update", metrics.OutcomeFailed)
		return MutationResult{State: models.FormState{Message: MsgUpdateFailed}}
	}

	invoice := &models.Invoice{
		ID:         id,
		CustomerID: result.Draft.CustomerID,
		Amount:     models.ToMinorUnits(result.Draft.Amount),
		Status:     result.Draft.Status,
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("failed to update invoice",
			slog.String("invoice_id", id),
			slog.String("error", err.Error()),
		)
		metrics.RecordMutation("update", metrics.OutcomeFailed)
		return MutationResult{State: models.FormState{Message: MsgUpdateFailed}}
	}

	s.logger.Info("invoice updated",
		slog.String("invoice_id", id),
		slog.Int64("amount", invoice.Amount),
		slog.String("status", invoice.Status),
	)
	metrics.RecordMutation("update", metrics.OutcomeCommitted)

	s.invalidateListing(ctx)

	return MutationResult{Committed: true, RedirectTo: InvoicesPath}
}

// Delete removes invoice id. It invalidates the listing but never redirects.
func (s *invoiceService) Delete(ctx context.Context, id string) MutationResult {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("rejected invoice delete with malformed id",
			slog.String("invoice_id", id),
		)
		metrics.RecordMutation("delete", metrics.OutcomeFailed)
		return MutationResult{State: models.FormState{Message: MsgDeleteFailed}}
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete invoice",
			slog.String("invoice_id", id),
			slog.String("error", err.Error()),
		)
		metrics.RecordMutation("delete", metrics.OutcomeFailed)
		return MutationResult{State: models.FormState{Message: MsgDeleteFailed}}
	}

	s.logger.Info("invoice deleted",
		slog.String("invoice_id", id),
	)
	metrics.RecordMutation("delete", metrics.OutcomeCommitted)

	s.invalidateListing(ctx)

	return MutationResult{Committed: true, State: models.FormState{Message: MsgDeleted}}
}

// invalidateListing drops the cached invoices listing. The write has already
// committed, so a cache failure is logged and does not fail the action.
func (s *invoiceService) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.ViewInvoices); err != nil {
		s.logger.Warn("failed to invalidate invoices listing",
			slog.String("error", err.Error()),
		)
	}
}

// today truncates t to its UTC calendar date
func today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
