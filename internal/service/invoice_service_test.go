package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Raymond9734/invoices-dashboard/internal/cache"
	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/validation"
)

const testInvoiceID = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"

// mockInvoiceRepository for testing
type mockInvoiceRepository struct {
	invoices map[string]*models.Invoice
	err      error
	calls    int
	nextID   string

	rows       []*models.InvoiceRow
	countCalls int
	listCalls  int

	// afterList runs once the page has been read, before ListFiltered returns
	afterList func()
}

func newMockInvoiceRepository() *mockInvoiceRepository {
	return &mockInvoiceRepository{
		invoices: make(map[string]*models.Invoice),
		nextID:   testInvoiceID,
	}
}

func (m *mockInvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	invoice.ID = m.nextID
	stored := *invoice
	m.invoices[invoice.ID] = &stored
	return nil
}

func (m *mockInvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, ok := m.invoices[id]
	if !ok {
		return nil, models.ErrNotFoundWithMsg("invoice not found")
	}
	return invoice, nil
}

func (m *mockInvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	existing, ok := m.invoices[invoice.ID]
	if !ok {
		return models.ErrNotFoundWithMsg("invoice not found")
	}
	existing.CustomerID = invoice.CustomerID
	existing.Amount = invoice.Amount
	existing.Status = invoice.Status
	return nil
}

func (m *mockInvoiceRepository) Delete(ctx context.Context, id string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.invoices[id]; !ok {
		return models.ErrNotFoundWithMsg("invoice not found")
	}
	delete(m.invoices, id)
	return nil
}

func (m *mockInvoiceRepository) ListFiltered(ctx context.Context, term string, page, pageSize int) ([]*models.InvoiceRow, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	start := models.CalculateOffset(page, pageSize)
	if start > len(m.rows) {
		start = len(m.rows)
	}
	end := start + pageSize
	if end > len(m.rows) {
		end = len(m.rows)
	}
	result := append([]*models.InvoiceRow(nil), m.rows[start:end]...)
	if m.afterList != nil {
		hook := m.afterList
		m.afterList = nil
		hook()
	}
	return result, nil
}

func (m *mockInvoiceRepository) CountFiltered(ctx context.Context, term string) (int64, error) {
	m.countCalls++
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.rows)), nil
}

func (m *mockInvoiceRepository) Latest(ctx context.Context, limit int) ([]*models.InvoiceRow, error) {
	if len(m.rows) < limit {
		return m.rows, nil
	}
	return m.rows[:limit], nil
}

func (m *mockInvoiceRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.rows)), nil
}

func (m *mockInvoiceRepository) Totals(ctx context.Context) (models.InvoiceTotals, error) {
	var totals models.InvoiceTotals
	for _, row := range m.rows {
		if row.Status == models.InvoiceStatusPaid {
			totals.Paid += row.Amount
		} else {
			totals.Pending += row.Amount
		}
	}
	return totals, nil
}

// spyCache records invalidations on top of a memory cache
type spyCache struct {
	cache.Cache
	invalidated []cache.View
	err         error
}

func newSpyCache() *spyCache {
	return &spyCache{Cache: cache.NewMemoryCache("test", time.Minute)}
}

func (c *spyCache) Invalidate(ctx context.Context, view cache.View) error {
	c.invalidated = append(c.invalidated, view)
	if c.err != nil {
		return c.err
	}
	return c.Cache.Invalidate(ctx, view)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestInvoiceService(repo *mockInvoiceRepository, c *spyCache) *invoiceService {
	return &invoiceService{
		invoiceRepo: repo,
		validator:   validation.NewInvoiceValidator(),
		cache:       c,
		now:         func() time.Time { return time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC) },
		logger:      testLogger(),
	}
}

func TestInvoiceService_Create_ValidationRejects(t *testing.T) {
	tests := []struct {
		name      string
		input     validation.InvoiceInput
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing customer",
			input:     validation.InvoiceInput{CustomerID: "", Amount: "10", Status: "pending"},
			wantField: validation.FieldCustomerID,
			wantMsg:   validation.MsgCustomerRequired,
		},
		{
			name:      "zero amount",
			input:     validation.InvoiceInput{CustomerID: "c1", Amount: "0", Status: "pending"},
			wantField: validation.FieldAmount,
			wantMsg:   validation.MsgAmountPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockInvoiceRepository()
			c := newSpyCache()
			svc := newTestInvoiceService(repo, c)

			result := svc.Create(context.Background(), tt.input)

			if result.Committed {
				t.Fatal("Committed = true, want false")
			}
			if repo.calls != 0 {
				t.Errorf("store calls = %d, want 0", repo.calls)
			}
			if len(c.invalidated) != 0 {
				t.Errorf("cache invalidated %v, want nothing", c.invalidated)
			}
			if result.RedirectTo != "" {
				t.Errorf("RedirectTo = %q, want empty", result.RedirectTo)
			}
			if result.State.Message != MsgCreateMissingFields {
				t.Errorf("Message = %q, want %q", result.State.Message, MsgCreateMissingFields)
			}
			msgs := result.State.Errors[tt.wantField]
			if len(msgs) != 1 || msgs[0] != tt.wantMsg {
				t.Errorf("Errors[%s] = %v, want [%q]", tt.wantField, msgs, tt.wantMsg)
			}
		})
	}
}

func TestInvoiceService_Create_Commits(t *testing.T) {
	repo := newMockInvoiceRepository()
	c := newSpyCache()
	svc := newTestInvoiceService(repo, c)

	result := svc.Create(context.Background(), validation.InvoiceInput{
		CustomerID: "c1",
		Amount:     "12.50",
		Status:     "paid",
	})

	if !result.Committed {
		t.Fatalf("Committed = false, state = %+v", result.State)
	}
	if result.RedirectTo != InvoicesPath {
		t.Errorf("RedirectTo = %q, want %q", result.RedirectTo, InvoicesPath)
	}
	if repo.calls != 1 {
		t.Errorf("store calls = %d, want 1", repo.calls)
	}

	stored := repo.invoices[testInvoiceID]
	if stored == nil {
		t.Fatal("invoice was not stored")
	}
	if stored.Amount != 1250 {
		t.Errorf("Amount = %d, want 1250 minor units", stored.Amount)
	}
	if got := stored.Date.Format(models.DateLayout); got != "2024-03-09" {
		t.Errorf("Date = %s, want 2024-03-09", got)
	}
	if stored.Date.Hour() != 0 || stored.Date.Minute() != 0 {
		t.Errorf("Date carries a time component: %v", stored.Date)
	}

	if len(c.invalidated) != 1 || c.invalidated[0] != cache.ViewInvoices {
		t.Errorf("invalidated = %v, want [invoices]", c.invalidated)
	}
}

func TestInvoiceService_Create_RoundsToNearestCent(t *testing.T) {
	repo := newMockInvoiceRepository()
	svc := newTestInvoiceService(repo, newSpyCache())

	result := svc.Create(context.Background(), validation.InvoiceInput{
		CustomerID: "c1",
		Amount:     "0.29",
		Status:     "pending",
	})

	if !result.Committed {
		t.Fatalf("Committed = false, state = %+v", result.State)
	}
	if got := repo.invoices[testInvoiceID].Amount; got != 29 {
		t.Errorf("Amount = %d, want 29 (0.29*100 must round, not truncate)", got)
	}
}

func TestInvoiceService_Create_StoreFailure(t *testing.T) {
	repo := newMockInvoiceRepository()
	repo.err = errors.New("pq: connection refused")
	c := newSpyCache()
	svc := newTestInvoiceService(repo, c)

	result := svc.Create(context.Background(), validation.InvoiceInput{
		CustomerID: "c1",
		Amount:     "12.50",
		Status:     "paid",
	})

	if result.Committed {
		t.Fatal("Committed = true, want false")
	}
	if result.State.Message != "Database Error: Failed to Create Invoice." {
		t.Errorf("Message = %q", result.State.Message)
	}
	if len(result.State.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.State.Errors)
	}
	if len(repo.invoices) != 0 {
		t.Errorf("stored %d invoices, want none", len(repo.invoices))
	}
	if len(c.invalidated) != 0 {
		t.Errorf("cache invalidated after failure: %v", c.invalidated)
	}
	if result.RedirectTo != "" {
		t.Errorf("RedirectTo = %q, want empty", result.RedirectTo)
	}
}

func TestInvoiceService_Create_InvalidationFailureStillCommits(t *testing.T) {
	repo := newMockInvoiceRepository()
	c := newSpyCache()
	c.err = errors.New("redis down")
	svc := newTestInvoiceService(repo, c)

	result := svc.Create(context.Background(), validation.InvoiceInput{
		CustomerID: "c1",
		Amount:     "1",
		Status:     "paid",
	})

	if !result.Committed || result.RedirectTo != InvoicesPath {
		t.Errorf("result = %+v, want committed with redirect", result)
	}
}

func TestInvoiceService_Update(t *testing.T) {
	original := time.Date(2022, time.December, 6, 0, 0, 0, 0, time.UTC)

	t.Run("keeps date and redirects", func(t *testing.T) {
		repo := newMockInvoiceRepository()
		repo.invoices[testInvoiceID] = &models.Invoice{
			ID: testInvoiceID, CustomerID: "c1", Amount: 100, Status: "pending", Date: original,
		}
		c := newSpyCache()
		svc := newTestInvoiceService(repo, c)

		result := svc.Update(context.Background(), testInvoiceID, validation.InvoiceInput{
			CustomerID: "c2",
			Amount:     "99.99",
			Status:     "paid",
		})

		if !result.Committed || result.RedirectTo != InvoicesPath {
			t.Fatalf("result = %+v, want committed with redirect", result)
		}
		stored := repo.invoices[testInvoiceID]
		if stored.Amount != 9999 || stored.CustomerID != "c2" || stored.Status != "paid" {
			t.Errorf("stored = %+v, want c2/9999/paid", stored)
		}
		if !stored.Date.Equal(original) {
			t.Errorf("Date = %v, want unchanged %v", stored.Date, original)
		}
		if len(c.invalidated) != 1 {
			t.Errorf("invalidated = %v, want one invalidation", c.invalidated)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		repo := newMockInvoiceRepository()
		svc := newTestInvoiceService(repo, newSpyCache())

		result := svc.Update(context.Background(), testInvoiceID, validation.InvoiceInput{
			CustomerID: "c2",
			Amount:     "abc",
			Status:     "paid",
		})

		if result.Committed || repo.calls != 0 {
			t.Fatalf("result = %+v, calls = %d, want rejected with no store call", result, repo.calls)
		}
		if result.State.Message != MsgUpdateMissingFields {
			t.Errorf("Message = %q, want %q", result.State.Message, MsgUpdateMissingFields)
		}
		if !result.State.Errors.Has(validation.FieldAmount) {
			t.Errorf("Errors = %v, want amount error", result.State.Errors)
		}
	})

	t.Run("missing invoice", func(t *testing.T) {
		repo := newMockInvoiceRepository()
		svc := newTestInvoiceService(repo, newSpyCache())

		result := svc.Update(context.Background(), testInvoiceID, validation.InvoiceInput{
			CustomerID: "c2",
			Amount:     "1",
			Status:     "paid",
		})

		if result.Committed || result.State.Message != MsgUpdateFailed {
			t.Errorf("result = %+v, want %q", result, MsgUpdateFailed)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		repo := newMockInvoiceRepository()
		svc := newTestInvoiceService(repo, newSpyCache())

		result := svc.Update(context.Background(), "not-a-uuid", validation.InvoiceInput{
			CustomerID: "c2",
			Amount:     "1",
			Status:     "paid",
		})

		if result.Committed || result.State.Message != MsgUpdateFailed || repo.calls != 0 {
			t.Errorf("result = %+v, calls = %d", result, repo.calls)
		}
	})
}

func TestInvoiceService_Delete(t *testing.T) {
	t.Run("invalidates without redirect", func(t *testing.T) {
		repo := newMockInvoiceRepository()
		repo.invoices[testInvoiceID] = &models.Invoice{ID: testInvoiceID}
		c := newSpyCache()
		svc := newTestInvoiceService(repo, c)

		result := svc.Delete(context.Background(), testInvoiceID)

		if !result.Committed {
			t.Fatalf("Committed = false, state = %+v", result.State)
		}
		if result.RedirectTo != "" {
			t.Errorf("RedirectTo = %q, want no navigation", result.RedirectTo)
		}
		if result.State.Message != MsgDeleted {
			t.Errorf("Message = %q, want %q", result.State.Message, MsgDeleted)
		}
		if len(c.invalidated) != 1 || c.invalidated[0] != cache.ViewInvoices {
			t.Errorf("invalidated = %v, want [invoices]", c.invalidated)
		}
		if _, ok := repo.invoices[testInvoiceID]; ok {
			t.Error("invoice still stored")
		}
	})

	t.Run("store failure", func(t *testing.T) {
		repo := newMockInvoiceRepository()
		repo.err = errors.New("pq: deadlock detected")
		c := newSpyCache()
		svc := newTestInvoiceService(repo, c)

		result := svc.Delete(context.Background(), testInvoiceID)

		if result.Committed || result.State.Message != "Database Error: Failed to Delete Invoice." {
			t.Errorf("result = %+v", result)
		}
		if len(c.invalidated) != 0 {
			t.Errorf("cache invalidated after failure: %v", c.invalidated)
		}
	})
}
