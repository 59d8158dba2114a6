package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id string) error
	ListFiltered(ctx context.Context, term string, page, pageSize int) ([]*models.InvoiceRow, error)
	CountFiltered(ctx context.Context, term string) (int64, error)
	Latest(ctx context.Context, limit int) ([]*models.InvoiceRow, error)
	Count(ctx context.Context) (int64, error)
	Totals(ctx context.Context) (models.InvoiceTotals, error)
}

// invoiceRepository implements InvoiceRepository using PostgreSQL
type invoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// filterClause matches a search term against the joined invoice and customer columns
const filterClause = `
		WHERE customers.name ILIKE $1
			OR customers.email ILIKE $1
			OR invoices.amount::text ILIKE $1
			OR invoices.date::text ILIKE $1
			OR invoices.status ILIKE $1`

// Create inserts a new invoice and fills in its generated ID
func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(
		ctx,
		query,
		invoice.CustomerID,
		invoice.Amount,
		invoice.Status,
		invoice.Date.Format(models.DateLayout),
	).Scan(&invoice.ID)

	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return nil
}

// GetByID retrieves an invoice by ID
func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	query := `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		WHERE id = $1`

	invoice := &models.Invoice{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.CustomerID,
		&invoice.Amount,
		&invoice.Status,
		&invoice.Date,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("invoice with ID %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}

// Update changes customer, amount and status of an existing invoice. The date is kept.
func (r *invoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(
		ctx,
		query,
		invoice.CustomerID,
		invoice.Amount,
		invoice.Status,
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("invoice with ID %s not found", invoice.ID))
	}

	return nil
}

// Delete removes an invoice
func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invoices WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("invoice with ID %s not found", id))
	}

	return nil
}

// ListFiltered returns one page of invoices matching term, newest first
func (r *invoiceRepository) ListFiltered(ctx context.Context, term string, page, pageSize int) ([]*models.InvoiceRow, error) {
	query := `
		SELECT invoices.id, invoices.customer_id, customers.name, customers.email, customers.image_url,
			invoices.date, invoices.amount, invoices.status
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id` + filterClause + `
		ORDER BY invoices.date DESC, invoices.id DESC
		LIMIT $2 OFFSET $3`

	offset := models.CalculateOffset(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, likePattern(term), pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := scanInvoiceRows(rows)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

// CountFiltered returns how many invoices match term
func (r *invoiceRepository) CountFiltered(ctx context.Context, term string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id` + filterClause

	var count int64
	if err := r.db.QueryRowContext(ctx, query, likePattern(term)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	return count, nil
}

// Latest returns the most recent invoices with their customers
func (r *invoiceRepository) Latest(ctx context.Context, limit int) ([]*models.InvoiceRow, error) {
	query := `
		SELECT invoices.id, invoices.customer_id, customers.name, customers.email, customers.image_url,
			invoices.date, invoices.amount, invoices.status
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest invoices: %w", err)
	}
	defer rows.Close()

	return scanInvoiceRows(rows)
}

// Count returns the total number of invoices
func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

// Totals sums invoice amounts by status
func (r *invoiceRepository) Totals(ctx context.Context) (models.InvoiceTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS paid,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending
		FROM invoices`

	var totals models.InvoiceTotals
	if err := r.db.QueryRowContext(ctx, query).Scan(&totals.Paid, &totals.Pending); err != nil {
		return models.InvoiceTotals{}, fmt.Errorf("failed to get invoice totals: %w", err)
	}

	return totals, nil
}

func scanInvoiceRows(rows *sql.Rows) ([]*models.InvoiceRow, error) {
	invoices := []*models.InvoiceRow{}
	for rows.Next() {
		invoice := &models.InvoiceRow{}
		err := rows.Scan(
			&invoice.ID,
			&invoice.CustomerID,
			&invoice.Name,
			&invoice.Email,
			&invoice.ImageURL,
			&invoice.Date,
			&invoice.Amount,
			&invoice.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

// likePattern wraps term for a substring ILIKE match. An empty term matches everything.
func likePattern(term string) string {
	return "%" + term + "%"
}
