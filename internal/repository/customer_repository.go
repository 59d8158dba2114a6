package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	ListFields(ctx context.Context) ([]*models.CustomerField, error)
	ListFiltered(ctx context.Context, term string) ([]*models.CustomerSummary, error)
	Count(ctx context.Context) (int64, error)
}

// customerRepository implements CustomerRepository using PostgreSQL
type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// ListFields returns every customer's id and name, ordered by name
func (r *customerRepository) ListFields(ctx context.Context) ([]*models.CustomerField, error) {
	query := `
		SELECT id, name
		FROM customers
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []*models.CustomerField{}
	for rows.Next() {
		customer := &models.CustomerField{}
		if err := rows.Scan(&customer.ID, &customer.Name); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// ListFiltered returns customers matching term by name or email, with invoice totals
func (r *customerRepository) ListFiltered(ctx context.Context, term string) ([]*models.CustomerSummary, error) {
	query := `
		SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE customers.name ILIKE $1 OR customers.email ILIKE $1
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`

	rows, err := r.db.QueryContext(ctx, query, likePattern(term))
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []*models.CustomerSummary{}
	for rows.Next() {
		customer := &models.CustomerSummary{}
		err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.ImageURL,
			&customer.TotalInvoices,
			&customer.TotalPending,
			&customer.TotalPaid,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Count returns the total number of customers
func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
