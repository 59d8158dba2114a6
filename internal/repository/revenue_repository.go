package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

// RevenueRepository defines the interface for revenue data access
type RevenueRepository interface {
	List(ctx context.Context) ([]*models.Revenue, error)
}

type revenueRepository struct {
	db *sql.DB
}

// NewRevenueRepository creates a new revenue repository
func NewRevenueRepository(db *sql.DB) RevenueRepository {
	return &revenueRepository{db: db}
}

// List returns revenue for every recorded month
func (r *revenueRepository) List(ctx context.Context) ([]*models.Revenue, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT month, revenue FROM revenue`)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue: %w", err)
	}
	defer rows.Close()

	revenue := []*models.Revenue{}
	for rows.Next() {
		rev := &models.Revenue{}
		if err := rows.Scan(&rev.Month, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue: %w", err)
		}
		revenue = append(revenue, rev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue: %w", err)
	}

	return revenue, nil
}
