package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

// PasswordHasher turns a plaintext password into the stored hash
type PasswordHasher func(password string) (string, error)

// SeedData is the placeholder content loaded by the seed command
type SeedData struct {
	Users     []models.User
	Customers []models.Customer
	Invoices  []SeedInvoice
	Revenue   []models.Revenue
}

// SeedInvoice is an invoice row with its date kept as an ISO date string
type SeedInvoice struct {
	CustomerID string
	Amount     int64
	Status     string
	Date       string
}

// ID derives a stable id from the invoice contents so reseeding finds the same rows
func (i SeedInvoice) ID() string {
	name := fmt.Sprintf("%s|%d|%s|%s", i.CustomerID, i.Amount, i.Status, i.Date)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// Seed inserts data in a single transaction. Existing rows are left alone,
// so running it twice is harmless.
func Seed(ctx context.Context, db *sql.DB, data SeedData, hash PasswordHasher, logger *slog.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after Commit
	}()

	for _, user := range data.Users {
		hashed, err := hash(user.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", user.Email, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (id, name, email, password)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			user.ID, user.Name, user.Email, hashed,
		)
		if err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}

	for _, customer := range data.Customers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO customers (id, name, email, image_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			customer.ID, customer.Name, customer.Email, customer.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("failed to seed customer: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, invoice := range data.Invoices {
		if _, err := stmt.ExecContext(ctx, invoice.ID(), invoice.CustomerID, invoice.Amount, invoice.Status, invoice.Date); err != nil {
			return fmt.Errorf("failed to seed invoice: %w", err)
		}
	}

	for _, rev := range data.Revenue {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO revenue (month, revenue)
			VALUES ($1, $2)
			ON CONFLICT (month) DO NOTHING`,
			rev.Month, rev.Revenue,
		)
		if err != nil {
			return fmt.Errorf("failed to seed revenue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("database seeded",
		slog.Int("users", len(data.Users)),
		slog.Int("customers", len(data.Customers)),
		slog.Int("invoices", len(data.Invoices)),
		slog.Int("revenue_months", len(data.Revenue)),
	)

	return nil
}

// PlaceholderData returns the demo dataset used for local development
func PlaceholderData() SeedData {
	const (
		evilRabbit   = "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"
		delba        = "3958dc9e-712f-4377-85e9-fec4b6a6442a"
		lee          = "3958dc9e-742f-4377-85e9-fec4b6a6442a"
		michael      = "76d65c26-f784-44a2-ac19-586678f7c2f2"
		amy          = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"
		balazs       = "13d07535-c59e-4157-a011-f8d2ef4e0cbb"
		demoUserID   = "410544b2-4001-4271-9855-fec4b6a6442a"
		demoPassword = "123456"
	)

	return SeedData{
		Users: []models.User{
			{ID: demoUserID, Name: "User", Email: "user@nextmail.com", Password: demoPassword},
		},
		Customers: []models.Customer{
			{ID: evilRabbit, Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
			{ID: delba, Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
			{ID: lee, Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
			{ID: michael, Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
			{ID: amy, Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
			{ID: balazs, Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
		},
		Invoices: []SeedInvoice{
			{CustomerID: evilRabbit, Amount: 15795, Status: models.InvoiceStatusPending, Date: "2022-12-06"},
			{CustomerID: delba, Amount: 20348, Status: models.InvoiceStatusPending, Date: "2022-11-14"},
			{CustomerID: amy, Amount: 3040, Status: models.InvoiceStatusPaid, Date: "2022-10-29"},
			{CustomerID: michael, Amount: 44800, Status: models.InvoiceStatusPaid, Date: "2023-09-10"},
			{CustomerID: balazs, Amount: 34577, Status: models.InvoiceStatusPending, Date: "2023-08-05"},
			{CustomerID: lee, Amount: 54246, Status: models.InvoiceStatusPending, Date: "2023-07-16"},
			{CustomerID: evilRabbit, Amount: 666, Status: models.InvoiceStatusPending, Date: "2023-06-27"},
			{CustomerID: michael, Amount: 32545, Status: models.InvoiceStatusPaid, Date: "2023-06-09"},
			{CustomerID: amy, Amount: 1250, Status: models.InvoiceStatusPaid, Date: "2023-06-17"},
			{CustomerID: balazs, Amount: 8546, Status: models.InvoiceStatusPaid, Date: "2023-06-07"},
			{CustomerID: delba, Amount: 500, Status: models.InvoiceStatusPaid, Date: "2023-08-19"},
			{CustomerID: balazs, Amount: 8945, Status: models.InvoiceStatusPaid, Date: "2023-06-03"},
			{CustomerID: amy, Amount: 1000, Status: models.InvoiceStatusPaid, Date: "2022-06-05"},
		},
		Revenue: []models.Revenue{
			{Month: "Jan", Revenue: 2000},
			{Month: "Feb", Revenue: 1800},
			{Month: "Mar", Revenue: 2200},
			{Month: "Apr", Revenue: 2500},
			{Month: "May", Revenue: 2300},
			{Month: "Jun", Revenue: 3200},
			{Month: "Jul", Revenue: 3500},
			{Month: "Aug", Revenue: 3700},
			{Month: "Sep", Revenue: 2500},
			{Month: "Oct", Revenue: 2800},
			{Month: "Nov", Revenue: 3000},
			{Month: "Dec", Revenue: 4800},
		},
	}
}
