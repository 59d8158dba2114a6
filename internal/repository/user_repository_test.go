package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery("FROM users").
			WithArgs("user@nextmail.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password"}).
				AddRow("u1", "User", "user@nextmail.com", "$2a$10$hash"))

		user, err := repo.GetByEmail(context.Background(), "user@nextmail.com")
		if err != nil {
			t.Fatalf("GetByEmail() error = %v", err)
		}
		if user.ID != "u1" || user.Password != "$2a$10$hash" {
			t.Errorf("user = %+v", user)
		}
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery("FROM users").
			WithArgs("nobody@nextmail.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "nobody@nextmail.com")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetByEmail() error = %v, want ErrNotFound", err)
		}
	})
}

func TestRevenueRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRevenueRepository(db)

	mock.ExpectQuery("SELECT month, revenue FROM revenue").
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue"}).
			AddRow("Jan", 2000).
			AddRow("Feb", 1800))

	revenue, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(revenue) != 2 || revenue[1].Month != "Feb" || revenue[1].Revenue != 1800 {
		t.Errorf("revenue = %+v", revenue)
	}
}
