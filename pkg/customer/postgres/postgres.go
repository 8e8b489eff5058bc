package postgres

import (
	"context"
	"database/sql"

	"shopflow/pkg/customer"
)

// Repository looks up customers in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindByID retrieves a customer by ID.
func (r *Repository) FindByID(ctx context.Context, id string) (customer.Customer, error) {
	var c customer.Customer
	err := r.db.QueryRowContext(ctx, "SELECT id,name,email FROM customers WHERE id=$1", id).Scan(&c.ID, &c.Name, &c.Email)
	if err == sql.ErrNoRows {
		return customer.Customer{}, customer.ErrNotFound
	}
	return c, err
}
