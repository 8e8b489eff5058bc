package customer

import (
	"context"
	"errors"
)

// Customer is a registered buyer referenced by orders.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Repository defines behavior for looking up customers.
type Repository interface {
	FindByID(ctx context.Context, id string) (Customer, error)
}

// ErrNotFound indicates the requested customer does not exist.
var ErrNotFound = errors.New("customer not found")
