// Package memory implements an in-memory customer repository.
package memory

import (
	"context"
	"sync"

	"shopflow/pkg/customer"
)

// Repository provides an in-memory implementation of customer.Repository.
type Repository struct {
	mu        sync.RWMutex
	customers map[string]customer.Customer
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{customers: make(map[string]customer.Customer)}
}

// Add stores the customer, replacing any previous entry with the same ID.
func (r *Repository) Add(c customer.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.ID] = c
}

// FindByID retrieves a customer by ID.
func (r *Repository) FindByID(ctx context.Context, id string) (customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return customer.Customer{}, customer.ErrNotFound
	}
	return c, nil
}
