// Package memory implements an in-memory order repository.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"shopflow/pkg/order"
)

// Repository provides an in-memory implementation of order.Repository.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]order.Order
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{orders: make(map[string]order.Order)}
}

// Create stores the order with its lines, generating ids for both. The whole
// order is stored under one lock acquisition, so it is never observable
// without its lines.
func (r *Repository) Create(ctx context.Context, o order.Order) (order.Order, error) {
	if len(o.Lines) == 0 {
		return order.Order{}, order.ErrNoLines
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	lines := make([]order.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		lines[i] = l
	}
	o.Lines = lines
	r.orders[o.ID] = o
	return o, nil
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return o, nil
}

// List returns all orders.
func (r *Repository) List(ctx context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

// Delete removes an order by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}
