// Package memory implements an in-memory product repository.
package memory

import (
	"context"
	"sync"

	"shopflow/pkg/product"
)

// Repository provides an in-memory implementation of product.Repository.
// One mutex serializes reads and quantity updates, so a batch update is
// atomic with respect to every other call.
type Repository struct {
	mu       sync.RWMutex
	products map[string]product.Product
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{products: make(map[string]product.Product)}
}

// Add stores the product, replacing any previous entry with the same ID.
func (r *Repository) Add(p product.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

// Get retrieves a product by ID.
func (r *Repository) Get(id string) (product.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	return p, ok
}

// FindAllByID returns the known products among the given ids, in the order
// the ids were requested. Unknown ids are skipped.
func (r *Repository) FindAllByID(ctx context.Context, ids []string) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateQuantities applies the batch atomically. Every update must still see
// its expected quantity and produce a non-negative one, otherwise nothing is
// written and product.ErrStockConflict is returned.
func (r *Repository) UpdateQuantities(ctx context.Context, updates []product.QuantityUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range updates {
		p, ok := r.products[u.ID]
		if !ok || p.AvailableQuantity != u.ExpectedQuantity || u.NewQuantity < 0 {
			return product.ErrStockConflict
		}
	}
	for _, u := range updates {
		p := r.products[u.ID]
		p.AvailableQuantity = u.NewQuantity
		r.products[u.ID] = p
	}
	return nil
}
