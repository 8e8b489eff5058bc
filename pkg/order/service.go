package order

import (
	"context"
	"errors"
	"fmt"

	"shopflow/pkg/customer"
	"shopflow/pkg/product"
)

// Service runs the order creation workflow: validate the customer and the
// requested products against a single catalog snapshot, price the lines from
// that snapshot, persist the order atomically and decrement stock with a
// conditional batch write.
type Service struct {
	orders    Repository
	products  product.Repository
	customers customer.Repository
}

// NewService wires the three collaborators the workflow depends on.
func NewService(orders Repository, products product.Repository, customers customer.Repository) *Service {
	return &Service{orders: orders, products: products, customers: customers}
}

// CreateOrder creates an order for the given customer. Requested quantities
// for the same product are summed before the stock check, so a request cannot
// oversubscribe a product by splitting it across lines. Validation failures
// report the first offending product in request order and leave all state
// untouched. A concurrent stock change between validation and decrement
// surfaces as ErrStockRaceLost with the persisted order rolled back.
func (s *Service) CreateOrder(ctx context.Context, customerID string, lines []LineRequest) (Order, error) {
	if customerID == "" {
		return Order{}, fmt.Errorf("%w: empty customer id", ErrInvalidRequest)
	}
	if len(lines) == 0 {
		return Order{}, fmt.Errorf("%w: no lines", ErrInvalidRequest)
	}
	for _, l := range lines {
		if l.ProductID == "" {
			return Order{}, fmt.Errorf("%w: empty product id", ErrInvalidRequest)
		}
		if l.Quantity <= 0 {
			return Order{}, fmt.Errorf("%w: non-positive quantity for product %s", ErrInvalidRequest, l.ProductID)
		}
	}

	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return Order{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
		}
		return Order{}, err
	}

	// Distinct ids in request order; duplicate lines aggregate their
	// quantities for the stock check and the decrement.
	ids := make([]string, 0, len(lines))
	requested := make(map[string]int, len(lines))
	for _, l := range lines {
		if _, ok := requested[l.ProductID]; !ok {
			ids = append(ids, l.ProductID)
		}
		requested[l.ProductID] += l.Quantity
	}

	found, err := s.products.FindAllByID(ctx, ids)
	if err != nil {
		return Order{}, err
	}
	if len(found) == 0 {
		return Order{}, ErrNoProductsFound
	}

	snapshot := make(map[string]product.Product, len(found))
	for _, p := range found {
		snapshot[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := snapshot[id]; !ok {
			return Order{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
	}
	for _, id := range ids {
		if requested[id] > snapshot[id].AvailableQuantity {
			return Order{}, fmt.Errorf("%w: product %s", ErrInsufficientStock, id)
		}
	}

	orderLines := make([]OrderLine, len(lines))
	for i, l := range lines {
		orderLines[i] = OrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: snapshot[l.ProductID].UnitPrice,
		}
	}

	created, err := s.orders.Create(ctx, Order{CustomerID: customerID, Lines: orderLines})
	if err != nil {
		return Order{}, err
	}

	updates := make([]product.QuantityUpdate, len(ids))
	for i, id := range ids {
		updates[i] = product.QuantityUpdate{
			ID:               id,
			ExpectedQuantity: snapshot[id].AvailableQuantity,
			NewQuantity:      snapshot[id].AvailableQuantity - requested[id],
		}
	}
	if err := s.products.UpdateQuantities(ctx, updates); err != nil {
		if errors.Is(err, product.ErrStockConflict) {
			if delErr := s.orders.Delete(ctx, created.ID); delErr != nil {
				return Order{}, errors.Join(fmt.Errorf("%w: order %s", ErrPartialCommit, created.ID), delErr)
			}
			return Order{}, fmt.Errorf("%w: order rolled back", ErrStockRaceLost)
		}
		return Order{}, errors.Join(fmt.Errorf("%w: order %s", ErrPartialCommit, created.ID), err)
	}

	return created, nil
}
