package order

import (
	"context"
	"errors"
)

// LineRequest is one requested product+quantity entry of a create call.
// UnitPrice may be sent by callers but is never trusted; the persisted price
// always comes from the product catalog.
type LineRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price,omitempty"`
}

// OrderLine is one persisted product entry of an order. UnitPrice is the
// catalog price at creation time and never changes afterwards.
type OrderLine struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order represents a customer purchase order with its lines. An order is
// created with at least one line and is immutable afterwards.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Lines      []OrderLine `json:"lines"`
}

// Repository defines behavior for persisting orders. Create must store the
// order and all of its lines as a single unit; a partially created order must
// never be observable.
type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id string) error
}

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")

// ErrNoLines indicates an attempt to persist an order without lines.
var ErrNoLines = errors.New("order has no lines")

// Errors returned by Service.CreateOrder. Each carries the offending
// identifier in its message; callers branch with errors.Is.
var (
	ErrInvalidRequest    = errors.New("invalid order request")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrNoProductsFound   = errors.New("no products found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockRaceLost     = errors.New("stock changed during order creation")
	ErrPartialCommit     = errors.New("order persisted without stock decrement")
)
