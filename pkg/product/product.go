package product

import (
	"context"
	"errors"
)

// Product is a catalog item with the stock available for ordering.
// UnitPrice and AvailableQuantity are authoritative here; order lines copy
// the price at creation time and never feed it back.
type Product struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	UnitPrice         float64 `json:"unit_price"`
	AvailableQuantity int     `json:"available_quantity"`
}

// QuantityUpdate is one entry of a conditional stock write. ExpectedQuantity
// is the quantity observed when the order was validated; the write applies
// only while the stored quantity still equals it.
type QuantityUpdate struct {
	ID               string
	ExpectedQuantity int
	NewQuantity      int
}

// Repository defines behavior for reading products and applying stock
// decrements.
type Repository interface {
	// FindAllByID returns the products matching the given ids. Unknown ids
	// are omitted from the result; a partial miss is not an error.
	FindAllByID(ctx context.Context, ids []string) ([]Product, error)
	// UpdateQuantities applies all updates or none. The batch is rejected
	// with ErrStockConflict if any product's stored quantity no longer
	// matches its ExpectedQuantity or any NewQuantity is negative.
	UpdateQuantities(ctx context.Context, updates []QuantityUpdate) error
}

// ErrStockConflict indicates a quantity update batch was rejected because a
// concurrent write changed stock between validation and decrement.
var ErrStockConflict = errors.New("stock quantity conflict")
