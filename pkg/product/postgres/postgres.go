package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"shopflow/pkg/product"
)

// Repository reads and updates products in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindAllByID fetches the products matching the given ids. Unknown ids are
// simply absent from the result.
func (r *Repository) FindAllByID(ctx context.Context, ids []string) ([]product.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,name,unit_price,available_quantity FROM products WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.AvailableQuantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateQuantities applies the batch in a single transaction. Each update is
// conditional on the row still holding the expected quantity; if any row was
// changed concurrently the transaction is rolled back and
// product.ErrStockConflict is returned.
func (r *Repository) UpdateQuantities(ctx context.Context, updates []product.QuantityUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, u := range updates {
		if u.NewQuantity < 0 {
			tx.Rollback()
			return product.ErrStockConflict
		}
		res, err := tx.ExecContext(ctx,
			"UPDATE products SET available_quantity=$3 WHERE id=$1 AND available_quantity=$2",
			u.ID, u.ExpectedQuantity, u.NewQuantity)
		if err != nil {
			tx.Rollback()
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return err
		}
		if n == 0 {
			tx.Rollback()
			return product.ErrStockConflict
		}
	}
	return tx.Commit()
}
