package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"shopflow/pkg/order"
)

// Repository persists orders and their lines in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the order and all of its lines in one transaction.
func (r *Repository) Create(ctx context.Context, o order.Order) (order.Order, error) {
	if len(o.Lines) == 0 {
		return order.Order{}, order.ErrNoLines
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return order.Order{}, err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO orders (id,customer_id) VALUES ($1,$2)", o.ID, o.CustomerID); err != nil {
		tx.Rollback()
		return order.Order{}, err
	}
	lines := make([]order.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_lines (id,order_id,position,product_id,quantity,unit_price) VALUES ($1,$2,$3,$4,$5,$6)",
			l.ID, o.ID, i, l.ProductID, l.Quantity, l.UnitPrice); err != nil {
			tx.Rollback()
			return order.Order{}, err
		}
		lines[i] = l
	}
	if err := tx.Commit(); err != nil {
		return order.Order{}, err
	}
	o.Lines = lines
	return o, nil
}

// Get retrieves an order with its lines by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	var o order.Order
	err := r.db.QueryRowContext(ctx, "SELECT id,customer_id FROM orders WHERE id=$1", id).Scan(&o.ID, &o.CustomerID)
	if err == sql.ErrNoRows {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, err
	}
	o.Lines, err = r.lines(ctx, id)
	return o, err
}

// List fetches all orders with their lines.
func (r *Repository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id,customer_id FROM orders")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.CustomerID); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].Lines, err = r.lines(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// Delete removes an order and its lines.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM order_lines WHERE order_id=$1", id); err != nil {
		tx.Rollback()
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id=$1", id)
	if err != nil {
		tx.Rollback()
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		tx.Rollback()
		return order.ErrNotFound
	}
	return tx.Commit()
}

func (r *Repository) lines(ctx context.Context, orderID string) ([]order.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,product_id,quantity,unit_price FROM order_lines WHERE order_id=$1 ORDER BY position", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []order.OrderLine
	for rows.Next() {
		var l order.OrderLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
