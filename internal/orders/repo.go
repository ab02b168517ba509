package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// decrement records the outcome of one conditional stock update. All
// decrements run before the commit/rollback decision is made.
type decrement struct {
	productID int64
	requested int
	rows      int64
}

// CreateOrder places an order in a single transaction: header insert, line
// inserts with the caller's price snapshot, then one conditional decrement
// per line. It commits only if every decrement matched a row; otherwise
// everything is rolled back and no stock change is visible.
func (r *Repo) CreateOrder(ctx context.Context, in OrderInput) (int64, error) {
	if len(in.Items) == 0 {
		return 0, ErrEmptyOrder
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(user_id, contact_number, address, payment_method, total_cents, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id
	`, in.UserID, in.ContactNumber, in.Address, in.PaymentMethod, in.TotalCents, StatusPending).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, it := range in.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, quantity, price_cents)
			VALUES ($1, $2, $3, $4)
		`, orderID, it.ProductID, it.Quantity, it.PriceCents); err != nil {
			return 0, fmt.Errorf("insert order line (product %d): %w", it.ProductID, err)
		}
	}

	// Check-and-set in one statement: the WHERE clause is what keeps stock
	// from going negative under concurrent checkouts of the same product.
	results := make([]decrement, 0, len(in.Items))
	for _, it := range in.Items {
		ct, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = now()
			WHERE id = $1 AND stock >= $2
		`, it.ProductID, it.Quantity)
		if err != nil {
			return 0, fmt.Errorf("decrement stock (product %d): %w", it.ProductID, err)
		}
		results = append(results, decrement{productID: it.ProductID, requested: it.Quantity, rows: ct.RowsAffected()})
	}

	for _, d := range results {
		if d.rows == 0 {
			return 0, &InsufficientStockError{ProductID: d.productID, Requested: d.requested}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	return orderID, nil
}
