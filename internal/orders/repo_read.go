package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// OrderHistory returns all orders for a user with their line summaries,
// most recent first. Two queries instead of one aggregated join, so an
// order with no lines still projects with an empty items slice.
func (r *Repo) OrderHistory(ctx context.Context, userID int64) ([]OrderWithLines, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, contact_number, address, payment_method, total_cents, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	byID := map[int64]*OrderWithLines{}
	var orderIDs []int64
	var out []OrderWithLines
	for rows.Next() {
		var o OrderWithLines
		if err := scanOrder(rows, &o.Order); err != nil {
			return nil, err
		}
		o.Items = []LineView{}
		out = append(out, o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []OrderWithLines{}, nil
	}
	for i := range out {
		byID[out[i].ID] = &out[i]
	}

	if err := r.attachLines(ctx, orderIDs, byID); err != nil {
		return nil, err
	}
	return out, nil
}

// OrderDetails returns one order with its lines, or ErrOrderNotFound.
// Ownership is the caller's problem; the projection carries UserID for that.
func (r *Repo) OrderDetails(ctx context.Context, orderID int64) (*OrderWithLines, error) {
	var o OrderWithLines
	row := r.DB.QueryRow(ctx, `
		SELECT id, user_id, contact_number, address, payment_method, total_cents, status, created_at
		FROM orders
		WHERE id = $1
	`, orderID)
	if err := scanOrder(row, &o.Order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order: %w", err)
	}
	o.Items = []LineView{}

	byID := map[int64]*OrderWithLines{o.ID: &o}
	if err := r.attachLines(ctx, []int64{o.ID}, byID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) attachLines(ctx context.Context, orderIDs []int64, byID map[int64]*OrderWithLines) error {
	rows, err := r.DB.Query(ctx, `
		SELECT oi.order_id, oi.product_id, oi.quantity, oi.price_cents, p.name, p.image_url
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, orderIDs)
	if err != nil {
		return fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var lv LineView
		if err := rows.Scan(&orderID, &lv.ProductID, &lv.Quantity, &lv.PriceCents, &lv.ProductName, &lv.ProductImage); err != nil {
			return err
		}
		if o := byID[orderID]; o != nil {
			o.Items = append(o.Items, lv)
		}
	}
	return rows.Err()
}

func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, image_url, stock, price_cents, created_at, updated_at
		FROM products ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ImageURL, &p.Stock, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.ContactNumber, &o.Address, &o.PaymentMethod, &o.TotalCents, &o.Status, &o.CreatedAt)
}
