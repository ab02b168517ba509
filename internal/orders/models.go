package orders

import "time"

type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"image_url"`
	Stock      int       `json:"stock"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Order struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	ContactNumber string    `json:"contact_number"`
	Address       string    `json:"address"`
	PaymentMethod string    `json:"payment_method"`
	TotalCents    int64     `json:"total_cents"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderLine as stored: price_cents is the snapshot taken at checkout,
// independent of the product's live price.
type OrderLine struct {
	ID         int64 `json:"id"`
	OrderID    int64 `json:"order_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

// LineView is a line joined with product metadata for read projections.
type LineView struct {
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	PriceCents   int64  `json:"price_cents"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
}

type OrderWithLines struct {
	Order
	Items []LineView `json:"items"`
}

// LineInput is one requested line of a checkout. PriceCents comes from the
// caller's cart snapshot and is stored verbatim.
type LineInput struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

type OrderInput struct {
	UserID        int64
	ContactNumber string
	Address       string
	PaymentMethod string
	TotalCents    int64
	Items         []LineInput
}
