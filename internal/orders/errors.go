package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOrder rejects a checkout with no line items before any write.
	ErrEmptyOrder = errors.New("order has no line items")

	// ErrStoreUnavailable means no transaction could be acquired; nothing
	// was written.
	ErrStoreUnavailable = errors.New("order store unavailable")

	ErrOrderNotFound = errors.New("order not found")
)

// InsufficientStockError reports the first product whose conditional
// decrement matched no row. The whole checkout has been rolled back.
type InsufficientStockError struct {
	ProductID int64
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (requested %d)", e.ProductID, e.Requested)
}
