package orders

import (
	"context"
	"log"
	"time"

	kafkax "github.com/ariefcatur/go-checkout-orders.git/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// OrderStore is the writer the service drives.
type OrderStore interface {
	CreateOrder(ctx context.Context, in OrderInput) (int64, error)
}

// CartClearer empties a user's cart. Best effort: its failure never undoes
// a committed order.
type CartClearer interface {
	Clear(ctx context.Context, userID int64) error
}

type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Store    OrderStore
	Cart     CartClearer
	Producer EventPublisher // optional
	Service  string
}

// PlaceOrderResult: CartCleared=false with a nil error is degraded success —
// the order is committed, only the cart cleanup failed.
type PlaceOrderResult struct {
	OrderID     int64
	CartCleared bool
}

// PlaceOrder runs the checkout transaction, then the post-commit steps:
// publish order.placed and clear the cart. Both happen after commit and
// neither can fail the order.
func (s *Service) PlaceOrder(ctx context.Context, in OrderInput, traceID string) (PlaceOrderResult, error) {
	orderID, err := s.Store.CreateOrder(ctx, in)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	s.publishPlaced(orderID, in, traceID)

	res := PlaceOrderResult{OrderID: orderID, CartCleared: true}
	if err := s.Cart.Clear(ctx, in.UserID); err != nil {
		log.Printf("clear cart failed: user=%d order=%d err=%v", in.UserID, orderID, err)
		res.CartCleared = false
	}
	return res, nil
}

func (s *Service) publishPlaced(orderID int64, in OrderInput, traceID string) {
	if s.Producer == nil {
		return
	}
	items := make([]ItemQty, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, ItemQty{ProductID: it.ProductID, Qty: it.Quantity})
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.Service,
		TraceID:       traceID,
		CorrelationID: string(PartitionKey(orderID)),
		Payload: kafkax.MustMarshal(OrderPlacedPayload{
			OrderID:    orderID,
			UserID:     in.UserID,
			TotalCents: in.TotalCents,
			Items:      items,
		}),
	}
	s.Producer.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
