package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkax "github.com/ariefcatur/go-checkout-orders.git/internal/kafka"
	"github.com/ariefcatur/go-checkout-orders.git/internal/orders"
	"github.com/ariefcatur/go-checkout-orders.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Service turns order.placed events into per-user notification entries.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// Notification is what lands on the user's notification list.
type Notification struct {
	OrderID    int64     `json:"order_id"`
	TotalCents int64     `json:"total_cents"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// HandleOrderPlaced is mounted as the consumer handler.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil // ignore
	}

	// dedup by event_id so redelivery doesn't double-notify
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	exists, err := redisx.Exists(ctx, s.Redis, dkey)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	n := Notification{
		OrderID:    p.OrderID,
		TotalCents: p.TotalCents,
		Message:    fmt.Sprintf("Order %d placed with %d item(s)", p.OrderID, len(p.Items)),
		CreatedAt:  env.OccurredAt,
	}
	if err := s.push(ctx, p.UserID, n); err != nil {
		return err
	}
	return s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
}

func (s *Service) push(ctx context.Context, userID int64, n Notification) error {
	key := fmt.Sprintf(redisx.KeyUserNotifications, userID)
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	pipe := s.Redis.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, redisx.MaxNotifications-1)
	pipe.Expire(ctx, key, redisx.TTLNotifications)
	_, err = pipe.Exec(ctx)
	return err
}
