// Package cart is the redis-backed cart collaborator. The checkout flow
// only needs Clear; add/remove belongs to the storefront service.
package cart

import (
	"context"
	"fmt"

	"github.com/ariefcatur/go-checkout-orders.git/internal/redisx"
	"github.com/redis/go-redis/v9"
)

type Store struct{ RDB *redis.Client }

// Clear drops the whole cart for a user. Deleting an absent key is not an
// error, so Clear is safe to retry.
func (s *Store) Clear(ctx context.Context, userID int64) error {
	key := fmt.Sprintf(redisx.KeyUserCart, userID)
	if err := s.RDB.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear cart %d: %w", userID, err)
	}
	return nil
}
